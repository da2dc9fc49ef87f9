package pattern

import (
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/tspan"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// silencePattern emits no events and reports no step count; it is the
// identity element of Stack and the default fallback for coercion
// failures.
type silencePattern struct{ base }

// Silence is the pattern that never emits.
var Silence Pattern = silencePattern{}

func (silencePattern) Query(from, to rational.Rational, ctx QueryContext) []Event { return nil }
func (silencePattern) NumSteps() (rational.Rational, bool)                        { return rational.Rational{}, false }

// emptyPattern behaves exactly like Silence but carries a configurable
// positive weight, so it can occupy proportional time inside a Sequence.
// Like Gap it emits no events; unlike Gap it reports no step count.
type emptyPattern struct {
	base
	weight float64
}

// Empty returns a silent pattern with the given Sequence weight.
func Empty(weight float64) Pattern {
	if weight <= 0 {
		weight = 1.0
	}
	return emptyPattern{weight: weight}
}

func (emptyPattern) Query(from, to rational.Rational, ctx QueryContext) []Event { return nil }
func (p emptyPattern) Weight() float64                                         { return p.weight }
func (emptyPattern) NumSteps() (rational.Rational, bool)                       { return rational.Rational{}, false }

// atomicPattern emits one event per whole integer cycle touched by the
// query window, carrying the same data each time.
type atomicPattern struct {
	base
	data voice.Data
}

// Atomic wraps a single VoiceData record as a one-event-per-cycle
// pattern — the leaf every scalar DSL argument is coerced into.
func Atomic(data voice.Data) Pattern { return atomicPattern{data: data} }

func (p atomicPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	if !from.Less(to) && !from.Equal(to) {
		return nil
	}
	span := tspan.New(from, to)
	var out []Event
	for _, cp := range span.CycleSplit() {
		w := tspan.Cycle(cp.Cycle)
		out = append(out, Event{Whole: &w, Part: cp.Span, Data: p.data})
	}
	return out
}

func (atomicPattern) NumSteps() (rational.Rational, bool) { return rational.One(), true }

// gapPattern is like Atomic but emits nothing; its Weight equals its step
// count, used by Sequence to reserve proportional silent time.
type gapPattern struct {
	base
	steps rational.Rational
}

// Gap reserves steps worth of silent space inside a Sequence.
func Gap(steps rational.Rational) Pattern { return gapPattern{steps: steps} }

func (gapPattern) Query(from, to rational.Rational, ctx QueryContext) []Event { return nil }
func (p gapPattern) Weight() float64                                         { return p.steps.Float64() }
func (p gapPattern) NumSteps() (rational.Rational, bool)                     { return p.steps, true }
