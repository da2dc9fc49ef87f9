package pattern

import (
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/tspan"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// StructMode selects which side of Structure contributes the onset
// (whole) of the emitted events.
type StructMode int

const (
	// ModeOut takes structure from the "other" pattern: emitted events'
	// whole is rewritten to other's whole.
	ModeOut StructMode = iota
	// ModeIn keeps source's own whole, gating its part by other's part.
	ModeIn
)

// structurePattern reshapes source's events using other's timing.
type structurePattern struct {
	base
	source             Pattern
	other              Pattern
	mode               StructMode
	filterByTruthiness bool
}

// Structure is the shared implementation behind struct/structAll/mask/
// maskAll: it queries other, optionally drops falsy events, and for each
// surviving "other" event queries source over that event's part.
func Structure(source, other Pattern, mode StructMode, filterByTruthiness bool) Pattern {
	return structurePattern{source: source, other: other, mode: mode, filterByTruthiness: filterByTruthiness}
}

// StructPat takes rhythmic structure from other (a boolean pattern),
// dropping other's falsy events, and rewrites source events' whole to
// match.
func StructPat(source, other Pattern) Pattern { return Structure(source, other, ModeOut, true) }

// StructAll is like StructPat but keeps events regardless of truthiness.
func StructAll(source, other Pattern) Pattern { return Structure(source, other, ModeOut, false) }

// Mask gates source's existing events by other's truthy onsets, keeping
// source's own whole.
func Mask(source, other Pattern) Pattern { return Structure(source, other, ModeIn, true) }

// MaskAll is like Mask but keeps events regardless of truthiness.
func MaskAll(source, other Pattern) Pattern { return Structure(source, other, ModeIn, false) }

func (s structurePattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var out []Event
	for _, oe := range s.other.Query(from, to, ctx) {
		if ctx.Cancelled() {
			break
		}
		if s.filterByTruthiness && !oe.Data.Value.Truthy() {
			continue
		}
		for _, se := range s.source.Query(oe.Part.Begin, oe.Part.End, ctx) {
			overlap, ok := se.Part.Intersect(oe.Part)
			if !ok {
				continue
			}
			switch s.mode {
			case ModeOut:
				out = append(out, Event{Whole: oe.Whole, Part: overlap, Data: se.Data})
			default: // ModeIn
				out = append(out, Event{Whole: se.Whole, Part: overlap, Data: se.Data})
			}
		}
	}
	return sortEvents(out)
}

func (s structurePattern) NumSteps() (rational.Rational, bool) {
	if s.mode == ModeOut {
		return s.other.NumSteps()
	}
	return s.source.NumSteps()
}

// repeatCyclesPattern holds the same source cycle static for n
// consecutive outer cycles before advancing — used by Chunk's
// non-fast path to spread one full traversal across n cycles.
type repeatCyclesPattern struct {
	base
	source Pattern
	n      int64
}

// RepeatCycles repeats each cycle of source n times before advancing to
// the next. n <= 1 returns source unchanged.
func RepeatCycles(n int64, source Pattern) Pattern {
	if n <= 1 {
		return source
	}
	return repeatCyclesPattern{source: source, n: n}
}

func (r repeatCyclesPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	span := tspan.New(from, to)
	var out []Event
	for _, cp := range span.CycleSplit() {
		innerCycle := cp.Cycle / r.n
		if cp.Cycle < 0 && cp.Cycle%r.n != 0 {
			innerCycle--
		}
		delta := rational.FromInt(cp.Cycle - innerCycle)
		for _, ev := range r.source.Query(cp.Span.Begin.Sub(delta), cp.Span.End.Sub(delta), ctx) {
			out = append(out, ev.Shift(delta))
		}
	}
	return sortEvents(out)
}

func (r repeatCyclesPattern) NumSteps() (rational.Rational, bool) { return r.source.NumSteps() }

// PropertyOverride sets one voice-data field on every source event,
// sampling the value from control (a static Atomic or an arbitrary
// pattern) at that event's part. Applied control operators (controls.go)
// funnel through this path: a plain number is coerced to an Atomic
// first, so the static and pattern paths share one implementation.
func PropertyOverride(source, control Pattern, setter func(voice.Data, voice.Value) voice.Data) Pattern {
	return propertyOverridePattern{source: source, control: control, setter: setter}
}

type propertyOverridePattern struct {
	base
	source Pattern
	control Pattern
	setter func(voice.Data, voice.Value) voice.Data
}

func (p propertyOverridePattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	events := p.source.Query(from, to, ctx)
	out := make([]Event, 0, len(events))
	for _, se := range events {
		cevs := p.control.Query(se.Part.Begin, se.Part.End, ctx)
		if len(cevs) == 0 {
			out = append(out, se)
			continue
		}
		out = append(out, se.MapData(func(d voice.Data) voice.Data {
			return p.setter(d, cevs[0].Data.Value)
		}))
	}
	return out
}

func (p propertyOverridePattern) NumSteps() (rational.Rational, bool) { return p.source.NumSteps() }
func (p propertyOverridePattern) Weight() float64                    { return p.source.Weight() }

// Reinterpret applies f to every event's voice data, the same as MapData
// but named for call sites that are re-labeling an existing field's
// meaning (e.g. treating a bare number as a scale degree) rather than
// introducing a brand new one.
func Reinterpret(source Pattern, f func(voice.Data) voice.Data) Pattern {
	return MapData(f)(source)
}
