package pattern

import (
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/tspan"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// Selector maps one outer event to the inner pattern it selects. Joins
// consume an outer pattern plus a Selector rather than a literal
// "pattern of patterns" value, since Go has no ergonomic way to carry an
// arbitrary Pattern inside a VoiceData field without reflection.
type Selector func(outer Event) Pattern

// innerJoinPattern takes its structure from the inner pattern: the
// outer's part only gates which inner events survive.
type innerJoinPattern struct {
	base
	outer Pattern
	sel   Selector
}

// InnerJoin builds a join where the selected (inner) pattern's own
// rhythm is kept, gated by the outer's timing.
func InnerJoin(outer Pattern, sel Selector) Pattern {
	return innerJoinPattern{outer: outer, sel: sel}
}

func (j innerJoinPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var out []Event
	for _, oe := range j.outer.Query(from, to, ctx) {
		if ctx.Cancelled() {
			break
		}
		inner, ok := selectInner(j.sel, oe)
		if !ok {
			continue
		}
		for _, ie := range inner.Query(from, to, ctx) {
			overlap, ok := ie.Part.Intersect(oe.Part)
			if !ok {
				continue
			}
			out = append(out, Event{
				Whole: ie.Whole,
				Part:  overlap,
				Data:  voice.Merge(oe.Data, ie.Data),
			})
		}
	}
	return sortEvents(out)
}

// outerJoinPattern takes its structure from the outer pattern: every
// emitted event's whole is rewritten to the outer event's whole.
type outerJoinPattern struct {
	base
	outer Pattern
	sel   Selector
}

// OuterJoin builds a join where onset placement follows the outer
// (selector) pattern.
func OuterJoin(outer Pattern, sel Selector) Pattern {
	return outerJoinPattern{outer: outer, sel: sel}
}

func (j outerJoinPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var out []Event
	for _, oe := range j.outer.Query(from, to, ctx) {
		if ctx.Cancelled() {
			break
		}
		inner, ok := selectInner(j.sel, oe)
		if !ok {
			continue
		}
		for _, ie := range inner.Query(oe.Part.Begin, oe.Part.End, ctx) {
			overlap, ok := ie.Part.Intersect(oe.Part)
			if !ok {
				continue
			}
			out = append(out, Event{
				Whole: oe.Whole,
				Part:  overlap,
				Data:  voice.Merge(oe.Data, ie.Data),
			})
		}
	}
	return sortEvents(out)
}

// squeezeJoinPattern compresses each selected inner pattern's full cycle
// into the duration of the outer event that selected it.
type squeezeJoinPattern struct {
	base
	outer Pattern
	sel   Selector
}

// SqueezeJoin builds a join where each outer event's selected pattern is
// time-compressed to exactly fill that event's part.
func SqueezeJoin(outer Pattern, sel Selector) Pattern {
	return squeezeJoinPattern{outer: outer, sel: sel}
}

func (j squeezeJoinPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var out []Event
	for _, oe := range j.outer.Query(from, to, ctx) {
		if ctx.Cancelled() {
			break
		}
		inner, ok := selectInner(j.sel, oe)
		if !ok {
			continue
		}
		dur := oe.Part.Duration()
		if dur.IsZero() {
			continue
		}
		for _, ie := range inner.Query(rational.Zero(), rational.One(), ctx) {
			part := mapLocalToGlobal(ie.Part, oe.Part.Begin, dur)
			var whole *tspan.TimeSpan
			if ie.Whole != nil {
				w := mapLocalToGlobal(*ie.Whole, oe.Part.Begin, dur)
				whole = &w
			}
			out = append(out, Event{
				Whole: whole,
				Part:  part,
				Data:  voice.Merge(oe.Data, ie.Data),
			})
		}
	}
	return sortEvents(out)
}

// bindRestartPattern re-queries the selected inner pattern from its own
// cycle zero on every outer onset, so the inner's phase resets per
// trigger instead of compressing or following the outer's placement.
type bindRestartPattern struct {
	base
	outer Pattern
	sel   Selector
}

// BindRestart builds a join where, on every outer onset, the selected
// pattern restarts from cycle zero.
func BindRestart(outer Pattern, sel Selector) Pattern {
	return bindRestartPattern{outer: outer, sel: sel}
}

func (j bindRestartPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var out []Event
	for _, oe := range j.outer.Query(from, to, ctx) {
		if !oe.IsOnset() || ctx.Cancelled() {
			continue
		}
		inner, ok := selectInner(j.sel, oe)
		if !ok {
			continue
		}
		dur := oe.Part.Duration()
		for _, ie := range inner.Query(rational.Zero(), dur, ctx) {
			part := ie.Part.Shift(oe.Part.Begin)
			var whole *tspan.TimeSpan
			if ie.Whole != nil {
				w := ie.Whole.Shift(oe.Part.Begin)
				whole = &w
			}
			out = append(out, Event{
				Whole: whole,
				Part:  part,
				Data:  voice.Merge(oe.Data, ie.Data),
			})
		}
	}
	return sortEvents(out)
}

// bindResetPattern re-queries the selected inner pattern from the start
// of the triggering onset's own cycle, so the inner's phase snaps back
// to its current cycle's beginning per trigger. Contrast BindRestart,
// which rewinds all the way to absolute cycle zero: under reset a
// cycle-alternating inner still advances one alternative per outer
// cycle, under restart it is pinned to its first.
type bindResetPattern struct {
	base
	outer Pattern
	sel   Selector
}

// BindReset builds a join where, on every outer onset, the selected
// pattern's phase resets to the start of the onset's cycle.
func BindReset(outer Pattern, sel Selector) Pattern {
	return bindResetPattern{outer: outer, sel: sel}
}

func (j bindResetPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var out []Event
	for _, oe := range j.outer.Query(from, to, ctx) {
		if !oe.IsOnset() || ctx.Cancelled() {
			continue
		}
		inner, ok := selectInner(j.sel, oe)
		if !ok {
			continue
		}
		cycleStart := oe.Part.Begin.Floor()
		phase := oe.Part.Begin.Sub(cycleStart)
		dur := oe.Part.Duration()
		for _, ie := range inner.Query(cycleStart, cycleStart.Add(dur), ctx) {
			part := ie.Part.Shift(phase)
			var whole *tspan.TimeSpan
			if ie.Whole != nil {
				w := ie.Whole.Shift(phase)
				whole = &w
			}
			out = append(out, Event{
				Whole: whole,
				Part:  part,
				Data:  voice.Merge(oe.Data, ie.Data),
			})
		}
	}
	return sortEvents(out)
}

// selectInner invokes sel, catching a panic from user callback code:
// log once, drop the layer, keep going rather than propagate.
func selectInner(sel Selector, oe Event) (p Pattern, ok bool) {
	ok = recoverCallback("selector", func() { p = sel(oe) })
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// stepJoinPattern splits the query into sub-queries aligned with the
// boundaries of numSteps equal steps per cycle, used by take/drop/
// pace style operators that act on a fixed number of discrete slots.
type stepJoinPattern struct {
	base
	outer    Pattern
	numSteps int64
	sel      func(step int64) Pattern
}

// StepJoin builds a pattern of numSteps equal slots per cycle, each
// filled by querying sel(step) zoomed into that slot.
func StepJoin(numSteps int64, sel func(step int64) Pattern) Pattern {
	if numSteps <= 0 {
		return Silence
	}
	return stepJoinPattern{numSteps: numSteps, sel: sel}
}

func (j stepJoinPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	span := tspan.New(from, to)
	var out []Event
	for _, cp := range span.CycleSplit() {
		cycleBase := rational.FromInt(cp.Cycle)
		n := rational.FromInt(j.numSteps)
		for step := int64(0); step < j.numSteps; step++ {
			stepStart := cycleBase.Add(rational.FromInt(step).Div(n))
			stepEnd := cycleBase.Add(rational.FromInt(step + 1).Div(n))
			stepSpan := tspan.New(stepStart, stepEnd)
			overlap, ok := stepSpan.Intersect(cp.Span)
			if !ok {
				continue
			}
			var p Pattern
			sok := recoverCallback("stepJoin", func() { p = j.sel(step) })
			if !sok || p == nil {
				continue
			}
			dur := stepEnd.Sub(stepStart)
			localFrom := overlap.Begin.Sub(stepStart).Div(dur)
			localTo := overlap.End.Sub(stepStart).Div(dur)
			for _, ie := range p.Query(localFrom, localTo, ctx) {
				part := mapLocalToGlobal(ie.Part, stepStart, dur)
				var whole *tspan.TimeSpan
				if ie.Whole != nil {
					w := mapLocalToGlobal(*ie.Whole, stepStart, dur)
					whole = &w
				}
				out = append(out, Event{Whole: whole, Part: part, Data: ie.Data})
			}
		}
	}
	return sortEvents(out)
}
