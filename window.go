package pattern

import (
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/tspan"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// zoomPattern queries source at the cycle-local sub-window [start, end)
// and linearly re-maps it back to [0, 1).
type zoomPattern struct {
	base
	source     Pattern
	start, end rational.Rational
}

// Zoom re-maps source's [start, end) cycle-local window onto the full
// cycle. start and end are cycle-local coordinates in [0, 1] with
// start < end.
func Zoom(source Pattern, start, end rational.Rational) Pattern {
	if !start.Less(end) {
		return Silence
	}
	return zoomPattern{source: source, start: start, end: end}
}

func (z zoomPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	dur := z.end.Sub(z.start)
	span := tspan.New(from, to)
	var out []Event
	for _, cp := range span.CycleSplit() {
		cycleBase := rational.FromInt(cp.Cycle)
		queryFrom := cycleBase.Add(z.start).Add(cp.Span.Begin.Sub(cycleBase).Mul(dur))
		queryTo := cycleBase.Add(z.start).Add(cp.Span.End.Sub(cycleBase).Mul(dur))
		for _, ev := range z.source.Query(queryFrom, queryTo, ctx) {
			part := unzoomSpan(ev.Part, cycleBase, z.start, dur)
			var whole *tspan.TimeSpan
			if ev.Whole != nil {
				w := unzoomSpan(*ev.Whole, cycleBase, z.start, dur)
				whole = &w
			}
			out = append(out, Event{Whole: whole, Part: part, Data: ev.Data})
		}
	}
	return sortEvents(out)
}

func unzoomSpan(span tspan.TimeSpan, cycleBase, start, dur rational.Rational) tspan.TimeSpan {
	begin := cycleBase.Add(span.Begin.Sub(cycleBase).Sub(start).Div(dur))
	end := cycleBase.Add(span.End.Sub(cycleBase).Sub(start).Div(dur))
	return tspan.New(begin, end)
}

func (z zoomPattern) NumSteps() (rational.Rational, bool) {
	n, ok := z.source.NumSteps()
	if !ok {
		return rational.Rational{}, false
	}
	dur := z.end.Sub(z.start)
	if dur.IsZero() {
		return rational.Rational{}, false
	}
	return n.Div(dur), true
}

// ZoomDynamic is Zoom with pattern-valued start and end: the Cartesian
// product of the two control patterns is taken via nested innerJoin, so
// the window in force follows whichever control changed most recently.
// When both controls are Atomics this agrees with the static Zoom.
func ZoomDynamic(source, start, end Pattern) Pattern {
	return InnerJoin(start, func(se Event) Pattern {
		s, ok := se.Data.Value.AsFloat64()
		if !ok {
			return Silence
		}
		return InnerJoin(end, func(ee Event) Pattern {
			e, ok := ee.Data.Value.AsFloat64()
			if !ok {
				return Silence
			}
			return Zoom(source, rational.FromFloat64(s), rational.FromFloat64(e))
		})
	})
}

// Bite slices each cycle of source into n equal pieces and, for each
// event of indices, plays the piece indexed (k mod n) stretched to fill
// that event's own duration.
func Bite(source Pattern, n int64, indices Pattern) Pattern {
	if n <= 0 {
		return Silence
	}
	return SqueezeJoin(indices, func(ie Event) Pattern {
		k, ok := ie.Data.Value.AsFloat64()
		if !ok {
			return Silence
		}
		idx := ((int64(k) % n) + n) % n
		start := rational.FromInt(idx).Div(rational.FromInt(n))
		end := rational.FromInt(idx + 1).Div(rational.FromInt(n))
		return Zoom(source, start, end)
	})
}

// Segment samples source at n equally spaced points per cycle, holding
// whatever value is active at each point for that point's slot — turns
// a continuous-valued pattern into n discrete per-cycle events.
func Segment(source Pattern, n int64) Pattern {
	if n <= 0 {
		return Silence
	}
	grid := Fast(rational.FromInt(n))(atomicPattern{data: voice.Data{}})
	return StructAll(source, grid)
}

// lingerPattern plays source's first (or last, for negative t) fraction
// t of a cycle, looped to fill the whole cycle.
type lingerPattern struct {
	base
	source Pattern
	t      rational.Rational
}

// Linger loops the first |t| fraction of source's cycle (the last
// fraction if t < 0) to fill the entire cycle. t == 0 yields Silence.
func Linger(source Pattern, t rational.Rational) Pattern {
	if t.IsZero() {
		return Silence
	}
	return lingerPattern{source: source, t: t}
}

func (l lingerPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var start, end rational.Rational
	if l.t.Sign() > 0 {
		start, end = rational.Zero(), l.t
	} else {
		one := rational.One()
		start, end = one.Add(l.t), one
	}
	dur := end.Sub(start)
	loopFactor := rational.One().Div(dur)
	zoomed := Zoom(l.source, start, end)
	return Fast(loopFactor)(zoomed).Query(from, to, ctx)
}

func (l lingerPattern) NumSteps() (rational.Rational, bool) { return l.source.NumSteps() }

// Within partitions source's events into "inside" (part.begin falls in
// the cycle-local window [a, b)) and "outside", applies f to the inside
// half, and stacks the result with the untouched outside half.
func Within(source Pattern, a, b rational.Rational, f func(Pattern) Pattern) Pattern {
	inside := FilterEvents(func(e Event) bool { return inWithinWindow(e, a, b) })(source)
	outside := FilterEvents(func(e Event) bool { return !inWithinWindow(e, a, b) })(source)
	var transformed Pattern = Silence
	recoverCallback("within", func() { transformed = f(inside) })
	return StackPatterns(transformed, outside)
}

func inWithinWindow(e Event, a, b rational.Rational) bool {
	cycle := e.Part.Begin.Floor()
	phase := e.Part.Begin.Sub(cycle)
	return !phase.Less(a) && phase.Less(b)
}

// chunkPattern applies transform to one of n equal windows of every
// cycle, the window advancing one slot per cycle (or, when back,
// counting down instead of up).
type chunkPattern struct {
	base
	source      Pattern
	n           int64
	transform   func(Pattern) Pattern
	back        bool
	earlyOffset rational.Rational
}

// Chunk splits each cycle into n equal windows and applies transform to
// source inside one of them: window (cycle mod n), or counting down from
// the last window when back. When fast is false, source is first
// spread across n cycles via RepeatCycles so a full traversal surfaces
// each chunk once per n cycles instead of once per single cycle.
// earlyOffset shifts the gate's traversal earlier by that many cycles,
// the same as iterating the 1-hot gate sequence through Early; the gate
// is piecewise constant per cycle, so it is sampled at each queried
// cycle's start.
func Chunk(source Pattern, n int64, transform func(Pattern) Pattern, back, fast bool, earlyOffset rational.Rational) Pattern {
	if n <= 0 {
		return source
	}
	base := source
	if !fast {
		base = RepeatCycles(n, source)
	}
	return chunkPattern{source: base, n: n, transform: transform, back: back, earlyOffset: earlyOffset}
}

func (c chunkPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	span := tspan.New(from, to)
	var out []Event
	for _, cp := range span.CycleSplit() {
		gateCycle := rational.FromInt(cp.Cycle).Add(c.earlyOffset).FloorInt()
		i := gateCycle % c.n
		if i < 0 {
			i += c.n
		}
		if c.back {
			i = (c.n - 1 - i + c.n) % c.n
		}
		a := rational.FromInt(i).Div(rational.FromInt(c.n))
		b := rational.FromInt(i + 1).Div(rational.FromInt(c.n))
		windowed := Within(c.source, a, b, c.transform)
		out = append(out, windowed.Query(cp.Span.Begin, cp.Span.End, ctx)...)
	}
	return sortEvents(out)
}

func (c chunkPattern) NumSteps() (rational.Rational, bool) { return c.source.NumSteps() }

// ribbonPattern loops a cycles-long slice of source starting at absolute
// time offset, via bindRestart so the loop's internal phase resets every
// cycles cycles instead of tracking the outer query's cycle index,
// making it deliberately non-periodic rather than cycle-synchronized.
type ribbonPattern struct {
	base
	source Pattern
	offset rational.Rational
	cycles rational.Rational
}

// Ribbon loops a cycles-long slice of source starting at absolute time
// offset.
func Ribbon(source Pattern, offset, cycles rational.Rational) Pattern {
	return ribbonPattern{source: source, offset: offset, cycles: cycles}
}

func (r ribbonPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	shifted := Early(r.offset)(r.source)
	loop := Slow(r.cycles)(atomicPattern{data: voice.Data{}})
	return BindRestart(loop, func(Event) Pattern { return shifted }).Query(from, to, ctx)
}
