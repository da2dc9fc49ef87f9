// Package tspan implements half-open time intervals over rational.Rational,
// the half-open query windows [begin, end) that every pattern node
// consumes and produces.
package tspan

import "github.com/cbegin/tidalcore-go/internal/rational"

// TimeSpan is a half-open interval [Begin, End) with Begin <= End.
type TimeSpan struct {
	Begin rational.Rational
	End   rational.Rational
}

func New(begin, end rational.Rational) TimeSpan {
	return TimeSpan{Begin: begin, End: end}
}

// Cycle returns the unit span [c, c+1).
func Cycle(c int64) TimeSpan {
	return TimeSpan{Begin: rational.FromInt(c), End: rational.FromInt(c + 1)}
}

func (t TimeSpan) Duration() rational.Rational {
	return t.End.Sub(t.Begin)
}

// Overlaps reports whether t and o share any point (half-open semantics:
// touching endpoints do not overlap unless the span is a single instant).
func (t TimeSpan) Overlaps(o TimeSpan) bool {
	if t.Begin.Equal(t.End) {
		return !o.Begin.Greater(t.Begin) && o.End.Greater(t.Begin)
	}
	return t.Begin.Less(o.End) && o.Begin.Less(t.End)
}

// Intersect returns the overlapping portion of t and o, and whether one
// exists. A zero-width input span (an instant) intersects any span that
// contains that instant.
func (t TimeSpan) Intersect(o TimeSpan) (TimeSpan, bool) {
	begin := rational.Max(t.Begin, o.Begin)
	end := rational.Min(t.End, o.End)
	if begin.Greater(end) {
		return TimeSpan{}, false
	}
	if begin.Equal(end) {
		// Zero-width result is only valid if it sits on the boundary of a
		// genuinely overlapping pair, not an out-of-range touch.
		if !t.Overlaps(o) && !(t.Begin.Equal(t.End) || o.Begin.Equal(o.End)) {
			return TimeSpan{}, false
		}
	}
	return TimeSpan{Begin: begin, End: end}, true
}

// Contains reports whether o is a subset of t ("part ⊆ whole").
func (t TimeSpan) Contains(o TimeSpan) bool {
	return !o.Begin.Less(t.Begin) && !o.End.Greater(t.End)
}

func (t TimeSpan) Shift(delta rational.Rational) TimeSpan {
	return TimeSpan{Begin: t.Begin.Add(delta), End: t.End.Add(delta)}
}

// Scale multiplies both endpoints by k (used by Slow/Fast around the
// origin; callers shift first if scaling about a non-zero pivot).
func (t TimeSpan) Scale(k rational.Rational) TimeSpan {
	return TimeSpan{Begin: t.Begin.Mul(k), End: t.End.Mul(k)}
}

// CycleSplit yields (cycleIndex, subSpan) for every integer cycle boundary
// t crosses, so that combinators can recurse per-cycle. A zero-width span
// yields exactly one sub-span at its own cycle.
func (t TimeSpan) CycleSplit() []CyclePart {
	if t.Begin.Equal(t.End) {
		return []CyclePart{{Cycle: t.Begin.Floor().FloorInt(), Span: t}}
	}
	var out []CyclePart
	cur := t.Begin
	for cur.Less(t.End) {
		cycle := cur.Floor().FloorInt()
		nextBoundary := rational.FromInt(cycle + 1)
		end := rational.Min(nextBoundary, t.End)
		out = append(out, CyclePart{Cycle: cycle, Span: TimeSpan{Begin: cur, End: end}})
		cur = end
	}
	return out
}

// CyclePart pairs an integer cycle index with the portion of a query span
// that falls inside that cycle.
type CyclePart struct {
	Cycle int64
	Span  TimeSpan
}

// WithCycle applies f to the fractional-within-cycle coordinates of both
// endpoints, preserving each endpoint's own cycle index. Used by Zoom/Bite
// style remaps that only touch the phase, not which cycle an event lands
// in.
func (t TimeSpan) WithCycle(f func(rational.Rational) rational.Rational) TimeSpan {
	return TimeSpan{Begin: remapCyclePhase(t.Begin, f), End: remapCyclePhase(t.End, f)}
}

func remapCyclePhase(r rational.Rational, f func(rational.Rational) rational.Rational) rational.Rational {
	cycle := r.Floor()
	phase := r.Sub(cycle)
	return cycle.Add(f(phase))
}

// Equal reports exact structural equality.
func (t TimeSpan) Equal(o TimeSpan) bool {
	return t.Begin.Equal(o.Begin) && t.End.Equal(o.End)
}
