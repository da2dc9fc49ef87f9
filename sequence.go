package pattern

import (
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/tspan"
)

// Sequence plays its children one after another within every cycle,
// each occupying a share of the cycle proportional to its Weight.
type Sequence struct {
	base
	Children []Pattern
}

// Seq builds a Sequence from the given children in order.
func Seq(children ...Pattern) Pattern {
	if len(children) == 0 {
		return Silence
	}
	return Sequence{Children: children}
}

func totalWeight(children []Pattern) float64 {
	var w float64
	for _, c := range children {
		w += c.Weight()
	}
	return w
}

func (s Sequence) Query(from, to rational.Rational, ctx QueryContext) []Event {
	W := totalWeight(s.Children)
	if W <= 0 {
		return nil
	}
	Wrat := rational.FromFloat64(W)
	span := tspan.New(from, to)
	var out []Event
	for _, cp := range span.CycleSplit() {
		if ctx.Cancelled() {
			return sortEvents(out)
		}
		cycleBase := rational.FromInt(cp.Cycle)
		cum := rational.Zero()
		for _, child := range s.Children {
			wi := rational.FromFloat64(child.Weight())
			childStart := cycleBase.Add(cum.Div(Wrat))
			cum = cum.Add(wi)
			childEnd := cycleBase.Add(cum.Div(Wrat))
			si := tspan.New(childStart, childEnd)
			overlap, ok := si.Intersect(cp.Span)
			if !ok {
				continue
			}
			dur := childEnd.Sub(childStart)
			if dur.IsZero() {
				continue
			}
			localFrom := overlap.Begin.Sub(childStart).Div(dur)
			localTo := overlap.End.Sub(childStart).Div(dur)
			for _, ev := range child.Query(localFrom, localTo, ctx) {
				mappedPart := mapLocalToGlobal(ev.Part, childStart, dur)
				var mappedWhole *tspan.TimeSpan
				if ev.Whole != nil {
					w := mapLocalToGlobal(*ev.Whole, childStart, dur)
					mappedWhole = &w
				}
				out = append(out, Event{Whole: mappedWhole, Part: mappedPart, Data: ev.Data})
			}
		}
	}
	return sortEvents(out)
}

func mapLocalToGlobal(span tspan.TimeSpan, childStart, dur rational.Rational) tspan.TimeSpan {
	begin := childStart.Add(span.Begin.Mul(dur))
	end := childStart.Add(span.End.Mul(dur))
	return tspan.New(begin, end)
}

func (s Sequence) NumSteps() (rational.Rational, bool) {
	total := rational.Zero()
	for _, c := range s.Children {
		n, ok := c.NumSteps()
		if !ok {
			return rational.FromInt(int64(len(s.Children))), true
		}
		total = total.Add(n)
	}
	return total, true
}

// Stack plays every child simultaneously over the same query window,
// concatenating their events in child order; events may overlap.
type Stack struct {
	base
	Children []Pattern
}

// StackPatterns builds a Stack from the given children.
func StackPatterns(children ...Pattern) Pattern {
	if len(children) == 0 {
		return Silence
	}
	return Stack{Children: children}
}

func (s Stack) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var out []Event
	for _, child := range s.Children {
		if ctx.Cancelled() {
			break
		}
		out = append(out, child.Query(from, to, ctx)...)
	}
	return sortEvents(out)
}

func (s Stack) Weight() float64 {
	m := 0.0
	for _, c := range s.Children {
		if w := c.Weight(); w > m {
			m = w
		}
	}
	if m == 0 {
		return 1.0
	}
	return m
}

func (s Stack) NumSteps() (rational.Rational, bool) {
	var result int64 = 1
	any := false
	for _, c := range s.Children {
		n, ok := c.NumSteps()
		if !ok {
			return rational.Rational{}, false
		}
		if !n.Equal(n.Floor()) {
			return rational.Rational{}, false
		}
		result = rational.LCM(result, n.FloorInt())
		any = true
	}
	if !any {
		return rational.Rational{}, false
	}
	return rational.FromInt(result), true
}

// ArrangeSegment is one (duration, pattern) entry of an Arrangement.
type ArrangeSegment struct {
	Duration float64
	Pattern  Pattern
}

// arrangementPattern plays each segment at its natural speed for its
// duration, in cycles, then loops with the total period. Built as a
// Sequence of child.Fast(d).withWeight(d), slowed by the total T so that
// each segment's internal cycles are preserved across the loop boundary.
type arrangementPattern struct {
	base
	inner Pattern
	total float64
}

// Arrange builds an Arrangement from the given segments. Entries with
// non-positive duration are silently dropped (preserved deliberate
// deviation: the original drops both zero and negative durations).
func Arrange(segments ...ArrangeSegment) Pattern {
	var kept []ArrangeSegment
	for _, s := range segments {
		if s.Duration > 0 {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return Silence
	}
	var total float64
	children := make([]Pattern, 0, len(kept))
	for _, s := range kept {
		total += s.Duration
		d := rational.FromFloat64(s.Duration)
		fast := Fast(d)(s.Pattern)
		children = append(children, weightedPattern{Pattern: fast, w: s.Duration})
	}
	seq := Sequence{Children: children}
	return arrangementPattern{inner: Slow(rational.FromFloat64(total))(seq), total: total}
}

func (a arrangementPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	return a.inner.Query(from, to, ctx)
}

func (a arrangementPattern) EstimateCycleDuration() rational.Rational {
	return rational.FromFloat64(a.total)
}

// weightedPattern overrides the Weight reported to an enclosing Sequence
// without altering Query behavior.
type weightedPattern struct {
	Pattern
	w float64
}

func (w weightedPattern) Weight() float64 { return w.w }
