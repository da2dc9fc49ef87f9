package pattern

import (
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// slowPattern queries its child at 1/k speed: the window is divided by k
// before querying, and the returned spans are scaled by k to compensate.
type slowPattern struct {
	base
	inner Pattern
	k     rational.Rational
}

// Slow returns a transform that stretches a pattern's cycle by k (k > 1
// slows it down). Fast is Slow(1/k).
func Slow(k rational.Rational) func(Pattern) Pattern {
	return func(p Pattern) Pattern { return slowPattern{inner: p, k: k} }
}

// Fast returns a transform that speeds a pattern's cycle up by k.
func Fast(k rational.Rational) func(Pattern) Pattern {
	if k.IsZero() {
		return func(Pattern) Pattern { return Silence }
	}
	return Slow(rational.One().Div(k))
}

func (s slowPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	if s.k.IsZero() {
		return nil
	}
	childFrom := from.Div(s.k)
	childTo := to.Div(s.k)
	events := s.inner.Query(childFrom, childTo, ctx)
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, scaleEvent(ev, s.k))
	}
	return out
}

func scaleEvent(ev Event, k rational.Rational) Event {
	out := ev
	out.Part = ev.Part.Scale(k)
	if ev.Whole != nil {
		w := ev.Whole.Scale(k)
		out.Whole = &w
	}
	return out
}

func (s slowPattern) NumSteps() (rational.Rational, bool) {
	n, ok := s.inner.NumSteps()
	if !ok || s.k.IsZero() {
		return rational.Rational{}, false
	}
	return n.Div(s.k), true
}

func (s slowPattern) EstimateCycleDuration() rational.Rational {
	return s.inner.EstimateCycleDuration().Mul(s.k)
}

// earlyPattern shifts a pattern backward in time by delta: events that
// would have occurred at t now occur at t-delta.
type earlyPattern struct {
	base
	inner Pattern
	delta rational.Rational
}

// Early returns a transform shifting a pattern delta cycles earlier.
func Early(delta rational.Rational) func(Pattern) Pattern {
	return func(p Pattern) Pattern { return earlyPattern{inner: p, delta: delta} }
}

// Late returns a transform shifting a pattern delta cycles later.
func Late(delta rational.Rational) func(Pattern) Pattern {
	return Early(delta.Neg())
}

func (e earlyPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	events := e.inner.Query(from.Add(e.delta), to.Add(e.delta), ctx)
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Shift(e.delta.Neg()))
	}
	return out
}

func (e earlyPattern) NumSteps() (rational.Rational, bool)        { return e.inner.NumSteps() }
func (e earlyPattern) EstimateCycleDuration() rational.Rational   { return e.inner.EstimateCycleDuration() }
func (e earlyPattern) Weight() float64                            { return e.inner.Weight() }

// mapPattern applies f to every event's voice data.
type mapPattern struct {
	base
	inner Pattern
	f     func(voice.Data) voice.Data
}

// MapData returns a transform applying f to every event's voice data.
func MapData(f func(voice.Data) voice.Data) func(Pattern) Pattern {
	return func(p Pattern) Pattern { return mapPattern{inner: p, f: f} }
}

func (m mapPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	events := m.inner.Query(from, to, ctx)
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.MapData(m.f))
	}
	return out
}

func (m mapPattern) NumSteps() (rational.Rational, bool)      { return m.inner.NumSteps() }
func (m mapPattern) EstimateCycleDuration() rational.Rational { return m.inner.EstimateCycleDuration() }
func (m mapPattern) Weight() float64                          { return m.inner.Weight() }

// filterPattern keeps only events for which pred returns true.
type filterPattern struct {
	base
	inner Pattern
	pred  func(Event) bool
}

// FilterEvents returns a transform dropping events pred rejects.
func FilterEvents(pred func(Event) bool) func(Pattern) Pattern {
	return func(p Pattern) Pattern { return filterPattern{inner: p, pred: pred} }
}

func (f filterPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	events := f.inner.Query(from, to, ctx)
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		if f.pred(ev) {
			out = append(out, ev)
		}
	}
	return out
}

func (f filterPattern) NumSteps() (rational.Rational, bool)      { return f.inner.NumSteps() }
func (f filterPattern) EstimateCycleDuration() rational.Rational { return f.inner.EstimateCycleDuration() }
func (f filterPattern) Weight() float64                          { return f.inner.Weight() }

// FilterOnsets keeps only onset events (part.begin == whole.begin).
func FilterOnsets() func(Pattern) Pattern {
	return FilterEvents(func(e Event) bool { return e.IsOnset() })
}

// Superimpose stacks a pattern with a transformed copy of itself,
// catching any panic inside f so a faulty layer is dropped rather than
// aborting the whole query.
func Superimpose(f func(Pattern) Pattern) func(Pattern) Pattern {
	return func(p Pattern) Pattern {
		return superimposePattern{base: base{}, source: p, f: f}
	}
}

type superimposePattern struct {
	base
	source Pattern
	f      func(Pattern) Pattern
}

func (s superimposePattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	out := s.source.Query(from, to, ctx)
	var layer Pattern
	ok := recoverCallback("superimpose", func() { layer = s.f(s.source) })
	if !ok || layer == nil {
		return sortEvents(out)
	}
	out = append(out, layer.Query(from, to, ctx)...)
	return sortEvents(out)
}

func (s superimposePattern) NumSteps() (rational.Rational, bool) { return s.source.NumSteps() }
func (s superimposePattern) Weight() float64                     { return s.source.Weight() }
