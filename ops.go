package pattern

import (
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/tspan"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// revPattern mirrors each cycle of its source: an event at phase t plays
// at phase 1-t, durations preserved.
type revPattern struct {
	base
	source Pattern
}

// Rev reverses the order of events within every cycle.
func Rev(source Pattern) Pattern { return revPattern{source: source} }

func (r revPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	span := tspan.New(from, to)
	var out []Event
	for _, cp := range span.CycleSplit() {
		if ctx.Cancelled() {
			break
		}
		// the mirror t -> 2c+1-t maps [c, c+1) onto itself reversed.
		pivot := rational.FromInt(2*cp.Cycle + 1)
		for _, ev := range r.source.Query(pivot.Sub(cp.Span.End), pivot.Sub(cp.Span.Begin), ctx) {
			part := mirrorSpan(ev.Part, pivot)
			var whole *tspan.TimeSpan
			if ev.Whole != nil {
				w := mirrorSpan(*ev.Whole, pivot)
				whole = &w
			}
			out = append(out, Event{Whole: whole, Part: part, Data: ev.Data})
		}
	}
	return sortEvents(out)
}

func mirrorSpan(s tspan.TimeSpan, pivot rational.Rational) tspan.TimeSpan {
	return tspan.New(pivot.Sub(s.End), pivot.Sub(s.Begin))
}

func (r revPattern) NumSteps() (rational.Rational, bool)      { return r.source.NumSteps() }
func (r revPattern) Weight() float64                          { return r.source.Weight() }
func (r revPattern) EstimateCycleDuration() rational.Rational { return r.source.EstimateCycleDuration() }

// iterPattern shifts its source earlier by i/n on the i-th cycle of an
// n-cycle rotation, so each of the source's n steps takes a turn as the
// cycle's first step. back reverses the direction of travel.
type iterPattern struct {
	base
	source Pattern
	n      int64
	back   bool
}

// Iter rotates source by one step per cycle over an n-cycle period.
func Iter(n int64, source Pattern) Pattern {
	if n <= 1 {
		return source
	}
	return iterPattern{source: source, n: n}
}

// IterBack is Iter rotating in the opposite direction.
func IterBack(n int64, source Pattern) Pattern {
	if n <= 1 {
		return source
	}
	return iterPattern{source: source, n: n, back: true}
}

func (it iterPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	span := tspan.New(from, to)
	var out []Event
	for _, cp := range span.CycleSplit() {
		if ctx.Cancelled() {
			break
		}
		i := ((cp.Cycle % it.n) + it.n) % it.n
		shift := rational.New(i, it.n)
		if it.back {
			shift = shift.Neg()
		}
		out = append(out, Early(shift)(it.source).Query(cp.Span.Begin, cp.Span.End, ctx)...)
	}
	return sortEvents(out)
}

func (it iterPattern) NumSteps() (rational.Rational, bool) { return it.source.NumSteps() }

// whenPattern applies transform on cycles where test's first event in
// that cycle is truthy, and passes source through unchanged elsewhere.
type whenPattern struct {
	base
	source    Pattern
	test      Pattern
	transform func(Pattern) Pattern
}

// When gates transform by a boolean pattern, cycle by cycle.
func When(test Pattern, transform func(Pattern) Pattern, source Pattern) Pattern {
	return whenPattern{source: source, test: test, transform: transform}
}

func (w whenPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	span := tspan.New(from, to)
	var transformed Pattern
	var out []Event
	for _, cp := range span.CycleSplit() {
		if ctx.Cancelled() {
			break
		}
		chosen := w.source
		if w.testTruthyAt(cp.Cycle, ctx) {
			if transformed == nil {
				ok := recoverCallback("when", func() { transformed = w.transform(w.source) })
				if !ok || transformed == nil {
					transformed = w.source
				}
			}
			chosen = transformed
		}
		out = append(out, chosen.Query(cp.Span.Begin, cp.Span.End, ctx)...)
	}
	return sortEvents(out)
}

func (w whenPattern) testTruthyAt(cycle int64, ctx QueryContext) bool {
	evs := w.test.Query(rational.FromInt(cycle), rational.FromInt(cycle+1), ctx)
	if len(evs) == 0 {
		return false
	}
	return evs[0].Data.Value.Truthy()
}

func (w whenPattern) NumSteps() (rational.Rational, bool) { return w.source.NumSteps() }

// Invert flips the boolean reading of every event's value; inverting
// twice restores the original on boolean-valued atoms.
func Invert(source Pattern) Pattern {
	return MapData(func(d voice.Data) voice.Data {
		d.Value = d.Value.Invert()
		return d
	})(source)
}

// Off superimposes a transformed copy of the pattern shifted later by
// delta; the transform runs inside query and a panicking transform
// drops only its own layer.
func Off(delta rational.Rational, f func(Pattern) Pattern) func(Pattern) Pattern {
	return func(p Pattern) Pattern {
		return Superimpose(func(q Pattern) Pattern { return f(Late(delta)(q)) })(p)
	}
}

// juxPattern plays the source panned hard left against a transformed
// copy panned hard right.
type juxPattern struct {
	base
	source Pattern
	f      func(Pattern) Pattern
}

// Jux stacks source panned left with f(source) panned right.
func Jux(f func(Pattern) Pattern) func(Pattern) Pattern {
	return func(p Pattern) Pattern { return juxPattern{source: p, f: f} }
}

func (j juxPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	out := MapData(withPan(0))(j.source).Query(from, to, ctx)
	var layer Pattern
	ok := recoverCallback("jux", func() { layer = j.f(j.source) })
	if ok && layer != nil {
		out = append(out, MapData(withPan(1))(layer).Query(from, to, ctx)...)
	}
	return sortEvents(out)
}

func (j juxPattern) NumSteps() (rational.Rational, bool) { return j.source.NumSteps() }

func withPan(v float64) func(voice.Data) voice.Data {
	return func(d voice.Data) voice.Data {
		p := v
		d.Pan = &p
		return d
	}
}

// layerPattern stacks one transformed copy of the source per supplied
// function; a panicking function contributes nothing.
type layerPattern struct {
	base
	source Pattern
	fs     []func(Pattern) Pattern
}

// Layer stacks f(source) for every f given, in order.
func Layer(fs ...func(Pattern) Pattern) func(Pattern) Pattern {
	return func(p Pattern) Pattern { return layerPattern{source: p, fs: fs} }
}

func (l layerPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var out []Event
	for _, f := range l.fs {
		if ctx.Cancelled() {
			break
		}
		var layer Pattern
		ok := recoverCallback("layer", func() { layer = f(l.source) })
		if !ok || layer == nil {
			continue
		}
		out = append(out, layer.Query(from, to, ctx)...)
	}
	return sortEvents(out)
}

func (l layerPattern) NumSteps() (rational.Rational, bool) { return l.source.NumSteps() }

// Take keeps the first n logical steps of each source cycle, one step
// per slot of the result; the slots are re-queried through StepJoin so
// the result reports n steps of its own.
func Take(source Pattern, n int64) Pattern {
	total := stepCount(source)
	if n <= 0 || total <= 0 {
		return Silence
	}
	if n > total {
		n = total
	}
	tot := rational.FromInt(total)
	return StepJoin(n, func(step int64) Pattern {
		return Zoom(source, rational.FromInt(step).Div(tot), rational.FromInt(step+1).Div(tot))
	})
}

// Drop removes the first n logical steps of each source cycle, playing
// the remainder across the full cycle.
func Drop(source Pattern, n int64) Pattern {
	total := stepCount(source)
	if total <= 0 || n >= total {
		return Silence
	}
	if n < 0 {
		n = 0
	}
	tot := rational.FromInt(total)
	return StepJoin(total-n, func(step int64) Pattern {
		i := step + n
		return Zoom(source, rational.FromInt(i).Div(tot), rational.FromInt(i+1).Div(tot))
	})
}

func stepCount(p Pattern) int64 {
	n, ok := p.NumSteps()
	if !ok {
		return 1
	}
	f := n.Floor()
	if !f.Equal(n) || f.Sign() <= 0 {
		return 1
	}
	return f.FloorInt()
}

// Replicate plays n back-to-back copies of p within one cycle.
func Replicate(n int64, p Pattern) Pattern {
	if n <= 0 {
		return Silence
	}
	children := make([]Pattern, n)
	for i := range children {
		children[i] = p
	}
	return Seq(children...)
}

// SlowCat plays one child per cycle, indexed by absolute cycle number:
// the child is queried at the outer cycle's own coordinates rather than
// rebased to its cycle zero. This preserves the engine's current
// slowcat behavior (historically slowcatPrime) instead of the classical
// per-pattern cycle reset; see DESIGN.md.
func SlowCat(children ...Pattern) Pattern {
	if len(children) == 0 {
		return Silence
	}
	return altPattern{options: children}
}
