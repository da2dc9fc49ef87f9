package pattern

import (
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// P wraps a Pattern to provide the pattern-method style of the facade
// (design note §9: "String.op(args) is sugar for parse(s).op(args);
// op(args) is sugar for args.to_pattern().op(args.rest)"). Fast, Slow,
// Early and Late call the delegate registered under their name in the
// symbol registry (through Invoke); the other methods call the matching
// combinator function directly and do not go through the registry.
type P struct{ Pattern }

// Of wraps an existing Pattern for method-chaining.
func Of(p Pattern) P { return P{Pattern: p} }

func (p P) Fast(k float64) P  { return Of(Invoke("fast", []DslArg{PatternArg(p.Pattern), NumberArg(k)})) }
func (p P) Slow(k float64) P  { return Of(Invoke("slow", []DslArg{PatternArg(p.Pattern), NumberArg(k)})) }
func (p P) Early(d float64) P { return Of(Invoke("early", []DslArg{PatternArg(p.Pattern), NumberArg(d)})) }
func (p P) Late(d float64) P  { return Of(Invoke("late", []DslArg{PatternArg(p.Pattern), NumberArg(d)})) }

func (p P) Struct(other P) P    { return Of(StructPat(p.Pattern, other.Pattern)) }
func (p P) StructAll(other P) P { return Of(StructAll(p.Pattern, other.Pattern)) }
func (p P) Mask(other P) P      { return Of(Mask(p.Pattern, other.Pattern)) }
func (p P) MaskAll(other P) P   { return Of(MaskAll(p.Pattern, other.Pattern)) }

func (p P) Euclid(pulses, steps int64) P { return Of(Euclid(p.Pattern, pulses, steps)) }
func (p P) EuclidRot(pulses, steps, rotation int64) P {
	return Of(EuclidRot(p.Pattern, pulses, steps, rotation))
}
func (p P) EuclidLegato(pulses, steps, rotation int64) P {
	return Of(EuclidLegato(p.Pattern, pulses, steps, rotation))
}
func (p P) Euclidish(pulses, steps int64, groove float64) P {
	return Of(Euclidish(p.Pattern, pulses, steps, groove))
}

func (p P) Zoom(start, end float64) P {
	return Of(Zoom(p.Pattern, rational.FromFloat64(start), rational.FromFloat64(end)))
}
func (p P) Bite(n int64, indices P) P { return Of(Bite(p.Pattern, n, indices.Pattern)) }
func (p P) Segment(n int64) P         { return Of(Segment(p.Pattern, n)) }
func (p P) Linger(t float64) P        { return Of(Linger(p.Pattern, rational.FromFloat64(t))) }
func (p P) Within(a, b float64, f func(Pattern) Pattern) P {
	return Of(Within(p.Pattern, rational.FromFloat64(a), rational.FromFloat64(b), f))
}
func (p P) Chunk(n int64, f func(Pattern) Pattern, back, fast bool, earlyOffset float64) P {
	return Of(Chunk(p.Pattern, n, f, back, fast, rational.FromFloat64(earlyOffset)))
}
func (p P) Ribbon(offset, cycles float64) P {
	return Of(Ribbon(p.Pattern, rational.FromFloat64(offset), rational.FromFloat64(cycles)))
}

func (p P) Superimpose(f func(Pattern) Pattern) P { return Of(Superimpose(f)(p.Pattern)) }

func (p P) Rev() P               { return Of(Rev(p.Pattern)) }
func (p P) Invert() P            { return Of(Invert(p.Pattern)) }
func (p P) Iter(n int64) P       { return Of(Iter(n, p.Pattern)) }
func (p P) IterBack(n int64) P   { return Of(IterBack(n, p.Pattern)) }
func (p P) Take(n int64) P       { return Of(Take(p.Pattern, n)) }
func (p P) Drop(n int64) P       { return Of(Drop(p.Pattern, n)) }
func (p P) RepeatCycles(n int64) P { return Of(RepeatCycles(n, p.Pattern)) }

func (p P) When(test P, f func(Pattern) Pattern) P {
	return Of(When(test.Pattern, f, p.Pattern))
}
func (p P) Off(delta float64, f func(Pattern) Pattern) P {
	return Of(Off(rational.FromFloat64(delta), f)(p.Pattern))
}
func (p P) Jux(f func(Pattern) Pattern) P { return Of(Jux(f)(p.Pattern)) }
func (p P) Layer(fs ...func(Pattern) Pattern) P {
	return Of(Layer(fs...)(p.Pattern))
}

// MapData applies f to every event's voice data.
func (p P) MapData(f func(voice.Data) voice.Data) P { return Of(MapData(f)(p.Pattern)) }

func (p P) Pick(lookup Lookup) func(selector P) P {
	return func(selector P) P { return Of(Pick(lookup, selector.Pattern)) }
}
func (p P) PickMod(lookup Lookup) func(selector P) P {
	return func(selector P) P { return Of(PickMod(lookup, selector.Pattern)) }
}
func (p P) PickSqueeze(lookup Lookup) func(selector P) P {
	return func(selector P) P { return Of(PickSqueeze(lookup, selector.Pattern)) }
}
func (p P) PickRestart(lookup Lookup) func(selector P) P {
	return func(selector P) P { return Of(PickRestart(lookup, selector.Pattern)) }
}
func (p P) PickReset(lookup Lookup) func(selector P) P {
	return func(selector P) P { return Of(PickReset(lookup, selector.Pattern)) }
}

// Query is sugar over the embedded Pattern.Query using the default
// top-level query context.
func (p P) Query(from, to rational.Rational) []Event {
	return p.Pattern.Query(from, to, DefaultQueryContext())
}

// Mini is the string-method sugar: "x.Op(...)" on a mini-notation
// string means "Parse(x, nil).Op(...)" (design note §9). Kept as a
// distinct named type, not a bare string, so that attaching these
// methods cannot collide with an ordinary string's own methods.
type Mini string

func (m Mini) Pattern() Pattern { return Parse(string(m), nil) }
func (m Mini) P() P             { return Of(m.Pattern()) }

func (m Mini) Fast(k float64) P  { return m.P().Fast(k) }
func (m Mini) Slow(k float64) P  { return m.P().Slow(k) }
func (m Mini) Early(d float64) P { return m.P().Early(d) }
func (m Mini) Late(d float64) P  { return m.P().Late(d) }
func (m Mini) Euclid(pulses, steps int64) P {
	return m.P().Euclid(pulses, steps)
}
func (m Mini) Zoom(start, end float64) P { return m.P().Zoom(start, end) }
func (m Mini) Segment(n int64) P         { return m.P().Segment(n) }
func (m Mini) Rev() P                    { return m.P().Rev() }
func (m Mini) Iter(n int64) P            { return m.P().Iter(n) }
func (m Mini) Jux(f func(Pattern) Pattern) P { return m.P().Jux(f) }
