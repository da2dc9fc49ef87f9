package pattern

import (
	"strconv"

	"github.com/cbegin/tidalcore-go/internal/minotation"
	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/tspan"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// AtomFactory builds a leaf Pattern from one mini-notation atom token.
// It is the interpretation side of the external mini-notation contract:
// Parse only builds a syntax tree, a factory decides what a bare token
// means for the caller's domain (a sound name, a note, a control value).
type AtomFactory func(token string, soundIndex *int, loc *SourceLoc) Pattern

// DefaultAtomFactory treats a token parseable as a number as a Note, and
// any other token as a Sound name, carrying the ":n" suffix (if any) as
// SoundIndex. This is the factory Parse uses; ParseMininotation has no
// default and takes its factory from the caller, and ToPattern's string
// coercion builds atoms through its modifier instead.
func DefaultAtomFactory(token string, soundIndex *int, loc *SourceLoc) Pattern {
	if token == "" {
		return Silence
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return Atomic(voice.Data{Note: &f, Value: voice.NumValue(f)})
	}
	t := token
	d := voice.Data{Sound: &t, Value: voice.StrValue(t)}
	if soundIndex != nil {
		si := float64(*soundIndex)
		d.SoundIndex = &si
	}
	return Atomic(d)
}

// ParseMininotation parses input as TidalCycles-style mini-notation and
// interprets the resulting syntax tree into a Pattern via factory. A
// parse failure is a coercion failure: log once with loc and return
// Silence rather than propagating the error, matching "fail quiet, fail
// local".
func ParseMininotation(input string, loc *SourceLoc, factory AtomFactory) Pattern {
	node, err := minotation.Parse(input)
	if err != nil {
		Diagnostics.Printf("mini-notation parse error in %q: %v", input, err)
		return Silence
	}
	return interpretNode(node, factory, loc)
}

// Parse is the default-factory convenience entry point most DSL coercion
// goes through.
func Parse(input string, loc *SourceLoc) Pattern {
	return ParseMininotation(input, loc, DefaultAtomFactory)
}

func interpretNode(n minotation.Node, factory AtomFactory, loc *SourceLoc) Pattern {
	switch v := n.(type) {
	case minotation.Rest:
		return Silence
	case minotation.Atom:
		return factory(v.Token, v.SoundIndex, loc)
	case minotation.Seq:
		if len(v.Items) == 0 {
			return Silence
		}
		children := make([]Pattern, len(v.Items))
		for i, it := range v.Items {
			children[i] = weightedPattern{Pattern: interpretNode(it.Node, factory, loc), w: it.Weight}
		}
		return Seq(children...)
	case minotation.Alt:
		if len(v.Items) == 0 {
			return Silence
		}
		options := make([]Pattern, len(v.Items))
		for i, it := range v.Items {
			options[i] = interpretNode(it, factory, loc)
		}
		return altPattern{options: options}
	case minotation.EuclidSuffix:
		inner := interpretNode(v.Node, factory, loc)
		if v.Rot != 0 {
			return EuclidRot(inner, int64(v.Pulses), int64(v.Steps), int64(v.Rot))
		}
		return Euclid(inner, int64(v.Pulses), int64(v.Steps))
	case minotation.FastSuffix:
		inner := interpretNode(v.Node, factory, loc)
		return Fast(rational.FromFloat64(v.Factor))(inner)
	case minotation.SlowSuffix:
		inner := interpretNode(v.Node, factory, loc)
		return Slow(rational.FromFloat64(v.Factor))(inner)
	case minotation.ReplicateSuffix:
		inner := interpretNode(v.Node, factory, loc)
		if v.Count <= 0 {
			return Silence
		}
		children := make([]Pattern, v.Count)
		for i := range children {
			children[i] = inner
		}
		return Seq(children...)
	default:
		Diagnostics.Printf("mini-notation: unhandled node type %T", n)
		return Silence
	}
}

// altPattern implements "<a b c>": one alternative per absolute cycle,
// queried at that cycle's own absolute coordinates rather than a
// per-pattern reset cycle. This is the documented slowcat/slowcatPrime
// deviation (see DESIGN.md): the source already behaves this way and the
// port preserves it rather than reintroducing classical TidalCycles
// per-pattern cycle reset.
type altPattern struct {
	base
	options []Pattern
}

func (a altPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	n := int64(len(a.options))
	if n == 0 {
		return nil
	}
	span := tspan.New(from, to)
	var out []Event
	for _, cp := range span.CycleSplit() {
		idx := cp.Cycle % n
		if idx < 0 {
			idx += n
		}
		out = append(out, a.options[idx].Query(cp.Span.Begin, cp.Span.End, ctx)...)
	}
	return sortEvents(out)
}
