package pattern

import (
	"math"
	"strconv"

	"github.com/cbegin/tidalcore-go/internal/voice"
)

// Lookup is a reified pick-family argument: either an ordered list or a
// key→pattern mapping, never both. Building one is facade.go's job
// (CoerceLookup coerces raw DslArgs — patterns, strings, scalars — into the Pattern
// values held here); pick.go only consumes already-reified lookups.
type Lookup struct {
	List []Pattern
	Map  map[string]Pattern
}

// JoinKind selects which of the five join primitives a pick variant
// uses to combine the selector's timing with the chosen pattern's.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinOuter
	JoinSqueeze
	JoinBindRestart
	JoinBindReset
)

func extractIndex(d voice.Data) (float64, bool) {
	if d.Value.Kind != voice.KindNone {
		if f, ok := d.Value.AsFloat64(); ok {
			return f, true
		}
	}
	if d.Note != nil {
		return *d.Note, true
	}
	if d.SoundIndex != nil {
		return *d.SoundIndex, true
	}
	return 0, false
}

func extractKey(d voice.Data) string {
	if d.Value.Kind != voice.KindNone {
		return d.Value.AsString()
	}
	if d.Note != nil {
		return strconv.FormatFloat(*d.Note, 'g', -1, 64)
	}
	if d.SoundIndex != nil {
		return strconv.FormatFloat(*d.SoundIndex, 'g', -1, 64)
	}
	return ""
}

func clampIndex(i, n int64) int64 {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func wrapIndex(i, n int64) int64 {
	return ((i % n) + n) % n
}

func joinWith(kind JoinKind, selector Pattern, sel Selector) Pattern {
	switch kind {
	case JoinOuter:
		return OuterJoin(selector, sel)
	case JoinSqueeze:
		return SqueezeJoin(selector, sel)
	case JoinBindRestart:
		return BindRestart(selector, sel)
	case JoinBindReset:
		return BindReset(selector, sel)
	default:
		return InnerJoin(selector, sel)
	}
}

// pickFrom implements every list/map × join × modulo combination the
// pick family names; the public Pick*/PickMod*/... functions below are
// thin, named instantiations of it.
func pickFrom(lookup Lookup, selector Pattern, kind JoinKind, modulo bool) Pattern {
	sel := func(oe Event) Pattern {
		if lookup.Map != nil {
			key := extractKey(oe.Data)
			p, ok := lookup.Map[key]
			if !ok {
				return Silence
			}
			return p
		}
		n := int64(len(lookup.List))
		if n == 0 {
			return Silence
		}
		f, ok := extractIndex(oe.Data)
		if !ok {
			return Silence
		}
		idx := int64(math.Floor(f))
		if modulo {
			idx = wrapIndex(idx, n)
		} else {
			idx = clampIndex(idx, n)
		}
		return lookup.List[idx]
	}
	return joinWith(kind, selector, sel)
}

// Pick selects by clamped numeric index, taking structure from the
// selected (inner) pattern.
func Pick(lookup Lookup, selector Pattern) Pattern { return pickFrom(lookup, selector, JoinInner, false) }

// PickMod is Pick with wrap-around indexing instead of clamping.
func PickMod(lookup Lookup, selector Pattern) Pattern { return pickFrom(lookup, selector, JoinInner, true) }

// PickOut is Pick but takes structure from the selector.
func PickOut(lookup Lookup, selector Pattern) Pattern { return pickFrom(lookup, selector, JoinOuter, false) }

// PickModOut combines PickOut's outer structure with wrap indexing.
func PickModOut(lookup Lookup, selector Pattern) Pattern { return pickFrom(lookup, selector, JoinOuter, true) }

// PickSqueeze (aka Inhabit/Squeeze) compresses the selected pattern's
// full cycle into the selector event's duration.
func PickSqueeze(lookup Lookup, selector Pattern) Pattern {
	return pickFrom(lookup, selector, JoinSqueeze, false)
}

// PickModSqueeze (aka InhabitMod) combines squeeze with wrap indexing.
func PickModSqueeze(lookup Lookup, selector Pattern) Pattern {
	return pickFrom(lookup, selector, JoinSqueeze, true)
}

// PickRestart restarts the selected pattern from cycle zero on every
// selector onset, with clamped indexing.
func PickRestart(lookup Lookup, selector Pattern) Pattern {
	return pickFrom(lookup, selector, JoinBindRestart, false)
}

// PickModRestart combines PickRestart with wrap indexing.
func PickModRestart(lookup Lookup, selector Pattern) Pattern {
	return pickFrom(lookup, selector, JoinBindRestart, true)
}

// PickReset resets the selected pattern's phase to the start of the
// trigger's own cycle (rather than rewinding to absolute cycle zero the
// way PickRestart does), with clamped indexing.
func PickReset(lookup Lookup, selector Pattern) Pattern {
	return pickFrom(lookup, selector, JoinBindReset, false)
}

// PickModReset is PickReset with wrap indexing.
func PickModReset(lookup Lookup, selector Pattern) Pattern {
	return pickFrom(lookup, selector, JoinBindReset, true)
}

// PickF selects a pattern→pattern function by clamped index and applies
// it to basePat, taking structure from the inner (transformed) result.
func PickF(fns []func(Pattern) Pattern, basePat Pattern, selector Pattern) Pattern {
	return pickFFrom(fns, basePat, selector, false)
}

// PickModF is PickF with wrap indexing.
func PickModF(fns []func(Pattern) Pattern, basePat Pattern, selector Pattern) Pattern {
	return pickFFrom(fns, basePat, selector, true)
}

func pickFFrom(fns []func(Pattern) Pattern, basePat Pattern, selector Pattern, modulo bool) Pattern {
	n := int64(len(fns))
	if n == 0 {
		return Silence
	}
	sel := func(oe Event) Pattern {
		f, ok := extractIndex(oe.Data)
		if !ok {
			return Silence
		}
		idx := int64(math.Floor(f))
		if modulo {
			idx = wrapIndex(idx, n)
		} else {
			idx = clampIndex(idx, n)
		}
		fn := fns[idx]
		var out Pattern
		ok2 := recoverCallback("pickF", func() { out = fn(basePat) })
		if !ok2 || out == nil {
			return Silence
		}
		return out
	}
	return InnerJoin(selector, sel)
}
