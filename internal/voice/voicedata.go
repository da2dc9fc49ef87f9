// Package voice implements VoiceData: an immutable record of
// optional musical parameters carried on every Event, its right-biased
// lattice merge, and the VoiceData → audio-voice projection named as an
// external interface.
package voice

import "github.com/cbegin/tidalcore-go/internal/rational"

// ValueKind tags the variant held by a Value. Modeled as a concrete tagged
// struct rather than `any`/interface{} — every combinator that reads Value
// enumerates the shapes it accepts, so no runtime reflection
// is needed to discriminate it.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindNum
	KindStr
	KindBool
	KindSeq
	KindRational
)

// Value is the tagged VoiceValue variant:
// Num(f64) | Str(String) | Bool(bool) | Seq(Vec<VoiceValue>) | Rational(Rational).
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Bool bool
	Seq  []Value
	Rat  rational.Rational
}

func NumValue(f float64) Value           { return Value{Kind: KindNum, Num: f} }
func StrValue(s string) Value            { return Value{Kind: KindStr, Str: s} }
func BoolValue(b bool) Value             { return Value{Kind: KindBool, Bool: b} }
func SeqValue(v []Value) Value           { return Value{Kind: KindSeq, Seq: v} }
func RationalValue(r rational.Rational) Value { return Value{Kind: KindRational, Rat: r} }

// Truthy implements the "filter_by_truthiness" test used by mask/struct
// numbers are truthy when non-zero, strings when non-empty
// and not "0"/"f"/"false", bools as themselves, sequences when non-empty,
// the zero value (KindNone) is always falsy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNone:
		return false
	case KindNum:
		return v.Num != 0
	case KindStr:
		switch v.Str {
		case "", "0", "f", "false":
			return false
		}
		return true
	case KindBool:
		return v.Bool
	case KindSeq:
		return len(v.Seq) > 0
	case KindRational:
		return !v.Rat.IsZero()
	default:
		return false
	}
}

// AsFloat64 coerces v to a float64 for the pick-family key extractor
// ok is false when v has no numeric reading.
func (v Value) AsFloat64() (float64, bool) {
	switch v.Kind {
	case KindNum:
		return v.Num, true
	case KindRational:
		return v.Rat.Float64(), true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// AsString coerces v to a string for the pick-family map-lookup key
// extractor.
func (v Value) AsString() string {
	switch v.Kind {
	case KindStr:
		return v.Str
	case KindNum:
		return formatFloat(v.Num)
	case KindRational:
		return v.Rat.String()
	default:
		return ""
	}
}

// Invert returns the boolean negation of a truthy value, used by the
// `invert` combinator.
func (v Value) Invert() Value {
	return BoolValue(!v.Truthy())
}
