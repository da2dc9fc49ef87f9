// Package rational implements exact rational-number arithmetic over ℚ for
// the time domain of the pattern engine. All pattern query windows are
// expressed in Rational; f64 is used only at the audio-projection boundary
// and for combinator weights, never inside query recursion.
package rational

import (
	"math/big"
)

// Rational is an immutable exact ratio p/q, q > 0, always reduced.
type Rational struct {
	r *big.Rat
}

// Zero, One and Half are convenience constants built lazily to avoid a
// package-level mutable *big.Rat (big.Rat values are mutated in place by
// their own methods, so every Rational here defensively copies on both
// construction and read).
func Zero() Rational { return FromInt(0) }
func One() Rational  { return FromInt(1) }
func Half() Rational { return New(1, 2) }

// New builds a reduced Rational num/den. Panics if den == 0, matching the
// "invariant violation is a bug" rule — a zero denominator
// can never arise from valid pattern arithmetic.
func New(num, den int64) Rational {
	if den == 0 {
		panic("rational: zero denominator")
	}
	return Rational{r: new(big.Rat).SetFrac64(num, den)}
}

// FromInt builds the Rational n/1.
func FromInt(n int64) Rational {
	return Rational{r: new(big.Rat).SetInt64(n)}
}

// FromFloat64 approximates f as a Rational. Used only at DSL-coercion
// boundaries (e.g. a float literal weight), never inside query recursion.
func FromFloat64(f float64) Rational {
	r := new(big.Rat)
	r.SetFloat64(f)
	return Rational{r: r}
}

func (a Rational) ensure() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

func (a Rational) Add(b Rational) Rational {
	return Rational{r: new(big.Rat).Add(a.ensure(), b.ensure())}
}

func (a Rational) Sub(b Rational) Rational {
	return Rational{r: new(big.Rat).Sub(a.ensure(), b.ensure())}
}

func (a Rational) Mul(b Rational) Rational {
	return Rational{r: new(big.Rat).Mul(a.ensure(), b.ensure())}
}

// Div divides a by b. Panics on division by zero (an internal invariant
// violation, not a user-facing coercion failure).
func (a Rational) Div(b Rational) Rational {
	if b.Sign() == 0 {
		panic("rational: division by zero")
	}
	return Rational{r: new(big.Rat).Quo(a.ensure(), b.ensure())}
}

func (a Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(a.ensure())}
}

func (a Rational) Sign() int {
	return a.ensure().Sign()
}

func (a Rational) Cmp(b Rational) int {
	return a.ensure().Cmp(b.ensure())
}

func (a Rational) Less(b Rational) bool   { return a.Cmp(b) < 0 }
func (a Rational) LessEq(b Rational) bool { return a.Cmp(b) <= 0 }
func (a Rational) Greater(b Rational) bool { return a.Cmp(b) > 0 }
func (a Rational) GreaterEq(b Rational) bool { return a.Cmp(b) >= 0 }
func (a Rational) Equal(b Rational) bool  { return a.Cmp(b) == 0 }

// Floor returns the greatest integer Rational <= a.
func (a Rational) Floor() Rational {
	num := a.ensure().Num()
	den := a.ensure().Denom()
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(num, den, m) // Euclidean division: m >= 0 always
	return Rational{r: new(big.Rat).SetInt(q)}
}

// Ceil returns the least integer Rational >= a.
func (a Rational) Ceil() Rational {
	f := a.Floor()
	if f.Equal(a) {
		return f
	}
	return f.Add(One())
}

// Mod returns a - b*floor(a/b) when b > 0, following the sign of the
// divisor ("floor/ceil/mod take the sign of the divisor").
func (a Rational) Mod(b Rational) Rational {
	q := a.Div(b).Floor()
	return a.Sub(q.Mul(b))
}

// FloorInt returns Floor(a) as an int64. A floor outside the int64 range
// is not detected; the result is then big.Int.Int64's undefined value.
func (a Rational) FloorInt() int64 {
	f := a.Floor()
	if !f.ensure().IsInt() {
		panic("rational: FloorInt on non-integer after Floor")
	}
	return f.ensure().Num().Int64()
}

func (a Rational) Float64() float64 {
	f, _ := a.ensure().Float64()
	return f
}

func (a Rational) String() string {
	return a.ensure().RatString()
}

// IsZero reports whether a == 0.
func (a Rational) IsZero() bool { return a.Sign() == 0 }

// Min and Max return the lesser/greater of two Rationals.
func Min(a, b Rational) Rational {
	if a.Less(b) {
		return a
	}
	return b
}

func Max(a, b Rational) Rational {
	if a.Greater(b) {
		return a
	}
	return b
}

// GCD returns the greatest common divisor of the absolute values of two
// int64s, used by the Euclidean/LCM helpers that drive num_steps
// aggregation across Stack children.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of two positive integers.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	g := GCD(a, b)
	return a / g * b
}
