package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

func r(n, d int64) rational.Rational { return rational.New(n, d) }

func soundsOf(evs []Event) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		if e.Data.Sound != nil {
			out[i] = *e.Data.Sound
		}
	}
	return out
}

func begins(evs []Event) []rational.Rational {
	out := make([]rational.Rational, len(evs))
	for i, e := range evs {
		out[i] = e.Part.Begin
	}
	return out
}

func sound(name string) Pattern {
	s := name
	return Atomic(voice.Data{Sound: &s})
}

// S1 — basic sequence.
func TestSequenceBasic(t *testing.T) {
	p := Seq(sound("bd"), sound("sd"), sound("hh"), sound("cp"))
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 4)
	assert.Equal(t, []string{"bd", "sd", "hh", "cp"}, soundsOf(evs))
	for i, e := range evs {
		assert.True(t, e.Part.Begin.Equal(r(int64(i), 4)))
		assert.True(t, e.Part.Duration().Equal(r(1, 4)))
	}
}

// S2 — stack of differing lengths.
func TestStackDifferingLengths(t *testing.T) {
	a := Seq(sound("bd"), sound("sd"))
	b := Seq(sound("hh"), sound("hh"), sound("hh"))
	p := StackPatterns(a, b)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 5)
}

// S5 — euclid 3,8.
func TestEuclid3_8(t *testing.T) {
	p := Euclid(sound("bd"), 3, 8)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 3)
	want := []rational.Rational{r(0, 8), r(3, 8), r(6, 8)}
	for i, e := range evs {
		assert.True(t, e.Part.Begin.Equal(want[i]), "event %d begins at %s want %s", i, e.Part.Begin, want[i])
	}
}

// S6 — zoom.
func TestZoom(t *testing.T) {
	p := Seq(sound("bd"), sound("hh"), sound("sd"), sound("cp"))
	z := Zoom(p, r(1, 4), r(3, 4))
	evs := z.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 2)
	assert.Equal(t, []string{"hh", "sd"}, soundsOf(evs))
	assert.True(t, evs[0].Part.Begin.Equal(rational.Zero()))
	assert.True(t, evs[0].Part.Duration().Equal(r(1, 2)))
	assert.True(t, evs[1].Part.Begin.Equal(r(1, 2)))
}

// Zoom composition property: p.zoom(0,1) == p.
func TestZoomIdentity(t *testing.T) {
	p := Seq(sound("bd"), sound("hh"))
	z := Zoom(p, rational.Zero(), rational.One())
	a := p.Query(rational.Zero(), rational.FromInt(2), DefaultQueryContext())
	b := z.Query(rational.Zero(), rational.FromInt(2), DefaultQueryContext())
	require.Len(t, b, len(a))
	for i := range a {
		assert.True(t, a[i].Part.Equal(b[i].Part))
	}
}

// S7 — arrange loop.
func TestArrangeLoop(t *testing.T) {
	p := Arrange(
		ArrangeSegment{Duration: 2, Pattern: sound("a")},
		ArrangeSegment{Duration: 1, Pattern: sound("b")},
	)
	evs := p.Query(rational.Zero(), rational.FromInt(3), DefaultQueryContext())
	var aCount, bCount int
	for _, e := range evs {
		switch *e.Data.Sound {
		case "a":
			aCount++
			assert.True(t, e.Part.Begin.Less(r(2, 1)))
		case "b":
			bCount++
			assert.True(t, !e.Part.Begin.Less(r(2, 1)))
		}
	}
	assert.Equal(t, 2, aCount)
	assert.Equal(t, 1, bCount)

	repeat := p.Query(rational.FromInt(3), rational.FromInt(6), DefaultQueryContext())
	assert.Equal(t, len(evs), len(repeat))
}

// S8 — bite reverse.
func TestBiteReverse(t *testing.T) {
	base := Seq(
		Atomic(voice.Data{Value: voice.NumValue(0)}),
		Atomic(voice.Data{Value: voice.NumValue(1)}),
		Atomic(voice.Data{Value: voice.NumValue(2)}),
		Atomic(voice.Data{Value: voice.NumValue(3)}),
	)
	idx := Seq(
		Atomic(voice.Data{Value: voice.NumValue(3)}),
		Atomic(voice.Data{Value: voice.NumValue(2)}),
		Atomic(voice.Data{Value: voice.NumValue(1)}),
		Atomic(voice.Data{Value: voice.NumValue(0)}),
	)
	p := Bite(base, 4, idx)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 4)
	want := []float64{3, 2, 1, 0}
	for i, e := range evs {
		v, ok := e.Data.Value.AsFloat64()
		require.True(t, ok)
		assert.Equal(t, want[i], v)
	}
}

// Property: purity — querying twice yields identical results.
func TestPurity(t *testing.T) {
	p := Euclid(sound("bd"), 5, 8)
	a := p.Query(r(1, 3), r(11, 7), DefaultQueryContext())
	b := p.Query(r(1, 3), r(11, 7), DefaultQueryContext())
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].Part.Equal(b[i].Part))
	}
}

// Property: periodicity for plain (non-Ribbon) trees.
func TestPeriodicity(t *testing.T) {
	p := Seq(sound("bd"), sound("sd"), sound("hh"))
	a := p.Query(rational.Zero(), rational.FromInt(2), DefaultQueryContext())
	b := p.Query(rational.One(), rational.FromInt(3), DefaultQueryContext())
	require.Equal(t, len(a), len(b))
	for i := range a {
		shifted := a[i].Shift(rational.One())
		assert.True(t, shifted.Part.Equal(b[i].Part))
	}
}

// Property: fast/slow inverse.
func TestFastSlowInverse(t *testing.T) {
	p := Seq(sound("bd"), sound("sd"), sound("hh"), sound("cp"))
	roundTrip := Slow(r(3, 1))(Fast(r(3, 1))(p))
	a := p.Query(rational.Zero(), rational.FromInt(2), DefaultQueryContext())
	b := roundTrip.Query(rational.Zero(), rational.FromInt(2), DefaultQueryContext())
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].Part.Equal(b[i].Part))
	}
}

// Property: early/late inverse.
func TestEarlyLateInverse(t *testing.T) {
	p := Seq(sound("bd"), sound("sd"))
	roundTrip := Late(r(1, 4))(Early(r(1, 4))(p))
	a := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	b := roundTrip.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, b, len(a))
	for i := range a {
		assert.True(t, a[i].Part.Equal(b[i].Part))
	}
}

// Property: stack commutativity up to ordering.
func TestStackCommutativeMultiset(t *testing.T) {
	a := sound("bd")
	b := sound("sd")
	x := StackPatterns(a, b).Query(rational.Zero(), rational.One(), DefaultQueryContext())
	y := StackPatterns(b, a).Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, y, len(x))
	xs := soundsOf(x)
	ys := soundsOf(y)
	assert.ElementsMatch(t, xs, ys)
}

// Property: mask idempotence.
func TestMaskIdempotent(t *testing.T) {
	m := Euclid(Atomic(voice.Data{Value: voice.BoolValue(true)}), 3, 8)
	src := Seq(sound("bd"), sound("sd"), sound("hh"), sound("cp"), sound("bd"), sound("sd"), sound("hh"), sound("cp"))
	once := Mask(src, m)
	twice := Mask(once, m)
	a := once.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	b := twice.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].Part.Equal(b[i].Part))
	}
}

// Property: invert involution on boolean atoms.
func TestInvertInvolution(t *testing.T) {
	v := voice.BoolValue(true)
	assert.Equal(t, v, v.Invert().Invert())
	f := voice.BoolValue(false)
	assert.Equal(t, f, f.Invert().Invert())
}

// S3 — pick clamp.
func TestPickClamp(t *testing.T) {
	lookup := Lookup{List: []Pattern{sound("c3"), sound("e3"), sound("g3")}}
	selector := Seq(
		Atomic(voice.Data{Value: voice.NumValue(0)}),
		Atomic(voice.Data{Value: voice.NumValue(1)}),
		Atomic(voice.Data{Value: voice.NumValue(5)}),
	)
	p := Pick(lookup, selector)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 3)
	assert.Equal(t, []string{"c3", "e3", "g3"}, soundsOf(evs))
}

// S4 — pickmod wrap.
func TestPickModWrap(t *testing.T) {
	lookup := Lookup{List: []Pattern{sound("c3"), sound("e3")}}
	selector := Seq(
		Atomic(voice.Data{Value: voice.NumValue(0)}),
		Atomic(voice.Data{Value: voice.NumValue(3)}),
	)
	p := PickMod(lookup, selector)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 2)
	assert.Equal(t, "c3", *evs[0].Data.Sound)
	assert.Equal(t, "e3", *evs[1].Data.Sound)
	assert.True(t, evs[1].Part.Begin.Equal(r(1, 2)))
}

// Sequence concatenation property (#6): seq(p,q) already splits one
// cycle into p's first half and q's second half; fast(2) then plays
// that whole cycle twice within the output cycle, so over [0,1) the two
// repetitions interleave to bd,sd,bd,sd at quarter-cycle spacing.
func TestSequenceConcatenationFast2(t *testing.T) {
	p := sound("bd")
	q := sound("sd")
	combined := Fast(r(2, 1))(Seq(p, q))
	evs := combined.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 4)
	assert.Equal(t, []string{"bd", "sd", "bd", "sd"}, soundsOf(evs))
	for i, e := range evs {
		assert.True(t, e.Part.Begin.Equal(r(int64(i), 4)))
	}
}

func TestCoercionFailureIsSilent(t *testing.T) {
	p := ToPattern(DslArg{Value: DslValue{Kind: DslFunc}}, nil)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	assert.Empty(t, evs)
}

func TestCallbackPanicDropsLayer(t *testing.T) {
	p := Seq(sound("bd"), sound("sd"))
	sup := Superimpose(func(Pattern) Pattern { panic("boom") })(p)
	evs := sup.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	// the base pattern's own two events still come through; the panicking
	// layer contributes nothing rather than propagating.
	require.Len(t, evs, 2)
}

func TestMiniNotationParseBasic(t *testing.T) {
	p := Parse("bd sd hh cp", nil)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 4)
	assert.Equal(t, []string{"bd", "sd", "hh", "cp"}, soundsOf(evs))
}

func TestMiniNotationEuclidSuffix(t *testing.T) {
	p := Parse("bd(3,8)", nil)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 3)
}

func TestMiniNotationAlternation(t *testing.T) {
	p := Parse("<bd sd>", nil)
	evs0 := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	evs1 := p.Query(rational.One(), rational.FromInt(2), DefaultQueryContext())
	require.Len(t, evs0, 1)
	require.Len(t, evs1, 1)
	assert.Equal(t, "bd", *evs0[0].Data.Sound)
	assert.Equal(t, "sd", *evs1[0].Data.Sound)
}

func TestFacadeFastDispatch(t *testing.T) {
	p := Invoke("fast", []DslArg{PatternArg(Seq(sound("bd"), sound("sd"))), NumberArg(2)})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 4)
}

func TestMethodChaining(t *testing.T) {
	p := Of(Seq(sound("bd"), sound("sd"))).Fast(2)
	evs := p.Query(rational.Zero(), rational.One())
	require.Len(t, evs, 4)
}
