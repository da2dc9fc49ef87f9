package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

func TestLingerLoopsFirstFraction(t *testing.T) {
	p := Linger(seq4(), r(1, 2))
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 4)
	assert.Equal(t, []string{"bd", "sd", "bd", "sd"}, soundsOf(evs))
}

func TestLingerNegativeTakesLastFraction(t *testing.T) {
	p := Linger(seq4(), r(-1, 2))
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 4)
	assert.Equal(t, []string{"hh", "cp", "hh", "cp"}, soundsOf(evs))
}

func TestLingerZeroIsSilence(t *testing.T) {
	p := Linger(seq4(), rational.Zero())
	assert.Empty(t, p.Query(rational.Zero(), rational.One(), DefaultQueryContext()))
}

func TestSegmentDiscretizes(t *testing.T) {
	src := Atomic(voice.Data{Value: voice.NumValue(7)})
	p := Segment(src, 4)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 4)
	for i, e := range evs {
		assert.True(t, e.Part.Begin.Equal(r(int64(i), 4)))
		v, ok := e.Data.Value.AsFloat64()
		require.True(t, ok)
		assert.Equal(t, 7.0, v)
	}
}

func TestWithinTransformsOnlyWindow(t *testing.T) {
	setGain := MapData(func(d voice.Data) voice.Data {
		g := 0.5
		d.Gain = &g
		return d
	})
	p := Within(seq4(), rational.Zero(), r(1, 2), setGain)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 4)
	for _, e := range evs {
		switch *e.Data.Sound {
		case "bd", "sd":
			require.NotNil(t, e.Data.Gain)
			assert.Equal(t, 0.5, *e.Data.Gain)
		default:
			assert.Nil(t, e.Data.Gain)
		}
	}
}

func TestChunkRotatesTransformWindow(t *testing.T) {
	setGain := func(p Pattern) Pattern {
		return MapData(func(d voice.Data) voice.Data {
			g := 0.5
			d.Gain = &g
			return d
		})(p)
	}
	p := Chunk(seq4(), 2, setGain, false, true, rational.Zero())

	cycle0 := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, cycle0, 4)
	for _, e := range cycle0 {
		if *e.Data.Sound == "bd" || *e.Data.Sound == "sd" {
			assert.NotNil(t, e.Data.Gain)
		} else {
			assert.Nil(t, e.Data.Gain)
		}
	}

	cycle1 := p.Query(rational.One(), rational.FromInt(2), DefaultQueryContext())
	require.Len(t, cycle1, 4)
	for _, e := range cycle1 {
		if *e.Data.Sound == "hh" || *e.Data.Sound == "cp" {
			assert.NotNil(t, e.Data.Gain)
		} else {
			assert.Nil(t, e.Data.Gain)
		}
	}
}

func TestChunkEarlyOffsetAdvancesGate(t *testing.T) {
	setGain := func(p Pattern) Pattern {
		return MapData(func(d voice.Data) voice.Data {
			g := 0.5
			d.Gain = &g
			return d
		})(p)
	}
	// shifting the gate one cycle early makes cycle 0 play what the
	// unshifted chunk would have played on cycle 1.
	p := Chunk(seq4(), 2, setGain, false, true, rational.One())
	cycle0 := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, cycle0, 4)
	for _, e := range cycle0 {
		if *e.Data.Sound == "hh" || *e.Data.Sound == "cp" {
			assert.NotNil(t, e.Data.Gain)
		} else {
			assert.Nil(t, e.Data.Gain)
		}
	}
}

func TestRibbonLoopsSlice(t *testing.T) {
	src := SlowCat(sound("a"), sound("b"), sound("c"))
	p := Ribbon(src, rational.One(), rational.One())
	cycle0 := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	cycle1 := p.Query(rational.One(), rational.FromInt(2), DefaultQueryContext())
	require.Len(t, cycle0, 1)
	require.Len(t, cycle1, 1)
	assert.Equal(t, "b", *cycle0[0].Data.Sound)
	assert.Equal(t, "b", *cycle1[0].Data.Sound)
}

func TestZoomDynamicMatchesStatic(t *testing.T) {
	src := Seq(sound("bd"), sound("hh"), sound("sd"), sound("cp"))
	dyn := ZoomDynamic(src,
		Atomic(voice.Data{Value: voice.NumValue(0.25)}),
		Atomic(voice.Data{Value: voice.NumValue(0.75)}))
	evs := dyn.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 2)
	assert.Equal(t, []string{"hh", "sd"}, soundsOf(evs))
	assert.True(t, evs[0].Part.Begin.Equal(rational.Zero()))
	assert.True(t, evs[1].Part.Begin.Equal(r(1, 2)))
}

func TestEuclidLegatoHoldsUntilNextOnset(t *testing.T) {
	p := EuclidLegato(sound("bd"), 3, 8, 0)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 3)
	wantBegin := []rational.Rational{rational.Zero(), r(3, 8), r(3, 4)}
	wantDur := []rational.Rational{r(3, 8), r(3, 8), r(1, 4)}
	for i, e := range evs {
		assert.True(t, e.Part.Begin.Equal(wantBegin[i]), "event %d begins at %s", i, e.Part.Begin)
		assert.True(t, e.Part.Duration().Equal(wantDur[i]), "event %d lasts %s", i, e.Part.Duration())
	}
}

func TestEuclidishGrooveZeroMatchesEuclid(t *testing.T) {
	a := Euclid(sound("bd"), 3, 8).Query(rational.Zero(), rational.One(), DefaultQueryContext())
	b := Euclidish(sound("bd"), 3, 8, 0).Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, b, len(a))
	for i := range a {
		assert.True(t, a[i].Part.Equal(b[i].Part))
	}
}

func TestEuclidishGrooveOneIsEvenish(t *testing.T) {
	evs := Euclidish(sound("bd"), 4, 8, 1).Query(rational.Zero(), rational.One(), DefaultQueryContext())
	// 4 of 8 spaced perfectly evenly lands on every other step.
	require.Len(t, evs, 4)
	for i, e := range evs {
		assert.True(t, e.Part.Begin.Equal(r(int64(i), 4)))
	}
}
