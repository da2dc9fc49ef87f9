package pattern

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbegin/tidalcore-go/internal/rational"
)

func TestControlBuildsPattern(t *testing.T) {
	p := Invoke("note", []DslArg{StringArg("0 4 7")})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 3)
	want := []float64{0, 4, 7}
	for i, e := range evs {
		require.NotNil(t, e.Data.Note)
		assert.Equal(t, want[i], *e.Data.Note)
	}
}

func TestControlOverlaysSource(t *testing.T) {
	src := Seq(sound("bd"), sound("sd"))
	p := Invoke("gain", []DslArg{PatternArg(src), StringArg("0.5")})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 2)
	for _, e := range evs {
		require.NotNil(t, e.Data.Gain)
		assert.Equal(t, 0.5, *e.Data.Gain)
		assert.NotNil(t, e.Data.Sound)
	}
}

func TestControlStringField(t *testing.T) {
	p := Invoke("vowel", []DslArg{PatternArg(sound("bd")), StringArg("a")})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 1)
	require.NotNil(t, evs[0].Data.Vowel)
	assert.Equal(t, "a", *evs[0].Data.Vowel)
}

func TestArrangeViaFacade(t *testing.T) {
	p := Invoke("arrange", []DslArg{
		ListArg(NumberArg(2), StringArg("a")),
		ListArg(NumberArg(1), StringArg("b")),
	})
	evs := p.Query(rational.Zero(), rational.FromInt(3), DefaultQueryContext())
	var aCount, bCount int
	for _, e := range evs {
		switch *e.Data.Sound {
		case "a":
			aCount++
		case "b":
			bCount++
		}
	}
	assert.Equal(t, 2, aCount)
	assert.Equal(t, 1, bCount)
}

func TestWeightedPairListCoercion(t *testing.T) {
	arg := ListArg(
		ListArg(NumberArg(2), StringArg("a")),
		ListArg(NumberArg(1), StringArg("b")),
	)
	p := ToPattern(arg, nil)
	evs := p.Query(rational.Zero(), rational.FromInt(3), DefaultQueryContext())
	assert.Len(t, evs, 3)
}

func TestPlainListCoercesToSequence(t *testing.T) {
	arg := ListArg(StringArg("bd"), StringArg("sd"))
	p := ToPattern(arg, nil)
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	require.Len(t, evs, 2)
	assert.True(t, evs[1].Part.Begin.Equal(r(1, 2)))
}

func TestStringOpSugar(t *testing.T) {
	p := StringOp("bd sd", "fast", NumberArg(2))
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	assert.Len(t, evs, 4)
}

func TestRegisterIsIdempotent(t *testing.T) {
	Register("fast", func([]DslArg) Pattern { return Silence })
	p := Invoke("fast", []DslArg{PatternArg(Seq(sound("bd"), sound("sd"))), NumberArg(2)})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	assert.Len(t, evs, 4)
}

func TestUnknownOperatorLogsAndFallsBackToSilence(t *testing.T) {
	var buf bytes.Buffer
	SetDiagnosticsOutput(&buf)
	defer SetDiagnosticsOutput(os.Stderr)
	p := Invoke("no-such-op", nil)
	assert.Empty(t, p.Query(rational.Zero(), rational.One(), DefaultQueryContext()))
	assert.Contains(t, buf.String(), "no-such-op")
}

func TestFastControlDriven(t *testing.T) {
	p := Invoke("fast", []DslArg{PatternArg(sound("bd")), StringArg("1 2")})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	// first half plays at 1x (one clipped event), second half at 2x
	// (the 2x grid's second event falls entirely in the gated window).
	require.Len(t, evs, 2)
	assert.True(t, evs[0].Part.Begin.Equal(rational.Zero()))
	assert.True(t, evs[1].Part.Begin.Equal(r(1, 2)))
}

func TestLateControlDispatch(t *testing.T) {
	p := Invoke("late", []DslArg{PatternArg(sound("bd")), NumberArg(0.25)})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	var onsets int
	for _, e := range evs {
		if e.IsOnset() {
			onsets++
			assert.True(t, e.Part.Begin.Equal(r(1, 4)))
		}
	}
	assert.Equal(t, 1, onsets)
}

func TestPickResetViaRegistry(t *testing.T) {
	p := Invoke("pickReset", []DslArg{
		ListArg(StringArg("bd"), StringArg("sd")),
		StringArg("0 1"),
	})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	assert.Len(t, evs, 2)
}

func TestEuclidishViaRegistry(t *testing.T) {
	p := Invoke("euclidish", []DslArg{PatternArg(sound("bd")), NumberArg(3), NumberArg(8), NumberArg(0)})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	assert.Len(t, evs, 3)
}

func TestJuxViaRegistry(t *testing.T) {
	p := Invoke("jux", []DslArg{StringArg("bd sd"), FuncArg(Rev)})
	evs := p.Query(rational.Zero(), rational.One(), DefaultQueryContext())
	assert.Len(t, evs, 4)
}
