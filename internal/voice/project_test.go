package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectDefaults(t *testing.T) {
	ev := Project(Empty)
	assert.Equal(t, defaultNote, ev.Note)
	assert.Equal(t, defaultGain, ev.Gain)
	assert.Equal(t, defaultPan, ev.Pan)
	assert.False(t, ev.HasLowpass)
	assert.False(t, ev.HasHighpass)
	assert.False(t, ev.HasBandpass)
	assert.False(t, ev.HasNotch)
	assert.Nil(t, ev.Formants)
}

func TestProjectFilterOnlyWhenCutoffSet(t *testing.T) {
	ev := Project(Data{Cutoff: f64(1000), Resonance: f64(0.4)})
	assert.True(t, ev.HasLowpass)
	assert.Equal(t, 1000.0, ev.Cutoff)
	assert.Equal(t, 0.4, ev.Resonance)
	assert.False(t, ev.HasHighpass)
}

func TestProjectVowelFormants(t *testing.T) {
	ev := Project(Data{Vowel: str("a")})
	if assert.Len(t, ev.Formants, 5) {
		assert.Equal(t, 800.0, ev.Formants[0].Freq)
	}

	ev2 := Project(Data{Vowel: str("tenor_u")})
	if assert.Len(t, ev2.Formants, 5) {
		assert.Equal(t, 350.0, ev2.Formants[0].Freq)
	}

	ev3 := Project(Data{Vowel: str("nonexistent")})
	assert.Nil(t, ev3.Formants)
}
