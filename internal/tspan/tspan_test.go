package tspan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbegin/tidalcore-go/internal/rational"
)

func r(n, d int64) rational.Rational { return rational.New(n, d) }

func TestIntersect(t *testing.T) {
	a := New(r(0, 1), r(1, 1))
	b := New(r(1, 2), r(3, 2))
	got, ok := a.Intersect(b)
	assert.True(t, ok)
	assert.True(t, got.Equal(New(r(1, 2), r(1, 1))))
}

func TestIntersectDisjoint(t *testing.T) {
	a := New(r(0, 1), r(1, 1))
	b := New(r(2, 1), r(3, 1))
	_, ok := a.Intersect(b)
	assert.False(t, ok)
}

func TestCycleSplit(t *testing.T) {
	s := New(r(0, 2), r(5, 2)) // [0, 2.5)
	parts := s.CycleSplit()
	if assert.Len(t, parts, 3) {
		assert.Equal(t, int64(0), parts[0].Cycle)
		assert.True(t, parts[0].Span.Equal(New(r(0, 1), r(1, 1))))
		assert.Equal(t, int64(1), parts[1].Cycle)
		assert.True(t, parts[1].Span.Equal(New(r(1, 1), r(2, 1))))
		assert.Equal(t, int64(2), parts[2].Cycle)
		assert.True(t, parts[2].Span.Equal(New(r(2, 1), r(5, 2))))
	}
}

func TestShiftScale(t *testing.T) {
	s := New(r(0, 1), r(1, 1))
	assert.True(t, s.Shift(r(1, 2)).Equal(New(r(1, 2), r(3, 2))))
	assert.True(t, s.Scale(r(2, 1)).Equal(New(r(0, 1), r(2, 1))))
}

func TestContains(t *testing.T) {
	whole := New(r(0, 1), r(1, 1))
	part := New(r(1, 4), r(1, 2))
	assert.True(t, whole.Contains(part))
	assert.False(t, part.Contains(whole))
}
