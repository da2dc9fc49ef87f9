package euclid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBjorklund3_8(t *testing.T) {
	got := Bjorklund(3, 8)
	want := []bool{true, false, false, true, false, false, true, false}
	assert.Equal(t, want, got)
}

func TestBjorklund5_8(t *testing.T) {
	got := Bjorklund(5, 8)
	count := 0
	for _, v := range got {
		if v {
			count++
		}
	}
	assert.Equal(t, 5, count)
	assert.Len(t, got, 8)
}

func TestBjorklundDegenerate(t *testing.T) {
	assert.Equal(t, []bool{false, false, false}, Bjorklund(0, 3))
	assert.Equal(t, []bool{true, true, true}, Bjorklund(3, 3))
	assert.Equal(t, []bool{true, true, true}, Bjorklund(5, 3))
	assert.Nil(t, Bjorklund(3, 0))
}

func TestRotate(t *testing.T) {
	mask := []bool{true, false, false, true, false, false, true, false}
	got := Rotate(mask, 1)
	want := []bool{false, false, true, false, false, true, false, true}
	assert.Equal(t, want, got)

	assert.Equal(t, mask, Rotate(mask, 0))
	assert.Equal(t, mask, Rotate(mask, 8))
}

func TestLegato(t *testing.T) {
	mask := []bool{true, false, false, true, false, false, true, false}
	got := Legato(mask)
	want := []int{3, 0, 0, 3, 0, 0, 2, 0}
	assert.Equal(t, want, got)
}

func TestGrooveEndpoints(t *testing.T) {
	assert.Equal(t, Bjorklund(3, 8), Groove(3, 8, 0))

	even := Groove(4, 8, 1)
	count := 0
	for _, v := range even {
		if v {
			count++
		}
	}
	assert.Equal(t, 4, count)
}
