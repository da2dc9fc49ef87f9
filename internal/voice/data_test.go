package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeIdentity(t *testing.T) {
	v := Data{Note: f64(60), Sound: str("bd")}
	assert.Equal(t, v, Merge(Empty, v))
	assert.Equal(t, v, Merge(v, Empty))
}

func TestMergeRightBiased(t *testing.T) {
	a := Data{Note: f64(60), Gain: f64(0.8)}
	b := Data{Note: f64(67)}
	got := Merge(a, b)
	assert.Equal(t, 67.0, *got.Note, "right side's Note should win")
	assert.Equal(t, 0.8, *got.Gain, "unset right field leaves left value intact")
}

func TestMergeValueRightBiased(t *testing.T) {
	a := Data{Value: NumValue(1)}
	b := Data{Value: StrValue("bd")}
	got := Merge(a, b)
	assert.Equal(t, KindStr, got.Value.Kind)

	onlyLeft := Merge(a, Data{})
	assert.Equal(t, KindNum, onlyLeft.Value.Kind)
}

func TestTruthy(t *testing.T) {
	assert.True(t, NumValue(1).Truthy())
	assert.False(t, NumValue(0).Truthy())
	assert.False(t, StrValue("").Truthy())
	assert.False(t, StrValue("false").Truthy())
	assert.False(t, StrValue("f").Truthy())
	assert.False(t, StrValue("0").Truthy())
	assert.True(t, StrValue("bd").Truthy())
	assert.True(t, BoolValue(true).Truthy())
	assert.False(t, BoolValue(false).Truthy())
	assert.True(t, SeqValue([]Value{NumValue(1)}).Truthy())
	assert.False(t, SeqValue(nil).Truthy())
	assert.False(t, Value{}.Truthy())
}

func TestInvert(t *testing.T) {
	assert.False(t, NumValue(1).Invert().Truthy())
	assert.True(t, NumValue(0).Invert().Truthy())
}

func TestAsFloat64(t *testing.T) {
	f, ok := NumValue(3.5).AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 3.5, f)

	_, ok = StrValue("bd").AsFloat64()
	assert.False(t, ok)

	f, ok = BoolValue(true).AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "bd", StrValue("bd").AsString())
	assert.Equal(t, "3", NumValue(3).AsString())
	assert.Equal(t, "", Value{}.AsString())
}
