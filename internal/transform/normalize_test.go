package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/tensor"
)

func TestNormalizeLabelBinarizes(t *testing.T) {
	arr, err := tensor.FromSlice([]int32{-1, 0, 2, 5}, tensor.Shape{4})
	require.NoError(t, err)

	out, err := NewNormalizeLabel(Keys{"label"}).Apply(record.Record{"label": record.Raw{Dense: arr}})
	require.NoError(t, err)

	got := out["label"].(record.Raw).AsInt32()
	assert.Equal(t, []int32{-1, 0, 1, 1}, got)
}

func TestNormalizeLabelCustomValue(t *testing.T) {
	arr, err := tensor.FromSlice([]float32{0.5, 0, -3, 7}, tensor.Shape{4})
	require.NoError(t, err)

	tr := &NormalizeLabel{Keys: Keys{"label"}, Value: 255}
	out, err := tr.Apply(record.Record{"label": record.Raw{Dense: arr}})
	require.NoError(t, err)

	got := out["label"].(record.Raw).AsFloat32()
	assert.Equal(t, []float32{255, 0, -3, 255}, got)
}

func TestNormalizeLabelIdempotent(t *testing.T) {
	arr, err := tensor.FromSlice([]float64{-2, 0, 0.1, 9}, tensor.Shape{4})
	require.NoError(t, err)

	tr := NewNormalizeLabel(Keys{"label"})
	rec := record.Record{"label": record.Raw{Dense: arr}}

	once, err := tr.Apply(rec)
	require.NoError(t, err)
	twice, err := tr.Apply(once)
	require.NoError(t, err)

	assert.Equal(t, []float64{-2, 0, 1, 1}, twice["label"].(record.Raw).AsFloat64())
}

func TestNormalizeLabelUint8(t *testing.T) {
	arr, err := tensor.FromSlice([]uint8{0, 1, 128, 255}, tensor.Shape{2, 2})
	require.NoError(t, err)

	out, err := NewNormalizeLabel(Keys{"label"}).Apply(record.Record{"label": record.Raw{Dense: arr}})
	require.NoError(t, err)

	assert.Equal(t, []uint8{0, 1, 1, 1}, out["label"].(record.Raw).AsUint8())
}

func TestNormalizeLabelOnMetaTensor(t *testing.T) {
	arr, err := tensor.FromSlice([]int64{3, 0, -4}, tensor.Shape{3})
	require.NoError(t, err)
	mt := record.Tensor{MetaTensor: tensor.NewMetaTensor(arr, tensor.DirectMeta(arr.Shape()))}

	out, err := NewNormalizeLabel(Keys{"label"}).Apply(record.Record{"label": mt})
	require.NoError(t, err)

	got, ok := out["label"].(record.Tensor)
	require.True(t, ok, "value variant should survive normalization")
	assert.Equal(t, []int64{1, 0, -4}, got.AsInt64())
}

func TestNormalizeLabelMissingKey(t *testing.T) {
	_, err := NewNormalizeLabel(Keys{"label"}).Apply(record.Record{})
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestNormalizeLabelRejectsPath(t *testing.T) {
	_, err := NewNormalizeLabel(Keys{"label"}).Apply(record.Record{"label": record.Path("x.png")})
	assert.Error(t, err)
}

func TestNormalizeLabelMutatesSharedArray(t *testing.T) {
	arr, err := tensor.FromSlice([]int32{4}, tensor.Shape{1})
	require.NoError(t, err)
	rec := record.Record{"label": record.Raw{Dense: arr}}

	_, err = NewNormalizeLabel(Keys{"label"}).Apply(rec)
	require.NoError(t, err)

	// Nested values are shared by reference: the caller's array changes
	// even though its map object does not.
	assert.Equal(t, int32(1), arr.AsInt32()[0])
}
