package transform

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/tensor"
)

// writePNG writes a small RGB PNG and returns its path.
func writePNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func rawValue(t *testing.T, data []float32, shape tensor.Shape) record.Raw {
	t.Helper()
	arr, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return record.Raw{Dense: arr}
}

func TestLoadImageOrTensorDirectArray(t *testing.T) {
	raw := rawValue(t, make([]float32, 10*10*3), tensor.Shape{10, 10, 3})
	tr := NewLoadImageOrTensor(Keys{"image"}, nil)

	out, err := tr.Apply(record.Record{"image": raw})
	require.NoError(t, err)

	mt, ok := out["image"].(record.Tensor)
	require.True(t, ok, "value should be a tensor with metadata, got %T", out["image"])

	assert.True(t, mt.Meta.SpatialShape.Equal(tensor.Shape{10, 10}))
	assert.Equal(t, -1, mt.Meta.OriginalChannelDim)
	assert.Nil(t, mt.Meta.OriginalAffine)

	// The metadata entry also lives in the record under the meta key.
	me, ok := out[record.MetaKey("image")].(record.MetaEntry)
	require.True(t, ok)
	assert.Same(t, mt.Meta, me.Meta)
}

func TestLoadImageOrTensorAllPathsUsesDefault(t *testing.T) {
	path := writePNG(t, 4, 4)

	marker := record.Record{"image": record.Path("handled-by-default")}
	var got record.Record
	def := func(d record.Record) (record.Record, error) {
		got = d
		return marker, nil
	}

	out, err := NewLoadImageOrTensor(Keys{"image"}, def).Apply(record.Record{"image": record.Path(path)})
	require.NoError(t, err)

	// The default loader's output is returned unchanged.
	assert.Equal(t, marker, out)

	// The record handed to the default still holds the path value.
	assert.Equal(t, record.Path(path), got["image"])
}

func TestLoadImageOrTensorPathKeepsIdentity(t *testing.T) {
	path := writePNG(t, 4, 4)
	raw := rawValue(t, make([]float32, 8*8*1), tensor.Shape{8, 8, 1})

	rec := record.Record{
		"image": record.Path(path),
		"label": raw,
	}

	defaultCalled := false
	def := func(d record.Record) (record.Record, error) {
		defaultCalled = true
		return d, nil
	}

	out, err := NewLoadImageOrTensor(Keys{"image", "label"}, def).Apply(rec)
	require.NoError(t, err)

	// One key was handled directly, so the default loader stays out.
	assert.False(t, defaultCalled)

	// The path key keeps its path identity until explicit decode.
	assert.Equal(t, record.Path(path), out["image"])

	mt, ok := out["label"].(record.Tensor)
	require.True(t, ok)
	assert.True(t, mt.Meta.SpatialShape.Equal(tensor.Shape{8, 8}))
}

func TestLoadImageOrTensorBadPath(t *testing.T) {
	tr := NewLoadImageOrTensor(Keys{"image"}, func(d record.Record) (record.Record, error) {
		return d, nil
	})

	_, err := tr.Apply(record.Record{"image": record.Path("/nonexistent/scan.png")})
	assert.Error(t, err)
}

func TestLoadImageOrTensorNoDefault(t *testing.T) {
	path := writePNG(t, 4, 4)

	_, err := NewLoadImageOrTensor(Keys{"image"}, nil).Apply(record.Record{"image": record.Path(path)})
	assert.Error(t, err)
}

func TestLoadImageOrTensorMissingKey(t *testing.T) {
	_, err := NewLoadImageOrTensor(Keys{"image"}, nil).Apply(record.Record{})
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestLoadImageOrTensorDoesNotMutateCaller(t *testing.T) {
	raw := rawValue(t, make([]float32, 4*4*2), tensor.Shape{4, 4, 2})
	rec := record.Record{"image": raw}

	_, err := NewLoadImageOrTensor(Keys{"image"}, nil).Apply(rec)
	require.NoError(t, err)

	// The caller's map object keeps its original value and gains no keys.
	assert.Len(t, rec, 1)
	_, isRaw := rec["image"].(record.Raw)
	assert.True(t, isRaw)
}
