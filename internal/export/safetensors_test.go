package export

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/tensor"
)

// parseHeader reads back the header-size prefix and JSON header.
func parseHeader(t *testing.T, path string) (map[string]json.RawMessage, []byte) {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 8)

	headerSize := binary.LittleEndian.Uint64(raw[:8])
	require.LessOrEqual(t, int(8+headerSize), len(raw))

	var header map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw[8:8+headerSize], &header))
	return header, raw[8+headerSize:]
}

func TestWriteSafeTensors(t *testing.T) {
	img, err := tensor.FromSlice([]uint8{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 2, 3})
	require.NoError(t, err)
	lbl, err := tensor.FromSlice([]float32{0, 1}, tensor.Shape{2})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.safetensors")
	err = WriteSafeTensors(path, map[string]*tensor.Dense{
		"image": img,
		"label": lbl,
	}, map[string]string{"source": "unit-test"})
	require.NoError(t, err)

	header, data := parseHeader(t, path)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(header["__metadata__"], &meta))
	assert.Equal(t, "unit-test", meta["source"])

	var imgHdr, lblHdr tensorHeader
	require.NoError(t, json.Unmarshal(header["image"], &imgHdr))
	require.NoError(t, json.Unmarshal(header["label"], &lblHdr))

	assert.Equal(t, "U8", imgHdr.DType)
	assert.Equal(t, []int64{1, 2, 3}, imgHdr.Shape)
	assert.Equal(t, [2]int64{0, 6}, imgHdr.DataOffsets)

	// "label" sorts after "image", so its data follows.
	assert.Equal(t, "F32", lblHdr.DType)
	assert.Equal(t, [2]int64{6, 14}, lblHdr.DataOffsets)

	assert.Len(t, data, 14)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, data[:6])
}

func TestRecordTensors(t *testing.T) {
	arr, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 1})
	require.NoError(t, err)

	rec := record.Record{}
	meta := rec.MetaEntry("image")
	meta.FillDirect(arr.Shape())
	rec["image"] = record.Tensor{MetaTensor: tensor.NewMetaTensor(arr, meta)}
	rec["source"] = record.Path("/data/scan.png")

	tensors, metadata := RecordTensors(rec)

	assert.Len(t, tensors, 1)
	assert.Same(t, arr, tensors["image"])
	assert.Equal(t, "/data/scan.png", metadata["source"])
	assert.Equal(t, "2", metadata["image_meta.spatial_shape"])
	assert.Equal(t, "-1", metadata["image_meta.original_channel_dim"])
}
