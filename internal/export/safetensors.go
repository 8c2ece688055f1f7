// Package export writes transformed tensors to SafeTensors files so
// downstream inference runtimes can consume them without re-decoding.
package export

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/tensor"
)

// SafeTensors format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]

// tensorHeader describes one tensor in the SafeTensors JSON header.
type tensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// dtypeToSafeTensors maps Curie data types to SafeTensors dtype names.
func dtypeToSafeTensors(dt tensor.DataType) string {
	switch dt {
	case tensor.Float32:
		return "F32"
	case tensor.Float64:
		return "F64"
	case tensor.Int32:
		return "I32"
	case tensor.Int64:
		return "I64"
	case tensor.Uint8:
		return "U8"
	default:
		return "UNKNOWN"
	}
}

// WriteSafeTensors writes arrays to a SafeTensors file. Tensors are written
// in alphabetical order by name (SafeTensors requirement).
func WriteSafeTensors(path string, tensors map[string]*tensor.Dense, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(tensors)+1)
	if len(metadata) > 0 {
		header["__metadata__"] = metadata
	}

	var offset int64
	for _, name := range names {
		arr := tensors[name]
		size := int64(arr.ByteSize())

		shape := arr.Shape()
		shapeInt64 := make([]int64, len(shape))
		for i, dim := range shape {
			shapeInt64[i] = int64(dim)
		}

		header[name] = tensorHeader{
			DType:       dtypeToSafeTensors(arr.DType()),
			Shape:       shapeInt64,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		_ = f.Close() // Best effort close
	}()

	if err := binary.Write(f, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := f.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, name := range names {
		if _, err := f.Write(tensors[name].Data()); err != nil {
			return fmt.Errorf("failed to write tensor %q: %w", name, err)
		}
	}
	return nil
}

// RecordTensors flattens a transformed record into the tensor map and
// metadata expected by WriteSafeTensors. Path values and metadata entries
// contribute metadata strings; tensor values contribute arrays.
func RecordTensors(rec record.Record) (map[string]*tensor.Dense, map[string]string) {
	tensors := make(map[string]*tensor.Dense)
	metadata := make(map[string]string)

	for key, v := range rec {
		switch v := v.(type) {
		case record.Tensor:
			tensors[key] = v.Dense
		case record.Raw:
			tensors[key] = v.Dense
		case record.Path:
			metadata[key] = string(v)
		case record.MetaEntry:
			metadata[key+".spatial_shape"] = shapeString(v.SpatialShape)
			metadata[key+".original_channel_dim"] = fmt.Sprintf("%d", v.OriginalChannelDim)
		}
	}
	return tensors, metadata
}

func shapeString(s tensor.Shape) string {
	parts := make([]string, len(s))
	for i, dim := range s {
		parts[i] = fmt.Sprintf("%d", dim)
	}
	return strings.Join(parts, ",")
}
