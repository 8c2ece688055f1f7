package transform

import (
	"fmt"

	"github.com/curie-ml/curie/internal/parallel"
	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/tensor"
)

// NormalizeLabel rewrites label arrays so every element strictly greater
// than zero collapses to Value. Zero and negative elements are unchanged.
// The rewrite happens in place on the shared array and is idempotent.
type NormalizeLabel struct {
	Keys  Keys
	Value float64
}

// NewNormalizeLabel builds the transform with the conventional replacement
// value 1.
func NewNormalizeLabel(keys Keys) *NormalizeLabel {
	return &NormalizeLabel{Keys: keys, Value: 1}
}

// Apply normalizes every target key of a shallow clone of data.
func (t *NormalizeLabel) Apply(data record.Record) (record.Record, error) {
	d := data.Clone()

	for _, key := range t.Keys {
		v, err := fetch(d, key)
		if err != nil {
			return nil, err
		}

		var arr *tensor.Dense
		switch v := v.(type) {
		case record.Raw:
			arr = v.Dense
		case record.Tensor:
			arr = v.Dense
		default:
			return nil, fmt.Errorf("key %q: expected array value, got %T", key, v)
		}

		binarize(arr, t.Value)
		d[key] = v
	}
	return d, nil
}

// binarize sets every positive element of arr to value, elementwise per
// dtype.
func binarize(arr *tensor.Dense, value float64) {
	cfg := parallel.DefaultConfig()

	switch arr.DType() {
	case tensor.Float32:
		data := arr.AsFloat32()
		v := float32(value)
		parallel.For(len(data), func(i int) {
			if data[i] > 0 {
				data[i] = v
			}
		}, cfg)
	case tensor.Float64:
		data := arr.AsFloat64()
		parallel.For(len(data), func(i int) {
			if data[i] > 0 {
				data[i] = value
			}
		}, cfg)
	case tensor.Int32:
		data := arr.AsInt32()
		v := int32(value)
		parallel.For(len(data), func(i int) {
			if data[i] > 0 {
				data[i] = v
			}
		}, cfg)
	case tensor.Int64:
		data := arr.AsInt64()
		v := int64(value)
		parallel.For(len(data), func(i int) {
			if data[i] > 0 {
				data[i] = v
			}
		}, cfg)
	case tensor.Uint8:
		data := arr.AsUint8()
		v := uint8(value)
		parallel.For(len(data), func(i int) {
			if data[i] > 0 {
				data[i] = v
			}
		}, cfg)
	}
}
