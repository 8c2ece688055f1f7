package transform

import (
	"fmt"

	"github.com/curie-ml/curie/internal/imaging"
	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/tensor"
)

// DefaultLoader loads a whole record when none of the target keys carried a
// direct array. It is the fallback collaborator of LoadImageOrTensor.
type DefaultLoader func(data record.Record) (record.Record, error)

// LoadImageOrTensor loads each target key either from a file path or from a
// direct in-memory array. Keys are handled independently: array keys become
// tensors with metadata immediately, path keys stay paths. When every key
// was a path, the whole record is handed to Default instead.
type LoadImageOrTensor struct {
	Keys    Keys
	Default DefaultLoader
}

// NewLoadImageOrTensor builds the transform. def may be nil when every
// record is known to carry direct arrays.
func NewLoadImageOrTensor(keys Keys, def DefaultLoader) *LoadImageOrTensor {
	return &LoadImageOrTensor{Keys: keys, Default: def}
}

// Apply transforms a shallow clone of data.
func (t *LoadImageOrTensor) Apply(data record.Record) (record.Record, error) {
	d := data.Clone()

	useDefault := true
	for _, key := range t.Keys {
		v, err := fetch(d, key)
		if err != nil {
			return nil, err
		}

		switch v := v.(type) {
		case record.Path:
			// Decode the file to a raw array. The record keeps the
			// path value: the real load with metadata happens in the
			// default loader.
			if _, err := imaging.Decode(string(v)); err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
		case record.Raw:
			meta := d.MetaEntry(key)
			meta.FillDirect(v.Shape())
			d[key] = record.Tensor{MetaTensor: tensor.NewMetaTensor(v.Dense, meta)}
			useDefault = false
		case record.Tensor:
			// Already adapted; refresh the metadata entry and count
			// the key as directly handled.
			meta := d.MetaEntry(key)
			meta.FillDirect(v.Shape())
			d[key] = record.Tensor{MetaTensor: tensor.NewMetaTensor(v.Dense, meta)}
			useDefault = false
		default:
			return nil, fmt.Errorf("key %q: unexpected value type %T", key, v)
		}
	}

	if useDefault {
		if t.Default == nil {
			return nil, fmt.Errorf("keys %v hold no direct arrays and no default loader is configured", t.Keys)
		}
		return t.Default(d)
	}
	return d, nil
}
