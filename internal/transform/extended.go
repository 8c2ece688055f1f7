package transform

import (
	"github.com/curie-ml/curie/internal/imaging"
	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/tensor"
)

// ExtendedFileLoader wraps a FileLoader so records may also carry direct
// in-memory arrays. Any direct-array key converts to a tensor with metadata
// and skips the file-loading path for the entire call, even for keys still
// holding paths. A record with only path keys delegates wholly to the
// wrapped loader.
//
// The short-circuit is deliberately all-or-nothing per call, not per key.
type ExtendedFileLoader struct {
	Loader *FileLoader
}

// NewExtendedFileLoader builds the transform around a fresh FileLoader.
func NewExtendedFileLoader(keys Keys, reader imaging.Reader) *ExtendedFileLoader {
	return &ExtendedFileLoader{Loader: NewFileLoader(keys, reader)}
}

// Apply transforms data with the construction-time reader.
func (t *ExtendedFileLoader) Apply(data record.Record) (record.Record, error) {
	return t.ApplyWithReader(data, nil)
}

// ApplyWithReader transforms data, preferring reader for file decoding when
// non-nil.
func (t *ExtendedFileLoader) ApplyWithReader(data record.Record, reader imaging.Reader) (record.Record, error) {
	d := data.Clone()

	direct := false
	for _, key := range t.Loader.Keys {
		v, err := fetch(d, key)
		if err != nil {
			return nil, err
		}
		raw, ok := v.(record.Raw)
		if !ok {
			continue
		}

		direct = true
		meta := d.MetaEntry(key)
		meta.FillDirect(raw.Shape())
		d[key] = record.Tensor{MetaTensor: tensor.NewMetaTensor(raw.Dense, meta)}
	}

	if !direct {
		return t.Loader.ApplyWithReader(d, reader)
	}
	return d, nil
}
