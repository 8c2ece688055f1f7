package transform

import (
	"fmt"

	"github.com/curie-ml/curie/internal/imaging"
	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/tensor"
)

// FileLoader is the generic multi-key file loader: every target key must
// hold a file path, which is decoded into a tensor with a fully populated
// metadata entry.
//
// Reader resolution per key: the per-call override, then the
// construction-time reader, then registry dispatch on the file extension.
type FileLoader struct {
	Keys   Keys
	Reader imaging.Reader
}

// NewFileLoader builds a loader for keys. reader may be nil to use registry
// dispatch.
func NewFileLoader(keys Keys, reader imaging.Reader) *FileLoader {
	return &FileLoader{Keys: keys, Reader: reader}
}

// Apply loads every key with the configured reader.
func (l *FileLoader) Apply(data record.Record) (record.Record, error) {
	return l.ApplyWithReader(data, nil)
}

// ApplyWithReader loads every key, preferring the given reader when non-nil.
func (l *FileLoader) ApplyWithReader(data record.Record, reader imaging.Reader) (record.Record, error) {
	d := data.Clone()

	for _, key := range l.Keys {
		v, err := fetch(d, key)
		if err != nil {
			return nil, err
		}
		p, ok := v.(record.Path)
		if !ok {
			return nil, fmt.Errorf("key %q: expected file path, got %T", key, v)
		}

		r := reader
		if r == nil {
			r = l.Reader
		}
		if r == nil {
			if r, err = imaging.ReaderFor(string(p)); err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
		}

		arr, meta, err := r.Read(string(p))
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		entry := d.MetaEntry(key)
		entry.CopyFrom(meta)
		d[key] = record.Tensor{MetaTensor: tensor.NewMetaTensor(arr, entry)}
	}
	return d, nil
}
