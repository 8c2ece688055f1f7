// Package record defines the per-sample data record flowing through
// transforms: a mapping from string keys to tagged values.
package record

import (
	"github.com/curie-ml/curie/internal/tensor"
)

// Value is the tagged union of everything a record slot can hold. The
// concrete variants are Path, Raw, Tensor and MetaEntry; transforms resolve
// them with exhaustive type switches.
type Value interface {
	isValue()
}

// Path is a file-path value awaiting decode.
type Path string

func (Path) isValue() {}

// Raw is a direct in-memory array value that has not yet been adapted for
// downstream processing.
type Raw struct {
	*tensor.Dense
}

func (Raw) isValue() {}

// Tensor is a tensor-with-metadata value, the uniform representation
// produced by the loading transforms.
type Tensor struct {
	*tensor.MetaTensor
}

func (Tensor) isValue() {}

// MetaEntry is the companion metadata mapping stored under MetaKey(key).
type MetaEntry struct {
	*tensor.Meta
}

func (MetaEntry) isValue() {}

// MetaSuffix separates an image key from its companion metadata key.
const MetaSuffix = "_meta"

// MetaKey returns the companion metadata key for an image key.
func MetaKey(key string) string {
	return key + MetaSuffix
}

// Record is the per-sample dictionary of named values. Transforms mutate a
// shallow clone in place; ownership is transient, scoped to a single
// transform invocation.
type Record map[string]Value

// Clone returns a shallow copy. Nested values stay shared by reference, so
// the caller's map object is never mutated but its arrays may be.
func (r Record) Clone() Record {
	d := make(Record, len(r))
	for k, v := range r {
		d[k] = v
	}
	return d
}

// MetaEntry returns the metadata mapping for key, creating an empty one
// under MetaKey(key) if absent. Metadata keys are always created before
// being populated.
func (r Record) MetaEntry(key string) *tensor.Meta {
	mk := MetaKey(key)
	if v, ok := r[mk]; ok {
		if me, ok := v.(MetaEntry); ok {
			return me.Meta
		}
	}
	m := tensor.NewMeta()
	r[mk] = MetaEntry{Meta: m}
	return m
}
