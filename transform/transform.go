// Copyright 2026 Curie ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package transform provides the public API for the pre-inference data
// transforms: loading images from file paths or in-memory arrays into
// tensors with metadata, and normalizing label masks to a binary indicator
// value.
//
// Transforms are stateless per call and safe to share across goroutines as
// long as their readers and default loaders are reentrant.
//
// Example:
//
//	chain := transform.Compose{
//	    transform.NewExtendedFileLoader(transform.Keys{"image", "label"}, nil),
//	    transform.NewNormalizeLabel(transform.Keys{"label"}),
//	}
//	out, err := chain.Apply(record.Record{
//	    "image": record.Path("/data/scan.png"),
//	    "label": record.Path("/data/mask.png"),
//	})
package transform

import (
	"github.com/curie-ml/curie/internal/imaging"
	"github.com/curie-ml/curie/internal/transform"
)

// Transform rewrites a data record.
type Transform = transform.Transform

// Keys is the ordered collection of record keys a transform targets.
type Keys = transform.Keys

// Compose applies transforms in order, stopping at the first error.
type Compose = transform.Compose

// DefaultLoader loads a whole record when none of the target keys carried a
// direct array.
type DefaultLoader = transform.DefaultLoader

// LoadImageOrTensor loads each target key either from a file path or from a
// direct in-memory array, key by key.
type LoadImageOrTensor = transform.LoadImageOrTensor

// FileLoader is the generic multi-key file loader.
type FileLoader = transform.FileLoader

// ExtendedFileLoader extends FileLoader so records may also carry direct
// in-memory arrays; any direct array skips file loading for the whole call.
type ExtendedFileLoader = transform.ExtendedFileLoader

// NormalizeLabel collapses every positive label element to a configured
// value.
type NormalizeLabel = transform.NormalizeLabel

// ErrMissingKey is returned when a target key is absent from the record.
var ErrMissingKey = transform.ErrMissingKey

// NewLoadImageOrTensor builds the per-key loading transform. def may be nil
// when every record is known to carry direct arrays.
func NewLoadImageOrTensor(keys Keys, def DefaultLoader) *LoadImageOrTensor {
	return transform.NewLoadImageOrTensor(keys, def)
}

// NewFileLoader builds the generic file loader. reader may be nil to use
// registry dispatch on the file extension.
func NewFileLoader(keys Keys, reader imaging.Reader) *FileLoader {
	return transform.NewFileLoader(keys, reader)
}

// NewExtendedFileLoader builds the array-aware file loader.
func NewExtendedFileLoader(keys Keys, reader imaging.Reader) *ExtendedFileLoader {
	return transform.NewExtendedFileLoader(keys, reader)
}

// NewNormalizeLabel builds the label transform with the conventional
// replacement value 1.
func NewNormalizeLabel(keys Keys) *NormalizeLabel {
	return transform.NewNormalizeLabel(keys)
}
