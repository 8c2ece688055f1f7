// Copyright 2026 Curie ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package imaging provides the public API for decoding image files into
// arrays with spatial metadata.
//
// The built-in reader handles PNG, JPEG, GIF, BMP, TIFF and WebP. Custom
// formats plug in through Register:
//
//	imaging.Register(myDicomReader)
//	arr, err := imaging.Decode("/data/scan.dcm")
package imaging

import (
	"github.com/curie-ml/curie/internal/imaging"
	"github.com/curie-ml/curie/internal/tensor"
)

// Reader decodes an image file into a raw array plus its metadata mapping.
// Implementations must be reentrant.
type Reader = imaging.Reader

// StdReader decodes common raster formats into H×W×C uint8 arrays.
type StdReader = imaging.StdReader

// NewStdReader returns a reader for the standard raster formats.
func NewStdReader() *StdReader {
	return imaging.NewStdReader()
}

// Register adds a reader ahead of the existing ones.
func Register(r Reader) {
	imaging.Register(r)
}

// ReaderFor returns the first registered reader that handles path.
func ReaderFor(path string) (Reader, error) {
	return imaging.ReaderFor(path)
}

// Decode reads the image at path into a raw array, discarding metadata.
func Decode(path string) (*tensor.Dense, error) {
	return imaging.Decode(path)
}
