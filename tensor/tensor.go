// Copyright 2026 Curie ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the array and metadata types
// used by Curie transforms.
//
// The package defines the data model shared by all transforms:
//   - Dense: a contiguous N-dimensional array with runtime type information
//   - Meta: the spatial metadata mapping attached to an image key
//   - MetaTensor: an array bundled with its metadata
//
// Example:
//
//	arr, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mt := tensor.NewMetaTensor(arr, tensor.DirectMeta(arr.Shape()))
package tensor

import (
	"github.com/curie-ml/curie/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for supported array element types.
// Supported types: float32, float64, int32, int64, uint8.
type DType = tensor.DType

// DataType represents the runtime type of an array's elements.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
)

// Shape represents the dimensions of an array.
// Example: Shape{10, 10, 3} is an H×W×C image with 3 channels.
type Shape = tensor.Shape

// Dense is a contiguous row-major N-dimensional array.
type Dense = tensor.Dense

// Affine is a row-major 4x4 spatial orientation matrix.
type Affine = tensor.Affine

// Meta is the companion metadata mapping for an image key: spatial shape,
// original channel axis, and original affine.
type Meta = tensor.Meta

// MetaTensor binds an array to its metadata mapping.
type MetaTensor = tensor.MetaTensor

// Creation functions

// NewDense creates a zero-initialized array with the given shape and type.
//
// Example:
//
//	arr, err := tensor.NewDense(tensor.Shape{10, 10, 3}, tensor.Uint8)
func NewDense(shape Shape, dtype DataType) (*Dense, error) {
	return tensor.NewDense(shape, dtype)
}

// FromSlice creates an array from a Go slice. The slice is copied.
//
// Example:
//
//	arr, err := tensor.FromSlice([]int32{-1, 0, 2, 5}, tensor.Shape{4})
func FromSlice[T DType](data []T, shape Shape) (*Dense, error) {
	return tensor.FromSlice(data, shape)
}

// NewMeta returns an empty metadata mapping.
func NewMeta() *Meta {
	return tensor.NewMeta()
}

// DirectMeta builds the metadata mapping for a direct in-memory array:
// spatial shape is the array shape minus the last axis, channels live on
// the last axis, and no affine is derivable.
func DirectMeta(shape Shape) *Meta {
	return tensor.DirectMeta(shape)
}

// NewMetaTensor wraps an array with its metadata.
func NewMetaTensor(d *Dense, meta *Meta) *MetaTensor {
	return tensor.NewMetaTensor(d, meta)
}

// Identity returns the identity affine.
func Identity() *Affine {
	return tensor.Identity()
}
