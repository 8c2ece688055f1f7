package tensor

import (
	"fmt"
	"unsafe"
)

// Dense is a contiguous row-major N-dimensional array with runtime type
// information. It is the raw, metadata-free representation that readers and
// transforms exchange.
type Dense struct {
	data  []byte
	shape Shape
	dtype DataType
}

// NewDense creates a zero-initialized Dense with the given shape and type.
func NewDense(shape Shape, dtype DataType) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &Dense{
		data:  make([]byte, shape.NumElements()*dtype.Size()),
		shape: shape.Clone(),
		dtype: dtype,
	}, nil
}

// FromSlice creates a Dense from a Go slice. The slice is copied.
func FromSlice[T DType](data []T, shape Shape) (*Dense, error) {
	var dummy T
	dtype := inferDataType(dummy)

	d, err := NewDense(shape, dtype)
	if err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	if len(data) > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*dtype.Size())
		copy(d.data, src)
	}
	return d, nil
}

// Shape returns the array's shape.
func (d *Dense) Shape() Shape {
	return d.shape
}

// DType returns the array's data type.
func (d *Dense) DType() DataType {
	return d.dtype
}

// NumElements returns the total number of elements.
func (d *Dense) NumElements() int {
	return d.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (d *Dense) ByteSize() int {
	return d.NumElements() * d.dtype.Size()
}

// Data returns the raw byte slice backing the array.
func (d *Dense) Data() []byte {
	return d.data
}

// Clone returns a deep copy of the array.
func (d *Dense) Clone() *Dense {
	data := make([]byte, len(d.data))
	copy(data, d.data)
	return &Dense{
		data:  data,
		shape: d.shape.Clone(),
		dtype: d.dtype,
	}
}

// AsFloat32 interprets the data as []float32.
// Panics if the array's dtype is not Float32.
func (d *Dense) AsFloat32() []float32 {
	if d.dtype != Float32 {
		panic(fmt.Sprintf("array dtype is %s, not float32", d.dtype))
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&d.data[0])), d.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the array's dtype is not Float64.
func (d *Dense) AsFloat64() []float64 {
	if d.dtype != Float64 {
		panic(fmt.Sprintf("array dtype is %s, not float64", d.dtype))
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&d.data[0])), d.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the array's dtype is not Int32.
func (d *Dense) AsInt32() []int32 {
	if d.dtype != Int32 {
		panic(fmt.Sprintf("array dtype is %s, not int32", d.dtype))
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&d.data[0])), d.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the array's dtype is not Int64.
func (d *Dense) AsInt64() []int64 {
	if d.dtype != Int64 {
		panic(fmt.Sprintf("array dtype is %s, not int64", d.dtype))
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&d.data[0])), d.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the array's dtype is not Uint8.
func (d *Dense) AsUint8() []uint8 {
	if d.dtype != Uint8 {
		panic(fmt.Sprintf("array dtype is %s, not uint8", d.dtype))
	}
	return d.data
}
