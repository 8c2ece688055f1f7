// Package imaging decodes image files into raw arrays with spatial
// metadata. It provides the reader abstraction the loading transforms
// depend on and a registry of format-specific readers.
package imaging

import (
	"github.com/curie-ml/curie/internal/tensor"
)

// Reader decodes an image file into a raw array plus its metadata mapping.
// Implementations must be reentrant: one transform invocation per record may
// run concurrently with others sharing the same Reader.
type Reader interface {
	// CanRead reports whether this reader handles the file at path,
	// judged by extension only; no I/O happens here.
	CanRead(path string) bool

	// Read decodes the file into an H×W×C array and a populated metadata
	// mapping. Decode failures are returned unwrapped-recovered.
	Read(path string) (*tensor.Dense, *tensor.Meta, error)
}
