package imaging

import (
	"fmt"
	"sync"

	"github.com/curie-ml/curie/internal/tensor"
)

// registry holds the ordered list of available readers. Later registrations
// take precedence, so callers can shadow the standard reader for specific
// formats.
var registry = struct {
	mu      sync.RWMutex
	readers []Reader
}{
	readers: []Reader{NewStdReader()},
}

// Register adds a reader ahead of the existing ones.
func Register(r Reader) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.readers = append([]Reader{r}, registry.readers...)
}

// ReaderFor returns the first registered reader that handles path.
func ReaderFor(path string) (Reader, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	for _, r := range registry.readers {
		if r.CanRead(path) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no registered reader for %q", path)
}

// Decode reads the image at path into a raw array, discarding metadata.
// It is the path-to-array collaborator used when a transform only needs the
// pixel data.
func Decode(path string) (*tensor.Dense, error) {
	r, err := ReaderFor(path)
	if err != nil {
		return nil, err
	}
	arr, _, err := r.Read(path)
	return arr, err
}
