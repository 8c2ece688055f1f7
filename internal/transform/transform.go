// Package transform implements the pre-inference data transforms: loading
// images from file paths or in-memory arrays into tensors with metadata,
// and normalizing label masks to a binary indicator value.
//
// Transforms are stateless per call: each Apply clones the incoming record
// shallowly, mutates the clone, and returns it. Failures abort the whole
// call and propagate to the caller; there are no retries and no partial
// recovery.
package transform

import (
	"errors"
	"fmt"

	"github.com/curie-ml/curie/internal/record"
)

// ErrMissingKey is returned when a target key is absent from the record.
var ErrMissingKey = errors.New("missing key")

// Transform rewrites a data record. Implementations must not retain the
// record across invocations.
type Transform interface {
	Apply(data record.Record) (record.Record, error)
}

// Keys is the ordered collection of record keys a transform targets.
type Keys []string

// Validate rejects empty key collections and empty key names.
func (k Keys) Validate() error {
	if len(k) == 0 {
		return errors.New("no keys configured")
	}
	for i, key := range k {
		if key == "" {
			return fmt.Errorf("empty key at index %d", i)
		}
	}
	return nil
}

// fetch returns the value for key or ErrMissingKey.
func fetch(d record.Record, key string) (record.Value, error) {
	v, ok := d[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	return v, nil
}

// Compose applies transforms in order, stopping at the first error.
type Compose []Transform

// Apply runs the chain over data.
func (c Compose) Apply(data record.Record) (record.Record, error) {
	d := data
	for i, t := range c {
		var err error
		d, err = t.Apply(d)
		if err != nil {
			return nil, fmt.Errorf("transform %d: %w", i, err)
		}
	}
	return d, nil
}
