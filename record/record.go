// Copyright 2026 Curie ML Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package record provides the public API for the per-sample data record:
// a mapping from string keys to tagged values flowing through transforms.
//
// Example:
//
//	rec := record.Record{
//	    "image": record.Path("/data/scan.png"),
//	    "label": record.Raw{Dense: arr},
//	}
package record

import (
	"github.com/curie-ml/curie/internal/record"
)

// Value is the tagged union of everything a record slot can hold:
// Path, Raw, Tensor or MetaEntry.
type Value = record.Value

// Path is a file-path value awaiting decode.
type Path = record.Path

// Raw is a direct in-memory array value.
type Raw = record.Raw

// Tensor is a tensor-with-metadata value.
type Tensor = record.Tensor

// MetaEntry is the companion metadata mapping stored under MetaKey(key).
type MetaEntry = record.MetaEntry

// Record is the per-sample dictionary of named values.
type Record = record.Record

// MetaSuffix separates an image key from its companion metadata key.
const MetaSuffix = record.MetaSuffix

// MetaKey returns the companion metadata key for an image key.
func MetaKey(key string) string {
	return record.MetaKey(key)
}
