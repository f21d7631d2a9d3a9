// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema is a compiled CUE definition that documents are unified with.
// A Schema is not safe for concurrent use.
type Schema struct {
	def cue.Value
}

// CompileSchema compiles src and selects the definition at path, e.g. "#Config".
func CompileSchema(src, path string) (*Schema, error) {
	v := cuecontext.New().CompileString(src, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath(path))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("schema has no %s: %w", path, err)
	}
	return &Schema{def: def}, nil
}

// Decode compiles data, unifies it with s, validates the result and decodes
// it into a T. Failures in the document are reported as *ValidationError,
// oversized input as *SizeError.
func Decode[T any](s *Schema, data []byte, opts ...Option) (T, error) {
	var out T

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if size := int64(len(data)); size > o.maxFileSize {
		return out, &SizeError{File: o.filename, Size: size, Max: o.maxFileSize}
	}

	doc := s.def.Context().CompileBytes(data, cue.Filename(o.filename))
	if err := doc.Err(); err != nil {
		return out, newValidationError(o.filename, err)
	}

	unified := s.def.Unify(doc)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return out, newValidationError(o.filename, err)
	}
	if err := unified.Decode(&out); err != nil {
		return out, newValidationError(o.filename, err)
	}
	return out, nil
}
