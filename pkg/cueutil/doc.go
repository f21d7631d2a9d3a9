// SPDX-License-Identifier: MPL-2.0

// Package cueutil checks CUE documents against an embedded schema.
//
// A schema is compiled once per load and every file is decoded against it:
//
//	schema, err := cueutil.CompileSchema(configSchema, "#Config")
//	...
//	values, err := cueutil.Decode[map[string]any](schema, data,
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
//
// Problems come back as a *ValidationError naming the file and the
// JSON-style path of each offending value.
package cueutil
