// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strconv"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

type (
	// ValidationError lists what is wrong with one CUE document.
	ValidationError struct {
		File     string
		Problems []Problem
	}

	// Problem is a single failed constraint.
	Problem struct {
		// Path locates the value, e.g. "sam.function_env[1].name". Empty for
		// syntax errors and problems at the top level.
		Path    string
		Message string
	}

	// SizeError rejects a document larger than the configured limit.
	SizeError struct {
		File string
		Size int64
		Max  int64
	}
)

// Error renders "<file>: <path>: <message>", one line per problem.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return e.File + ": " + e.Problems[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d problems:", e.File, len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.String())
	}
	return b.String()
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", e.File, e.Size, e.Max)
}

func newValidationError(file string, err error) *ValidationError {
	ve := &ValidationError{File: file}
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		ve.Problems = []Problem{{Message: err.Error()}}
		return ve
	}
	for _, e := range list {
		elems := cueerrors.Path(e)
		path := jsonPath(elems)
		msg := e.Error()
		// CUE may repeat the dotted path at the start of the message.
		for _, prefix := range []string{path, strings.Join(elems, ".")} {
			if prefix != "" && strings.HasPrefix(msg, prefix) {
				msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, prefix), ":"))
				break
			}
		}
		ve.Problems = append(ve.Problems, Problem{Path: path, Message: msg})
	}
	return ve
}

// jsonPath renders CUE path elements with list indices in brackets:
// ["sam", "function_env", "1", "name"] becomes "sam.function_env[1].name".
func jsonPath(elems []string) string {
	var b strings.Builder
	for i, el := range elems {
		if _, err := strconv.Atoi(el); err == nil && i > 0 {
			b.WriteString("[" + el + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(el)
	}
	return b.String()
}
