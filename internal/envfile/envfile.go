// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultPath is the overlay file consulted by the build, invoke and deploy tasks.
const DefaultPath = ".env"

var (
	// ErrMalformedLine is the sentinel error wrapped by MalformedLineError.
	ErrMalformedLine = errors.New("malformed env line")
	// ErrEmptyKey is returned for lines such as "=value".
	ErrEmptyKey = errors.New("empty variable name")
)

type (
	// Entry is a single KEY=value assignment with its source line number.
	Entry struct {
		Key   string
		Value string
		Line  int
	}

	// Overlay is the ordered list of assignments read from an env file.
	// When a key repeats, the later entry wins on Apply and Map.
	Overlay struct {
		Path    string
		Entries []Entry
	}

	// MalformedLineError reports a non-comment line that has no '='.
	MalformedLineError struct {
		Path    string
		Line    int
		Content string
	}

	// SetenvFunc writes one variable. os.Setenv satisfies it.
	SetenvFunc func(key, value string) error
)

// Error implements the error interface.
func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s:%d: invalid format (missing '='): %q", e.Path, e.Line, e.Content)
}

// Unwrap returns ErrMalformedLine for errors.Is checks.
func (e *MalformedLineError) Unwrap() error { return ErrMalformedLine }

// Load reads the overlay at path. A missing file yields an empty overlay.
func Load(path string) (*Overlay, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Overlay{Path: path}, nil
		}
		return nil, fmt.Errorf("failed to read env file '%s': %w", path, err)
	}
	return Parse(content, path)
}

// Parse parses overlay content. The filename is only used in error messages.
func Parse(content []byte, filename string) (*Overlay, error) {
	o := &Overlay{Path: filename}

	for i, line := range strings.Split(string(content), "\n") {
		lineNum := i + 1

		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, &MalformedLineError{Path: filename, Line: lineNum, Content: line}
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%s:%d: %w", filename, lineNum, ErrEmptyKey)
		}

		o.Entries = append(o.Entries, Entry{Key: key, Value: value, Line: lineNum})
	}

	return o, nil
}

// Map returns the resulting key/value map, later entries overwriting earlier ones.
func (o *Overlay) Map() map[string]string {
	m := make(map[string]string, len(o.Entries))
	for _, e := range o.Entries {
		m[e.Key] = e.Value
	}
	return m
}

// Len returns the number of assignments.
func (o *Overlay) Len() int { return len(o.Entries) }

// Apply writes every entry in order through setenv, overwriting existing values.
// A nil setenv uses os.Setenv.
func (o *Overlay) Apply(setenv SetenvFunc) error {
	if setenv == nil {
		setenv = os.Setenv
	}
	for _, e := range o.Entries {
		if err := setenv(e.Key, e.Value); err != nil {
			return fmt.Errorf("%s:%d: failed to set %s: %w", o.Path, e.Line, e.Key, err)
		}
	}
	return nil
}
