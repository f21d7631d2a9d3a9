// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected map[string]string
		absent   []string
	}{
		{
			name:     "two lines",
			content:  "A=1\nB=2",
			expected: map[string]string{"A": "1", "B": "2"},
		},
		{
			name:     "comment line ignored",
			content:  "#C=3\nA=1",
			expected: map[string]string{"A": "1"},
			absent:   []string{"C", "#C"},
		},
		{
			name:     "blank lines skipped",
			content:  "\nA=1\n\n   \nB=2\n",
			expected: map[string]string{"A": "1", "B": "2"},
		},
		{
			name:     "later key overwrites earlier",
			content:  "A=1\nA=2",
			expected: map[string]string{"A": "2"},
		},
		{
			name:     "value keeps extra equals",
			content:  "URL=https://example.com?x=y",
			expected: map[string]string{"URL": "https://example.com?x=y"},
		},
		{
			name:     "empty value",
			content:  "EMPTY=",
			expected: map[string]string{"EMPTY": ""},
		},
		{
			name:     "windows line endings",
			content:  "A=1\r\nB=2\r\n",
			expected: map[string]string{"A": "1", "B": "2"},
		},
		{
			name:     "values are literal",
			content:  `Q="quoted"`,
			expected: map[string]string{"Q": `"quoted"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o, err := Parse([]byte(tt.content), "test.env")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := o.Map()
			for k, v := range tt.expected {
				if got[k] != v {
					t.Errorf("expected %s=%q, got %s=%q", k, v, k, got[k])
				}
			}
			for _, k := range tt.absent {
				if _, ok := got[k]; ok {
					t.Errorf("key %q should not be present", k)
				}
			}
		})
	}
}

func TestParse_MalformedLineIsFatal(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("A=1\nNOEQUALS\nB=2"), ".env")
	if !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
	var lineErr *MalformedLineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("expected *MalformedLineError, got %T", err)
	}
	if lineErr.Line != 2 {
		t.Errorf("Line = %d, want 2", lineErr.Line)
	}
}

func TestParse_EmptyKey(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("=value"), ".env")
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	o, err := Load(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Len() != 0 {
		t.Errorf("expected empty overlay, got %d entries", o.Len())
	}
}

func TestApply_OverwritesInOrder(t *testing.T) {
	t.Parallel()

	o, err := Parse([]byte("A=1\nB=2\nA=3"), ".env")
	if err != nil {
		t.Fatal(err)
	}

	env := map[string]string{"A": "old", "KEEP": "x"}
	err = o.Apply(func(k, v string) error {
		env[k] = v
		return nil
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if env["A"] != "3" || env["B"] != "2" || env["KEEP"] != "x" {
		t.Errorf("env after apply = %v", env)
	}
}

func TestApply_PropagatesSetenvError(t *testing.T) {
	t.Parallel()

	o, err := Parse([]byte("A=1"), ".env")
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	if err := o.Apply(func(string, string) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Apply() error = %v, want boom", err)
	}
}

func TestApply_NilUsesProcessEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DEVCMD_ENVFILE_TEST=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEVCMD_ENVFILE_TEST", "before")

	o, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := o.Apply(nil); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := os.Getenv("DEVCMD_ENVFILE_TEST"); got != "from-file" {
		t.Errorf("DEVCMD_ENVFILE_TEST = %q, want from-file", got)
	}
}
