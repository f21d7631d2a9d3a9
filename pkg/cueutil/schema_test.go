// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const configLikeSchema = `
#Config: {
	python?: string & !=""
	lint?: strict?: bool
	sam?: {
		default_region?: =~"^[a-z]{2}-[a-z]+-[0-9]$"
		function_env?: [...{name: =~"^[A-Z_][A-Z0-9_]*$", value: string}]
	}
}
`

type samSettings struct {
	DefaultRegion string `json:"default_region"`
}

type settings struct {
	Python string      `json:"python"`
	SAM    samSettings `json:"sam"`
}

func mustSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := CompileSchema(configLikeSchema, "#Config")
	if err != nil {
		t.Fatalf("CompileSchema() error = %v", err)
	}
	return s
}

func TestCompileSchema_MissingDefinition(t *testing.T) {
	t.Parallel()

	if _, err := CompileSchema(configLikeSchema, "#Project"); err == nil {
		t.Fatal("expected error for a definition the schema does not declare")
	}
}

func TestDecode_Struct(t *testing.T) {
	t.Parallel()

	got, err := Decode[settings](mustSchema(t), []byte(`
python: "python3.12"
sam: default_region: "eu-central-1"
`), WithFilename("devcmd.cue"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Python != "python3.12" || got.SAM.DefaultRegion != "eu-central-1" {
		t.Errorf("Decode() = %+v", got)
	}
}

func TestDecode_PartialMap(t *testing.T) {
	t.Parallel()

	got, err := Decode[map[string]any](mustSchema(t), []byte(`lint: strict: true`),
		WithFilename("devcmd.cue"), WithConcrete(false))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, ok := got["python"]; ok {
		t.Error("unset optional fields should be left out of the map")
	}
	lint, ok := got["lint"].(map[string]any)
	if !ok || lint["strict"] != true {
		t.Errorf("lint = %v", got["lint"])
	}
}

func TestDecode_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{"unknown field", `colour: "blue"`, "colour"},
		{"bad region", `sam: default_region: "moon"`, "sam.default_region"},
		{"list element", `sam: function_env: [{name: "OK", value: "1"}, {name: "1X", value: "2"}]`, "sam.function_env[1].name"},
		{"wrong type", `lint: strict: "yes"`, "lint.strict"},
		{"syntax", `python: `, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode[map[string]any](mustSchema(t), []byte(tt.data),
				WithFilename("devcmd.cue"), WithConcrete(false))
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Decode() error = %v, want *ValidationError", err)
			}
			if ve.File != "devcmd.cue" || !strings.HasPrefix(err.Error(), "devcmd.cue: ") {
				t.Errorf("error should start with the file name: %q", err.Error())
			}
			if tt.wantPath != "" && !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("error %q should locate %q", err.Error(), tt.wantPath)
			}
		})
	}
}

func TestDecode_TooLarge(t *testing.T) {
	t.Parallel()

	_, err := Decode[map[string]any](mustSchema(t), []byte(`python: "python3"`),
		WithFilename("devcmd.cue"), WithMaxFileSize(4))
	var se *SizeError
	if !errors.As(err, &se) {
		t.Fatalf("Decode() error = %v, want *SizeError", err)
	}
	if se.Max != 4 || !strings.Contains(err.Error(), "exceeds the 4 byte limit") {
		t.Errorf("SizeError = %+v (%v)", se, err)
	}
}

func TestValidationError_MultipleProblems(t *testing.T) {
	t.Parallel()

	err := &ValidationError{File: "devcmd.cue", Problems: []Problem{
		{Path: "lint.strict", Message: "conflicting values"},
		{Message: "expected operand"},
	}}
	want := "devcmd.cue: 2 problems:\n  lint.strict: conflicting values\n  expected operand"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestJSONPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		elems []string
		want  string
	}{
		{nil, ""},
		{[]string{"python"}, "python"},
		{[]string{"sam", "function_env", "0", "name"}, "sam.function_env[0].name"},
		{[]string{"0"}, "0"},
	}
	for _, tt := range tests {
		if got := jsonPath(tt.elems); got != tt.want {
			t.Errorf("jsonPath(%v) = %q, want %q", tt.elems, got, tt.want)
		}
	}
}
