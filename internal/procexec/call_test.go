// SPDX-License-Identifier: MPL-2.0

package procexec

import (
	"slices"
	"testing"
)

func TestCallString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call Call
		want string
	}{
		{"plain words", Command("isort", "app", "lib"), "isort app lib"},
		{"no args", Command("mypy"), "mypy"},
		{"env prefix sorted", ScriptCall("./deploy.sh").WithEnv("STAGE", "prod").WithEnv("A", "1"), "A=1 STAGE=prod ./deploy.sh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.call.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCallStringQuotesSpaces(t *testing.T) {
	t.Parallel()

	got := Command("pytest", "-m", "not integration").String()
	if got == "pytest -m not integration" {
		t.Errorf("String() = %q, argument with spaces was not quoted", got)
	}
}

func TestCallWithEnvDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := Command("deploy").WithEnv("STAGE", "dev")
	derived := base.WithEnv("STAGE", "prod")

	if base.Env["STAGE"] != "dev" {
		t.Errorf("base env mutated: %v", base.Env)
	}
	if derived.Env["STAGE"] != "prod" {
		t.Errorf("derived env = %v", derived.Env)
	}
}

func TestCallNameAndPolicy(t *testing.T) {
	t.Parallel()

	c := Command("rm", "-rf", ".aws-sam")
	if c.Name() != "rm" {
		t.Errorf("Name() = %q, want program", c.Name())
	}
	if c.Policy != Fatal {
		t.Errorf("default policy = %v, want fatal", c.Policy)
	}

	c = c.Named("build cache").Tolerant()
	if c.Name() != "build cache" {
		t.Errorf("Name() = %q", c.Name())
	}
	if c.Policy != BestEffort || c.Policy.String() != "best-effort" {
		t.Errorf("policy = %v", c.Policy)
	}
}

func TestEnvToSliceSorted(t *testing.T) {
	t.Parallel()

	got := EnvToSlice(map[string]string{"B": "2", "A": "1", "C": ""})
	want := []string{"A=1", "B=2", "C="}
	if !slices.Equal(got, want) {
		t.Errorf("EnvToSlice() = %v, want %v", got, want)
	}
}
