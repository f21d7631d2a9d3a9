// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// The devcmd command runs in-process through testscript.RunMain. Scripts use
// --dry-run so that no Python or SAM tooling is needed: every external call is
// echoed to stdout and reported as successful.
package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	cmd "github.com/docextract/devcmd/cmd/devcmd"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"devcmd": func() int {
			return cmd.Run(context.Background(), os.Args[1:], cmd.Dependencies{})
		},
	}))
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Keep user configuration out of the scripts.
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("AWS_REGION", "")
			env.Setenv("S3_BUCKET_NAME", "")
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
