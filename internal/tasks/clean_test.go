// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docextract/devcmd/internal/procexec"
)

func TestClean(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	code, err := f.env.Clean(context.Background(), parse(t, CleanSpec))
	require.NoError(t, err)
	assert.Equal(t, procexec.ExitSuccess, code)

	assert.Equal(t, [][]string{
		{"rm", "-rf", ".aws-sam"},
		{"rm", "-rf", ".coverage", "htmlcov"},
		{"find", ".", "-type", "d", "-name", "__pycache__", "-prune", "-exec", "rm", "-rf", "{}", "+"},
		{"find", ".", "-type", "f", "-name", "*.pyc", "-delete"},
		{"rm", "-rf", ".pytest_cache", ".mypy_cache"},
	}, f.runner.Argvs())
}

func TestClean_ContinuesAfterFailures(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.runner.Fail("build output", 1).Fail("compiled files", 1)

	code, err := f.env.Clean(context.Background(), parse(t, CleanSpec))
	require.NoError(t, err)
	assert.Equal(t, procexec.ExitSuccess, code)
	assert.Len(t, f.runner.Calls(), 5)
	assert.Contains(t, f.out.String(), "failed (exit 1)")
	assert.Contains(t, f.out.String(), "OK Clean complete!")
}
