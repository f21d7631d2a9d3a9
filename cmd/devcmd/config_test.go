// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docextract/devcmd/internal/testutil"
)

func TestConfigShow(t *testing.T) {
	h := newHarness(t)
	h.provider.cfg.Lint.Strict = true

	require.Equal(t, 0, h.run("config", "show"))
	out := h.stdout.String()
	assert.Contains(t, out, "Current Configuration")
	assert.Contains(t, out, "using defaults")
	assert.Regexp(t, `strict\S*: \S*true`, out)
	assert.Contains(t, out, "function_env.S3_BUCKET")
	assert.Contains(t, out, "${S3_BUCKET_NAME}")
}

func TestConfigDump(t *testing.T) {
	t.Run("cue", func(t *testing.T) {
		h := newHarness(t)
		require.Equal(t, 0, h.run("config", "dump"))
		assert.Regexp(t, `python:\s+"python3"`, h.stdout.String())
	})

	t.Run("toml", func(t *testing.T) {
		h := newHarness(t)
		require.Equal(t, 0, h.run("config", "dump", "--format", "toml"))
		assert.Contains(t, h.stdout.String(), "python")
		assert.Contains(t, h.stdout.String(), "[deploy]")
	})

	t.Run("unknown format", func(t *testing.T) {
		h := newHarness(t)
		assert.Equal(t, 1, h.run("config", "dump", "--format", "ini"))
		assert.Contains(t, h.stderr.String(), `unknown format "ini"`)
	})
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("config", "init"))
	path := filepath.Join(h.dir, "devcmd.cue")
	assert.Contains(t, testutil.MustReadFile(t, path), "python")
	assert.Contains(t, h.stdout.String(), "Created default configuration")

	testutil.MustWriteFile(t, path, "python: \"mine\"\n")
	h.stdout.Reset()
	require.Equal(t, 0, h.run("config", "init"))
	assert.Equal(t, "python: \"mine\"\n", testutil.MustReadFile(t, path))
	assert.Contains(t, h.stdout.String(), "already exists")
}

func TestConfigPath(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("config", "path"))
	assert.Contains(t, h.stdout.String(), filepath.Join(h.dir, "devcmd.cue"))
}
