// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"path/filepath"
	"testing"
)

func TestProvider_SourcesIsCopy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), `python: "python3"`)

	p := NewProvider()
	if _, err := p.Load(context.Background(), LoadOptions{ConfigDirPath: filepath.Join(dir, "cfg"), ProjectDir: dir}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got := p.Sources()
	if len(got) != 1 {
		t.Fatalf("Sources() = %v", got)
	}
	got[0] = "mutated"
	if p.Sources()[0] == "mutated" {
		t.Error("Sources() should return a copy")
	}
}

func TestConfigDir_Override(t *testing.T) {
	t.Cleanup(UseConfigDir("/tmp/devcmd-test"))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if dir != "/tmp/devcmd-test" {
		t.Errorf("ConfigDir() = %q", dir)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	if configDirOverride != "" {
		t.Skip("override active")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("APPDATA", "/tmp/xdg")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if filepath.Base(dir) != AppName {
		t.Errorf("ConfigDir() = %q, want it to end in %s", dir, AppName)
	}
}
