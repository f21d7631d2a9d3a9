// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config directory when non-empty.
var configDirOverride string

// UseConfigDir points ConfigDir at dir until the returned func is called.
// Tests use it because os.UserHomeDir ignores $HOME on some platforms.
func UseConfigDir(dir string) (restore func()) {
	prev := configDirOverride
	configDirOverride = dir
	return func() { configDirOverride = prev }
}
