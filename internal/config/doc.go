// SPDX-License-Identifier: MPL-2.0

// Package config handles devcmd configuration using Viper with CUE as the file format.
//
// Settings are layered: built-in defaults, then the user file
// (~/.config/devcmd/config.cue or the platform equivalent), then the project
// file (devcmd.cue in the working directory), then DEVCMD_* environment
// variables. An explicit --config path replaces both files.
//
// Every file is validated against the embedded #Config schema
// (config_schema.cue) before it is merged, so unknown keys and wrong types are
// reported with their CUE path.
package config
