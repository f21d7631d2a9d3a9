// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "devcmd"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// ProjectFileName is the per-project config file looked up in the working directory.
	ProjectFileName = "devcmd.cue"
	// EnvPrefix prefixes environment overrides (DEVCMD_SAM_DEFAULT_REGION, ...).
	EnvPrefix = "DEVCMD"

	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the devcmd configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// setDefaults registers every key so AutomaticEnv can override keys that no
// file mentions.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("python", d.Python)
	v.SetDefault("env_file", d.EnvFile)
	v.SetDefault("env_template", d.EnvTemplate)
	v.SetDefault("lint.paths", d.Lint.Paths)
	v.SetDefault("lint.test_paths", d.Lint.TestPaths)
	v.SetDefault("lint.strict", d.Lint.Strict)
	v.SetDefault("test.dir", d.Test.Dir)
	v.SetDefault("test.integration_dir", d.Test.IntegrationDir)
	v.SetDefault("test.smoke_dir", d.Test.SmokeDir)
	v.SetDefault("test.coverage_packages", d.Test.CoveragePackages)
	v.SetDefault("test.coverage_report", d.Test.CoverageReport)
	v.SetDefault("sam.default_region", d.SAM.DefaultRegion)
	v.SetDefault("sam.function_name", d.SAM.FunctionName)
	v.SetDefault("sam.template", d.SAM.Template)
	v.SetDefault("sam.use_container", d.SAM.UseContainer)
	v.SetDefault("sam.function_env", envVarsToMaps(d.SAM.FunctionEnv))
	v.SetDefault("deploy.script", d.Deploy.Script)
	v.SetDefault("deploy.shell", string(d.Deploy.Shell))
	v.SetDefault("deploy.verify_bucket", d.Deploy.VerifyBucket)
	v.SetDefault("deploy.bucket_env", d.Deploy.BucketEnv)
	v.SetDefault("hooks.tool", d.Hooks.Tool)
	v.SetDefault("ui.verbose", d.UI.Verbose)
	v.SetDefault("ui.log_level", string(d.UI.LogLevel))
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the config and the files that were merged,
// in merge order.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, []string, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	schema, err := cueutil.CompileSchema(configSchema, "#Config")
	if err != nil {
		return nil, nil, fmt.Errorf("internal error: %w", err)
	}

	var sources []string

	if opts.ConfigFilePath != "" {
		// An explicit file replaces both the user and the project file.
		if !fileExists(opts.ConfigFilePath) {
			return nil, nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'devcmd config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := mergeFile(v, schema, opts.ConfigFilePath); err != nil {
			return nil, nil, err
		}
		sources = append(sources, opts.ConfigFilePath)
	} else {
		candidates, err := candidatePaths(opts)
		if err != nil {
			return nil, nil, err
		}
		for _, path := range candidates {
			if !fileExists(path) {
				continue
			}
			if err := mergeFile(v, schema, path); err != nil {
				return nil, nil, err
			}
			sources = append(sources, path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check DEVCMD_* environment variables for typos").
			Wrap(err).
			BuildError()
	}

	return &cfg, sources, nil
}

// candidatePaths lists the user file followed by the project file.
func candidatePaths(opts LoadOptions) ([]string, error) {
	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return nil, err
	}
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	return []string{
		filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
		filepath.Join(projectDir, ProjectFileName),
	}, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

func mergeFile(v *viper.Viper, schema *cueutil.Schema, path string) error {
	if err := loadCUEIntoViper(v, schema, path); err != nil {
		return issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check that the file contains valid CUE syntax").
			WithSuggestion("Verify the configuration values match the expected schema").
			WithSuggestion("Run 'devcmd config init' to write a commented default file").
			Wrap(err).
			BuildError()
	}
	return nil
}

// loadCUEIntoViper validates a CUE file against #Config and merges its
// contents over whatever Viper already holds.
func loadCUEIntoViper(v *viper.Viper, schema *cueutil.Schema, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	values, err := cueutil.Decode[map[string]any](schema, data,
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
		cueutil.WithMaxFileSize(maxConfigFileSize),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// Validate checks the values the schema cannot see, such as environment overrides.
func (c *Config) Validate() error {
	if ok, errs := c.Deploy.Shell.IsValid(); !ok {
		return errs[0]
	}
	if ok, errs := c.UI.LogLevel.IsValid(); !ok {
		return errs[0]
	}
	if strings.TrimSpace(c.Python) == "" {
		return fmt.Errorf("python must not be empty")
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// UserConfigPath returns the location of the user config file.
func UserConfigPath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// CreateDefaultConfig writes a default config file if it doesn't exist.
// It reports the path and whether a file was written.
func CreateDefaultConfig() (string, bool, error) {
	cfgPath, err := UserConfigPath()
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := Save(DefaultConfig()); err != nil {
		return "", false, err
	}
	return cfgPath, true, nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	cfgPath, err := UserConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func envVarsToMaps(vars []EnvVar) []map[string]any {
	out := make([]map[string]any, 0, len(vars))
	for _, v := range vars {
		out = append(out, map[string]any{"name": v.Name, "value": v.Value})
	}
	return out
}

func expand(s string, getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	return os.Expand(s, getenv)
}
