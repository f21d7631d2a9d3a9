// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ShellNative runs the deploy script with the host's bash.
	ShellNative ShellMode = "native"
	// ShellVirtual runs the deploy script with the embedded mvdan/sh interpreter.
	ShellVirtual ShellMode = "virtual"

	// DefaultRegion is used when AWS_REGION is not set.
	DefaultRegion = "us-west-2"
	// DefaultFunctionName is the SAM logical ID invoked locally.
	DefaultFunctionName = "DocumentExtractionFunction"
)

var (
	// ErrInvalidShellMode is returned when a ShellMode value is not recognized.
	ErrInvalidShellMode = errors.New("invalid shell mode")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

type (
	// ShellMode selects how script calls are executed.
	ShellMode string

	// LogLevel is the minimum level written by the logger.
	LogLevel string

	// InvalidShellModeError is returned when a ShellMode value is not recognized.
	// It wraps ErrInvalidShellMode for errors.Is() compatibility.
	InvalidShellModeError struct {
		Value ShellMode
	}

	// Config is the complete devcmd configuration.
	Config struct {
		// Python is the interpreter used for venv creation and pip.
		Python string `json:"python" mapstructure:"python" toml:"python"`
		// EnvFile is the local environment overlay.
		EnvFile string `json:"env_file" mapstructure:"env_file" toml:"env_file"`
		// EnvTemplate is copied to EnvFile by setup when present.
		EnvTemplate string `json:"env_template" mapstructure:"env_template" toml:"env_template"`

		Lint   LintConfig   `json:"lint" mapstructure:"lint" toml:"lint"`
		Test   TestConfig   `json:"test" mapstructure:"test" toml:"test"`
		SAM    SAMConfig    `json:"sam" mapstructure:"sam" toml:"sam"`
		Deploy DeployConfig `json:"deploy" mapstructure:"deploy" toml:"deploy"`
		Hooks  HooksConfig  `json:"hooks" mapstructure:"hooks" toml:"hooks"`
		UI     UIConfig     `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// LintConfig configures the lint task.
	LintConfig struct {
		Paths     []string `json:"paths" mapstructure:"paths" toml:"paths"`
		TestPaths []string `json:"test_paths" mapstructure:"test_paths" toml:"test_paths"`
		// Strict makes any failed step fail the whole run. When false (default)
		// lint reports failures but exits 0.
		Strict bool `json:"strict" mapstructure:"strict" toml:"strict"`
	}

	// TestConfig configures the test task.
	TestConfig struct {
		Dir              string   `json:"dir" mapstructure:"dir" toml:"dir"`
		IntegrationDir   string   `json:"integration_dir" mapstructure:"integration_dir" toml:"integration_dir"`
		SmokeDir         string   `json:"smoke_dir" mapstructure:"smoke_dir" toml:"smoke_dir"`
		CoveragePackages []string `json:"coverage_packages" mapstructure:"coverage_packages" toml:"coverage_packages"`
		CoverageReport   string   `json:"coverage_report" mapstructure:"coverage_report" toml:"coverage_report"`
	}

	// SAMConfig configures build and local invoke.
	SAMConfig struct {
		DefaultRegion string   `json:"default_region" mapstructure:"default_region" toml:"default_region"`
		FunctionName  string   `json:"function_name" mapstructure:"function_name" toml:"function_name"`
		Template      string   `json:"template" mapstructure:"template" toml:"template"`
		UseContainer  bool     `json:"use_container" mapstructure:"use_container" toml:"use_container"`
		FunctionEnv   []EnvVar `json:"function_env" mapstructure:"function_env" toml:"function_env"`
	}

	// EnvVar is one variable of the local invoke environment. Value is
	// expanded against the process environment ($VAR, ${VAR}).
	EnvVar struct {
		Name  string `json:"name" mapstructure:"name" toml:"name"`
		Value string `json:"value" mapstructure:"value" toml:"value"`
	}

	// DeployConfig configures the deploy task.
	DeployConfig struct {
		Script       string    `json:"script" mapstructure:"script" toml:"script"`
		Shell        ShellMode `json:"shell" mapstructure:"shell" toml:"shell"`
		VerifyBucket bool      `json:"verify_bucket" mapstructure:"verify_bucket" toml:"verify_bucket"`
		BucketEnv    string    `json:"bucket_env" mapstructure:"bucket_env" toml:"bucket_env"`
	}

	// HooksConfig configures the hook manager.
	HooksConfig struct {
		Tool string `json:"tool" mapstructure:"tool" toml:"tool"`
	}

	// UIConfig configures output.
	UIConfig struct {
		Verbose  bool     `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		LogLevel LogLevel `json:"log_level" mapstructure:"log_level" toml:"log_level"`
	}
)

// Error implements the error interface.
func (e *InvalidShellModeError) Error() string {
	return fmt.Sprintf("invalid shell mode %q (valid: native, virtual)", e.Value)
}

// Unwrap returns ErrInvalidShellMode for errors.Is() compatibility.
func (e *InvalidShellModeError) Unwrap() error { return ErrInvalidShellMode }

// IsValid returns whether the ShellMode is one of the defined modes.
func (m ShellMode) IsValid() (bool, []error) {
	switch m {
	case ShellNative, ShellVirtual:
		return true, nil
	default:
		return false, []error{&InvalidShellModeError{Value: m}}
	}
}

// String returns the string representation of the ShellMode.
func (m ShellMode) String() string { return string(m) }

// IsValid returns whether the LogLevel is recognized.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case "debug", "info", "warn", "error":
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidLogLevel, string(l))}
	}
}

// EnvMap expands the configured function environment against getenv.
func (c SAMConfig) EnvMap(getenv func(string) string) map[string]string {
	env := make(map[string]string, len(c.FunctionEnv))
	for _, v := range c.FunctionEnv {
		env[v.Name] = expand(v.Value, getenv)
	}
	return env
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Python:      "python3",
		EnvFile:     ".env",
		EnvTemplate: ".env.example",
		Lint: LintConfig{
			Paths:     []string{"app", "lib", "src"},
			TestPaths: []string{"tests"},
			Strict:    false,
		},
		Test: TestConfig{
			Dir:              "tests",
			IntegrationDir:   "tests/integration",
			SmokeDir:         "tests/smoke",
			CoveragePackages: []string{"app", "lib"},
			CoverageReport:   "htmlcov/index.html",
		},
		SAM: SAMConfig{
			DefaultRegion: DefaultRegion,
			FunctionName:  DefaultFunctionName,
			Template:      "template.yaml",
			UseContainer:  true,
			FunctionEnv: []EnvVar{
				{Name: "ENVIRONMENT", Value: "development"},
				{Name: "S3_BUCKET", Value: "${S3_BUCKET_NAME}"},
				{Name: "OPENAI_API_KEY", Value: "${OPENAI_API_KEY}"},
			},
		},
		Deploy: DeployConfig{
			Script:       "./deploy.sh",
			Shell:        ShellNative,
			VerifyBucket: false,
			BucketEnv:    "S3_BUCKET_NAME",
		},
		Hooks: HooksConfig{
			Tool: "pre-commit",
		},
		UI: UIConfig{
			Verbose:  false,
			LogLevel: "warn",
		},
	}
}
