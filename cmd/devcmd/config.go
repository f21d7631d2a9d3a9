// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docextract/devcmd/internal/config"
	"github.com/docextract/devcmd/internal/issue"
)

const (
	formatCUE  = "cue"
	formatTOML = "toml"
)

// newConfigCommand creates the `devcmd config` command tree.
// Subcommands that read configuration use the App's config provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage devcmd configuration",
		Long: `Manage devcmd configuration.

Settings are merged from, in increasing priority:
  - built-in defaults
  - the user config file (config.cue in the devcmd config directory)
  - devcmd.cue in the project directory
  - DEVCMD_* environment variables (DEVCMD_PYTHON, DEVCMD_LINT_STRICT, ...)

--config replaces both files with the given one.`,
		// Configuration is loaded by the subcommands themselves so that a broken
		// file can still be located and replaced.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.setupLogging(nil)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app, cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file locations",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfigPath(app, cmd.OutOrStdout())
		},
	})

	var userScope bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long: `Create a default devcmd.cue in the project directory, or with --user the
user config file. An existing file is left unchanged.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(app, userScope, cmd.OutOrStdout())
		},
	}
	initCmd.Flags().BoolVar(&userScope, "user", false, "write the user config file instead of the project file")
	cfgCmd.AddCommand(initCmd)

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or TOML",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dumpConfig(cmd.Context(), app, format, cmd.OutOrStdout())
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", formatCUE, "output format: cue or toml")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, w io.Writer) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	keyStyle := echoStyle
	valueStyle := okStyle
	kv := func(indent, key string, value any) {
		fmt.Fprintf(w, "%s%s: %s\n", indent, keyStyle.Render(key), valueStyle.Render(fmt.Sprint(value)))
	}

	fmt.Fprintln(w, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	sources := app.Config.Sources()
	if len(sources) == 0 {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config files"), infoStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s:\n", keyStyle.Render("Config files"))
		for _, s := range sources {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	fmt.Fprintln(w)

	kv("", "python", cfg.Python)
	kv("", "env_file", cfg.EnvFile)
	kv("", "env_template", cfg.EnvTemplate)

	fmt.Fprintf(w, "\n%s:\n", keyStyle.Render("lint"))
	kv("  ", "paths", strings.Join(cfg.Lint.Paths, " "))
	kv("  ", "test_paths", strings.Join(cfg.Lint.TestPaths, " "))
	kv("  ", "strict", cfg.Lint.Strict)

	fmt.Fprintf(w, "\n%s:\n", keyStyle.Render("test"))
	kv("  ", "dir", cfg.Test.Dir)
	kv("  ", "integration_dir", cfg.Test.IntegrationDir)
	kv("  ", "smoke_dir", cfg.Test.SmokeDir)
	kv("  ", "coverage_packages", strings.Join(cfg.Test.CoveragePackages, " "))

	fmt.Fprintf(w, "\n%s:\n", keyStyle.Render("sam"))
	kv("  ", "default_region", cfg.SAM.DefaultRegion)
	kv("  ", "function_name", cfg.SAM.FunctionName)
	kv("  ", "template", cfg.SAM.Template)
	kv("  ", "use_container", cfg.SAM.UseContainer)
	for _, e := range cfg.SAM.FunctionEnv {
		kv("  ", "function_env."+e.Name, e.Value)
	}

	fmt.Fprintf(w, "\n%s:\n", keyStyle.Render("deploy"))
	kv("  ", "script", cfg.Deploy.Script)
	kv("  ", "shell", cfg.Deploy.Shell)
	kv("  ", "verify_bucket", cfg.Deploy.VerifyBucket)
	kv("  ", "bucket_env", cfg.Deploy.BucketEnv)

	fmt.Fprintf(w, "\n%s:\n", keyStyle.Render("hooks"))
	kv("  ", "tool", cfg.Hooks.Tool)

	fmt.Fprintf(w, "\n%s:\n", keyStyle.Render("ui"))
	kv("  ", "verbose", cfg.UI.Verbose)
	kv("  ", "log_level", cfg.UI.LogLevel)

	return nil
}

func showConfigPath(app *App, w io.Writer) error {
	userPath, err := config.UserConfigPath()
	if err != nil {
		return issue.WrapWithOperation(err, "locate user config")
	}

	fmt.Fprintf(w, "User config file: %s\n", userPath)
	fmt.Fprintf(w, "Project config file: %s\n", projectConfigPath(app))
	if app.flags.configPath != "" {
		fmt.Fprintf(w, "Explicit config file: %s\n", app.flags.configPath)
	}
	return nil
}

func projectConfigPath(app *App) string {
	dir := app.workDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, config.ProjectFileName)
}

func initConfig(app *App, userScope bool, w io.Writer) error {
	if userScope {
		path, created, err := config.CreateDefaultConfig()
		if err != nil {
			return issue.WrapWithOperation(err, "create user config")
		}
		reportInit(w, path, created)
		return nil
	}

	path := projectConfigPath(app)
	if _, err := os.Stat(path); err == nil {
		reportInit(w, path, false)
		return nil
	}
	if err := os.WriteFile(path, []byte(config.GenerateCUE(config.DefaultConfig())), 0o644); err != nil {
		return issue.WrapWithContext(err, "create project config", path)
	}
	reportInit(w, path, true)
	return nil
}

func reportInit(w io.Writer, path string, created bool) {
	if created {
		fmt.Fprintf(w, "%s Created default configuration at %s\n", okStyle.Render("✓"), path)
		return
	}
	fmt.Fprintf(w, "%s %s already exists, leaving it unchanged\n", warnStyle.Render("!"), path)
}

func dumpConfig(ctx context.Context, app *App, format string, w io.Writer) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	switch format {
	case formatCUE:
		fmt.Fprint(w, config.GenerateCUE(cfg))
	case formatTOML:
		out, err := config.GenerateTOML(cfg)
		if err != nil {
			return issue.WrapWithOperation(err, "render configuration as TOML")
		}
		fmt.Fprint(w, out)
	default:
		return fmt.Errorf("unknown format %q: must be %q or %q", format, formatCUE, formatTOML)
	}
	return nil
}
