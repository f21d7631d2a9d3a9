// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/docextract/devcmd/internal/awscheck"
	"github.com/docextract/devcmd/internal/config"
	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/envfile"
	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/internal/procexec"
	"github.com/docextract/devcmd/internal/tasks"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: the generated task commands run handlers from Registry,
	// which share one tasks.Env completed by prepare once flags are parsed.
	App struct {
		Config   config.Provider
		Registry *dispatch.Registry

		env     *tasks.Env
		runner  procexec.Runner
		workDir string
		stdout  io.Writer
		stderr  io.Writer
		flags   globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Runner replaces the os/exec runner. --dry-run has no effect on it.
		Runner  procexec.Runner
		Buckets tasks.BucketVerifierFactory
		Getenv  func(string) string
		Setenv  envfile.SetenvFunc
		// WorkDir is the project directory. Empty means the working directory.
		WorkDir string
		Stdout  io.Writer
		Stderr  io.Writer
	}

	globalFlags struct {
		verbose    bool
		configPath string
		dryRun     bool
		logLevel   string
	}
)

// NewApp creates the CLI application with every task handler registered.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Buckets == nil {
		deps.Buckets = defaultBucketVerifier
	}

	app := &App{
		Config:   deps.Config,
		Registry: dispatch.NewRegistry(),
		runner:   deps.Runner,
		workDir:  deps.WorkDir,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		env: &tasks.Env{
			Out:     stylePrinter{w: deps.Stdout},
			Getenv:  deps.Getenv,
			Setenv:  deps.Setenv,
			WorkDir: deps.WorkDir,
			Buckets: deps.Buckets,
		},
	}
	tasks.Register(app.Registry, app.env)

	return app, nil
}

func defaultBucketVerifier(ctx context.Context, region string) (tasks.BucketVerifier, error) {
	return awscheck.NewDefaultBucketChecker(ctx, region)
}

// loadConfig loads configuration honoring --config.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: a.flags.configPath,
		ProjectDir:     a.workDir,
	})
}

// prepare loads configuration, installs the logger and completes the task
// environment. It runs before every task command.
func (a *App) prepare(ctx context.Context) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}
	a.env.Config = cfg
	if err := a.setupLogging(cfg); err != nil {
		return err
	}

	a.env.Runner = a.newRunner(cfg)
	a.env.DryRun = a.flags.dryRun
	slog.Debug("configuration loaded", "sources", a.Config.Sources(), "dryRun", a.flags.dryRun)
	return nil
}

func (a *App) newRunner(cfg *config.Config) procexec.Runner {
	if a.runner != nil {
		return a.runner
	}
	r := procexec.NewExecRunner(a.stdout, a.stderr)
	r.DryRun = a.flags.dryRun
	r.VirtualShell = cfg.Deploy.Shell == config.ShellVirtual
	r.Echo = func(line string) {
		fmt.Fprintln(a.stdout, echoStyle.Render("$ "+line))
	}
	return r
}

// setupLogging installs a charmbracelet logger as the slog default handler.
// --log-level wins over ui.log_level; verbose mode always logs at debug.
func (a *App) setupLogging(cfg *config.Config) error {
	name := config.LogLevel(a.flags.logLevel)
	if name == "" && cfg != nil {
		name = cfg.UI.LogLevel
	}
	if name == "" {
		name = "warn"
	}
	if ok, errs := name.IsValid(); !ok {
		return issue.NewErrorContext().
			WithOperation("configure logging").
			WithSuggestion("Use one of: debug, info, warn, error").
			Wrap(errs[0]).
			BuildError()
	}

	level, err := log.ParseLevel(string(name))
	if err != nil {
		return err
	}
	if a.verbose() {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	slog.SetDefault(slog.New(logger))
	return nil
}

// verbose reports whether --verbose or ui.verbose is set.
func (a *App) verbose() bool {
	if a.flags.verbose {
		return true
	}
	return a.env.Config != nil && a.env.Config.UI.Verbose
}
