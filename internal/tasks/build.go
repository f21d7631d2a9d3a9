// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"

	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/internal/procexec"
)

const (
	regionEnv        = "AWS_REGION"
	defaultRegionEnv = "AWS_DEFAULT_REGION"
	samCLI           = "sam"
)

// BuildSpec declares the build command.
var BuildSpec = dispatch.CommandSpec{
	Name:  "build",
	Short: "Build the serverless application with the SAM CLI",
	Long: `Load .env, resolve the region from AWS_REGION (default us-west-2),
mirror it into AWS_DEFAULT_REGION and run 'sam build' in a build container.`,
}

// Region returns AWS_REGION or the configured default.
func (e *Env) Region() string {
	if r := e.getenv(regionEnv); r != "" {
		return r
	}
	return e.Config.SAM.DefaultRegion
}

// Build loads the overlay and runs sam build.
func (e *Env) Build(ctx context.Context, _ *dispatch.Invocation) (procexec.ExitCode, error) {
	if err := e.loadOverlay(); err != nil {
		return procexec.ExitFailure, err
	}
	return e.build(ctx)
}

// build runs sam build without loading the overlay.
func (e *Env) build(ctx context.Context) (procexec.ExitCode, error) {
	region := e.Region()
	if err := e.setenv(defaultRegionEnv, region); err != nil {
		return procexec.ExitFailure, issue.WrapWithOperation(err, "set "+defaultRegionEnv)
	}

	args := []string{"build"}
	if e.Config.SAM.UseContainer {
		args = append(args, "--use-container")
	}
	args = append(args, "--region", region)

	e.Out.Header("Building serverless application (" + region + ")")
	code, err := e.run(ctx, procexec.Command(samCLI, args...).Named("sam build"))
	if err == nil && code.IsSuccess() {
		e.Out.Success("Build complete!")
	}
	return code, err
}
