// SPDX-License-Identifier: MPL-2.0

package tasks

import (
	"context"
	"fmt"

	"github.com/docextract/devcmd/internal/dispatch"
	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/internal/procexec"
)

const (
	stageEnv     = "STAGE"
	defaultStage = "dev"
	prodStage    = "prod"
)

// DeploySpec declares the deploy command.
var DeploySpec = dispatch.CommandSpec{
	Name:  "deploy",
	Short: "Deploy the stack with the project's deploy script",
	Long: `Run the deploy script with STAGE set to the target stage.

The stage is "prod" with --prod, otherwise the --stage value, otherwise "dev".
S3_BUCKET_NAME must be set, in the environment or in .env.`,
	Example: `  devcmd deploy --stage qa
  devcmd deploy --prod`,
	Options: []dispatch.OptionDecl{
		dispatch.Bool("prod", "", "Deploy to the prod stage"),
		dispatch.Bool("dev", "", "Deploy to the dev stage").Inert(),
		dispatch.String("stage", "", "", "Target stage name"),
	},
}

// ResolveStage applies --prod, then --stage, then the dev default.
func ResolveStage(inv *dispatch.Invocation) string {
	switch {
	case inv.Bool("prod"):
		return prodStage
	case inv.String("stage") != "":
		return inv.String("stage")
	default:
		return defaultStage
	}
}

// Deploy runs the deploy script for the resolved stage.
func (e *Env) Deploy(ctx context.Context, inv *dispatch.Invocation) (procexec.ExitCode, error) {
	if err := e.loadOverlay(); err != nil {
		return procexec.ExitFailure, err
	}

	stage := ResolveStage(inv)
	cfg := e.Config.Deploy

	bucket := e.getenv(cfg.BucketEnv)
	if bucket == "" {
		return procexec.ExitFailure, issue.NewErrorContext().
			WithOperation("deploy to " + stage).
			WithIssue(issue.BucketNotSetId).
			WithSuggestion(fmt.Sprintf("Set %s in your environment or in %s", cfg.BucketEnv, e.Config.EnvFile)).
			Wrap(fmt.Errorf("%s is not set", cfg.BucketEnv)).
			BuildError()
	}

	if cfg.VerifyBucket {
		if err := e.verifyBucket(ctx, bucket); err != nil {
			return procexec.ExitFailure, err
		}
	}

	if !e.exists(cfg.Script) {
		return procexec.ExitFailure, issue.NewErrorContext().
			WithOperation("deploy to " + stage).
			WithResource(cfg.Script).
			WithIssue(issue.DeployScriptNotFoundId).
			WithSuggestion("Run devcmd from the project root").
			Wrap(fmt.Errorf("deploy script not found")).
			BuildError()
	}

	e.Out.Header("Deploying to " + stage)
	call := procexec.ScriptCall(cfg.Script).
		Named("deploy").
		WithEnv(stageEnv, stage)

	code, err := e.run(ctx, call)
	if err != nil {
		return code, err
	}
	if code.IsSuccess() {
		e.Out.Success(fmt.Sprintf("Deployment to %s complete!", stage))
	} else {
		e.Out.Failure(fmt.Sprintf("Deployment to %s failed (exit %d)", stage, code))
	}
	return code, nil
}

func (e *Env) verifyBucket(ctx context.Context, bucket string) error {
	if e.Buckets == nil {
		return nil
	}
	verifier, err := e.Buckets(ctx, e.Region())
	if err == nil {
		err = verifier.VerifyBucket(ctx, bucket)
	}
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("verify deployment bucket").
			WithResource(bucket).
			WithSuggestion("Check the bucket name and your AWS credentials").
			WithSuggestion("Set deploy.verify_bucket: false to skip this check").
			Wrap(err).
			BuildError()
	}
	return nil
}
