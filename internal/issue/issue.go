// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	CommandNotFoundId
	ToolNotFoundId
	EnvFileMalformedId
	BucketNotSetId
	DevDepsInstallFailedId
	DeployScriptNotFoundId
	StepFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

devcmd reads, in order, the user file, the project file and DEVCMD_* variables.

## Things you can try:
- See where settings come from:
~~~
$ devcmd config path
~~~

- Compare with the defaults:
~~~
$ devcmd config show
~~~

- Write a fresh, commented file:
~~~
$ devcmd config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Unknown command!

## Available commands:
lint, test, build, invoke, clean, hooks, setup, deploy

## Things you can try:
~~~
$ devcmd --help
~~~`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Tool not found!

A step needs an executable that is not on your PATH.

## Things you can try:
- Create the virtual environment and install dev dependencies:
~~~
$ devcmd setup
$ source .venv/bin/activate
~~~

- Install the AWS SAM CLI for build and invoke
- Check the 'python' setting if your interpreter has another name`,
		extLinks: []HttpLink{"https://docs.aws.amazon.com/serverless-application-model/latest/developerguide/install-sam-cli.html"},
	}

	envFileMalformedIssue = &Issue{
		id: EnvFileMalformedId,
		mdMsg: `
# Malformed environment file!

Every non-blank line must be a comment (starting with #) or KEY=VALUE.
Values are taken literally: quotes are kept and nothing is expanded.

## Example:
~~~
# local settings
AWS_REGION=us-west-2
S3_BUCKET_NAME=my-dev-bucket
~~~`,
	}

	bucketNotSetIssue = &Issue{
		id: BucketNotSetId,
		mdMsg: `
# Deployment bucket not set!

deploy needs the name of the S3 bucket that receives the packaged artifacts.

## Things you can try:
- Add it to your .env file:
~~~
S3_BUCKET_NAME=my-deploy-bucket
~~~

- Or export it for one run:
~~~
$ S3_BUCKET_NAME=my-deploy-bucket devcmd deploy --stage dev
~~~`,
	}

	devDepsInstallFailedIssue = &Issue{
		id: DevDepsInstallFailedId,
		mdMsg: `
# Failed to install development dependencies!

setup could not run 'pip install -e ".[dev]"'.

## Things you can try:
- Check that pyproject.toml or setup.py declares a 'dev' extra
- Upgrade pip inside the virtual environment:
~~~
$ .venv/bin/python -m pip install --upgrade pip
~~~`,
	}

	deployScriptNotFoundIssue = &Issue{
		id: DeployScriptNotFoundId,
		mdMsg: `
# Deploy script not found!

deploy runs the script configured in 'deploy.script' (./deploy.sh by default).

## Things you can try:
- Run devcmd from the project root
- Point the setting at your script:
~~~cue
deploy: script: "./scripts/deploy.sh"
~~~`,
	}

	stepFailedIssue = &Issue{
		id: StepFailedId,
		mdMsg: `
# A step failed!

The tool output above shows why. Re-run with --verbose to see every command
line, or with --dry-run to print them without running anything.`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		commandNotFoundIssue.Id():      commandNotFoundIssue,
		toolNotFoundIssue.Id():         toolNotFoundIssue,
		envFileMalformedIssue.Id():     envFileMalformedIssue,
		bucketNotSetIssue.Id():         bucketNotSetIssue,
		devDepsInstallFailedIssue.Id(): devDepsInstallFailedIssue,
		deployScriptNotFoundIssue.Id(): deployScriptNotFoundIssue,
		stepFailedIssue.Id():           stepFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
