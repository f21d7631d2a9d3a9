// SPDX-License-Identifier: MPL-2.0

package procexec

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// Fatal calls abort the remaining sequence on a non-zero exit.
	Fatal Policy = iota
	// BestEffort calls tolerate a non-zero exit; the caller records the outcome.
	BestEffort
)

// ErrEmptyProgram is returned when a Call has no program to run.
var ErrEmptyProgram = errors.New("call has no program")

type (
	// Policy decides what a non-zero exit means for the surrounding sequence.
	Policy int

	// Call describes one external process invocation.
	Call struct {
		// Label names the step in headers, reports and errors. Defaults to Program.
		Label string
		// Program is the executable, or the script path when Script is set.
		Program string
		// Args are passed verbatim, without shell interpretation.
		Args []string
		// Env holds variables added to the child environment only.
		Env map[string]string
		// Dir is the working directory. Empty means the current directory.
		Dir string
		// Capture collects stdout/stderr into the Result instead of streaming them.
		Capture bool
		// Script marks Program as a shell script to be run by the runner's shell.
		Script bool
		// Policy is Fatal unless set otherwise.
		Policy Policy
	}
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Fatal:
		return "fatal"
	case BestEffort:
		return "best-effort"
	default:
		return "Policy(" + strconv.Itoa(int(p)) + ")"
	}
}

// Command builds a fatal Call for program with args.
func Command(program string, args ...string) Call {
	return Call{Program: program, Args: args}
}

// ScriptCall builds a fatal Call that runs the script at path with args.
func ScriptCall(path string, args ...string) Call {
	return Call{Program: path, Args: args, Script: true}
}

// Named returns a copy of c with the given label.
func (c Call) Named(label string) Call {
	c.Label = label
	return c
}

// Tolerant returns a copy of c with the BestEffort policy.
func (c Call) Tolerant() Call {
	c.Policy = BestEffort
	return c
}

// WithEnv returns a copy of c with key=value added to the child environment.
func (c Call) WithEnv(key, value string) Call {
	env := make(map[string]string, len(c.Env)+1)
	maps.Copy(env, c.Env)
	env[key] = value
	c.Env = env
	return c
}

// Name returns the label, falling back to the program.
func (c Call) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Program
}

// Argv returns the program followed by its arguments.
func (c Call) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// String renders the call as a shell-quoted command line for display. Extra
// environment variables are shown as leading assignments in sorted order.
func (c Call) String() string {
	words := make([]string, 0, len(c.Env)+len(c.Args)+1)
	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		words = append(words, k+"="+quoteWord(c.Env[k]))
	}
	for _, w := range c.Argv() {
		words = append(words, quoteWord(w))
	}
	return strings.Join(words, " ")
}

func quoteWord(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return strconv.Quote(s)
	}
	return q
}

// EnvToSlice converts a map of environment variables to KEY=value form,
// sorted by key so the child environment is deterministic.
func EnvToSlice(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for _, k := range slices.Sorted(maps.Keys(env)) {
		result = append(result, k+"="+env[k])
	}
	return result
}

// Validate checks that the call can be started.
func (c Call) Validate() error {
	if strings.TrimSpace(c.Program) == "" {
		return fmt.Errorf("%w (label %q)", ErrEmptyProgram, c.Label)
	}
	return nil
}
