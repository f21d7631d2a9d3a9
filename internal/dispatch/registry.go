// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docextract/devcmd/internal/issue"
	"github.com/docextract/devcmd/internal/procexec"
)

// ErrUnknownCommand is the sentinel error wrapped by UnknownCommandError.
var ErrUnknownCommand = errors.New("unknown command")

type (
	// Handler is the capability shared by every command: accept parsed options,
	// return the exit code of its own work. A non-nil error is a fatal condition
	// that the CLI reports on top of the exit code.
	Handler interface {
		Run(ctx context.Context, inv *Invocation) (procexec.ExitCode, error)
	}

	// HandlerFunc adapts a function to Handler.
	HandlerFunc func(ctx context.Context, inv *Invocation) (procexec.ExitCode, error)

	// Command is a registered spec and its handler.
	Command struct {
		Spec    CommandSpec
		Handler Handler
	}

	// Registry maps command names to handlers, preserving registration order.
	Registry struct {
		commands map[string]Command
		order    []string
	}

	// UnknownCommandError is the cause Resolve reports for unregistered names.
	UnknownCommandError struct {
		Name string
	}
)

// Run calls f.
func (f HandlerFunc) Run(ctx context.Context, inv *Invocation) (procexec.ExitCode, error) {
	return f(ctx, inv)
}

// Error implements the error interface.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// Unwrap returns ErrUnknownCommand.
func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command. It panics if the name already exists or the spec
// is invalid; both are programming errors in the command table.
func (r *Registry) Register(spec CommandSpec, h Handler) {
	if err := spec.Validate(); err != nil {
		panic(err.Error())
	}
	if h == nil {
		panic(fmt.Sprintf("command %s registered without a handler", spec.Name))
	}
	if _, exists := r.commands[spec.Name]; exists {
		panic(fmt.Sprintf("command %s already registered", spec.Name))
	}
	r.commands[spec.Name] = Command{Spec: spec, Handler: h}
	r.order = append(r.order, spec.Name)
}

// Resolve returns the command registered as name. An unknown name yields an
// actionable error wrapping *UnknownCommandError.
func (r *Registry) Resolve(name string) (Command, error) {
	if c, ok := r.commands[name]; ok {
		return c, nil
	}
	return Command{}, issue.NewErrorContext().
		WithOperation("resolve command").
		WithIssue(issue.CommandNotFoundId).
		WithSuggestion("Task commands: " + strings.Join(r.order, ", ")).
		Wrap(&UnknownCommandError{Name: name}).
		BuildError()
}

// Commands returns all commands in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Run executes a command with an already parsed invocation.
func (r *Registry) Run(ctx context.Context, c Command, inv *Invocation) (procexec.ExitCode, error) {
	slog.Debug("dispatching command", "command", c.Spec.Name, "options", inv.Values())
	return c.Handler.Run(ctx, inv)
}
