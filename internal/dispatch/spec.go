// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// KindBool is an on/off switch that defaults to false.
	KindBool Kind = iota
	// KindString takes a value and defaults to OptionDecl.Default.
	KindString
)

var (
	// ErrInvalidSpec is the sentinel error wrapped by spec validation failures.
	ErrInvalidSpec = errors.New("invalid command spec")
	// ErrDuplicateOption is returned when a flag name or shorthand repeats within a command.
	ErrDuplicateOption = errors.New("duplicate option")
	// ErrUnexpectedArgs is returned when a command receives positional arguments.
	ErrUnexpectedArgs = errors.New("unexpected arguments")
)

type (
	// Kind is the value shape of an option.
	Kind int

	// OptionDecl declares one flag of a command.
	OptionDecl struct {
		// Name is the long flag name without dashes.
		Name string
		// Shorthand is an optional one-letter alias.
		Shorthand string
		Kind      Kind
		// Default is the literal default of a string option. Ignored for switches.
		Default string
		Usage   string
		// NoOp marks an option that is accepted but does not change behaviour.
		NoOp bool
	}

	// CommandSpec is the name and ordered option schema of a command.
	CommandSpec struct {
		Name    string
		Short   string
		Long    string
		Example string
		Options []OptionDecl
	}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Bool declares a switch.
func Bool(name, shorthand, usage string) OptionDecl {
	return OptionDecl{Name: name, Shorthand: shorthand, Kind: KindBool, Usage: usage}
}

// String declares a string option with a default.
func String(name, shorthand, def, usage string) OptionDecl {
	return OptionDecl{Name: name, Shorthand: shorthand, Kind: KindString, Default: def, Usage: usage}
}

// Inert returns a copy of o marked as a no-op.
func (o OptionDecl) Inert() OptionDecl {
	o.NoOp = true
	return o
}

// Validate checks the spec's invariants: a name, known option kinds, and
// unique flag names and shorthands.
func (s CommandSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty command name", ErrInvalidSpec)
	}

	names := make(map[string]bool, len(s.Options))
	shorts := make(map[string]bool)
	for i, o := range s.Options {
		if o.Name == "" {
			return fmt.Errorf("%w: %s: option %d has no name", ErrInvalidSpec, s.Name, i)
		}
		if o.Kind != KindBool && o.Kind != KindString {
			return fmt.Errorf("%w: %s: option --%s has unknown kind %s", ErrInvalidSpec, s.Name, o.Name, o.Kind)
		}
		if len(o.Shorthand) > 1 {
			return fmt.Errorf("%w: %s: shorthand %q of --%s must be one letter", ErrInvalidSpec, s.Name, o.Shorthand, o.Name)
		}
		if names[o.Name] {
			return fmt.Errorf("%w: %s: --%s", ErrDuplicateOption, s.Name, o.Name)
		}
		names[o.Name] = true
		if o.Shorthand != "" {
			if shorts[o.Shorthand] {
				return fmt.Errorf("%w: %s: -%s", ErrDuplicateOption, s.Name, o.Shorthand)
			}
			shorts[o.Shorthand] = true
		}
	}
	return nil
}

// CheckArgs rejects positional arguments; every command takes flags only.
func (s CommandSpec) CheckArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	return fmt.Errorf("%w for %s: %s", ErrUnexpectedArgs, s.Name, strings.Join(args, " "))
}

// Bind registers the spec's options on fs.
func (s CommandSpec) Bind(fs *pflag.FlagSet) {
	for _, o := range s.Options {
		usage := o.Usage
		if o.NoOp {
			usage += " (accepted, currently has no effect)"
		}
		switch o.Kind {
		case KindBool:
			fs.BoolP(o.Name, o.Shorthand, false, usage)
		case KindString:
			fs.StringP(o.Name, o.Shorthand, o.Default, usage)
		}
	}
}
