// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"fmt"
	"maps"

	"github.com/spf13/pflag"
)

// Invocation is the resolved command name and option values of one run.
// It is built once from parsed flags and only read afterwards.
type Invocation struct {
	command string
	bools   map[string]bool
	strings map[string]string
	changed map[string]bool
}

// FromFlags reads the values of the declared options from an already parsed flag set.
func FromFlags(spec CommandSpec, fs *pflag.FlagSet) (*Invocation, error) {
	inv := &Invocation{
		command: spec.Name,
		bools:   make(map[string]bool),
		strings: make(map[string]string),
		changed: make(map[string]bool),
	}
	for _, o := range spec.Options {
		inv.changed[o.Name] = fs.Changed(o.Name)
		switch o.Kind {
		case KindBool:
			v, err := fs.GetBool(o.Name)
			if err != nil {
				return nil, fmt.Errorf("%s: --%s: %w", spec.Name, o.Name, err)
			}
			inv.bools[o.Name] = v
		case KindString:
			v, err := fs.GetString(o.Name)
			if err != nil {
				return nil, fmt.Errorf("%s: --%s: %w", spec.Name, o.Name, err)
			}
			inv.strings[o.Name] = v
		}
	}
	return inv, nil
}

// Command returns the command name.
func (i *Invocation) Command() string { return i.command }

// Bool returns a switch value. Undeclared names read as false.
func (i *Invocation) Bool(name string) bool { return i.bools[name] }

// String returns a string option value. Undeclared names read as "".
func (i *Invocation) String(name string) string { return i.strings[name] }

// Changed reports whether the option was given explicitly.
func (i *Invocation) Changed(name string) bool { return i.changed[name] }

// Values returns a copy of all values rendered as strings, for logging.
func (i *Invocation) Values() map[string]string {
	out := make(map[string]string, len(i.bools)+len(i.strings))
	for k, v := range i.bools {
		out[k] = fmt.Sprint(v)
	}
	maps.Copy(out, i.strings)
	return out
}
