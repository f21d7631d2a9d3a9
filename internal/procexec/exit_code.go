// SPDX-License-Identifier: MPL-2.0

package procexec

import "strconv"

// ExitCode is the status a step or devcmd itself exits with.
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	// ExitFailure covers usage errors, fatal errors and signal deaths.
	ExitFailure ExitCode = 1
	// ExitNotFound is the shell's status for a program missing from PATH.
	ExitNotFound ExitCode = 127
)

// IsSuccess reports whether c is zero.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// Normalize maps codes a process cannot exit with (negative values from
// signal deaths, or Windows statuses above 255) to ExitFailure.
func (c ExitCode) Normalize() ExitCode {
	if c < 0 || c > 255 {
		return ExitFailure
	}
	return c
}

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
