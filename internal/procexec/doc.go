// SPDX-License-Identifier: MPL-2.0

// Package procexec is the single integration point between devcmd and the
// external tools it drives.
//
// Every handler step is described as a Call (program, structured argv, extra
// environment, capture flag and failure policy) and handed to a Runner. The
// production Runner echoes the command line, spawns the program directly
// without an intermediate shell string, and maps the outcome to an ExitCode.
// Calls marked BestEffort never abort a sequence; their outcomes are collected
// in a Report so the caller can decide the aggregate status explicitly.
//
// Script calls (such as the deploy script) run either through the host shell
// or through the embedded mvdan/sh interpreter.
package procexec
