// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"errors"
	"fmt"
)

var (
	// ErrNestingTooDeep is returned when nested commands exceed the shell's
	// maximum depth.
	ErrNestingTooDeep = errors.New("nested commands too deep")

	// ErrDivideByZero is returned by the / command.
	ErrDivideByZero = errors.New("division by zero")

	// ErrUnknownVariable is returned by get and unset.
	ErrUnknownVariable = errors.New("unknown variable")
)

// CommandError ties an error to the line that caused it.
type CommandError struct {
	Line string // The offending input line
	Err  error  // Tokenizer, lookup or finalizer error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Line, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
