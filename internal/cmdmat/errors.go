// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmdmat

import (
	"errors"
	"fmt"
)

// =============================================================================
// REGISTRATION ERRORS
// =============================================================================

var (
	// ErrDeciderAlreadyExists is returned when a specification attaches a
	// decider to an edge that already exists.
	ErrDeciderAlreadyExists = errors.New("decider already exists")

	// ErrFinalizerAlreadyExists is returned when a path is registered twice.
	ErrFinalizerAlreadyExists = errors.New("finalizer already exists")

	// ErrNilFinalizer is returned for a specification without a finalizer.
	ErrNilFinalizer = errors.New("finalizer is nil")

	// ErrNilDecider is returned for a decider without a DecideFunc.
	ErrNilDecider = errors.New("decider has no decide function")
)

// RegistrationError reports which specification failed to register.
type RegistrationError struct {
	Path string // Space separated segment names of the failing spec
	Err  error  // One of the registration sentinels
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %q: %v", e.Path, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// =============================================================================
// LOOKUP ERRORS
// =============================================================================

var (
	// ErrFinalizerDoesNotExist is returned when the input ends on a node that
	// is not a command.
	ErrFinalizerDoesNotExist = errors.New("finalizer does not exist")

	// ErrDeciderAdvancedTooFar is returned when a decider claims more tokens
	// than were available. It points at a broken decider or a token count
	// mismatch rather than at ordinary bad input.
	ErrDeciderAdvancedTooFar = errors.New("decider advanced too far")
)

// UnknownMappingError is returned when a token names no child of the
// current node.
type UnknownMappingError struct {
	Segment string
}

func (e *UnknownMappingError) Error() string {
	return fmt.Sprintf("unknown mapping: %s", e.Segment)
}

// DeciderDeniedError is returned when a decider rejects its input.
type DeciderDeniedError[D any] struct {
	Description string // Description of the denying decider
	Reason      D
}

func (e *DeciderDeniedError[D]) Error() string {
	return fmt.Sprintf("decider %s denied: %v", e.Description, e.Reason)
}
