// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/jeranaias/gameshell/internal/config"
	"github.com/jeranaias/gameshell/internal/gameshell"
	"github.com/jeranaias/gameshell/internal/ui/styles"
)

// =============================================================================
// EXIT CODES - Specific codes for different error categories
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNotFoundError indicates a script or config file was not found
	ExitNotFoundError = 7
	// ExitCommandError indicates a console command failed
	ExitCommandError = 9
)

// =============================================================================
// ERROR TYPES FOR STRUCTURED ERROR HANDLING
// =============================================================================

// UsageError represents invalid command line usage.
type UsageError struct {
	Reason  string // Why the invocation is invalid
	Example string // Example of valid usage (optional)
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\nExample: %s", e.Reason, e.Example)
	}
	return e.Reason
}

// ConfigError wraps a failure to load or validate configuration.
type ConfigError struct {
	Path string // Config file, empty for the default search
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode determines the exit code for an error returned by a command.
//
//   - ExitUsageError (2): UsageError
//   - ExitConfigError (3): ConfigError or config validation errors
//   - ExitNotFoundError (7): a missing file
//   - ExitCommandError (9): a failed console command
//   - ExitGeneralError (1): all other errors
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var configErr *ConfigError
	var validateErrs config.ValidateErrors
	if errors.As(err, &configErr) || errors.As(err, &validateErrs) {
		return ExitConfigError
	}

	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFoundError
	}

	var cmdErr *gameshell.CommandError
	if errors.As(err, &cmdErr) {
		return ExitCommandError
	}

	return ExitGeneralError
}

// =============================================================================
// ERROR DISPLAY HELPERS
// =============================================================================

// DisplayError writes an error in a consistent format.
func DisplayError(w io.Writer, theme *styles.Theme, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", theme.Error.Render("[ERROR]"), err.Error())
}
