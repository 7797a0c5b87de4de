// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"log/slog"
)

// =============================================================================
// CONTEXT TYPE
// =============================================================================

// Context is the mutable state finalizers operate on. Each Shell owns one
// Context and only touches it while holding its lock.
type Context struct {
	// Vars holds variables set with the set command
	Vars map[string]Value

	// Level controls the verbosity of Logger, changed by log level
	Level *slog.LevelVar

	// Logger is the shell's logger
	Logger *slog.Logger

	// Exit is set by the exit command
	Exit bool

	shell *Shell
}

// NewContext returns an empty context logging to logger. A nil logger
// discards output.
func NewContext(logger *slog.Logger) Context {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Context{
		Vars:   make(map[string]Value),
		Level:  new(slog.LevelVar),
		Logger: logger,
	}
}

// Shell returns the shell owning the context, or nil for a standalone
// context.
func (c *Context) Shell() *Shell {
	return c.shell
}

// levelFromU8 maps a console log level to a slog level: 0 error, 1 warn,
// 2 info, anything higher debug.
func levelFromU8(n uint8) slog.Level {
	switch n {
	case 0:
		return slog.LevelError
	case 1:
		return slog.LevelWarn
	case 2:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
