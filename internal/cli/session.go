// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/jeranaias/gameshell/internal/config"
	"github.com/jeranaias/gameshell/internal/gameshell"
	"github.com/jeranaias/gameshell/internal/ui/styles"
)

// =============================================================================
// COMMAND ENVIRONMENT
// =============================================================================

// Env is the state shared by every subcommand: configuration, logging and
// the output streams with their themes.
type Env struct {
	Config *config.Config
	Level  *slog.LevelVar
	Logger *slog.Logger

	Out      io.Writer
	ErrOut   io.Writer
	Theme    *styles.Theme // bound to Out
	ErrTheme *styles.Theme // bound to ErrOut
}

// NewEnv builds an Env from a loaded configuration. Logs go to errOut.
func NewEnv(cfg *config.Config, out, errOut io.Writer) *Env {
	level := new(slog.LevelVar)
	level.Set(cfg.LogLevel())

	return &Env{
		Config:   cfg,
		Level:    level,
		Logger:   NewLogger(errOut, cfg.Log.Format, level),
		Out:      out,
		ErrOut:   errOut,
		Theme:    styles.NewTheme(out, cfg.UI.NoColor),
		ErrTheme: styles.NewTheme(errOut, cfg.UI.NoColor),
	}
}

// NewLogger returns a slog logger writing text or JSON records to w,
// filtered by level.
func NewLogger(w io.Writer, format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewShell creates a shell configured from the environment.
func (e *Env) NewShell() (*gameshell.Shell, error) {
	return gameshell.New(
		gameshell.WithLogger(e.Logger),
		gameshell.WithLevel(e.Level),
		gameshell.WithVars(e.Config.Shell.Vars),
		gameshell.WithMaxDepth(e.Config.Shell.MaxDepth),
		gameshell.WithMaxCompletions(e.Config.Completion.MaxResults),
	)
}

// envKey is used to store the Env in a command context.
type envKey struct{}

// WithEnv returns a context carrying e.
func WithEnv(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey{}, e)
}

// GetEnv retrieves the Env from a command context, or nil.
func GetEnv(ctx context.Context) *Env {
	e, _ := ctx.Value(envKey{}).(*Env)
	return e
}
