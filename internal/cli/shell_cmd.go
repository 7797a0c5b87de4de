// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// =============================================================================
// REPL COMMAND
// =============================================================================

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session (default)",
		Long: `Start an interactive session.

On a terminal lines are edited with history and tab completion. Piped
input is read line by line and every line runs even if an earlier one
fails.`,
		Args: noArgs("gameshell repl"),
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	env, err := envFrom(cmd)
	if err != nil {
		return err
	}
	sh, err := env.NewShell()
	if err != nil {
		return err
	}

	if err := NewREPL(env, sh, cmd.InOrStdin()).Run(cmd.Context()); err != nil {
		return &reportedError{err: err}
	}
	return nil
}

// =============================================================================
// EXEC COMMAND
// =============================================================================

func newExecCmd() *cobra.Command {
	var (
		watch    bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "exec FILE",
		Short: "Run a script of commands",
		Long: `Run each line of FILE as a command in a fresh session.

Blank lines and lines starting with # are skipped. With --watch the
script is rerun whenever it is saved until interrupted.`,
		Example: `  gameshell exec setup.gsh
  gameshell exec --watch setup.gsh`,
		Args: exactArgs(1, "gameshell exec setup.gsh"),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := envFrom(cmd)
			if err != nil {
				return err
			}

			if watch {
				sw := &ScriptWatcher{Env: env, Path: args[0], Debounce: debounce}
				return sw.Run(cmd.Context())
			}

			err = RunScript(cmd.Context(), env, args[0])
			if err != nil && GetExitCode(err) == ExitCommandError {
				// Each failing line was already printed
				return &reportedError{err: err}
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rerun the script when it changes")
	cmd.Flags().DurationVar(&debounce, "debounce", DefaultDebounce, "quiet period before a rerun")
	return cmd
}

// =============================================================================
// COMPLETE COMMAND
// =============================================================================

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete LINE...",
		Short: "Print completions for a partial command line",
		Long: `Print the words that may follow a partial command line.

Arguments are joined with spaces. Quote a trailing space to list every
word after a complete one.`,
		Example: `  gameshell complete se
  gameshell complete "set "`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := envFrom(cmd)
			if err != nil {
				return err
			}
			sh, err := env.NewShell()
			if err != nil {
				return err
			}

			c := sh.Complete(strings.Join(args, " "))
			if err := WriteCompletion(env.Out, env.Theme, c, env.Config.Completion.ShowHints); err != nil {
				return fmt.Errorf("cannot complete: %w", err)
			}
			return nil
		},
	}
}

// =============================================================================
// COMMANDS COMMAND
// =============================================================================

func newCommandsCmd() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List every command and its arguments",
		Args:  noArgs("gameshell commands --markdown"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := envFrom(cmd)
			if err != nil {
				return err
			}
			sh, err := env.NewShell()
			if err != nil {
				return err
			}

			cmds := sh.Commands()
			if markdown {
				fmt.Fprint(env.Out, renderMarkdown(env.Out, CommandsMarkdown(cmds), env.Config.UI.NoColor))
				return nil
			}
			RenderCommands(env.Out, env.Theme, cmds, terminalWidth(env.Out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "print a markdown table")
	return cmd
}
