// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/gameshell/internal/config"
	"github.com/jeranaias/gameshell/internal/ui/styles"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// skipConfigAnnotation marks commands that run without loading the config.
const skipConfigAnnotation = "gameshell/skip-config"

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd creates the root command. Run without a subcommand it starts
// the interactive console.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "gameshell",
		Short: "Debug console with typed command trees",
		Long: `gameshell is a small command console. Commands are paths of words
whose arguments are checked by deciders before the command runs.

Run without arguments for an interactive session with tab completion, or
use exec to run a script of commands.`,
		Version: fmt.Sprintf("%s (%s)", Version, GitCommit),
		Args:    noArgs("gameshell"),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			if _, skip := cmd.Annotations[skipConfigAnnotation]; skip {
				return nil
			}

			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
				return &ConfigError{Path: cfgFile, Err: err}
			}

			env := NewEnv(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			env.Logger.Debug("config loaded", "path", cfgFile, "level", cfg.Log.Level)
			cmd.SetContext(WithEnv(cmd.Context(), env))
			return nil
		},
		RunE:          runREPL,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ~/.gameshell/config.toml)")
	flags.String(config.FlagPrompt, "", "interactive prompt")
	flags.String(config.FlagLogLevel, "", "log level (debug|info|warn|error)")
	flags.String(config.FlagLogFormat, "", "log format (text|json)")
	flags.Bool(config.FlagNoColor, false, "disable colored output")
	flags.Int(config.FlagMaxDepth, 0, "maximum nesting of parenthesised commands")

	_ = rootCmd.RegisterFlagCompletionFunc(config.FlagLogLevel, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc(config.FlagLogFormat, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newREPLCmd())
	rootCmd.AddCommand(newExecCmd())
	rootCmd.AddCommand(newCompleteCmd())
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newConfigCmd(&cfgFile))

	return rootCmd
}

// Execute runs the root command until it finishes or the process is
// interrupted. Errors not already shown to the user are printed.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil && !isReported(err) {
		noColor := os.Getenv("NO_COLOR") != ""
		DisplayError(os.Stderr, styles.NewTheme(os.Stderr, noColor), err)
	}
	return err
}

// loadConfig loads path, or the default config locations when path is empty.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// envFrom returns the Env installed by the root command.
func envFrom(cmd *cobra.Command) (*Env, error) {
	env := GetEnv(cmd.Context())
	if env == nil {
		return nil, errors.New("command environment not initialized")
	}
	return env, nil
}

// =============================================================================
// ARGUMENT VALIDATION
// =============================================================================

// reportedError marks an error that has already been shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

func noArgs(example string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return &UsageError{
				Reason:  fmt.Sprintf("%s takes no arguments, got %q", cmd.CommandPath(), args[0]),
				Example: example,
			}
		}
		return nil
	}
}

func exactArgs(n int, example string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &UsageError{
				Reason:  fmt.Sprintf("%s expects %d argument(s), got %d", cmd.CommandPath(), n, len(args)),
				Example: example,
			}
		}
		return nil
	}
}
