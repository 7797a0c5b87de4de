// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/gameshell/internal/config"
)

// =============================================================================
// CONFIG COMMANDS
// =============================================================================

func newConfigCmd(cfgFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(newConfigInitCmd(cfgFile))
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd(cfgFile))
	cmd.AddCommand(newConfigKeysCmd())
	return cmd
}

func newConfigInitCmd(cfgFile *string) *cobra.Command {
	var (
		force  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  noArgs("gameshell config init --format yaml"),
		// An existing broken config must not stop it being replaced
		Annotations: map[string]string{skipConfigAnnotation: ""},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := initPath(*cfgFile, format)
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return &UsageError{
					Reason:  fmt.Sprintf("config file already exists: %s", path),
					Example: "gameshell config init --force",
				}
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return &ConfigError{Path: path, Err: err}
			}

			if err := config.Save(config.Default(), path); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().StringVar(&format, "format", "toml", "file format (toml|yaml)")
	return cmd
}

// initPath picks the file config init writes: --config if given, otherwise
// the default location for the format.
func initPath(cfgFile, format string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	switch strings.ToLower(format) {
	case "toml":
		return config.ConfigPathTOML()
	case "yaml", "yml":
		return config.ConfigPathYAML()
	default:
		return "", &UsageError{
			Reason:  fmt.Sprintf("unknown config format %q", format),
			Example: "gameshell config init --format yaml",
		}
	}
}

func newConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after the file, environment variables and
flags have been applied.`,
		Args: noArgs("gameshell config show --format yaml"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := envFrom(cmd)
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "toml":
				fmt.Fprint(env.Out, env.Config.String())
			case "yaml", "yml":
				data, err := yaml.Marshal(env.Config)
				if err != nil {
					return fmt.Errorf("encode config: %w", err)
				}
				fmt.Fprint(env.Out, string(data))
			default:
				return &UsageError{
					Reason:  fmt.Sprintf("unknown config format %q", format),
					Example: "gameshell config show --format yaml",
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "output format (toml|yaml)")
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one configuration value",
		Example: `  gameshell config get log.level
  gameshell config get shell.max_depth`,
		Args: exactArgs(1, "gameshell config get log.level"),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return config.GetAllKeys(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := envFrom(cmd)
			if err != nil {
				return err
			}
			v, err := env.Config.Get(args[0])
			if err != nil {
				return &UsageError{Reason: err.Error(), Example: "gameshell config keys"}
			}
			fmt.Fprintln(env.Out, v)
			return nil
		},
	}
}

func newConfigSetCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one value in the config file",
		Long: `Change one value in the config file and save it.

Only the file is read, so environment variables and flags are not written
back. The file is created with defaults if it does not exist.`,
		Example: `  gameshell config set log.level debug
  gameshell config set completion.show_hints false`,
		Args:        exactArgs(2, "gameshell config set log.level debug"),
		Annotations: map[string]string{skipConfigAnnotation: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := setPath(*cfgFile)
			if err != nil {
				return err
			}

			cfg := config.Default()
			if _, err := os.Stat(path); err == nil {
				if cfg, err = loadFileOnly(path); err != nil {
					return &ConfigError{Path: path, Err: err}
				}
			}

			updated := cfg.Clone()
			if err := updated.Set(args[0], args[1]); err != nil {
				return &UsageError{Reason: err.Error(), Example: "gameshell config keys"}
			}
			if err := updated.Validate(); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			if err := config.Save(updated, path); err != nil {
				return &ConfigError{Path: path, Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)
			return nil
		},
	}
}

// setPath picks the file config set edits: --config if given, otherwise
// the file Load would read, defaulting to TOML.
func setPath(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	yamlPath, err := config.ConfigPathYAML()
	if err != nil {
		return "", err
	}
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err != nil {
		if _, err := os.Stat(yamlPath); err == nil {
			return yamlPath, nil
		}
	}
	return tomlPath, nil
}

// loadFileOnly decodes path over the defaults without environment
// overrides.
func loadFileOnly(path string) (*config.Config, error) {
	cfg := config.Default()
	var err error
	if strings.HasSuffix(strings.ToLower(path), ".yaml") || strings.HasSuffix(strings.ToLower(path), ".yml") {
		err = config.LoadYAML(cfg, path)
	} else {
		err = config.LoadTOML(cfg, path)
	}
	return cfg, err
}

func newConfigKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List configuration keys",
		Args:  noArgs("gameshell config keys"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := envFrom(cmd)
			if err != nil {
				return err
			}
			for _, key := range config.GetAllKeys() {
				fmt.Fprintln(env.Out, key)
			}
			return nil
		},
	}
}
