// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for gameshell.
//
// Supports both TOML and YAML configuration formats, with sensible defaults,
// environment variable and command line flag overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ShellConfig: Prompt, nesting depth and startup variables
//   - CompletionConfig: Tab completion behavior
//   - LogConfig: slog level and handler format
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (ApplyFlags)
//   - Environment variables (GAMESHELL_*)
//   - ~/.gameshell/config.toml
//   - ~/.gameshell/config.yaml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
//	    return err
//	}
package config
