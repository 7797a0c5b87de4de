// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the gameshell command line.
//
// The root command loads configuration, builds an Env with the logger and
// output themes, and stores it in the command context. Subcommands create
// shells from the Env:
//
//	gameshell                     interactive session
//	gameshell exec FILE [--watch] run a script, optionally on every save
//	gameshell complete LINE...    print completions for a partial line
//	gameshell commands            list commands and their arguments
//	gameshell config init|show|get|keys
//
// Errors map to process exit codes with GetExitCode.
package cli
