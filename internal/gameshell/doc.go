// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gameshell is a debug console built on cmdmat.
//
// A Shell owns a command tree over typed Values and a Context holding
// variables, the log level and an exit flag. Lines are split into quoted
// words, parenthesised groups are evaluated as nested commands, and the
// result is dispatched through the tree:
//
//	sh, err := gameshell.New(gameshell.WithLogger(logger))
//	reply, err := sh.Interpret("+ 1 (* 2 3)") // "7"
//
// Applications add their own commands with Register before use.
package gameshell
