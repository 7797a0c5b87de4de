// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides helpers shared by the gameshell packages.
//
// # Key Functions
//
// Display width:
//   - StringWidth, TruncateWidth, PadRight, MaxWidth: column aware
//     formatting for terminal tables
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Align a two column table
//	w := util.MaxWidth(names)
//	line := util.PadRight(name, w) + "  " + usage
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
package util
