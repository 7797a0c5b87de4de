// gameshell - a debug console with typed command trees.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/gameshell/internal/cli"
)

func main() {
	os.Exit(cli.GetExitCode(cli.Execute()))
}
