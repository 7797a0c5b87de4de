// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/gameshell/internal/config"
	"github.com/jeranaias/gameshell/internal/gameshell"
)

// isolate points HOME at a temp dir and clears config overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GAMESHELL_PROMPT", "")
	t.Setenv("GAMESHELL_LOG_LEVEL", "")
	t.Setenv("GAMESHELL_LOG_FORMAT", "")
	t.Setenv("GAMESHELL_NO_COLOR", "")
	t.Setenv("NO_COLOR", "1")
	return home
}

// newTestEnv returns an Env writing to buffers with color disabled.
func newTestEnv(t *testing.T) (*Env, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.UI.NoColor = true

	var out, errOut bytes.Buffer
	return NewEnv(cfg, &out, &errOut), &out, &errOut
}

func newTestShell(t *testing.T, env *Env) *gameshell.Shell {
	t.Helper()
	sh, err := env.NewShell()
	require.NoError(t, err)
	return sh
}

// execute runs the root command with args and stdin.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}
