// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRunScript(t *testing.T) {
	env, out, _ := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "setup.gsh")
	writeScript(t, path, "set i32 hp 100\n# damage\n- (get hp) 35\n")

	require.NoError(t, RunScript(context.Background(), env, path))
	assert.Equal(t, "65\n", out.String())
}

func TestRunScriptFreshShellEachRun(t *testing.T) {
	env, out, errOut := newTestEnv(t)
	dir := t.TempDir()

	first := filepath.Join(dir, "first.gsh")
	writeScript(t, first, "set i32 x 1\n")
	second := filepath.Join(dir, "second.gsh")
	writeScript(t, second, "get x\n")

	require.NoError(t, RunScript(context.Background(), env, first))
	err := RunScript(context.Background(), env, second)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "unknown variable")
}

func TestRunScriptMissing(t *testing.T) {
	env, _, _ := newTestEnv(t)
	err := RunScript(context.Background(), env, filepath.Join(t.TempDir(), "nope.gsh"))
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestScriptWatcherReruns(t *testing.T) {
	env, out, _ := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "watch.gsh")
	writeScript(t, path, "+ 1 1\n")

	runs := make(chan error, 4)
	sw := &ScriptWatcher{
		Env:      env,
		Path:     path,
		Debounce: 20 * time.Millisecond,
		OnRun:    func(err error) { runs <- err },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sw.Run(ctx) }()

	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("initial run did not happen")
	}

	writeScript(t, path, "+ 2 2\n")

	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("script was not rerun after change")
	}

	cancel()
	require.NoError(t, <-done)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "2", lines[0])
	assert.Equal(t, "4", lines[len(lines)-1])
}

func TestScriptWatcherMissingFile(t *testing.T) {
	env, _, _ := newTestEnv(t)
	sw := &ScriptWatcher{Env: env, Path: filepath.Join(t.TempDir(), "nope.gsh")}
	err := sw.Run(context.Background())
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}
