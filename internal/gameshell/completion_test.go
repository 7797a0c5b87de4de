// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/gameshell/internal/cmdmat"
)

func values(c Completion) []string {
	out := make([]string, len(c.Candidates))
	for i, cand := range c.Candidates {
		out[i] = cand.Value
	}
	return out
}

func TestComplete(t *testing.T) {
	sh := newTestShell(t)

	tests := []struct {
		name   string
		input  string
		prefix string
		want   []string
		hint   string
	}{
		{name: "partial command", input: "se", prefix: "se", want: []string{"set"}},
		{name: "case insensitive", input: "SE", prefix: "SE", want: []string{"set"}},
		{name: "subcommands", input: "set ", want: []string{"f32", "i32", "str", "bool"}},
		{name: "partial subcommand", input: "set i", prefix: "i", want: []string{"i32"}},
		{name: "exact match ranks first", input: "log lev", prefix: "lev", want: []string{"level"}},
		{name: "pending decider", input: "set i32 ", hint: "<atom> <i32>"},
		{name: "pending decider with prefix", input: "set i32 h", prefix: "h", hint: "<atom> <i32>"},
		{name: "no match", input: "zz", prefix: "zz"},
		{name: "after a finished command", input: "+ 1 2 ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sh.Complete(tt.input)
			require.NoError(t, c.Err)
			require.Equal(t, tt.prefix, c.Prefix)
			require.Equal(t, tt.hint, c.Hint)
			if tt.want == nil {
				require.Empty(t, c.Candidates)
				return
			}
			require.Equal(t, tt.want, values(c))
		})
	}
}

func TestCompleteRoot(t *testing.T) {
	sh := newTestShell(t)

	c := sh.Complete("")
	require.NoError(t, c.Err)
	require.Len(t, c.Candidates, len(sh.commands.SortedKeys()))

	byName := make(map[string]Candidate)
	for _, cand := range c.Candidates {
		byName[cand.Value] = cand
	}
	require.True(t, byName["vars"].Callable)
	require.False(t, byName["set"].Callable)
	require.Equal(t, "<i32> ...", byName["+"].Description)
	require.Equal(t, "+ <i32> ...", byName["+"].String())
	require.Equal(t, "vars", byName["vars"].String())
}

func TestCompleteErrors(t *testing.T) {
	sh := newTestShell(t)

	c := sh.Complete("teleport ")
	var unknown *cmdmat.UnknownMappingError
	require.ErrorAs(t, c.Err, &unknown)

	c = sh.Complete(`cat "open`)
	require.ErrorIs(t, c.Err, ErrUnterminatedQuote)

	c = sh.Complete("+ 1 x ")
	var denied *cmdmat.DeciderDeniedError[string]
	require.ErrorAs(t, c.Err, &denied)
}

func TestCompleteLimit(t *testing.T) {
	sh := newTestShell(t, WithMaxCompletions(2))

	c := sh.Complete("")
	require.Len(t, c.Candidates, 2)
}

func TestCalculateScore(t *testing.T) {
	require.Greater(t, calculateScore("set", "set"), calculateScore("settings", "set"))
	require.Greater(t, calculateScore("set", "s"), calculateScore("settings", "s"))
}
