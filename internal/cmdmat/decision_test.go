// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmdmat

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

var intDecider = &Decider[int, string]{
	Description: "<int>",
	Decide: func(input []string, out *[]int) Decision[string] {
		if len(input) == 0 {
			return Deny("missing int")
		}
		n, err := strconv.Atoi(input[0])
		if err != nil {
			return Deny("not an int: " + input[0])
		}
		*out = append(*out, n)
		return Accept[string](1)
	},
}

var lazyDecider = &Decider[int, string]{
	Description: "<lazy>",
	Decide: func([]string, *[]int) Decision[string] {
		return Accept[string](0)
	},
}

func TestDecision(t *testing.T) {
	accept := Accept[string](3)
	n, ok := accept.Accepted()
	require.True(t, ok)
	require.Equal(t, 3, n)
	_, denied := accept.Denied()
	require.False(t, denied)

	deny := Deny("bad")
	_, ok = deny.Accepted()
	require.False(t, ok)
	reason, denied := deny.Denied()
	require.True(t, denied)
	require.Equal(t, "bad", reason)
}

func TestSequence(t *testing.T) {
	pair := Sequence("<int> <int>", intDecider, intDecider)

	tests := []struct {
		name      string
		input     []string
		wantN     int
		wantOut   []int
		wantDeny  string
		wantDenyd bool
	}{
		{name: "exact", input: []string{"1", "2"}, wantN: 2, wantOut: []int{1, 2}},
		{name: "extra input left", input: []string{"1", "2", "rest"}, wantN: 2, wantOut: []int{1, 2}},
		{name: "missing second", input: []string{"1"}, wantDeny: "missing int", wantDenyd: true},
		{name: "bad first", input: []string{"x", "2"}, wantDeny: "not an int: x", wantDenyd: true},
		{name: "empty", input: nil, wantDeny: "missing int", wantDenyd: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []int
			dec := pair.Decide(tt.input, &out)
			if tt.wantDenyd {
				reason, denied := dec.Denied()
				require.True(t, denied)
				require.Equal(t, tt.wantDeny, reason)
				return
			}
			n, ok := dec.Accepted()
			require.True(t, ok)
			require.Equal(t, tt.wantN, n)
			require.Equal(t, tt.wantOut, out)
		})
	}
}

func TestRepeat(t *testing.T) {
	many := Repeat("<int> ...", intDecider, "stalled")

	var out []int
	n, ok := many.Decide(nil, &out).Accepted()
	require.True(t, ok)
	require.Zero(t, n)
	require.Empty(t, out)

	n, ok = many.Decide([]string{"4", "5", "6"}, &out).Accepted()
	require.True(t, ok)
	require.Equal(t, 3, n)
	require.Equal(t, []int{4, 5, 6}, out)

	reason, denied := many.Decide([]string{"4", "nope"}, &out).Denied()
	require.True(t, denied)
	require.Equal(t, "not an int: nope", reason)

	stuck := Repeat("<lazy> ...", lazyDecider, "stalled")
	reason, denied = stuck.Decide([]string{"a"}, &out).Denied()
	require.True(t, denied)
	require.Equal(t, "stalled", reason)
}

func TestOptional(t *testing.T) {
	maybe := Optional("[<int>]", intDecider)

	var out []int
	n, ok := maybe.Decide(nil, &out).Accepted()
	require.True(t, ok)
	require.Zero(t, n)

	n, ok = maybe.Decide([]string{"7"}, &out).Accepted()
	require.True(t, ok)
	require.Equal(t, 1, n)
	require.Equal(t, []int{7}, out)

	_, denied := maybe.Decide([]string{"seven"}, &out).Denied()
	require.True(t, denied)
}

func TestCombinators_InMapping(t *testing.T) {
	m := New[int, string, int]()
	sum := func(ctx *int, args []int) (string, error) {
		for _, n := range args {
			*ctx += n
		}
		return strconv.Itoa(*ctx), nil
	}
	require.NoError(t, m.Register(Spec[int, string, int]{
		Path: []Segment[int, string]{
			{Name: "pair", Decider: Sequence("<int> <int>", intDecider, intDecider)},
			{Name: "then", Decider: Repeat("<int> ...", intDecider, "stalled")},
		},
		Finalizer: sum,
	}))

	match, err := m.Lookup([]string{"pair", "1", "2", "then", "3", "4"})
	require.NoError(t, err)

	ctx := 0
	reply, err := match.Run(&ctx)
	require.NoError(t, err)
	require.Equal(t, "10", reply)
}
