// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func decide(d *Decider, input ...string) ([]Value, Decision) {
	var out []Value
	dec := d.Decide(input, &out)
	return out, dec
}

func TestSingleDeciders(t *testing.T) {
	tests := []struct {
		name    string
		decider *Decider
		input   string
		want    Value
	}{
		{name: "atom", decider: AnyAtom, input: "health", want: Atom("health")},
		{name: "bool true", decider: AnyBool, input: "true", want: Bool(true)},
		{name: "bool on", decider: AnyBool, input: "ON", want: Bool(true)},
		{name: "bool zero", decider: AnyBool, input: "0", want: Bool(false)},
		{name: "f32", decider: AnyF32, input: "2.5", want: F32(2.5)},
		{name: "f32 integer", decider: AnyF32, input: "-3", want: F32(-3)},
		{name: "i32", decider: AnyI32, input: "-42", want: I32(-42)},
		{name: "i32 max", decider: AnyI32, input: "2147483647", want: I32(2147483647)},
		{name: "string with spaces", decider: AnyString, input: "a b", want: String("a b")},
		{name: "empty string", decider: AnyString, input: "", want: String("")},
		{name: "u8", decider: AnyU8, input: "255", want: U8(255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, dec := decide(tt.decider, tt.input, "rest")
			n, ok := dec.Accepted()
			require.True(t, ok)
			require.Equal(t, 1, n)
			require.Equal(t, []Value{tt.want}, out)
		})
	}
}

func TestSingleDecidersDeny(t *testing.T) {
	tests := []struct {
		name    string
		decider *Decider
		input   []string
		reason  string
	}{
		{name: "atom empty input", decider: AnyAtom, reason: "expected <atom>"},
		{name: "atom with space", decider: AnyAtom, input: []string{"a b"}, reason: `"a b" is not an atom`},
		{name: "bool", decider: AnyBool, input: []string{"maybe"}, reason: `"maybe" is not a bool`},
		{name: "f32", decider: AnyF32, input: []string{"x"}, reason: `"x" is not a valid f32`},
		{name: "i32 overflow", decider: AnyI32, input: []string{"2147483648"}, reason: `"2147483648" is not a valid i32`},
		{name: "i32 empty input", decider: AnyI32, reason: "expected <i32>"},
		{name: "u8 overflow", decider: AnyU8, input: []string{"256"}, reason: `"256" is not a valid u8`},
		{name: "u8 negative", decider: AnyU8, input: []string{"-1"}, reason: `"-1" is not a valid u8`},
		{name: "string empty input", decider: AnyString, reason: "expected <string>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, dec := decide(tt.decider, tt.input...)
			reason, denied := dec.Denied()
			require.True(t, denied)
			require.Equal(t, tt.reason, reason)
			require.Empty(t, out)
		})
	}
}

func TestManyDeciders(t *testing.T) {
	t.Run("empty input accepts nothing", func(t *testing.T) {
		out, dec := decide(ManyI32)
		n, ok := dec.Accepted()
		require.True(t, ok)
		require.Zero(t, n)
		require.Empty(t, out)
	})

	t.Run("consumes every token", func(t *testing.T) {
		out, dec := decide(ManyI32, "1", "2", "3")
		n, ok := dec.Accepted()
		require.True(t, ok)
		require.Equal(t, 3, n)
		require.Equal(t, []Value{I32(1), I32(2), I32(3)}, out)
	})

	t.Run("denies on a bad token", func(t *testing.T) {
		_, dec := decide(ManyF32, "1.5", "nope")
		reason, denied := dec.Denied()
		require.True(t, denied)
		require.Equal(t, `"nope" is not a valid f32`, reason)
	})

	t.Run("strings", func(t *testing.T) {
		out, dec := decide(ManyString, "a", "b")
		n, _ := dec.Accepted()
		require.Equal(t, 2, n)
		require.Equal(t, []Value{String("a"), String("b")}, out)
	})

	t.Run("ignore all", func(t *testing.T) {
		out, dec := decide(IgnoreAll, "a", "b", "c")
		n, _ := dec.Accepted()
		require.Equal(t, 3, n)
		require.Empty(t, out)
	})
}

func TestValueStrings(t *testing.T) {
	require.Equal(t, "x", Atom("x").String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "0.1", F32(0.1).String())
	require.Equal(t, "-7", I32(-7).String())
	require.Equal(t, "a b", String("a b").String())
	require.Equal(t, "9", U8(9).String())

	require.Equal(t, "f32", KindOf(F32(1)))
	require.Equal(t, "string", KindOf(String("")))
}
