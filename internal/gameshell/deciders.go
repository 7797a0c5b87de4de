// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jeranaias/gameshell/internal/cmdmat"
)

// =============================================================================
// SINGLE TOKEN DECIDERS
// =============================================================================

// single builds a decider consuming exactly one token through parse.
func single(description string, parse func(string) (Value, error)) *Decider {
	return &Decider{
		Description: description,
		Decide: func(input []string, out *[]Value) Decision {
			if len(input) == 0 {
				return cmdmat.Deny("expected " + description)
			}
			v, err := parse(input[0])
			if err != nil {
				return cmdmat.Deny(err.Error())
			}
			*out = append(*out, v)
			return cmdmat.Accept[string](1)
		},
	}
}

var (
	// AnyAtom accepts a single token without whitespace.
	AnyAtom = single("<atom>", func(tok string) (Value, error) {
		if tok == "" || strings.ContainsFunc(tok, unicode.IsSpace) {
			return nil, fmt.Errorf("%q is not an atom", tok)
		}
		return Atom(tok), nil
	})

	// AnyBool accepts true/false, on/off or 1/0.
	AnyBool = single("<bool>", func(tok string) (Value, error) {
		switch strings.ToLower(tok) {
		case "true", "on", "1":
			return Bool(true), nil
		case "false", "off", "0":
			return Bool(false), nil
		}
		return nil, fmt.Errorf("%q is not a bool", tok)
	})

	// AnyF32 accepts a 32-bit float.
	AnyF32 = single("<f32>", func(tok string) (Value, error) {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid f32", tok)
		}
		return F32(f), nil
	})

	// AnyI32 accepts a 32-bit signed integer.
	AnyI32 = single("<i32>", func(tok string) (Value, error) {
		n, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid i32", tok)
		}
		return I32(n), nil
	})

	// AnyString accepts any single token.
	AnyString = single("<string>", func(tok string) (Value, error) {
		return String(tok), nil
	})

	// AnyU8 accepts an integer from 0 to 255.
	AnyU8 = single("<u8>", func(tok string) (Value, error) {
		n, err := strconv.ParseUint(tok, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid u8", tok)
		}
		return U8(n), nil
	})
)

// =============================================================================
// REPEATING DECIDERS
// =============================================================================

const stalled = "decider made no progress"

var (
	// ManyI32 accepts zero or more i32 tokens.
	ManyI32 = cmdmat.Repeat("<i32> ...", AnyI32, stalled)

	// ManyF32 accepts zero or more f32 tokens.
	ManyF32 = cmdmat.Repeat("<f32> ...", AnyF32, stalled)

	// ManyString accepts every remaining token as a string.
	ManyString = cmdmat.Repeat("<string> ...", AnyString, stalled)

	// IgnoreAll consumes every remaining token without producing values.
	IgnoreAll = &Decider{
		Description: "<ignored> ...",
		Decide: func(input []string, _ *[]Value) Decision {
			return cmdmat.Accept[string](len(input))
		},
	}
)
