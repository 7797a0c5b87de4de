// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"fmt"
	"strconv"

	"github.com/jeranaias/gameshell/internal/cmdmat"
)

// =============================================================================
// VALUES
// =============================================================================

// Value is a typed argument produced by a decider. The concrete types are
// Atom, Bool, F32, I32, String and U8.
type Value interface {
	fmt.Stringer
	isValue()
}

// Atom is a single token without whitespace.
type Atom string

// Bool is a true or false value.
type Bool bool

// F32 is a 32-bit floating point value.
type F32 float32

// I32 is a 32-bit signed integer.
type I32 int32

// String is any single token, possibly quoted and containing whitespace.
type String string

// U8 is an unsigned 8-bit value.
type U8 uint8

func (Atom) isValue()   {}
func (Bool) isValue()   {}
func (F32) isValue()    {}
func (I32) isValue()    {}
func (String) isValue() {}
func (U8) isValue()     {}

func (v Atom) String() string   { return string(v) }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v F32) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v I32) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v String) String() string { return string(v) }
func (v U8) String() string     { return strconv.FormatUint(uint64(v), 10) }

// KindOf returns the lower-case type name of v, e.g. "i32".
func KindOf(v Value) string {
	switch v.(type) {
	case Atom:
		return "atom"
	case Bool:
		return "bool"
	case F32:
		return "f32"
	case I32:
		return "i32"
	case String:
		return "string"
	case U8:
		return "u8"
	default:
		return "unknown"
	}
}

// =============================================================================
// TREE TYPES
// =============================================================================

// Aliases for the cmdmat types instantiated for the shell.
type (
	Mapping   = cmdmat.Mapping[Value, string, Context]
	Spec      = cmdmat.Spec[Value, string, Context]
	Segment   = cmdmat.Segment[Value, string]
	Decider   = cmdmat.Decider[Value, string]
	Decision  = cmdmat.Decision[string]
	Finalizer = cmdmat.Finalizer[Value, Context]
)
