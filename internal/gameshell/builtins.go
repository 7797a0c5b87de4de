// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jeranaias/gameshell/internal/cmdmat"
)

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

// errNoShell is returned by commands that need the command tree when run
// against a standalone Context.
var errNoShell = errors.New("no shell attached to context")

func path(names ...string) []Segment {
	segs := make([]Segment, len(names))
	for i, name := range names {
		segs[i] = Segment{Name: name}
	}
	return segs
}

func withDecider(segs []Segment, d *Decider) []Segment {
	segs[len(segs)-1].Decider = d
	return segs
}

// Builtins returns the command specifications every shell starts with.
func Builtins() []Spec {
	return []Spec{
		// Misc
		{Path: path("void"), Finalizer: handleVoid},
		{Path: path("exit"), Finalizer: handleExit},

		// Arithmetic
		{Path: withDecider(path("+"), ManyI32), Finalizer: handleAdd},
		{Path: withDecider(path("-"), ManyI32), Finalizer: handleSub},
		{Path: withDecider(path("*"), ManyI32), Finalizer: handleMul},
		{Path: withDecider(path("/"), ManyI32), Finalizer: handleDiv},

		// Strings
		{Path: withDecider(path("cat"), ManyString), Finalizer: handleCat},
		{Path: withDecider(path("str"), AnyString), Finalizer: handleStr},

		// Variables
		{Path: withDecider(path("set", "i32"), cmdmat.Sequence("<atom> <i32>", AnyAtom, AnyI32)), Finalizer: handleSet},
		{Path: withDecider(path("set", "f32"), cmdmat.Sequence("<atom> <f32>", AnyAtom, AnyF32)), Finalizer: handleSet},
		{Path: withDecider(path("set", "bool"), cmdmat.Sequence("<atom> <bool>", AnyAtom, AnyBool)), Finalizer: handleSet},
		{Path: withDecider(path("set", "str"), cmdmat.Sequence("<atom> <string>", AnyAtom, AnyString)), Finalizer: handleSet},
		{Path: withDecider(path("get"), AnyAtom), Finalizer: handleGet},
		{Path: withDecider(path("unset"), AnyAtom), Finalizer: handleUnset},
		{Path: path("vars"), Finalizer: handleVars},

		// Logging
		{Path: withDecider(path("log", "level"), cmdmat.Optional("[<u8>]", AnyU8)), Finalizer: handleLogLevel},

		// Introspection
		{Path: withDecider(path("help"), ManyString), Finalizer: handleHelp},
		{Path: withDecider(path("autocomplete"), ManyString), Finalizer: handleAutocomplete},
	}
}

// =============================================================================
// HANDLER IMPLEMENTATIONS
// =============================================================================

func handleVoid(*Context, []Value) (string, error) {
	return "", nil
}

func handleExit(ctx *Context, _ []Value) (string, error) {
	ctx.Exit = true
	return "", nil
}

func handleAdd(_ *Context, args []Value) (string, error) {
	var sum int32
	for _, n := range ints(args) {
		sum += n
	}
	return I32(sum).String(), nil
}

func handleSub(_ *Context, args []Value) (string, error) {
	nums := ints(args)
	switch len(nums) {
	case 0:
		return "0", nil
	case 1:
		return I32(-nums[0]).String(), nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result -= n
	}
	return I32(result).String(), nil
}

func handleMul(_ *Context, args []Value) (string, error) {
	product := int32(1)
	for _, n := range ints(args) {
		product *= n
	}
	return I32(product).String(), nil
}

func handleDiv(_ *Context, args []Value) (string, error) {
	nums := ints(args)
	if len(nums) == 0 {
		return "0", nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return "", ErrDivideByZero
		}
		result /= n
	}
	return I32(result).String(), nil
}

func handleCat(_ *Context, args []Value) (string, error) {
	var b strings.Builder
	for _, v := range args {
		b.WriteString(v.String())
	}
	return b.String(), nil
}

func handleStr(_ *Context, args []Value) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0].String(), nil
}

func handleSet(ctx *Context, args []Value) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("set expects a name and a value, got %d values", len(args))
	}
	name := args[0].String()
	ctx.Vars[name] = args[1]
	ctx.Logger.Debug("variable set", "name", name, "kind", KindOf(args[1]))
	return "", nil
}

func handleGet(ctx *Context, args []Value) (string, error) {
	name := args[0].String()
	v, ok := ctx.Vars[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	return v.String(), nil
}

func handleUnset(ctx *Context, args []Value) (string, error) {
	name := args[0].String()
	if _, ok := ctx.Vars[name]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	delete(ctx.Vars, name)
	return "", nil
}

func handleVars(ctx *Context, _ []Value) (string, error) {
	lines := make([]string, 0, len(ctx.Vars))
	for _, name := range slices.Sorted(maps.Keys(ctx.Vars)) {
		v := ctx.Vars[name]
		lines = append(lines, fmt.Sprintf("%s (%s) = %s", name, KindOf(v), v))
	}
	return strings.Join(lines, "\n"), nil
}

func handleLogLevel(ctx *Context, args []Value) (string, error) {
	if len(args) == 0 {
		return ctx.Level.Level().String(), nil
	}
	n, ok := args[0].(U8)
	if !ok {
		return "", fmt.Errorf("log level expects a u8, got %s", KindOf(args[0]))
	}
	ctx.Level.Set(levelFromU8(uint8(n)))
	ctx.Logger.Info("log level changed", "level", ctx.Level.Level())
	return "", nil
}

func handleHelp(ctx *Context, args []Value) (string, error) {
	if ctx.shell == nil {
		return "", errNoShell
	}
	prefix := stringsOf(args)

	var lines []string
	for _, cmd := range ctx.shell.commands.Commands() {
		if len(cmd.Path) >= len(prefix) && slices.Equal(cmd.Path[:len(prefix)], prefix) {
			lines = append(lines, cmd.Usage)
		}
	}
	if len(lines) == 0 && len(prefix) > 0 {
		return "", fmt.Errorf("no commands under %q", strings.Join(prefix, " "))
	}
	return strings.Join(lines, "\n"), nil
}

func handleAutocomplete(ctx *Context, args []Value) (string, error) {
	if ctx.shell == nil {
		return "", errNoShell
	}
	c := ctx.shell.completeWords(stringsOf(args), "")
	if c.Err != nil {
		return "", c.Err
	}
	if c.Hint != "" {
		return c.Hint, nil
	}
	lines := make([]string, len(c.Candidates))
	for i, cand := range c.Candidates {
		lines[i] = cand.String()
	}
	return strings.Join(lines, "\n"), nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func ints(args []Value) []int32 {
	nums := make([]int32, 0, len(args))
	for _, v := range args {
		if n, ok := v.(I32); ok {
			nums = append(nums, int32(n))
		}
	}
	return nums
}

func stringsOf(args []Value) []string {
	out := make([]string, len(args))
	for i, v := range args {
		out[i] = v.String()
	}
	return out
}
