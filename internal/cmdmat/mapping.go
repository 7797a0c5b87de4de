// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmdmat

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// =============================================================================
// SPECIFICATION
// =============================================================================

// Finalizer handles a fully matched command. It is the only part of the
// engine allowed to modify the caller's context. The returned string is a
// human readable reply.
type Finalizer[A, C any] func(ctx *C, args []A) (string, error)

// Segment is one literal path component of a command, optionally followed
// by a decider that parses the tokens after it.
type Segment[A, D any] struct {
	Name    string
	Decider *Decider[A, D]
}

// Spec is a command specification: a path of segments ending in a finalizer.
type Spec[A, D, C any] struct {
	Path      []Segment[A, D]
	Finalizer Finalizer[A, C]
}

// String returns the segment names joined by spaces.
func (s Spec[A, D, C]) String() string {
	names := make([]string, len(s.Path))
	for i, seg := range s.Path {
		names[i] = seg.Name
	}
	return strings.Join(names, " ")
}

// =============================================================================
// MAPPING
// =============================================================================

// Mapping is a node in the command trie. Each node holds its children keyed
// by segment name, the decider attached to the edge leading to it, and a
// finalizer if the path ending here is a command.
//
// The zero value is an empty tree ready for registration.
type Mapping[A, D, C any] struct {
	children  map[string]*Mapping[A, D, C]
	decider   *Decider[A, D]
	finalizer Finalizer[A, C]
}

// New returns an empty command tree.
func New[A, D, C any]() *Mapping[A, D, C] {
	return &Mapping[A, D, C]{}
}

// RegisterMany registers each spec in order and returns the first failure.
// Specs before the failing one stay registered.
func (m *Mapping[A, D, C]) RegisterMany(specs ...Spec[A, D, C]) error {
	for _, spec := range specs {
		if err := m.Register(spec); err != nil {
			return err
		}
	}
	return nil
}

// Register merges a single specification into the tree.
//
// Existing edges are extended, never replaced: a spec may only pass through
// an existing segment without a decider, and may not install a second
// finalizer on a path. A failing call leaves the tree unchanged.
func (m *Mapping[A, D, C]) Register(spec Spec[A, D, C]) error {
	if spec.Finalizer == nil {
		return &RegistrationError{Path: spec.String(), Err: ErrNilFinalizer}
	}
	for _, seg := range spec.Path {
		if seg.Decider != nil && seg.Decider.Decide == nil {
			return &RegistrationError{Path: spec.String(), Err: ErrNilDecider}
		}
	}
	if err := m.register(spec.Path, spec.Finalizer); err != nil {
		return &RegistrationError{Path: spec.String(), Err: err}
	}
	return nil
}

func (m *Mapping[A, D, C]) register(path []Segment[A, D], finalizer Finalizer[A, C]) error {
	if len(path) == 0 {
		if m.finalizer != nil {
			return ErrFinalizerAlreadyExists
		}
		m.finalizer = finalizer
		return nil
	}

	head := path[0]
	if child, ok := m.children[head.Name]; ok {
		if head.Decider != nil {
			return ErrDeciderAlreadyExists
		}
		return child.register(path[1:], finalizer)
	}

	// The new subtree is completed before it becomes visible
	child := &Mapping[A, D, C]{decider: head.Decider}
	if err := child.register(path[1:], finalizer); err != nil {
		return err
	}
	if m.children == nil {
		m.children = make(map[string]*Mapping[A, D, C])
	}
	m.children[head.Name] = child
	return nil
}

// =============================================================================
// LOOKUP
// =============================================================================

// Match is a resolved command: its finalizer and the values collected by the
// deciders along its path, in segment order.
type Match[A, C any] struct {
	Finalizer Finalizer[A, C]
	Args      []A
}

// Run calls the finalizer with ctx and the collected arguments.
func (m Match[A, C]) Run(ctx *C) (string, error) {
	return m.Finalizer(ctx, m.Args)
}

// Lookup resolves a complete command from input, running every decider on
// the way.
//
// Errors are ErrFinalizerDoesNotExist, ErrDeciderAdvancedTooFar,
// *UnknownMappingError or *DeciderDeniedError[D].
func (m *Mapping[A, D, C]) Lookup(input []string) (Match[A, C], error) {
	var args []A
	node := m
	for len(input) > 0 {
		child, advance, err := node.step(input, &args)
		if err != nil {
			return Match[A, C]{}, err
		}
		input = input[1+advance:]
		node = child
	}
	if node.finalizer == nil {
		return Match[A, C]{}, ErrFinalizerDoesNotExist
	}
	return Match[A, C]{Finalizer: node.finalizer, Args: args}, nil
}

// Partial is the result of PartialLookup: either the node reached when the
// input ran out, or the description of a decider still waiting for input.
type Partial[A, D, C any] struct {
	node        *Mapping[A, D, C]
	description string
	pending     bool

	// Args holds the values collected before the walk stopped
	Args []A
}

// Node returns the reached node, if the walk ended on one.
func (p Partial[A, D, C]) Node() (*Mapping[A, D, C], bool) {
	return p.node, p.node != nil
}

// Description returns the pending decider's description, if the walk ended
// on a decider.
func (p Partial[A, D, C]) Description() (string, bool) {
	return p.description, p.pending
}

// PartialLookup walks input like Lookup but tolerates running out of tokens
// mid-command, for autocompletion.
//
// When the last token names a segment with a decider, the decider is not run
// and its description is returned instead. Deciders further up the path run
// as usual, so their denials are reported.
func (m *Mapping[A, D, C]) PartialLookup(input []string) (Partial[A, D, C], error) {
	var args []A
	node := m
	for len(input) > 0 {
		if child, ok := node.children[input[0]]; ok && child.decider != nil && len(input) == 1 {
			return Partial[A, D, C]{description: child.decider.Description, pending: true, Args: args}, nil
		}
		child, advance, err := node.step(input, &args)
		if err != nil {
			return Partial[A, D, C]{}, err
		}
		input = input[1+advance:]
		node = child
	}
	return Partial[A, D, C]{node: node, Args: args}, nil
}

// step matches input[0] against the children of m and runs the child's
// decider on the rest of input. It returns the child and the number of
// tokens the decider consumed beyond the segment itself.
func (m *Mapping[A, D, C]) step(input []string, out *[]A) (*Mapping[A, D, C], int, error) {
	child, ok := m.children[input[0]]
	if !ok {
		return nil, 0, &UnknownMappingError{Segment: input[0]}
	}
	if child.decider == nil {
		return child, 0, nil
	}

	dec := child.decider.Decide(input[1:], out)
	if reason, denied := dec.Denied(); denied {
		return nil, 0, &DeciderDeniedError[D]{Description: child.decider.Description, Reason: reason}
	}
	advance, _ := dec.Accepted()

	// input still holds the segment token, so a decider may consume at most
	// len(input)-1 tokens
	if advance < 0 || len(input) <= advance {
		return nil, 0, ErrDeciderAdvancedTooFar
	}
	return child, advance, nil
}

// =============================================================================
// INTROSPECTION
// =============================================================================

// Key describes a direct child of a node.
type Key struct {
	Name        string // Segment name
	Description string // Description of the child's decider, if any
	HasDecider  bool   // Whether the child edge carries a decider
	Callable    bool   // Whether the child itself is a command
}

func (m *Mapping[A, D, C]) key(name string) Key {
	k := Key{Name: name, Callable: m.finalizer != nil}
	if m.decider != nil {
		k.Description = m.decider.Description
		k.HasDecider = true
	}
	return k
}

// DirectKeys yields the immediate children of m. The order is unspecified.
// The sequence can be ranged over any number of times.
func (m *Mapping[A, D, C]) DirectKeys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for name, child := range m.children {
			if !yield(child.key(name)) {
				return
			}
		}
	}
}

// SortedKeys returns the immediate children of m sorted by name.
func (m *Mapping[A, D, C]) SortedKeys() []Key {
	keys := make([]Key, 0, len(m.children))
	for _, name := range slices.Sorted(maps.Keys(m.children)) {
		keys = append(keys, m.children[name].key(name))
	}
	return keys
}

// Len returns the number of immediate children.
func (m *Mapping[A, D, C]) Len() int {
	return len(m.children)
}

// Callable reports whether the path ending at m is a command.
func (m *Mapping[A, D, C]) Callable() bool {
	return m.finalizer != nil
}

// Child returns the child named name.
func (m *Mapping[A, D, C]) Child(name string) (*Mapping[A, D, C], bool) {
	child, ok := m.children[name]
	return child, ok
}

// Command describes one callable path for help output.
type Command struct {
	Path  []string // Segment names
	Usage string   // Segment names interleaved with decider descriptions
}

// Commands lists every callable path below m, sorted by usage.
func (m *Mapping[A, D, C]) Commands() []Command {
	var out []Command
	m.walk(nil, nil, &out)
	slices.SortFunc(out, func(a, b Command) int {
		return strings.Compare(a.Usage, b.Usage)
	})
	return out
}

func (m *Mapping[A, D, C]) walk(path, usage []string, out *[]Command) {
	if m.finalizer != nil {
		*out = append(*out, Command{
			Path:  slices.Clone(path),
			Usage: strings.Join(usage, " "),
		})
	}
	for name, child := range m.children {
		childUsage := append(slices.Clone(usage), name)
		if child.decider != nil && child.decider.Description != "" {
			childUsage = append(childUsage, child.decider.Description)
		}
		child.walk(append(slices.Clone(path), name), childUsage, out)
	}
}
