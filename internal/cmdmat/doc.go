// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cmdmat provides a command matching engine.
//
// Commands are static specifications registered into a trie keyed by path
// segments. Each edge may carry a Decider, a small parser that consumes a
// variable number of the tokens following its segment and turns them into
// typed values. A node that terminates a command carries a Finalizer, the
// handler that receives every collected value together with a mutable
// context.
//
// The engine is generic over three caller-defined types:
//
//   - A: the accepted value type produced by deciders
//   - D: the deny reason type returned when a decider rejects input
//   - C: the context type finalizers operate on
//
// # Key Types
//
//   - Mapping: a node in the command trie
//   - Decider: a described, pure token-consuming function
//   - Decision: Accept(n) or Deny(reason)
//   - Match: a resolved finalizer plus its collected arguments
//   - Partial: the result of a partial lookup, a node or a decider description
//
// # Usage
//
// Build the tree once, then look commands up:
//
//	m := cmdmat.New[Value, string, Context]()
//	err := m.Register(cmdmat.Spec[Value, string, Context]{
//	    Path:      []cmdmat.Segment[Value, string]{{Name: "sum", Decider: ManyI32}},
//	    Finalizer: sum,
//	})
//
//	match, err := m.Lookup([]string{"sum", "1", "2"})
//	if err == nil {
//	    reply, err := match.Run(&ctx)
//	}
//
// Autocompletion walks the tree one step at a time. Deciders are arbitrary
// code, so completion cannot look past a pending decider; PartialLookup
// reports its description instead:
//
//	p, err := m.PartialLookup([]string{"log"})
//	if node, ok := p.Node(); ok {
//	    for key := range node.DirectKeys() {
//	        fmt.Println(key.Name)
//	    }
//	}
//
// # Concurrency
//
// Registration is not synchronized. Once every Register call has returned,
// Lookup, PartialLookup and the introspection methods only read the tree
// and may be called from any number of goroutines. Finalizers receive the
// context by pointer; callers sharing a context between goroutines must
// serialize access themselves.
package cmdmat
