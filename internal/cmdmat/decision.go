// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmdmat

// =============================================================================
// DECISION
// =============================================================================

// Decision is the outcome of running a decider: either the number of tokens
// it accepted or the reason it denied the input.
type Decision[D any] struct {
	advance int
	reason  D
	denied  bool
}

// Accept returns a decision consuming n tokens. Zero is legal and lets a
// decider contribute values without consuming input.
func Accept[D any](n int) Decision[D] {
	return Decision[D]{advance: n}
}

// Deny returns a decision rejecting the input with reason.
func Deny[D any](reason D) Decision[D] {
	return Decision[D]{reason: reason, denied: true}
}

// Accepted returns the number of consumed tokens and true if d is an accept.
func (d Decision[D]) Accepted() (int, bool) {
	if d.denied {
		return 0, false
	}
	return d.advance, true
}

// Denied returns the deny reason and true if d is a deny.
func (d Decision[D]) Denied() (D, bool) {
	return d.reason, d.denied
}

// =============================================================================
// DECIDER
// =============================================================================

// DecideFunc inspects the tokens that follow a segment and appends the values
// it accepts to out.
//
// input may be empty and implementations must not panic on it; most deciders
// deny in that case. An accepting DecideFunc returns Accept(n) with
// 0 <= n <= len(input). The number of values appended to out does not have
// to match n.
type DecideFunc[A, D any] func(input []string, out *[]A) Decision[D]

// Decider is a described DecideFunc. Deciders are shared by pointer between
// the specifications that use them and must not change after registration.
type Decider[A, D any] struct {
	// Description is shown during completion, e.g. "<i32>"
	Description string

	// Decide parses the tokens
	Decide DecideFunc[A, D]
}

// =============================================================================
// COMBINATORS
// =============================================================================

// Sequence returns a decider running each of ds on the input left over by
// the previous one. It denies with the first deny and otherwise accepts the
// sum of the consumed tokens.
func Sequence[A, D any](description string, ds ...*Decider[A, D]) *Decider[A, D] {
	return &Decider[A, D]{
		Description: description,
		Decide: func(input []string, out *[]A) Decision[D] {
			total := 0
			for _, d := range ds {
				if total > len(input) {
					break
				}
				dec := d.Decide(input[total:], out)
				n, ok := dec.Accepted()
				if !ok {
					return dec
				}
				total += n
			}
			return Accept[D](total)
		},
	}
}

// Repeat returns a decider applying d until the input is exhausted. Empty
// input is accepted with zero tokens. A deny from d, or d accepting nothing
// while input remains, denies the whole repetition.
func Repeat[A, D any](description string, d *Decider[A, D], stalled D) *Decider[A, D] {
	return &Decider[A, D]{
		Description: description,
		Decide: func(input []string, out *[]A) Decision[D] {
			total := 0
			for total < len(input) {
				dec := d.Decide(input[total:], out)
				n, ok := dec.Accepted()
				if !ok {
					return dec
				}
				if n <= 0 {
					return Deny(stalled)
				}
				total += n
			}
			return Accept[D](total)
		},
	}
}

// Optional returns a decider that runs d only when input remains.
func Optional[A, D any](description string, d *Decider[A, D]) *Decider[A, D] {
	return &Decider[A, D]{
		Description: description,
		Decide: func(input []string, out *[]A) Decision[D] {
			if len(input) == 0 {
				return Accept[D](0)
			}
			return d.Decide(input, out)
		},
	}
}
