// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// COMPLETION TYPES
// =============================================================================

// Candidate is one possible next word.
type Candidate struct {
	// Value is the segment name
	Value string

	// Description is the usage of the segment's decider, if it has one
	Description string

	// Callable is true if the segment is a complete command
	Callable bool

	// Score ranks the candidate; higher is better
	Score int
}

// String renders the candidate as its name followed by its usage.
func (c Candidate) String() string {
	if c.Description == "" {
		return c.Value
	}
	return c.Value + " " + c.Description
}

// Completion is the result of completing a partial line.
type Completion struct {
	// Prefix is the partial word being completed
	Prefix string

	// Candidates are the matching next words, best first
	Candidates []Candidate

	// Hint is the usage of a decider waiting for arguments. When set there
	// are no candidates.
	Hint string

	// Err is set when the finished words do not form a valid prefix
	Err error
}

// =============================================================================
// COMPLETER
// =============================================================================

// Complete returns completions for a partial line. Words before the last
// are looked up; the last word, unless the line ends in whitespace, is the
// prefix candidates must start with.
func (s *Shell) Complete(line string) Completion {
	line = norm.NFC.String(line)

	tokens, err := Split(line)
	if err != nil {
		return Completion{Err: err}
	}
	words := Words(tokens)

	prefix := ""
	if len(words) > 0 && !endsInSpace(line) {
		prefix = words[len(words)-1]
		words = words[:len(words)-1]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeWords(words, prefix)
}

// completeWords completes prefix after the finished words. The caller
// holds s.mu.
func (s *Shell) completeWords(words []string, prefix string) Completion {
	partial, err := s.commands.PartialLookup(words)
	if err != nil {
		return Completion{Prefix: prefix, Err: err}
	}
	if hint, pending := partial.Description(); pending {
		return Completion{Prefix: prefix, Hint: hint}
	}

	node, _ := partial.Node()
	lower := strings.ToLower(prefix)

	var candidates []Candidate
	for key := range node.DirectKeys() {
		if !strings.HasPrefix(strings.ToLower(key.Name), lower) {
			continue
		}
		candidates = append(candidates, Candidate{
			Value:       key.Name,
			Description: key.Description,
			Callable:    key.Callable,
			Score:       calculateScore(key.Name, prefix),
		})
	}

	sortCandidates(candidates)
	if len(candidates) > s.maxCompletions {
		candidates = candidates[:s.maxCompletions]
	}
	return Completion{Prefix: prefix, Candidates: candidates}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// calculateScore calculates a match score for completion ranking.
// Higher score = better match.
func calculateScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100

	// Exact match
	if value == partial {
		return score + 100
	}

	// Prefix match bonus
	if strings.HasPrefix(value, partial) {
		score += 50
		// Bonus for shorter completions
		score += 20 - len(value)
	}

	// Length penalty
	score -= len(value) / 2

	return score
}

// sortCandidates sorts by score (descending), then alphabetically.
func sortCandidates(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Value < candidates[j].Value
	})
}

func endsInSpace(line string) bool {
	if line == "" {
		return true
	}
	r := []rune(line)
	return unicode.IsSpace(r[len(r)-1])
}
