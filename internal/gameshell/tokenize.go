// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"errors"
	"strings"
	"unicode"
)

// =============================================================================
// TOKENS
// =============================================================================

var (
	// ErrUnterminatedQuote is returned for a line with an open quote.
	ErrUnterminatedQuote = errors.New("unterminated quote")

	// ErrUnbalancedParens is returned for a line with mismatched parentheses.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")
)

// Token is one word of an input line.
type Token struct {
	// Text is the word with quotes removed, or the inner text of a
	// parenthesised group
	Text string

	// Nested marks a parenthesised group to be evaluated as a command
	Nested bool
}

// Split splits a line into tokens.
//
// Words are separated by whitespace. Single or double quotes group words
// into one token, with \", \' and \\ escapes inside quotes. A word starting
// with ( runs to the matching ) and becomes a nested token; its inner text
// is kept verbatim, quotes included.
func Split(line string) ([]Token, error) {
	var (
		tokens        []Token
		current       strings.Builder
		inSingleQuote bool
		inDoubleQuote bool
		quoted        bool // current token had quotes, so it may be empty
	)

	flush := func() {
		if current.Len() > 0 || quoted {
			tokens = append(tokens, Token{Text: current.String()})
			current.Reset()
		}
		quoted = false
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		char := runes[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			quoted = true

		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			quoted = true

		case char == '\\' && i+1 < len(runes) && (inDoubleQuote || inSingleQuote):
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteRune(next)
				i++
			} else {
				current.WriteRune(char)
			}

		case inSingleQuote || inDoubleQuote:
			current.WriteRune(char)

		case char == '(' && current.Len() == 0 && !quoted:
			end, err := matchParen(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Text: string(runes[i+1 : end]), Nested: true})
			i = end

		case char == ')':
			return nil, ErrUnbalancedParens

		case unicode.IsSpace(char):
			flush()

		default:
			current.WriteRune(char)
		}
	}

	if inSingleQuote || inDoubleQuote {
		return nil, ErrUnterminatedQuote
	}
	flush()

	return tokens, nil
}

// matchParen returns the index of the ) closing the ( at runes[start],
// skipping over quoted text.
func matchParen(runes []rune, start int) (int, error) {
	depth := 0
	var quote rune
	for i := start; i < len(runes); i++ {
		char := runes[i]
		switch {
		case quote != 0:
			if char == '\\' && i+1 < len(runes) {
				i++
			} else if char == quote {
				quote = 0
			}
		case char == '\'' || char == '"':
			quote = char
		case char == '(':
			depth++
		case char == ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	if quote != 0 {
		return 0, ErrUnterminatedQuote
	}
	return 0, ErrUnbalancedParens
}

// Words returns the text of each token.
func Words(tokens []Token) []string {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Text
	}
	return words
}
