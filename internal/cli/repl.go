// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/peterh/liner"

	"github.com/jeranaias/gameshell/internal/gameshell"
)

// maxLineSize bounds a single piped input line.
const maxLineSize = 1 << 20

// =============================================================================
// REPL
// =============================================================================

// REPL reads command lines, interprets them and prints replies. On a
// terminal it uses liner for line editing and tab completion; otherwise it
// reads lines from its input as a script would.
type REPL struct {
	env   *Env
	shell *gameshell.Shell
	in    io.Reader
}

// NewREPL creates a REPL reading from in.
func NewREPL(env *Env, sh *gameshell.Shell, in io.Reader) *REPL {
	return &REPL{env: env, shell: sh, in: in}
}

// Run reads lines until end of input, the exit command or cancellation
// of ctx.
func (r *REPL) Run(ctx context.Context) error {
	if isTerminal(r.in) && isTerminal(r.env.Out) {
		return r.runInteractive(ctx)
	}
	return r.RunLines(ctx, r.in)
}

// RunLines interprets every line of in. A failing line is reported and
// the rest still run; the first failure is returned at the end.
func (r *REPL) RunLines(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var firstErr error
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.eval(scanner.Text()); err != nil && firstErr == nil {
			firstErr = err
		}
		if r.shell.Exited() {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return firstErr
}

// eval interprets one line and prints its reply or error.
func (r *REPL) eval(line string) error {
	reply, err := r.shell.Interpret(line)
	if err != nil {
		DisplayError(r.env.ErrOut, r.env.ErrTheme, err)
		return err
	}
	if reply != "" {
		fmt.Fprintln(r.env.Out, r.env.Theme.Reply.Render(reply))
	}
	return nil
}

func (r *REPL) runInteractive(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetWordCompleter(wordCompleter(r.shell))

	r.env.Logger.Debug("interactive session started", "session", r.shell.ID())

	for ctx.Err() == nil {
		input, err := line.Prompt(r.env.Config.Shell.Prompt)
		if err != nil {
			// Ctrl+C or Ctrl+D end the session
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.env.Out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		// Recall is per session; nothing is written to disk
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		// Errors are shown and the session continues
		_ = r.eval(input)

		if r.shell.Exited() {
			return nil
		}
	}
	return nil
}

// =============================================================================
// TAB COMPLETION
// =============================================================================

// wordCompleter adapts Shell.Complete to liner. pos counts runes.
func wordCompleter(sh *gameshell.Shell) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		runes := []rune(line)
		pos = min(max(pos, 0), len(runes))
		before, tail := string(runes[:pos]), string(runes[pos:])

		c := sh.Complete(before)
		if c.Err != nil || len(c.Candidates) == 0 {
			return before, nil, tail
		}

		head := before[:wordStart(before)]
		completions := make([]string, len(c.Candidates))
		for i, cand := range c.Candidates {
			completions[i] = cand.Value + " "
		}
		return head, completions, tail
	}
}

// wordStart returns the byte offset where the last word of s begins.
func wordStart(s string) int {
	idx := strings.LastIndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s[idx:])
	return idx + size
}
