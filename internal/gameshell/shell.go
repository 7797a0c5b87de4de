// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gameshell

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/gameshell/internal/cmdmat"
	"github.com/jeranaias/gameshell/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultMaxDepth is how deeply parenthesised commands may nest.
	DefaultMaxDepth = 16

	// DefaultMaxCompletions caps the candidates returned by Complete.
	DefaultMaxCompletions = 50

	// maxLoggedLine bounds the input echoed into log records
	maxLoggedLine = 120
)

// =============================================================================
// SHELL
// =============================================================================

// Shell interprets command lines against a command tree. It is safe for
// concurrent use; lines are interpreted one at a time.
type Shell struct {
	mu       sync.Mutex
	id       string
	commands *Mapping
	ctx      Context
	logger   *slog.Logger

	maxDepth       int
	maxCompletions int
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger used by the shell and its commands.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLevel sets the level variable changed by the log level command.
// It should be the level the logger's handler filters on.
func WithLevel(level *slog.LevelVar) Option {
	return func(s *Shell) {
		if level != nil {
			s.ctx.Level = level
		}
	}
}

// WithVars seeds the shell with string variables.
func WithVars(vars map[string]string) Option {
	return func(s *Shell) {
		for name, v := range vars {
			s.ctx.Vars[name] = String(v)
		}
	}
}

// WithMaxDepth limits nested command evaluation.
func WithMaxDepth(n int) Option {
	return func(s *Shell) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

// WithMaxCompletions caps the number of completion candidates.
func WithMaxCompletions(n int) Option {
	return func(s *Shell) {
		if n > 0 {
			s.maxCompletions = n
		}
	}
}

// New creates a shell with the builtin commands registered.
func New(opts ...Option) (*Shell, error) {
	s := &Shell{
		id:             uuid.New().String(),
		commands:       cmdmat.New[Value, string, Context](),
		ctx:            NewContext(nil),
		logger:         slog.New(slog.DiscardHandler),
		maxDepth:       DefaultMaxDepth,
		maxCompletions: DefaultMaxCompletions,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With("session", s.id)
	s.ctx.Logger = s.logger
	s.ctx.shell = s

	if err := s.commands.RegisterMany(Builtins()...); err != nil {
		return nil, err
	}
	return s, nil
}

// Register adds application commands. A failed spec stops registration;
// specs before it stay registered.
func (s *Shell) Register(specs ...Spec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commands.RegisterMany(specs...)
}

// ID returns the shell's session ID.
func (s *Shell) ID() string {
	return s.id
}

// Commands lists every registered command with its usage.
func (s *Shell) Commands() []cmdmat.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commands.Commands()
}

// Exited reports whether the exit command has run.
func (s *Shell) Exited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Exit
}

// Vars returns a copy of the shell's variables.
func (s *Shell) Vars() map[string]Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	vars := make(map[string]Value, len(s.ctx.Vars))
	for k, v := range s.ctx.Vars {
		vars[k] = v
	}
	return vars
}

// =============================================================================
// INTERPRETATION
// =============================================================================

// Interpret runs one command line and returns its reply.
//
// Parenthesised groups are run first and their replies substituted as
// single tokens, so "+ 1 (+ 2 3)" replies "6". Blank lines and lines
// starting with # reply "".
func (s *Shell) Interpret(line string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interpret(line, 0)
}

// InterpretMultiple runs each line of text in order and joins the non-empty
// replies with newlines. It stops at the first error or after exit.
func (s *Shell) InterpretMultiple(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var replies []string
	for line := range strings.Lines(text) {
		reply, err := s.interpret(line, 0)
		if err != nil {
			return strings.Join(replies, "\n"), err
		}
		if reply != "" {
			replies = append(replies, reply)
		}
		if s.ctx.Exit {
			break
		}
	}
	return strings.Join(replies, "\n"), nil
}

func (s *Shell) interpret(line string, depth int) (string, error) {
	line = strings.TrimSpace(norm.NFC.String(line))
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil
	}
	if depth > s.maxDepth {
		return "", &CommandError{Line: line, Err: ErrNestingTooDeep}
	}

	tokens, err := Split(line)
	if err != nil {
		return "", &CommandError{Line: line, Err: err}
	}

	words := make([]string, len(tokens))
	for i, tok := range tokens {
		if !tok.Nested {
			words[i] = tok.Text
			continue
		}
		reply, err := s.interpret(tok.Text, depth+1)
		if err != nil {
			return "", err
		}
		words[i] = reply
	}

	match, err := s.commands.Lookup(words)
	if err != nil {
		s.logLookupError(line, err)
		return "", &CommandError{Line: line, Err: err}
	}

	s.logger.Debug("running command", "line", util.TruncateRunes(line, maxLoggedLine), "depth", depth)
	reply, err := match.Run(&s.ctx)
	if err != nil {
		s.logger.Debug("command failed", "line", util.TruncateRunes(line, maxLoggedLine), "error", err)
		return "", &CommandError{Line: line, Err: err}
	}
	return reply, nil
}

// logLookupError logs a decider overrunning its input as a programming
// error; the rest are user input errors.
func (s *Shell) logLookupError(line string, err error) {
	if errors.Is(err, cmdmat.ErrDeciderAdvancedTooFar) {
		s.logger.Error("decider advanced past end of input", "line", util.TruncateRunes(line, maxLoggedLine))
		return
	}
	s.logger.Debug("lookup failed", "line", util.TruncateRunes(line, maxLoggedLine), "error", err)
}
