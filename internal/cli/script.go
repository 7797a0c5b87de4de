// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a script must be quiet before it is rerun.
const DefaultDebounce = 200 * time.Millisecond

// =============================================================================
// SCRIPTS
// =============================================================================

// RunScript interprets a file line by line in a fresh shell. Every line
// runs; the first failure is returned.
func RunScript(ctx context.Context, env *Env, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sh, err := env.NewShell()
	if err != nil {
		return err
	}
	env.Logger.Debug("running script", "path", path, "session", sh.ID())

	return NewREPL(env, sh, f).RunLines(ctx, f)
}

// =============================================================================
// SCRIPT WATCHER
// =============================================================================

// ScriptWatcher reruns a script in a fresh shell each time it is saved.
type ScriptWatcher struct {
	Env      *Env
	Path     string
	Debounce time.Duration

	// OnRun, if set, is called after every run with its result
	OnRun func(err error)
}

// Run runs the script once, then watches it until ctx is done. Script
// failures are reported and watching continues.
func (sw *ScriptWatcher) Run(ctx context.Context) error {
	path, err := filepath.Abs(sw.Path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}

	debounce := sw.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// Editors often replace files, so watch the directory
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	sw.runOnce(ctx, path)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			sw.Env.Logger.Warn("watch error", "path", path, "error", err)

		case <-fire:
			fire = nil
			fmt.Fprintln(sw.Env.Out, sw.Env.Theme.Separator(min(terminalWidth(sw.Env.Out), 70)))
			sw.runOnce(ctx, path)
		}
	}
}

func (sw *ScriptWatcher) runOnce(ctx context.Context, path string) {
	err := RunScript(ctx, sw.Env, path)
	if err != nil {
		fmt.Fprintln(sw.Env.ErrOut, sw.Env.ErrTheme.Warning.Render("script finished with errors: "+path))
	}
	sw.Env.Logger.Info("script run", "path", path, "ok", err == nil)
	if sw.OnRun != nil {
		sw.OnRun(err)
	}
}
