// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// isolate points the home directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{"GAMESHELL_PROMPT", "GAMESHELL_LOG_LEVEL", "GAMESHELL_LOG_FORMAT", "GAMESHELL_NO_COLOR"} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, slog.LevelWarn, cfg.LogLevel())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadTOML(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".gameshell", "config.toml"), `
[shell]
prompt = "dbg> "

[shell.vars]
map = "e1m1"

[log]
level = "debug"
`)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "dbg> ", cfg.Shell.Prompt)
	require.Equal(t, map[string]string{"map": "e1m1"}, cfg.Shell.Vars)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel())

	// Untouched fields keep their defaults
	require.Equal(t, 16, cfg.Shell.MaxDepth)
	require.Equal(t, "text", cfg.Log.Format)
	require.True(t, cfg.Completion.ShowHints)
}

func TestLoadYAMLFallback(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".gameshell", "config.yaml"), `
completion:
  max_results: 5
  show_hints: false
ui:
  no_color: true
`)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Completion.MaxResults)
	require.False(t, cfg.Completion.ShowHints)
	require.True(t, cfg.UI.NoColor)
}

func TestLoadPrefersTOML(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".gameshell", "config.toml"), "[shell]\nprompt = \"toml> \"\n")
	writeFile(t, filepath.Join(home, ".gameshell", "config.yaml"), "shell:\n  prompt: \"yaml> \"\n")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "toml> ", cfg.Shell.Prompt)
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := isolate(t)

	_, err := LoadFromPath(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, "[shell\n")
	_, err = LoadFromPath(bad)
	require.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yml")
	writeFile(t, invalid, "log:\n  level: loud\n")
	_, err = LoadFromPath(invalid)
	var verrs ValidateErrors
	require.ErrorAs(t, err, &verrs)
	require.Equal(t, "log.level", verrs[0].Field)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GAMESHELL_PROMPT", "$ ")
	t.Setenv("GAMESHELL_LOG_LEVEL", "error")
	t.Setenv("GAMESHELL_LOG_FORMAT", "json")
	t.Setenv("GAMESHELL_NO_COLOR", "1")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "$ ", cfg.Shell.Prompt)
	require.Equal(t, slog.LevelError, cfg.LogLevel())
	require.Equal(t, "json", cfg.Log.Format)
	require.True(t, cfg.UI.NoColor)
}

func TestApplyFlags(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.String(FlagPrompt, "", "")
		fs.String(FlagLogLevel, "", "")
		fs.Bool(FlagNoColor, false, "")
		fs.Int(FlagMaxDepth, 0, "")
		return fs
	}

	t.Run("only changed flags apply", func(t *testing.T) {
		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--log-level", "info", "--no-color"}))

		cfg := Default()
		require.NoError(t, cfg.ApplyFlags(fs))
		require.Equal(t, "info", cfg.Log.Level)
		require.True(t, cfg.UI.NoColor)
		require.Equal(t, "> ", cfg.Shell.Prompt)
		require.Equal(t, 16, cfg.Shell.MaxDepth)
	})

	t.Run("result is validated", func(t *testing.T) {
		fs := newFlags()
		require.NoError(t, fs.Parse([]string{"--max-depth", "0"}))

		cfg := Default()
		err := cfg.ApplyFlags(fs)
		require.ErrorContains(t, err, "shell.max_depth")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "empty prompt", mutate: func(c *Config) { c.Shell.Prompt = "" }, field: "shell.prompt"},
		{name: "depth too large", mutate: func(c *Config) { c.Shell.MaxDepth = 1000 }, field: "shell.max_depth"},
		{name: "bad var name", mutate: func(c *Config) { c.Shell.Vars = map[string]string{"a b": "x"} }, field: "shell.vars"},
		{name: "no completions", mutate: func(c *Config) { c.Completion.MaxResults = 0 }, field: "completion.max_results"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "verbose" }, field: "log.level"},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, field: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verrs ValidateErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			require.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.Shell.Prompt = "# "
	cfg.Shell.Vars = map[string]string{"god": "on"}
	cfg.Log.Format = "json"

	for _, name := range []string{"config.toml", "nested/config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(cfg, path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0600), info.Mode().Perm())

			loaded, err := LoadFromPath(path)
			require.NoError(t, err)
			require.Equal(t, cfg, loaded)
		})
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("shell.max_depth")
	require.NoError(t, err)
	require.Equal(t, 16, v)

	require.NoError(t, cfg.Set("shell.max_depth", "8"))
	require.Equal(t, 8, cfg.Shell.MaxDepth)

	require.NoError(t, cfg.Set("completion.show_hints", "false"))
	require.False(t, cfg.Completion.ShowHints)

	require.NoError(t, cfg.Set("log.level", "debug"))
	require.Equal(t, "debug", cfg.Log.Level)

	_, err = cfg.Get("shell.nope")
	require.ErrorContains(t, err, "unknown field: shell.nope")

	_, err = cfg.Get("log.level.x")
	require.ErrorContains(t, err, "is not a struct")

	require.Error(t, cfg.Set("shell.max_depth", "deep"))

	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		require.NoError(t, err, key)
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	cfg.Shell.Vars = map[string]string{"a": "1"}

	clone := cfg.Clone()
	clone.Shell.Vars["a"] = "2"
	require.Equal(t, "1", cfg.Shell.Vars["a"])
}
