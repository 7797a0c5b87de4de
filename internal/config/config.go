// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/gameshell/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete gameshell configuration.
type Config struct {
	// Shell behaviour
	Shell ShellConfig `toml:"shell" yaml:"shell"`

	// Tab completion
	Completion CompletionConfig `toml:"completion" yaml:"completion"`

	// Logging
	Log LogConfig `toml:"log" yaml:"log"`

	// Terminal output
	UI UIConfig `toml:"ui" yaml:"ui"`
}

// ShellConfig contains interpreter settings.
type ShellConfig struct {
	// Prompt is printed before each interactive line
	Prompt string `toml:"prompt" yaml:"prompt"`
	// MaxDepth limits nested (parenthesised) commands
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
	// Vars are string variables set when the shell starts
	Vars map[string]string `toml:"vars" yaml:"vars"`
}

// CompletionConfig contains tab completion settings.
type CompletionConfig struct {
	// MaxResults caps the candidates offered for one word
	MaxResults int `toml:"max_results" yaml:"max_results"`
	// ShowHints prints the usage of a pending argument when there is
	// nothing to complete
	ShowHints bool `toml:"show_hints" yaml:"show_hints"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `toml:"level" yaml:"level"`
	// Format is "text" or "json"
	Format string `toml:"format" yaml:"format"`
}

// UIConfig contains terminal output settings.
type UIConfig struct {
	// NoColor disables styled output
	NoColor bool `toml:"no_color" yaml:"no_color"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Prompt:   "> ",
			MaxDepth: 16,
		},
		Completion: CompletionConfig{
			MaxResults: 50,
			ShowHints:  true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the gameshell configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".gameshell"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// isYAML reports whether path names a YAML file.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.gameshell/config.toml, falling back to
// config.yaml and then to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathYAML} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file over cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file with full
// validation. Fields missing from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if isYAML(path) {
		if err := LoadYAML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load YAML config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

const fileHeader = "gameshell configuration file"

// Save writes the configuration to the path it would be loaded from,
// picking the format from the extension.
func Save(cfg *Config, path string) error {
	if isYAML(path) {
		return SaveYAML(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML atomically writes the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", fileHeader)

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveYAML atomically writes the configuration to a YAML file.
func SaveYAML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", fileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Shell.Prompt == "" {
		errs = append(errs, ValidationError{
			Field:   "shell.prompt",
			Message: "must not be empty",
		})
	}
	if c.Shell.MaxDepth < 1 || c.Shell.MaxDepth > 256 {
		errs = append(errs, ValidationError{
			Field:   "shell.max_depth",
			Message: fmt.Sprintf("must be between 1 and 256, got %d", c.Shell.MaxDepth),
		})
	}
	for name := range c.Shell.Vars {
		if name == "" || strings.ContainsFunc(name, isSpace) {
			errs = append(errs, ValidationError{
				Field:   "shell.vars",
				Message: fmt.Sprintf("invalid variable name %q", name),
			})
		}
	}

	if c.Completion.MaxResults < 1 || c.Completion.MaxResults > 1000 {
		errs = append(errs, ValidationError{
			Field:   "completion.max_results",
			Message: fmt.Sprintf("must be between 1 and 1000, got %d", c.Completion.MaxResults),
		})
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LogLevel returns the configured slog level. Validate guarantees it parses.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// =============================================================================
// ENVIRONMENT AND FLAG OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - GAMESHELL_PROMPT: overrides shell.prompt
//   - GAMESHELL_LOG_LEVEL: overrides log.level
//   - GAMESHELL_LOG_FORMAT: overrides log.format
//   - GAMESHELL_NO_COLOR or NO_COLOR: set to disable styled output
func (c *Config) ApplyEnvOverrides() {
	if prompt := os.Getenv("GAMESHELL_PROMPT"); prompt != "" {
		c.Shell.Prompt = prompt
	}

	if level := os.Getenv("GAMESHELL_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if format := os.Getenv("GAMESHELL_LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}

	if noColor := os.Getenv("GAMESHELL_NO_COLOR"); noColor != "" {
		c.UI.NoColor = noColor == "1" || strings.ToLower(noColor) == "true"
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.NoColor = true
	}
}

// Flag names read by ApplyFlags.
const (
	FlagPrompt    = "prompt"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagNoColor   = "no-color"
	FlagMaxDepth  = "max-depth"
)

// ApplyFlags overrides the config with flags the user set explicitly.
// Unknown or unset flags are ignored, so any subset may be registered.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var errs []error

	if fs.Changed(FlagPrompt) {
		v, err := fs.GetString(FlagPrompt)
		errs = append(errs, err)
		c.Shell.Prompt = v
	}
	if fs.Changed(FlagLogLevel) {
		v, err := fs.GetString(FlagLogLevel)
		errs = append(errs, err)
		c.Log.Level = v
	}
	if fs.Changed(FlagLogFormat) {
		v, err := fs.GetString(FlagLogFormat)
		errs = append(errs, err)
		c.Log.Format = v
	}
	if fs.Changed(FlagNoColor) {
		v, err := fs.GetBool(FlagNoColor)
		errs = append(errs, err)
		c.UI.NoColor = v
	}
	if fs.Changed(FlagMaxDepth) {
		v, err := fs.GetInt(FlagMaxDepth)
		errs = append(errs, err)
		c.Shell.MaxDepth = v
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	return c.Validate()
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "log.level").
func (c *Config) Get(key string) (any, error) {
	field, err := c.field(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "log.level").
// String values are converted to the field's type.
func (c *Config) Set(key string, value any) error {
	field, err := c.field(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) field(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from a value with type conversion.
func setFieldValue(field reflect.Value, value any) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int:
			intVal, err := strconv.Atoi(strVal)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(int64(intVal))
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				return fmt.Errorf("invalid bool value: %v", err)
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all scalar configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"shell.prompt",
		"shell.max_depth",
		"completion.max_results",
		"completion.show_hints",
		"log.level",
		"log.format",
		"ui.no_color",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Shell.Vars != nil {
		clone.Shell.Vars = maps.Clone(c.Shell.Vars)
	}
	return &clone
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<invalid config: %v>", err)
	}
	return buf.String()
}
