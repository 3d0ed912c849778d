package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"askterm/internal/prompt"
)

// Config holds all askterm configuration.
type Config struct {
	// Prompt rendering and navigation
	UI UIConfig `yaml:"ui"`

	// Key bindings handled outside the core controller
	Keys KeysConfig `yaml:"keys"`

	// System clipboard access
	Clipboard ClipboardConfig `yaml:"clipboard"`

	// Answer history store
	History HistoryConfig `yaml:"history"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ClipboardConfig configures clipboard reads for the paste shortcut.
type ClipboardConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Timeout   string `yaml:"timeout"`
	TrimSpace bool   `yaml:"trim_space"`
}

// HistoryConfig configures the answer history database.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
	MaxEntries   int    `yaml:"max_entries"` // 0 = unlimited
}

// DefaultDir is the workspace-relative directory holding askterm state.
const DefaultDir = ".askterm"

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir, "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:       "auto",
			Markdown:    true,
			ShowHint:    true,
			ArrowPolicy: "options",
		},
		Keys: KeysConfig{
			Paste:   "ctrl+v",
			Cancel:  []string{"ctrl+c", "esc"},
			Newline: []string{"alt+enter", "ctrl+j"},
		},
		Clipboard: ClipboardConfig{
			Enabled:   true,
			Timeout:   "1s",
			TrimSpace: true,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: filepath.Join(DefaultDir, "history.db"),
			MaxEntries:   1000,
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			Dir:       filepath.Join(DefaultDir, "logs"),
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Missing file means defaults
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ASKTERM_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
	if v := os.Getenv("ASKTERM_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if path := os.Getenv("ASKTERM_HISTORY_DB"); path != "" {
		c.History.DatabasePath = path
	}
	if v := os.Getenv("ASKTERM_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			c.UI.Theme = "light"
			if dark {
				c.UI.Theme = "dark"
			}
		}
	}
	if v := os.Getenv("ASKTERM_CLIPBOARD_TIMEOUT"); v != "" {
		c.Clipboard.Timeout = v
	}
}

// GetClipboardTimeout returns the clipboard read timeout as a duration.
func (c *Config) GetClipboardTimeout() time.Duration {
	d, err := time.ParseDuration(c.Clipboard.Timeout)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"auto", "light", "dark"}

// ValidLevels lists the accepted logging.level values.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if _, err := c.UI.Policy(); err != nil {
		return fmt.Errorf("invalid ui.arrow_policy: %w", err)
	}
	if _, err := c.Keys.PasteKey(); err != nil {
		return fmt.Errorf("invalid keys.paste: %w", err)
	}
	if c.Clipboard.Timeout != "" {
		if d, err := time.ParseDuration(c.Clipboard.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("invalid clipboard.timeout: %q", c.Clipboard.Timeout)
		}
	}
	if c.History.Enabled && c.History.DatabasePath == "" {
		return fmt.Errorf("history.database_path required when history is enabled")
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("invalid history.max_entries: %d", c.History.MaxEntries)
	}
	if !contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	return nil
}

// SessionOptions returns the prompt options implied by the config.
// The config must already be valid.
func (c *Config) SessionOptions() []prompt.Option {
	var opts []prompt.Option
	if p, err := c.UI.Policy(); err == nil {
		opts = append(opts, prompt.WithArrowPolicy(p))
	}
	if k, err := c.Keys.PasteKey(); err == nil {
		opts = append(opts, prompt.WithPasteKey(k))
	}
	return opts
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
