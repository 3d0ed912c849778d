package config

import "askterm/internal/prompt"

// UIConfig configures how the prompt is drawn and navigated.
type UIConfig struct {
	Theme       string `yaml:"theme"`        // auto, light, dark
	Markdown    bool   `yaml:"markdown"`     // Render the question as markdown
	ShowHint    bool   `yaml:"show_hint"`    // Show the navigation hint under options
	ArrowPolicy string `yaml:"arrow_policy"` // options, buffer
}

// Policy parses ArrowPolicy.
func (u UIConfig) Policy() (prompt.ArrowPolicy, error) {
	return prompt.ParseArrowPolicy(u.ArrowPolicy)
}

// KeysConfig holds host-level key bindings in bubbletea notation.
type KeysConfig struct {
	Paste   string   `yaml:"paste"`   // Clipboard read shortcut, e.g. ctrl+v
	Cancel  []string `yaml:"cancel"`  // Abort without submitting
	Newline []string `yaml:"newline"` // Insert a line break (shift+enter equivalents)
}

// PasteKey parses Paste into the key event the session intercepts.
func (k KeysConfig) PasteKey() (prompt.KeyEvent, error) {
	if k.Paste == "" {
		return prompt.DefaultPasteKey, nil
	}
	return prompt.ParseShortcut(k.Paste)
}
