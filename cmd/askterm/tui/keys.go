package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"askterm/internal/clipboard"
	"askterm/internal/config"
	"askterm/internal/logging"
	"askterm/internal/prompt"
)

// KeyMap holds the bindings the host handles itself plus the ones shown in
// the help footer.
type KeyMap struct {
	Submit   key.Binding
	Navigate key.Binding
	Newline  key.Binding
	Paste    key.Binding
	Cancel   key.Binding
}

// NewKeyMap builds bindings from the keys config section. The paste binding
// is disabled, and so left out of the help footer, when canPaste is false.
func NewKeyMap(cfg config.KeysConfig, hasOptions, canPaste bool) KeyMap {
	paste := cfg.Paste
	if paste == "" {
		paste = "ctrl+v"
	}
	cancel := cfg.Cancel
	if len(cancel) == 0 {
		cancel = []string{"ctrl+c"}
	}
	newline := cfg.Newline
	if len(newline) == 0 {
		newline = []string{"alt+enter"}
	}

	navHelp := "move"
	if hasOptions {
		navHelp = "select"
	}
	k := KeyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Navigate: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", navHelp)),
		Newline:  key.NewBinding(key.WithKeys(newline...), key.WithHelp(newline[0], "newline")),
		Paste:    key.NewBinding(key.WithKeys(paste), key.WithHelp(paste, "paste")),
		Cancel:   key.NewBinding(key.WithKeys(cancel...), key.WithHelp(cancel[0], "cancel")),
	}
	k.Paste.SetEnabled(canPaste)
	return k
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Navigate, k.Newline, k.Paste, k.Cancel}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// translate maps a bubbletea key message onto prompt key events. Only a
// bracketed paste becomes a multi-rune burst; runes that merely arrived in
// the same read are split into one event each. It returns nil for keys the
// prompt has no use for.
func (k KeyMap) translate(msg tea.KeyMsg) []prompt.KeyEvent {
	if msg.Paste {
		return []prompt.KeyEvent{prompt.Runes(clipboard.Normalize(string(msg.Runes)))}
	}
	if key.Matches(msg, k.Newline) {
		return []prompt.KeyEvent{prompt.KeyShiftEnter}
	}

	one := func(ev prompt.KeyEvent) []prompt.KeyEvent { return []prompt.KeyEvent{ev} }
	switch msg.Type {
	case tea.KeyEnter:
		if msg.Alt {
			return one(prompt.KeyShiftEnter)
		}
		return one(prompt.KeyEnter)
	case tea.KeyBackspace:
		return one(prompt.KeyBackspace)
	case tea.KeyDelete:
		return one(prompt.KeyDelete)
	case tea.KeyUp:
		return one(prompt.KeyUp)
	case tea.KeyDown:
		return one(prompt.KeyDown)
	case tea.KeyLeft:
		return one(prompt.KeyLeft)
	case tea.KeyRight:
		return one(prompt.KeyRight)
	case tea.KeySpace:
		return one(prompt.KeyEvent{Text: " ", CtrlOrMeta: msg.Alt})
	case tea.KeyRunes:
		evs := make([]prompt.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, prompt.KeyEvent{Text: string(r), CtrlOrMeta: msg.Alt})
		}
		return evs
	}

	// Control chords arrive as their own key types; recover the letter so
	// the session can match shortcuts such as ctrl+v.
	if rest, ok := strings.CutPrefix(msg.String(), "ctrl+"); ok && utf8.RuneCountInString(rest) == 1 {
		return one(prompt.KeyEvent{Text: rest, CtrlOrMeta: true})
	}
	logging.InputDebug("ignoring key %q", msg.String())
	return nil
}
