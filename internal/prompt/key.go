package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeyEvent is one keystroke, or one paste burst, delivered by the host.
// Exactly one of the fields is normally set; Text holding more than one rune
// is a paste burst.
type KeyEvent struct {
	Text       string
	Enter      bool
	ShiftEnter bool
	Backspace  bool
	Delete     bool
	Up         bool
	Down       bool
	Left       bool
	Right      bool
	CtrlOrMeta bool
}

// Runes returns a key event for typed or pasted text.
func Runes(s string) KeyEvent { return KeyEvent{Text: s} }

// Common single-key events.
var (
	KeyEnter      = KeyEvent{Enter: true}
	KeyShiftEnter = KeyEvent{ShiftEnter: true}
	KeyBackspace  = KeyEvent{Backspace: true}
	KeyDelete     = KeyEvent{Delete: true}
	KeyUp         = KeyEvent{Up: true}
	KeyDown       = KeyEvent{Down: true}
	KeyLeft       = KeyEvent{Left: true}
	KeyRight      = KeyEvent{Right: true}
)

// isBurst reports whether the event carries a multi-rune paste.
func (e KeyEvent) isBurst() bool {
	return utf8.RuneCountInString(e.Text) > 1
}

// String renders the event for debug logs.
func (e KeyEvent) String() string {
	var parts []string
	if e.CtrlOrMeta {
		parts = append(parts, "ctrl")
	}
	switch {
	case e.ShiftEnter:
		parts = append(parts, "shift+enter")
	case e.Enter:
		parts = append(parts, "enter")
	case e.Backspace:
		parts = append(parts, "backspace")
	case e.Delete:
		parts = append(parts, "delete")
	case e.Up:
		parts = append(parts, "up")
	case e.Down:
		parts = append(parts, "down")
	case e.Left:
		parts = append(parts, "left")
	case e.Right:
		parts = append(parts, "right")
	case e.isBurst():
		return fmt.Sprintf("paste(%d runes)", utf8.RuneCountInString(e.Text))
	case e.Text != "":
		parts = append(parts, fmt.Sprintf("%q", e.Text))
	default:
		parts = append(parts, "none")
	}
	return strings.Join(parts, "+")
}

// ParseShortcut parses a modifier shortcut such as "ctrl+v" or "alt+p" into
// the key event a host produces for it.
func ParseShortcut(s string) (KeyEvent, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return KeyEvent{}, fmt.Errorf("shortcut %q needs a modifier", s)
	}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl", "alt", "meta", "cmd":
		default:
			return KeyEvent{}, fmt.Errorf("shortcut %q: unknown modifier %q", s, mod)
		}
	}
	last := parts[len(parts)-1]
	if utf8.RuneCountInString(last) != 1 {
		return KeyEvent{}, fmt.Errorf("shortcut %q: key must be a single character", s)
	}
	return KeyEvent{Text: last, CtrlOrMeta: true}, nil
}
