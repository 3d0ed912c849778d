package prompt

import (
	"unicode"
	"unicode/utf8"

	"askterm/internal/options"
	"askterm/internal/textbuf"
)

// State is everything a session owns that a keystroke can change. Each event
// produces a whole new State through Transition.
type State struct {
	Mode    Mode
	Options options.Registry
	Buffer  textbuf.Buffer
}

// NewState returns the initial state for a question: OptionSelect when there
// are choices, FreeText otherwise, and an empty buffer either way.
func NewState(choices []string) State {
	reg := options.New(choices)
	mode := FreeText
	if !reg.Empty() {
		mode = OptionSelect
	}
	return State{Mode: mode, Options: reg, Buffer: textbuf.New("")}
}

// Result is the outcome of one transition. Value is the answer when
// State.Mode is Submitted and empty otherwise.
type Result struct {
	State State
	Value string
}

// Submitted reports whether the transition ended the session.
func (r Result) Submitted() bool { return r.State.Mode == Submitted }

// Transition applies one key event to s. Rules are tried in order and the
// first match wins; unmatched events leave the state unchanged. A Submitted
// state absorbs every event.
func Transition(s State, ev KeyEvent, policy ArrowPolicy) Result {
	if s.Mode == Submitted {
		return Result{State: s}
	}

	switch {
	case ev.isBurst():
		return Result{State: pasteBurst(s, ev.Text)}

	case ev.ShiftEnter && s.Mode == FreeText:
		s.Buffer = s.Buffer.Insert("\n")
		return Result{State: s}

	case ev.Enter && !ev.ShiftEnter:
		value := s.Buffer.String()
		if s.Mode == OptionSelect {
			value = s.Options.Current()
		}
		s.Mode = Submitted
		return Result{State: s, Value: value}

	case ev.Up || ev.Down:
		return Result{State: vertical(s, ev.Up, policy)}

	case ev.Left || ev.Right:
		s.Mode = FreeText
		if ev.Left {
			s.Buffer = s.Buffer.MoveLeft()
		} else {
			s.Buffer = s.Buffer.MoveRight()
		}
		return Result{State: s}

	case ev.Backspace || ev.Delete:
		s.Mode = FreeText
		if ev.Backspace {
			s.Buffer = s.Buffer.DeleteBefore()
		} else {
			s.Buffer = s.Buffer.DeleteAt()
		}
		return Result{State: s}

	case printable(ev):
		if s.Mode == OptionSelect {
			s.Mode = FreeText
			s.Buffer = textbuf.New(ev.Text)
		} else {
			s.Buffer = s.Buffer.Insert(ev.Text)
		}
		return Result{State: s}
	}

	// Ctrl/meta chords and anything else unrecognised.
	return Result{State: s}
}

// pasteBurst inserts text at the cursor and switches to FreeText.
func pasteBurst(s State, text string) State {
	s.Mode = FreeText
	s.Buffer = s.Buffer.Insert(text)
	return s
}

func vertical(s State, up bool, policy ArrowPolicy) State {
	lines := s.Options.Empty() ||
		(policy == ArrowBuffer && s.Mode == FreeText && s.Buffer.LineCount() > 1)

	if lines {
		if up {
			s.Buffer = s.Buffer.MoveUp()
		} else {
			s.Buffer = s.Buffer.MoveDown()
		}
		return s
	}

	s.Mode = OptionSelect
	if up {
		s.Options = s.Options.CycleUp()
	} else {
		s.Options = s.Options.CycleDown()
	}
	return s
}

func printable(ev KeyEvent) bool {
	if ev.CtrlOrMeta || utf8.RuneCountInString(ev.Text) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(ev.Text)
	return unicode.IsPrint(r)
}
