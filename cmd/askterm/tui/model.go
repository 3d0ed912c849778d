// Package tui hosts a prompt session inside a bubbletea program.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"askterm/cmd/askterm/ui"
	"askterm/internal/logging"
	"askterm/internal/prompt"
)

// ErrCancelled is returned when the user aborts a prompt without submitting.
var ErrCancelled = errors.New("prompt cancelled")

// pasteMsg carries clipboard text resolved for the session.
type pasteMsg string

// Model is the bubbletea model wrapping one prompt session.
type Model struct {
	session   *prompt.Session
	view      ui.View
	keys      KeyMap
	help      help.Model
	width     int
	cancelled bool
}

// New creates a model. The session must not be shared with another host.
func New(s *prompt.Session, v ui.View, keys KeyMap) Model {
	return Model{
		session: s,
		view:    v,
		keys:    keys,
		help:    help.New(),
	}
}

// Cancelled reports whether the user aborted.
func (m Model) Cancelled() bool { return m.cancelled }

// Init enables bracketed paste and starts listening for clipboard reads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableBracketedPaste,
		waitForPaste(m.session),
	)
}

// waitForPaste returns a command that waits for the next clipboard result,
// or nothing once the session has ended.
func waitForPaste(s *prompt.Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case text := <-s.Pastes():
			return pasteMsg(text)
		case <-s.Context().Done():
			return nil
		}
	}
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if m.view.Markdown != nil {
			m.view.Markdown.SetWidth(msg.Width - 4)
		}
		return m, nil

	case pasteMsg:
		m.session.ApplyPaste(string(msg))
		if m.session.Done() {
			return m, tea.Quit
		}
		return m, waitForPaste(m.session)

	case tea.KeyMsg:
		// Bracketed paste never cancels, even if it happens to match.
		if !msg.Paste && key.Matches(msg, m.keys.Cancel) {
			logging.Get(logging.CategorySession).Info("session %s cancelled", m.session.ID())
			m.cancelled = true
			return m, tea.Quit
		}
		for _, ev := range m.keys.translate(msg) {
			m.session.HandleKey(ev)
			if m.session.Done() {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View renders the prompt, or the final answer line once submitted.
func (m Model) View() string {
	if m.cancelled {
		return ""
	}
	if m.session.Done() {
		return m.view.RenderAnswer(m.session.Question(), m.session.Answer()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.view.Render(m.session.View()))
	b.WriteString("\n\n")
	b.WriteString(m.view.Styles.Footer.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}

// Run drives s to completion on the terminal and returns the answer. The
// prompt draws on stderr so stdout stays free for results.
func Run(ctx context.Context, s *prompt.Session, v ui.View, keys KeyMap, opts ...tea.ProgramOption) (string, error) {
	defer s.Close()

	opts = append([]tea.ProgramOption{tea.WithOutput(os.Stderr), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(s, v, keys), opts...)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if fm, ok := final.(Model); ok && fm.cancelled {
		return "", ErrCancelled
	}
	if !s.Done() {
		return "", ErrCancelled
	}
	return s.Answer(), nil
}
