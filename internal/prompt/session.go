// Package prompt is the interactive answer engine. A Session owns one State
// and advances it one key event at a time, either until the user submits an
// answer or the host closes it. Painting is left to the host, which either
// pulls a ViewModel with View or receives one through a Renderer.
package prompt

import (
	"context"
	"sync"

	"askterm/internal/logging"
)

// SubmitFunc receives the session id and the submitted answer.
type SubmitFunc func(id, value string)

// Clipboard reads the system clipboard. Implementations must honour ctx.
type Clipboard interface {
	Read(ctx context.Context) (string, error)
}

// Renderer is pushed a fresh view model after every non-terminal event.
type Renderer interface {
	Render(ViewModel)
}

// DefaultPasteKey is the shortcut that triggers a clipboard read.
var DefaultPasteKey = KeyEvent{Text: "v", CtrlOrMeta: true}

// Session is a single question being answered. It is not safe for concurrent
// use: HandleKey, ApplyPaste, View and Close belong to the host's event loop.
// The only background work is clipboard reads, whose results come back on
// Pastes.
type Session struct {
	id       string
	question string
	state    State
	onSubmit SubmitFunc
	from     Mode // mode the answer was submitted from
	answer   string

	policy   ArrowPolicy
	pasteKey KeyEvent
	clip     Clipboard
	renderer Renderer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	pastes chan string

	log *logging.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClipboard enables the paste shortcut.
func WithClipboard(c Clipboard) Option {
	return func(s *Session) { s.clip = c }
}

// WithRenderer registers a push-style view consumer.
func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

// WithArrowPolicy sets the vertical arrow behaviour.
func WithArrowPolicy(p ArrowPolicy) Option {
	return func(s *Session) { s.policy = p }
}

// WithPasteKey overrides DefaultPasteKey.
func WithPasteKey(k KeyEvent) Option {
	return func(s *Session) { s.pasteKey = k }
}

// WithContext parents the session context, so cancelling ctx also abandons
// outstanding clipboard reads.
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		s.cancel()
		s.ctx, s.cancel = context.WithCancel(ctx)
	}
}

// New starts a session for question with the given choices. onSubmit may be
// nil when the host only watches Done and Answer.
func New(id, question string, choices []string, onSubmit SubmitFunc, opts ...Option) *Session {
	s := &Session{
		id:       id,
		question: question,
		state:    NewState(choices),
		onSubmit: onSubmit,
		pasteKey: DefaultPasteKey,
		pastes:   make(chan string),
		log:      logging.Get(logging.CategoryInput).With("session_id", id),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	for _, opt := range opts {
		opt(s)
	}
	logging.Get(logging.CategorySession).With("session_id", id).
		Info("session started: %d options, mode=%s, arrows=%s", len(choices), s.state.Mode, s.policy)
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Question returns the question text.
func (s *Session) Question() string { return s.question }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Done reports whether an answer has been submitted.
func (s *Session) Done() bool { return s.state.Mode == Submitted }

// Answer returns the submitted value, or "" before submit.
func (s *Session) Answer() string { return s.answer }

// SubmittedFrom returns the mode that was active when the answer was
// submitted: OptionSelect for a chosen option, FreeText for typed text.
// It is only meaningful once Done reports true.
func (s *Session) SubmittedFrom() Mode { return s.from }

// View projects the current state.
func (s *Session) View() ViewModel { return Project(s.question, s.state) }

// Context is cancelled on submit or Close. Hosts select on it to stop
// waiting for Pastes.
func (s *Session) Context() context.Context { return s.ctx }

// Pastes delivers clipboard text requested with the paste shortcut. The host
// passes each value to ApplyPaste.
func (s *Session) Pastes() <-chan string { return s.pastes }

// HandleKey feeds one key event through the session.
func (s *Session) HandleKey(ev KeyEvent) {
	if s.Done() {
		s.log.Warn("dropping %s: session already submitted", ev)
		return
	}
	if s.clip != nil && ev == s.pasteKey {
		s.requestPaste()
		return
	}
	prev := s.state.Mode
	s.from = prev
	s.commit(Transition(s.state, ev, s.policy))
	if s.state.Mode != prev {
		s.log.Debug("%s: %s -> %s", ev, prev, s.state.Mode)
	}
}

// ApplyPaste inserts resolved clipboard text at the current cursor as a
// paste burst. It is a no-op after submit or for empty text.
func (s *Session) ApplyPaste(text string) {
	if s.Done() || text == "" {
		return
	}
	s.commit(Result{State: pasteBurst(s.state, text)})
}

// Close abandons outstanding clipboard reads and waits for them to exit.
// It is safe to call more than once.
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
	logging.SessionDebug("session %s closed", s.id)
}

func (s *Session) commit(r Result) {
	s.state = r.State
	if r.Submitted() {
		s.answer = r.Value
		s.cancel()
		logging.Get(logging.CategorySession).With("session_id", s.id).
			Info("submitted %d-rune answer", len([]rune(r.Value)))
		if s.onSubmit != nil {
			s.onSubmit(s.id, r.Value)
		}
		return
	}
	if s.renderer != nil {
		s.renderer.Render(s.View())
	}
}

func (s *Session) requestPaste() {
	ctx := s.ctx
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		text, err := s.clip.Read(ctx)
		if err != nil {
			logging.ClipboardDebug("paste read failed: %v", err)
			return
		}
		if text == "" {
			return
		}
		select {
		case s.pastes <- text:
		case <-ctx.Done():
			logging.ClipboardDebug("paste discarded: session finished")
		}
	}()
}
