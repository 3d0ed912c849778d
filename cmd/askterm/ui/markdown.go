package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"askterm/internal/logging"
)

// Markdown renders question text through glamour. Output is cached per
// (text, width, theme) so redrawing the prompt on every keystroke does not
// re-run the markdown pipeline.
type Markdown struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	dark     bool
	cache    *RenderCache
}

// NewMarkdown creates a renderer wrapping at width columns.
func NewMarkdown(theme Theme, width int) *Markdown {
	m := &Markdown{dark: theme.IsDark, cache: NewRenderCache(32)}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the renderer for a new terminal width.
func (m *Markdown) SetWidth(width int) {
	if width <= 0 {
		width = 80
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renderer != nil && width == m.width {
		return
	}

	style := "light"
	if m.dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.Get(logging.CategorySession).Warn("markdown renderer unavailable: %v", err)
		r = nil
	}
	if m.renderer != nil {
		m.cache.Clear()
	}
	m.renderer = r
	m.width = width
}

// Render returns text as styled terminal output, or text unchanged if the
// renderer is unavailable or fails.
func (m *Markdown) Render(text string) string {
	m.mu.Lock()
	r, width, dark := m.renderer, m.width, m.dark
	m.mu.Unlock()

	if r == nil {
		return text
	}
	key := ComputeKey(text, width, dark)
	return m.cache.GetOrCompute(key, func() string {
		return safeRender(r, text)
	})
}

// safeRender renders markdown with panic recovery
func safeRender(r *glamour.TermRenderer, text string) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Get(logging.CategorySession).Error("markdown render panic: %v", rec)
			result = text
		}
	}()
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
