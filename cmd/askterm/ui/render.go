package ui

import (
	"fmt"
	"strings"

	"askterm/internal/prompt"
)

// View paints prompt view models.
type View struct {
	Styles   Styles
	Markdown *Markdown // nil renders the question as plain text
	ShowHint bool
}

// Render paints vm as a multi-line string.
func (v View) Render(vm prompt.ViewModel) string {
	var b strings.Builder

	b.WriteString(v.question(vm.Question))
	b.WriteString("\n\n")

	if len(vm.Options) > 0 {
		if v.ShowHint && vm.Hint != "" {
			b.WriteString(v.Styles.Hint.Render(vm.Hint))
			b.WriteByte('\n')
		}
		for _, o := range vm.Options {
			style := v.Styles.Option
			if o.Highlighted {
				style = v.Styles.OptionHighlighted
			}
			b.WriteString(style.Render(o.Prefix() + o.Text))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	b.WriteString(v.input(vm))
	return b.String()
}

// RenderAnswer paints the line left on screen after submit.
func (v View) RenderAnswer(question, answer string) string {
	first, rest, multi := strings.Cut(answer, "\n")
	line := v.Styles.Question.Render(firstLine(question)) + " " + v.Styles.Answer.Render(first)
	if multi {
		line += v.Styles.Hint.Render(fmt.Sprintf(" (+%d more lines)", strings.Count(rest, "\n")+1))
	}
	return line
}

func (v View) question(text string) string {
	if v.Markdown != nil {
		return v.Markdown.Render(text)
	}
	return v.Styles.Question.Render(text)
}

func (v View) input(vm prompt.ViewModel) string {
	marker := v.Styles.Marker.Render(vm.Marker)
	indent := strings.Repeat(" ", len([]rune(vm.Marker)))

	if vm.Placeholder != "" {
		cursor := ""
		if vm.Mode == prompt.FreeText {
			cursor = v.Styles.Cursor.Render(" ")
		}
		return marker + cursor + v.Styles.Placeholder.Render(vm.Placeholder)
	}

	lines := make([]string, len(vm.Buffer))
	for i, bl := range vm.Buffer {
		prefix := indent
		if i == 0 {
			prefix = marker
		}
		lines[i] = prefix + v.bufferLine(bl)
	}
	return strings.Join(lines, "\n")
}

func (v View) bufferLine(bl prompt.BufferLine) string {
	if bl.Cursor == prompt.NoCursor {
		return v.Styles.Input.Render(bl.Text)
	}
	runes := []rune(bl.Text)
	col := bl.Cursor
	if col > len(runes) {
		col = len(runes)
	}
	under, after := " ", ""
	if col < len(runes) {
		under = string(runes[col])
		after = string(runes[col+1:])
	}
	return v.Styles.Input.Render(string(runes[:col])) +
		v.Styles.Cursor.Render(under) +
		v.Styles.Input.Render(after)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
