package prompt

// NoCursor marks a buffer line that does not hold the cursor.
const NoCursor = -1

// Fixed prompt copy.
const (
	Hint                   = "Use ↑/↓ to select options, type for custom input, Enter to submit"
	PlaceholderWithOptions = "Type or select an option..."
	PlaceholderFreeText    = "Type your answer..."

	MarkerFreeText     = "✎ "
	MarkerOptionSelect = "› "

	PrefixHighlighted = "› "
	PrefixOption      = "  "
)

// OptionLine is one rendered option.
type OptionLine struct {
	Text        string
	Highlighted bool
}

// Prefix returns the selection marker for the line.
func (o OptionLine) Prefix() string {
	if o.Highlighted {
		return PrefixHighlighted
	}
	return PrefixOption
}

// BufferLine is one line of the answer buffer with the cursor column, or
// NoCursor.
type BufferLine struct {
	Text   string
	Cursor int
}

// ViewModel is everything a renderer needs to paint the prompt.
type ViewModel struct {
	Question    string
	Hint        string // empty without options
	Placeholder string // empty once the buffer has text
	Marker      string
	Options     []OptionLine
	Buffer      []BufferLine
	Mode        Mode
	Submitted   bool
}

// Project derives the view model for a state. It has no side effects, so
// calling it twice on the same inputs yields equal values.
func Project(question string, s State) ViewModel {
	vm := ViewModel{
		Question:  question,
		Mode:      s.Mode,
		Submitted: s.Mode == Submitted,
		Marker:    MarkerOptionSelect,
	}
	if s.Mode == FreeText {
		vm.Marker = MarkerFreeText
	}

	hasOptions := !s.Options.Empty()
	if hasOptions {
		vm.Hint = Hint
		sel := s.Options.Selected()
		for i, text := range s.Options.Items() {
			vm.Options = append(vm.Options, OptionLine{
				Text:        text,
				Highlighted: s.Mode == OptionSelect && i == sel,
			})
		}
	}

	if s.Buffer.Empty() {
		vm.Placeholder = PlaceholderFreeText
		if hasOptions {
			vm.Placeholder = PlaceholderWithOptions
		}
	}

	cursorLine := -1
	if s.Mode == FreeText {
		cursorLine = s.Buffer.Line()
	}
	for i, line := range s.Buffer.Lines() {
		bl := BufferLine{Text: line, Cursor: NoCursor}
		if i == cursorLine {
			bl.Cursor = s.Buffer.Column()
		}
		vm.Buffer = append(vm.Buffer, bl)
	}
	return vm
}
