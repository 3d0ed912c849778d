package prompt

import "fmt"

// Mode is the input mode of a session.
type Mode int

const (
	// OptionSelect: Enter submits the highlighted option.
	OptionSelect Mode = iota
	// FreeText: Enter submits the buffer.
	FreeText
	// Submitted is terminal.
	Submitted
)

func (m Mode) String() string {
	switch m {
	case OptionSelect:
		return "option"
	case FreeText:
		return "input"
	case Submitted:
		return "submitted"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ArrowPolicy decides what the vertical arrows do when options exist and the
// buffer holds several lines. It is fixed for the lifetime of a session.
type ArrowPolicy int

const (
	// ArrowOptions cycles options whenever there are any.
	ArrowOptions ArrowPolicy = iota
	// ArrowBuffer moves between buffer lines while editing multi-line text.
	ArrowBuffer
)

func (p ArrowPolicy) String() string {
	if p == ArrowBuffer {
		return "buffer"
	}
	return "options"
}

// ParseArrowPolicy accepts "options" (or "") and "buffer".
func ParseArrowPolicy(s string) (ArrowPolicy, error) {
	switch s {
	case "", "options":
		return ArrowOptions, nil
	case "buffer":
		return ArrowBuffer, nil
	default:
		return ArrowOptions, fmt.Errorf("unknown arrow policy %q (want options or buffer)", s)
	}
}
