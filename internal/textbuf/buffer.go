// Package textbuf implements the editable answer buffer: a flat rune sequence
// with embedded line breaks and a single cursor offset.
//
// Buffer values are immutable. Every edit or movement returns a new Buffer, so
// a caller can hold the previous state while computing the next one.
package textbuf

import "strings"

// Buffer is a rune sequence plus a cursor offset in [0, Len()].
type Buffer struct {
	runes  []rune
	cursor int
}

// New returns a buffer holding text with the cursor at the end.
func New(text string) Buffer {
	r := []rune(text)
	return Buffer{runes: r, cursor: len(r)}
}

// NewAt returns a buffer holding text with the cursor clamped to cursor.
func NewAt(text string, cursor int) Buffer {
	r := []rune(text)
	return Buffer{runes: r, cursor: clamp(cursor, 0, len(r))}
}

// String returns the buffer contents verbatim, newlines included.
func (b Buffer) String() string { return string(b.runes) }

// Len returns the number of runes in the buffer.
func (b Buffer) Len() int { return len(b.runes) }

// Cursor returns the cursor offset in runes.
func (b Buffer) Cursor() int { return clamp(b.cursor, 0, len(b.runes)) }

// Empty reports whether the buffer holds no text.
func (b Buffer) Empty() bool { return len(b.runes) == 0 }

// Insert splices text at the cursor and advances the cursor past it.
func (b Buffer) Insert(text string) Buffer {
	ins := []rune(text)
	if len(ins) == 0 {
		return b
	}
	c := b.Cursor()
	out := make([]rune, 0, len(b.runes)+len(ins))
	out = append(out, b.runes[:c]...)
	out = append(out, ins...)
	out = append(out, b.runes[c:]...)
	return Buffer{runes: out, cursor: c + len(ins)}
}

// DeleteBefore removes the rune left of the cursor. No-op at offset 0.
func (b Buffer) DeleteBefore() Buffer {
	c := b.Cursor()
	if c == 0 {
		return b
	}
	return Buffer{runes: splice(b.runes, c-1), cursor: c - 1}
}

// DeleteAt removes the rune under the cursor. No-op at the end.
func (b Buffer) DeleteAt() Buffer {
	c := b.Cursor()
	if c >= len(b.runes) {
		return b
	}
	return Buffer{runes: splice(b.runes, c), cursor: c}
}

// MoveLeft moves the cursor one rune left.
func (b Buffer) MoveLeft() Buffer {
	return b.withCursor(b.Cursor() - 1)
}

// MoveRight moves the cursor one rune right.
func (b Buffer) MoveRight() Buffer {
	return b.withCursor(b.Cursor() + 1)
}

// Line returns the zero-based line the cursor is on.
func (b Buffer) Line() int {
	n := 0
	for _, r := range b.runes[:b.Cursor()] {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Column returns the cursor's rune offset within its line.
func (b Buffer) Column() int {
	c := b.Cursor()
	return c - b.lineStart(c)
}

// LineCount returns the number of lines; an empty buffer has one.
func (b Buffer) LineCount() int {
	n := 1
	for _, r := range b.runes {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Lines splits the buffer on newlines.
func (b Buffer) Lines() []string {
	return strings.Split(b.String(), "\n")
}

// MoveUp moves the cursor to the previous line, keeping the column where the
// previous line is long enough. No-op on the first line.
func (b Buffer) MoveUp() Buffer {
	c := b.Cursor()
	start := b.lineStart(c)
	if start == 0 {
		return b
	}
	col := c - start
	// start-1 is the '\n' closing the previous line.
	prevEnd := start - 1
	prevStart := b.lineStart(prevEnd)
	return b.withCursor(prevStart + min(col, prevEnd-prevStart))
}

// MoveDown moves the cursor to the next line, keeping the column where the
// next line is long enough. No-op on the last line.
func (b Buffer) MoveDown() Buffer {
	c := b.Cursor()
	end := b.lineEnd(c)
	if end == len(b.runes) {
		return b
	}
	col := c - b.lineStart(c)
	nextStart := end + 1
	nextEnd := b.lineEnd(nextStart)
	return b.withCursor(nextStart + min(col, nextEnd-nextStart))
}

// lineStart returns the offset of the first rune of the line containing off.
func (b Buffer) lineStart(off int) int {
	for i := off - 1; i >= 0; i-- {
		if b.runes[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// lineEnd returns the offset of the '\n' ending the line containing off, or
// Len() for the last line.
func (b Buffer) lineEnd(off int) int {
	for i := off; i < len(b.runes); i++ {
		if b.runes[i] == '\n' {
			return i
		}
	}
	return len(b.runes)
}

func (b Buffer) withCursor(c int) Buffer {
	return Buffer{runes: b.runes, cursor: clamp(c, 0, len(b.runes))}
}

func splice(r []rune, at int) []rune {
	out := make([]rune, 0, len(r)-1)
	out = append(out, r[:at]...)
	return append(out, r[at+1:]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
