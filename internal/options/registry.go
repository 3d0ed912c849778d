// Package options holds the predefined answers offered for a question.
package options

// Registry is an immutable ordered list of answers plus the index of the
// currently selected one. Cycling returns a new Registry; the item slice is
// shared between values and never written after construction.
type Registry struct {
	items    []string
	selected int
}

// New copies items into a registry with the first item selected.
func New(items []string) Registry {
	return Registry{items: append([]string(nil), items...)}
}

// Len returns the number of options.
func (r Registry) Len() int { return len(r.items) }

// Empty reports whether there are no options.
func (r Registry) Empty() bool { return len(r.items) == 0 }

// Items returns a copy of the options in order.
func (r Registry) Items() []string { return append([]string(nil), r.items...) }

// Selected returns the selected index, or 0 when the registry is empty.
func (r Registry) Selected() int {
	if len(r.items) == 0 {
		return 0
	}
	return ((r.selected % len(r.items)) + len(r.items)) % len(r.items)
}

// Current returns the selected option, or "" when the registry is empty.
func (r Registry) Current() string {
	if len(r.items) == 0 {
		return ""
	}
	return r.items[r.Selected()]
}

// CycleUp selects the previous option, wrapping to the last.
// Calling it on an empty registry returns the registry unchanged.
func (r Registry) CycleUp() Registry {
	n := len(r.items)
	if n == 0 {
		return r
	}
	return Registry{items: r.items, selected: (r.Selected() - 1 + n) % n}
}

// CycleDown selects the next option, wrapping to the first.
// Calling it on an empty registry returns the registry unchanged.
func (r Registry) CycleDown() Registry {
	n := len(r.items)
	if n == 0 {
		return r
	}
	return Registry{items: r.items, selected: (r.Selected() + 1) % n}
}

// Select returns a registry with index i selected, clamped to the list.
func (r Registry) Select(i int) Registry {
	n := len(r.items)
	switch {
	case n == 0 || i < 0:
		i = 0
	case i >= n:
		i = n - 1
	}
	return Registry{items: r.items, selected: i}
}
