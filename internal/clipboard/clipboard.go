// Package clipboard reads and writes the system clipboard through the
// platform utilities (pbpaste, xclip/xsel, wl-paste, PowerShell).
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/sync/singleflight"

	"askterm/internal/logging"
)

// ErrUnavailable is returned when no clipboard utility is installed.
var ErrUnavailable = errors.New("clipboard: no clipboard utility available")

// DefaultTimeout bounds a single read.
const DefaultTimeout = time.Second

// Mockable for tests.
var (
	clipboardReadAll     = clipboard.ReadAll
	clipboardWriteAll    = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

// Options configures a Clipboard.
type Options struct {
	Timeout   time.Duration
	TrimSpace bool
}

// Clipboard is safe for concurrent use. Reads that overlap share one
// invocation of the platform utility.
type Clipboard struct {
	timeout time.Duration
	trim    bool
	group   singleflight.Group
}

// New returns a Clipboard. A zero timeout means DefaultTimeout.
func New(o Options) *Clipboard {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return &Clipboard{timeout: o.Timeout, trim: o.TrimSpace}
}

// Read returns the clipboard text with line endings normalised to "\n".
// It gives up when ctx is done or the timeout elapses; the utility itself
// cannot be interrupted and finishes in the background.
func (c *Clipboard) Read(ctx context.Context) (string, error) {
	if clipboardUnsupported() {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	readAll := clipboardReadAll
	timer := logging.StartTimer(logging.CategoryClipboard, "clipboard read")
	ch := c.group.DoChan("read", func() (interface{}, error) {
		return readAll()
	})

	select {
	case res := <-ch:
		timer.StopWithThreshold(c.timeout / 2)
		if res.Err != nil {
			return "", fmt.Errorf("failed to read clipboard: %w", res.Err)
		}
		text := Normalize(res.Val.(string))
		if c.trim {
			text = strings.TrimSpace(text)
		}
		return text, nil
	case <-ctx.Done():
		logging.ClipboardDebug("clipboard read abandoned: %v", ctx.Err())
		return "", ctx.Err()
	}
}

// Write replaces the clipboard contents.
func (c *Clipboard) Write(text string) error {
	if clipboardUnsupported() {
		return ErrUnavailable
	}
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	logging.ClipboardDebug("copied %d bytes to clipboard", len(text))
	return nil
}

// Normalize converts CRLF and lone CR line endings to LF.
func Normalize(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
