// Package display renders the time readout. The production sink is a serial
// character display fed one carriage-return-terminated frame per render; a
// writer-backed renderer covers serial-less operation, and a fake records
// frames for tests.
package display

import (
	"fmt"
	"io"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

// Renderer is the textual output sink for time values. The core calls
// RenderTime at most once per loop iteration.
type Renderer interface {
	RenderTime(t logic.TimeOfDay) error
	Close() error
}

// Frame formats a time as the on-wire display frame: hours space-padded to
// two columns, minutes zero-padded, carriage return, no line feed. The CR
// makes each frame overwrite the previous one on a dumb terminal.
func Frame(t logic.TimeOfDay) string {
	return fmt.Sprintf("%2d:%02d\r", t.HH, t.MM)
}

// WriterRenderer writes frames to an io.Writer (typically stdout).
type WriterRenderer struct {
	w io.Writer
}

// NewWriterRenderer creates a renderer writing to w.
func NewWriterRenderer(w io.Writer) *WriterRenderer {
	return &WriterRenderer{w: w}
}

// RenderTime writes one frame.
func (r *WriterRenderer) RenderTime(t logic.TimeOfDay) error {
	if _, err := io.WriteString(r.w, Frame(t)); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close is a no-op; the renderer does not own the writer.
func (r *WriterRenderer) Close() error { return nil }
