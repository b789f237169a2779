package display

import "github.com/sweeney/kitchen-timer/internal/logic"

// FakeRenderer records rendered times for test assertions.
type FakeRenderer struct {
	// Times contains every rendered time, in order.
	Times []logic.TimeOfDay

	// Frames contains the formatted frames, in order.
	Frames []string

	// RenderError, if set, will be returned by RenderTime.
	RenderError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeRenderer creates a FakeRenderer.
func NewFakeRenderer() *FakeRenderer {
	return &FakeRenderer{}
}

// RenderTime records the render.
func (f *FakeRenderer) RenderTime(t logic.TimeOfDay) error {
	if f.RenderError != nil {
		return f.RenderError
	}
	f.Times = append(f.Times, t)
	f.Frames = append(f.Frames, Frame(t))
	return nil
}

// Close marks the renderer as closed.
func (f *FakeRenderer) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded renders.
func (f *FakeRenderer) Reset() {
	f.Times = nil
	f.Frames = nil
	f.Closed = false
	f.RenderError = nil
}
