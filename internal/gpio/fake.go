package gpio

import "github.com/sweeney/kitchen-timer/internal/logic"

// FakeButtons delivers scripted presses to the registered callback.
type FakeButtons struct {
	onPress PressFunc

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeButtons creates a FakeButtons delivering to onPress.
func NewFakeButtons(onPress PressFunc) *FakeButtons {
	return &FakeButtons{onPress: onPress}
}

// Press simulates one falling edge on the given button.
func (f *FakeButtons) Press(b logic.Button) {
	f.onPress(b)
}

// Close marks the buttons as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// FakeIndicator records indicator transitions for test assertions.
type FakeIndicator struct {
	// On is the current state.
	On bool

	// History contains every value passed to Set, in order.
	History []bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeIndicator creates a FakeIndicator, initially off.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

// Set records the transition.
func (f *FakeIndicator) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.On = on
	f.History = append(f.History, on)
	return nil
}

// Close marks the indicator as closed.
func (f *FakeIndicator) Close() error {
	f.Closed = true
	return nil
}
