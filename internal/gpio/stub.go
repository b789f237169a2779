//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(pin1, pin2 int, onPress PressFunc) (*RealButtons, error) {
	return nil, errUnsupported
}

// Close is a no-op on non-Linux platforms.
func (b *RealButtons) Close() error { return nil }

// RealIndicator is not available on non-Linux platforms.
type RealIndicator struct{}

// NewRealIndicator returns an error on non-Linux platforms.
func NewRealIndicator(pin int) (*RealIndicator, error) {
	return nil, errUnsupported
}

// Set is not implemented on non-Linux platforms.
func (i *RealIndicator) Set(on bool) error { return errUnsupported }

// Close is a no-op on non-Linux platforms.
func (i *RealIndicator) Close() error { return nil }
