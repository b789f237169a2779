package display

import (
	"fmt"

	"github.com/tarm/serial"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

// DefaultBaud is the display UART rate.
const DefaultBaud = 9600

// SerialRenderer writes display frames to a UART.
type SerialRenderer struct {
	port *serial.Port
}

// NewSerialRenderer opens the serial device and returns a renderer for it.
func NewSerialRenderer(device string, baud int) (*SerialRenderer, error) {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	return &SerialRenderer{port: port}, nil
}

// RenderTime writes one frame to the UART.
func (r *SerialRenderer) RenderTime(t logic.TimeOfDay) error {
	if _, err := r.port.Write([]byte(Frame(t))); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close closes the serial port.
func (r *SerialRenderer) Close() error {
	if r.port != nil {
		return r.port.Close()
	}
	return nil
}
