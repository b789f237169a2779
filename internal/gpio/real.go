//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/kitchen-timer/internal/logic"
)

// RealButtons watches two pulled-up input lines for falling edges.
type RealButtons struct {
	chip  *gpiocdev.Chip
	line1 *gpiocdev.Line
	line2 *gpiocdev.Line
}

// NewRealButtons requests the two button lines and delivers falling edges to
// onPress. Debouncing is deliberately NOT requested from the kernel; the
// control core owns the debounce policy.
func NewRealButtons(pin1, pin2 int, onPress PressFunc) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line1, err := chip.RequestLine(pin1,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onPress(logic.Button1) }))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button1 pin %d: %w", pin1, err)
	}

	line2, err := chip.RequestLine(pin2,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { onPress(logic.Button2) }))
	if err != nil {
		line1.Close()
		chip.Close()
		return nil, fmt.Errorf("request button2 pin %d: %w", pin2, err)
	}

	return &RealButtons{chip: chip, line1: line1, line2: line2}, nil
}

// Close releases the button lines and the chip.
func (b *RealButtons) Close() error {
	var errs []error
	if b.line1 != nil {
		if err := b.line1.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button1: %w", err))
		}
	}
	if b.line2 != nil {
		if err := b.line2.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button2: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealIndicator drives one output line.
type RealIndicator struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealIndicator requests the indicator line as an output, initially off.
func NewRealIndicator(pin int) (*RealIndicator, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request indicator pin %d: %w", pin, err)
	}
	return &RealIndicator{chip: chip, line: line}, nil
}

// Set drives the indicator on or off.
func (i *RealIndicator) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := i.line.SetValue(v); err != nil {
		return fmt.Errorf("set indicator: %w", err)
	}
	return nil
}

// Close turns the indicator off and reconfigures the line to an input
// (Pi boot default) before releasing it.
func (i *RealIndicator) Close() error {
	var errs []error
	if i.line != nil {
		if err := i.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear indicator: %w", err))
		}
		if err := i.line.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure indicator: %w", err))
		}
		if err := i.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close indicator: %w", err))
		}
	}
	if i.chip != nil {
		if err := i.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
