// Output sinks
// A sink receives one on/off level per position on every tick
package core

import "errors"

var (
	// ErrUnknownPosition is returned when a sink is driven past its last position
	ErrUnknownPosition = errors.New("output: position out of range")

	// ErrNoPins is returned when a pin bank is built without pins
	ErrNoPins = errors.New("output: no pins configured")
)

// OutputSink accepts a boolean per addressable position
type OutputSink interface {
	Drive(index int, on bool) error
}

// Flusher is implemented by sinks that latch a whole frame at once.
// The sequencer calls Flush after every position has been driven.
type Flusher interface {
	Flush() error
}

// PinBank drives one GPIO output per position
type PinBank struct {
	driver GPIODriver
	pins   []GPIOPin
}

// NewPinBank configures every pin as an output and drives it low.
// Position i maps to pins[i].
func NewPinBank(driver GPIODriver, pins []GPIOPin) (*PinBank, error) {
	if len(pins) == 0 {
		return nil, ErrNoPins
	}

	b := &PinBank{
		driver: driver,
		pins:   make([]GPIOPin, len(pins)),
	}
	copy(b.pins, pins)

	for _, pin := range b.pins {
		if err := driver.ConfigureOutput(pin); err != nil {
			return nil, err
		}
		if err := driver.SetPin(pin, false); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Len returns the number of positions the bank can drive
func (b *PinBank) Len() int {
	return len(b.pins)
}

// Pin returns the GPIO pin backing a position
func (b *PinBank) Pin(index int) (GPIOPin, bool) {
	if index < 0 || index >= len(b.pins) {
		return 0, false
	}
	return b.pins[index], true
}

// Drive sets the pin for position index high or low
func (b *PinBank) Drive(index int, on bool) error {
	pin, ok := b.Pin(index)
	if !ok {
		return ErrUnknownPosition
	}
	return b.driver.SetPin(pin, on)
}

// Shutdown returns every pin to its default low state.
// The first error is returned but all pins are still visited.
func (b *PinBank) Shutdown() error {
	var firstErr error
	for _, pin := range b.pins {
		if err := b.driver.SetPin(pin, false); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
