// Package config holds the LED sequence configuration constants and the
// validation the host applies before building a controller
package config

import (
	"errors"
	"time"
)

// Number of LEDs in the sequence, wired to consecutive GPIO pins
const LEDCount = 4

// FirstLEDPin is the GPIO number of position 0
const FirstLEDPin = 16

// Sequence timing
const (
	SequenceDelay    = 250 * time.Millisecond // Time each LED stays on
	MinSequenceDelay = 10 * time.Millisecond
	MaxSequenceDelay = 5000 * time.Millisecond

	// MaxLEDCount bounds a sequence; positions are logged as uint8
	MaxLEDCount = 256
)

// Output backends
const (
	OutputGPIO   = "gpio"   // One GPIO pin per position
	OutputPIO    = "pio"    // Consecutive pins latched through a PIO state machine
	OutputWS2812 = "ws2812" // One addressable pixel per position
	OutputSysfs  = "sysfs"  // Linux /sys/class/leds entries
	OutputTerm   = "term"   // Host terminal rendering
)

var (
	ErrDelayOutOfRange = errors.New("config: sequence delay out of range")
	ErrNoPins          = errors.New("config: no LED pins configured")
	ErrDuplicatePin    = errors.New("config: duplicate LED pin")
	ErrTooManyPins     = errors.New("config: too many LED pins")
	ErrUnknownOutput   = errors.New("config: unknown output mode")
)

// Config describes one LED sequence
type Config struct {
	Pins   []uint32      // GPIO per position, in order
	Delay  time.Duration // Time between advances
	Output string        // Output backend name
}

// DefaultPins returns GPIO16..GPIO19
func DefaultPins() []uint32 {
	pins := make([]uint32, LEDCount)
	for i := range pins {
		pins[i] = FirstLEDPin + uint32(i)
	}
	return pins
}

// Default returns the board configuration: 4 LEDs on GPIO16-19 at 250ms
func Default() *Config {
	return &Config{
		Pins:   DefaultPins(),
		Delay:  SequenceDelay,
		Output: OutputGPIO,
	}
}

// ApplyDefaults fills in missing configuration values
func ApplyDefaults(cfg *Config) {
	if len(cfg.Pins) == 0 {
		cfg.Pins = DefaultPins()
	}
	if cfg.Delay == 0 {
		cfg.Delay = SequenceDelay
	}
	if cfg.Output == "" {
		cfg.Output = OutputGPIO
	}
}

// ValidateDelay checks d against [MinSequenceDelay, MaxSequenceDelay]
func ValidateDelay(d time.Duration) error {
	if d < MinSequenceDelay || d > MaxSequenceDelay {
		return ErrDelayOutOfRange
	}
	return nil
}

// ValidOutput reports whether name is a known output backend
func ValidOutput(name string) bool {
	switch name {
	case OutputGPIO, OutputPIO, OutputWS2812, OutputSysfs, OutputTerm:
		return true
	}
	return false
}

// Validate checks the configuration before a controller is built
func (c *Config) Validate() error {
	if len(c.Pins) == 0 {
		return ErrNoPins
	}
	if len(c.Pins) > MaxLEDCount {
		return ErrTooManyPins
	}
	seen := make(map[uint32]bool, len(c.Pins))
	for _, pin := range c.Pins {
		if seen[pin] {
			return ErrDuplicatePin
		}
		seen[pin] = true
	}
	if err := ValidateDelay(c.Delay); err != nil {
		return err
	}
	if !ValidOutput(c.Output) {
		return ErrUnknownOutput
	}
	return nil
}

// Count returns the number of positions in the sequence
func (c *Config) Count() int {
	return len(c.Pins)
}
