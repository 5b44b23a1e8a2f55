//go:build rp2040 || rp2350

package main

import (
	"errors"
	"ledseq/core"
	"machine"
)

var errInvalidPin = errors.New("gpio: pin out of range")

// RPGPIODriver implements core.GPIODriver on top of machine.Pin.
// Configured pins are tracked in a bitmask, one bit per GPIO.
type RPGPIODriver struct {
	configured uint64
}

// NewRPGPIODriver creates a driver for the chip selected at build time
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{}
}

// ConfigureOutput configures a pin as a push-pull output; repeat calls are no-ops
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if pin > maxGPIO {
		return errInvalidPin
	}
	bit := uint64(1) << pin
	if d.configured&bit != 0 {
		return nil
	}

	// GPIO numbers map directly onto machine.Pin on the RP2 family
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configured |= bit
	return nil
}

// SetPin drives the pin, configuring it on first use
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	if err := d.ConfigureOutput(pin); err != nil {
		return err
	}
	machine.Pin(pin).Set(value)
	return nil
}

// GetPin reads back the pad level; unconfigured pins read low
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	if pin > maxGPIO {
		return false, errInvalidPin
	}
	if d.configured&(uint64(1)<<pin) == 0 {
		return false, nil
	}
	return machine.Pin(pin).Get(), nil
}
