//go:build rp2040 || rp2350

package main

import (
	"errors"
	"image/color"
	"machine"
	"runtime/interrupt"

	"tinygo.org/x/drivers/ws2812"
)

// ActiveColor is the pixel color of the active position
var ActiveColor = color.RGBA{R: 0, G: 64, B: 255, A: 255}

var errPixelRange = errors.New("ws2812: position out of range")

// PixelSink shows each position as one pixel of an addressable strip
type PixelSink struct {
	dev    ws2812.Device
	pixels []color.RGBA
	on     color.RGBA
}

// NewPixelSink sets up a strip of count pixels on the data pin
func NewPixelSink(pin machine.Pin, count int, on color.RGBA) *PixelSink {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &PixelSink{
		dev:    ws2812.New(pin),
		pixels: make([]color.RGBA, count),
		on:     on,
	}
}

// Drive sets the pending color of one pixel
func (p *PixelSink) Drive(index int, on bool) error {
	if index < 0 || index >= len(p.pixels) {
		return errPixelRange
	}
	if on {
		p.pixels[index] = p.on
	} else {
		p.pixels[index] = color.RGBA{}
	}
	return nil
}

// Flush clocks the frame out; the bit timing cannot tolerate interrupts
func (p *PixelSink) Flush() error {
	state := interrupt.Disable()
	err := p.dev.WriteColors(p.pixels)
	interrupt.Restore(state)
	return err
}
