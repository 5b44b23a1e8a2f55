// Package sysfs drives Linux LED class devices so the sequence can run on a
// single-board computer instead of a microcontroller
package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultRoot is where the kernel exposes LED class devices
const DefaultRoot = "/sys/class/leds"

// Sink writes one LED's brightness per position
type Sink struct {
	root string
	leds []string // sysfs LED name per position
	last []int8   // last written level, -1 = unknown
}

// New creates a sink for the named LEDs under root ("" means DefaultRoot).
// Each LED's trigger is switched to "none" so brightness writes stick.
func New(root string, leds []string) (*Sink, error) {
	if len(leds) == 0 {
		return nil, fmt.Errorf("sysfs: no LEDs configured")
	}
	if root == "" {
		root = DefaultRoot
	}

	s := &Sink{
		root: root,
		leds: append([]string(nil), leds...),
		last: make([]int8, len(leds)),
	}
	for i, name := range s.leds {
		s.last[i] = -1
		ledPath := filepath.Join(root, name)
		if _, err := os.Stat(ledPath); err != nil {
			return nil, fmt.Errorf("LED %q not found at %s: %w", name, ledPath, err)
		}
		triggerPath := filepath.Join(ledPath, "trigger")
		if err := os.WriteFile(triggerPath, []byte("none"), 0644); err != nil {
			return nil, fmt.Errorf("failed to set LED trigger: %w", err)
		}
	}
	return s, nil
}

// Drive sets the brightness of the LED for position index.
// Unchanged levels are not rewritten.
func (s *Sink) Drive(index int, on bool) error {
	if index < 0 || index >= len(s.leds) {
		return fmt.Errorf("sysfs: position %d out of range", index)
	}

	var level int8
	value := "0"
	if on {
		level, value = 1, "1"
	}
	if s.last[index] == level {
		return nil
	}

	brightnessPath := filepath.Join(s.root, s.leds[index], "brightness")
	if err := os.WriteFile(brightnessPath, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to set LED brightness: %w", err)
	}
	s.last[index] = level
	return nil
}

// Shutdown turns every LED off.
// The first error is returned but all LEDs are still visited.
func (s *Sink) Shutdown() error {
	var firstErr error
	for i := range s.leds {
		s.last[i] = -1
		if err := s.Drive(i, false); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
