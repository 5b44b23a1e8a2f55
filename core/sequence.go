// LED sequence controller
// Tracks which single position of a fixed-size cycle is active
package core

import (
	"errors"
	"time"
)

// State is the derived on/off state of one position
type State uint8

const (
	Inactive State = iota
	Active
)

// String returns the state name used in debug output
func (s State) String() string {
	if s == Active {
		return "Active"
	}
	return "Inactive"
}

// ErrInvalidCount is returned when a controller is built with no positions
var ErrInvalidCount = errors.New("sequence: count must be positive")

// Controller holds the cycle length, the tick interval and the active position.
// The position only changes through Advance and always stays in [0, count).
type Controller struct {
	position int
	count    int
	interval time.Duration
}

// NewController creates a controller starting at position 0
func NewController(count int, interval time.Duration) (*Controller, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	return &Controller{
		count:    count,
		interval: interval,
	}, nil
}

// MustController returns a new controller or panics if count is not positive
func MustController(count int, interval time.Duration) *Controller {
	c, err := NewController(count, interval)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Advance moves to the next position, wrapping after the last one,
// and returns the new position
func (c *Controller) Advance() int {
	c.position = (c.position + 1) % c.count
	return c.position
}

// Position returns the index of the active position
func (c *Controller) Position() int {
	return c.position
}

// Count returns the number of positions in the cycle
func (c *Controller) Count() int {
	return c.count
}

// Interval returns the configured time between advances
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// StateOf reports whether index is the active position.
// Indices outside [0, count) are always Inactive.
func (c *Controller) StateOf(index int) State {
	if index == c.position {
		return Active
	}
	return Inactive
}

// DriveSignal maps a position state to the output level: Active is high
func DriveSignal(s State) bool {
	return s == Active
}
