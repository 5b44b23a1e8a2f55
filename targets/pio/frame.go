// Package pio latches a whole LED frame onto consecutive GPIO pins through
// an RP2040/RP2350 PIO state machine, so every position changes on the same
// clock edge
package pio

import "errors"

// MaxWidth is the widest frame a single OUT instruction can shift
const MaxWidth = 32

var (
	errWidth       = errors.New("pio: frame width must be 1-32 pins")
	errNoPIO       = errors.New("pio: no free state machine")
	errUnknownSlot = errors.New("pio: position out of range")
)

// FrameMask packs per-position levels into the OUT word: bit i drives base+i
func FrameMask(levels []bool) uint32 {
	var mask uint32
	for i, on := range levels {
		if i >= MaxWidth {
			break
		}
		if on {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
