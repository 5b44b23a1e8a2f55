//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts while the timer list is edited
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the mask saved by disableInterrupts
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
