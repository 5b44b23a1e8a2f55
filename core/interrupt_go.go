//go:build !tinygo

package core

// interruptState stands in for the interrupt mask on regular Go
type interruptState uintptr

// disableInterrupts is a no-op outside TinyGo
func disableInterrupts() interruptState {
	return 0
}

// restoreInterrupts is a no-op outside TinyGo
func restoreInterrupts(interruptState) {}
