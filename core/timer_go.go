//go:build !tinygo

package core

var systemTicks uint32

// getSystemTicks returns the simulated clock (host builds and tests)
func getSystemTicks() uint32 {
	return systemTicks
}

// setSystemTicks advances the simulated clock
func setSystemTicks(ticks uint32) {
	systemTicks = ticks
}
