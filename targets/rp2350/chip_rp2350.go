//go:build rp2350

package main

import (
	"ledseq/core"
	"runtime/volatile"
	"unsafe"
)

// maxGPIO is the highest pin number; the RP2350B exposes GPIO0-47
const maxGPIO = 47

// RP2350 TIMER0 lives at 0x400B0000, not at the RP2040 address.
// timeRawH @ 0x24, timeRawL @ 0x28 (raw reads, no latching)
const (
	timerBase     = 0x400B0000
	timerTimeRawL = timerBase + 0x28
)

var timerRawL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTimeRawL)))

// InitClock waits for the microsecond timer to settle after TinyGo's
// tick generator setup, then records the boot time
func InitClock() {
	_ = timerRawL.Get()
	_ = timerRawL.Get()
	_ = timerRawL.Get()
	UpdateSystemTime()
	core.TimerInit()
}

// GetHardwareTime returns the low 32 bits of the microsecond counter
func GetHardwareTime() uint32 {
	return timerRawL.Get()
}

// UpdateSystemTime publishes the hardware time to the core timer list
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}
