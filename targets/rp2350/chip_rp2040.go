//go:build rp2040

package main

import (
	"ledseq/core"
	"runtime/volatile"
	"unsafe"
)

// maxGPIO is the highest pin number; the RP2040 exposes GPIO0-29
const maxGPIO = 29

// RP2040 TIMER peripheral
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// InitClock records the boot time; the RP2040 timer already runs at 1MHz
func InitClock() {
	UpdateSystemTime()
	core.TimerInit()
}

// GetHardwareTime returns the low 32 bits of the microsecond counter
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// UpdateSystemTime publishes the hardware time to the core timer list
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}
