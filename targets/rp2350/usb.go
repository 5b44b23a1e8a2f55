//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// lineBuf holds one outgoing debug line so it reaches the host in one write
var lineBuf = make([]byte, 0, 128)

// InitUSB configures machine.Serial, which is USB CDC on the RP2 family
func InitUSB() {
	_ = machine.Serial.Configure(machine.UARTConfig{})
}

// usbWriteLine is the core debug writer: one CRLF-terminated line per call
func usbWriteLine(s string) {
	lineBuf = append(lineBuf[:0], s...)
	lineBuf = append(lineBuf, '\r', '\n')
	_, _ = machine.Serial.Write(lineBuf)
}
