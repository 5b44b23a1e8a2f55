//go:build rp2040 || rp2350

package main

import "ledseq/config"

// ModeConfig determines how the sequence is driven
type ModeConfig struct {
	// Output backend: config.OutputGPIO, config.OutputPIO or config.OutputWS2812
	Output string

	// TimerDriven runs the sequence from the core timer list instead of
	// a blocking sleep loop
	TimerDriven bool

	// Debug enables the per-tick [SEQ] lines on USB serial
	Debug bool
}

// GetMode returns the compile-time mode configuration
func GetMode() ModeConfig {
	return ModeConfig{
		Output:      config.OutputGPIO,
		TimerDriven: false,
		Debug:       true,
	}
}
