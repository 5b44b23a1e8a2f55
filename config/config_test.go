package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	if LEDCount != 4 {
		t.Errorf("Expected 4 LEDs, got %d", LEDCount)
	}
	if SequenceDelay != 250*time.Millisecond {
		t.Errorf("Expected 250ms delay, got %v", SequenceDelay)
	}
	if SequenceDelay*LEDCount != time.Second {
		t.Errorf("full cycle should take 1s, got %v", SequenceDelay*LEDCount)
	}
}

func TestDelayBounds(t *testing.T) {
	if !(MinSequenceDelay < SequenceDelay && SequenceDelay < MaxSequenceDelay) {
		t.Errorf("default %v not strictly inside [%v, %v]", SequenceDelay, MinSequenceDelay, MaxSequenceDelay)
	}
	if MaxSequenceDelay-MinSequenceDelay != 4990*time.Millisecond {
		t.Errorf("unexpected range span %v", MaxSequenceDelay-MinSequenceDelay)
	}
}

func TestValidateDelay(t *testing.T) {
	tests := []struct {
		delay time.Duration
		ok    bool
	}{
		{0, false},
		{9 * time.Millisecond, false},
		{10 * time.Millisecond, true},
		{250 * time.Millisecond, true},
		{5 * time.Second, true},
		{5*time.Second + time.Millisecond, false},
	}
	for _, tc := range tests {
		err := ValidateDelay(tc.delay)
		if tc.ok && err != nil {
			t.Errorf("ValidateDelay(%v) = %v, want nil", tc.delay, err)
		}
		if !tc.ok && !errors.Is(err, ErrDelayOutOfRange) {
			t.Errorf("ValidateDelay(%v) = %v, want ErrDelayOutOfRange", tc.delay, err)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	want := []uint32{16, 17, 18, 19}
	if cfg.Count() != len(want) {
		t.Fatalf("Expected %d pins, got %d", len(want), cfg.Count())
	}
	for i, pin := range want {
		if cfg.Pins[i] != pin {
			t.Errorf("position %d on GPIO%d, want GPIO%d", i, cfg.Pins[i], pin)
		}
	}
	if cfg.Output != OutputGPIO {
		t.Errorf("Expected gpio output, got %q", cfg.Output)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Count() != LEDCount || cfg.Delay != SequenceDelay || cfg.Output != OutputGPIO {
		t.Errorf("ApplyDefaults left %+v", cfg)
	}

	cfg = &Config{Pins: []uint32{2}, Delay: time.Second, Output: OutputPIO}
	ApplyDefaults(cfg)
	if cfg.Count() != 1 || cfg.Delay != time.Second || cfg.Output != OutputPIO {
		t.Errorf("ApplyDefaults overwrote set fields: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		err  error
	}{
		{"no pins", Config{Delay: SequenceDelay, Output: OutputGPIO}, ErrNoPins},
		{"duplicate pin", Config{Pins: []uint32{1, 2, 1}, Delay: SequenceDelay, Output: OutputGPIO}, ErrDuplicatePin},
		{"delay too short", Config{Pins: []uint32{1}, Delay: time.Millisecond, Output: OutputGPIO}, ErrDelayOutOfRange},
		{"unknown output", Config{Pins: []uint32{1}, Delay: SequenceDelay, Output: "laser"}, ErrUnknownOutput},
		{"too many pins", Config{Pins: sequentialPins(MaxLEDCount + 1), Delay: SequenceDelay, Output: OutputGPIO}, ErrTooManyPins},
		{"max pins", Config{Pins: sequentialPins(MaxLEDCount), Delay: SequenceDelay, Output: OutputGPIO}, nil},
		{"single led", Config{Pins: []uint32{25}, Delay: SequenceDelay, Output: OutputWS2812}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.err == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("Validate() = %v, want %v", err, tt.err)
			}
		})
	}
}

func sequentialPins(n int) []uint32 {
	pins := make([]uint32, n)
	for i := range pins {
		pins[i] = uint32(i)
	}
	return pins
}
