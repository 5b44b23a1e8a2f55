package serial

import (
	"fmt"

	"github.com/tarm/serial"
)

type tarmPort struct {
	*serial.Port
}

// Open opens cfg.Device through tarm/serial
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, errNilConfig
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return tarmPort{port}, nil
}
