// Package serial opens the firmware's USB CDC debug port for the host tools
package serial

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// Port is an open debug port. Tests substitute any io.ReadWriteCloser.
type Port interface {
	io.ReadWriteCloser

	// Flush discards data buffered before the port was opened
	Flush() error
}

// Config describes the port to open
type Config struct {
	Device      string        // e.g. /dev/ttyACM0, COM3
	Baud        int           // ignored by USB CDC, used by UART bridges
	ReadTimeout time.Duration // 0 blocks until data arrives
}

// DefaultConfig returns the settings for the firmware debug port
func DefaultConfig(device string) *Config {
	return &Config{Device: device, Baud: 115200}
}

var errNilConfig = errors.New("serial: config cannot be nil")

// openPort is replaced in tests
var openPort = Open

// WaitOpen retries Open every retry interval until the device appears or ctx
// is done. The RP2 board drops off the bus for a moment after every reset.
func WaitOpen(ctx context.Context, cfg *Config, retry time.Duration, logger *slog.Logger) (Port, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	for attempt := 1; ; attempt++ {
		port, err := openPort(cfg)
		if err == nil {
			return port, nil
		}
		if logger != nil && attempt == 1 {
			logger.Info("waiting for device", "device", cfg.Device, "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retry):
		}
	}
}
