// Package hostcfg loads the host tool configuration.
// Precedence: command-line flags > LEDSEQ_* environment (optionally from a
// .env file) > TOML file > built-in defaults.
package hostcfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"ledseq/config"
	"ledseq/host/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "LEDSEQ_"

// Options is the resolved host configuration
type Options struct {
	Sequence    config.Config
	LEDs        []string // sysfs LED names, used by the sysfs output
	Logging     logging.Config
	MetricsAddr string
}

type fileConfig struct {
	Sequence struct {
		Pins   []uint32 `toml:"pins"`
		LEDs   []string `toml:"leds"`
		Delay  string   `toml:"delay"`
		Output string   `toml:"output"`
	} `toml:"sequence"`
	Logging logging.Config `toml:"logging"`
	Metrics struct {
		Addr string `toml:"addr"`
	} `toml:"metrics"`
}

// Defaults returns the options used when nothing is configured
func Defaults() *Options {
	opts := &Options{Logging: logging.Config{Level: "info", Format: "text"}}
	fillDefaults(opts)
	return opts
}

// fillDefaults completes a partial sequence config. The host renders to the
// terminal unless told otherwise.
func fillDefaults(opts *Options) {
	if opts.Sequence.Output == "" {
		opts.Sequence.Output = config.OutputTerm
	}
	config.ApplyDefaults(&opts.Sequence)
}

// Parse decodes a TOML document on top of the defaults
func Parse(data []byte) (*Options, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	opts := &Options{
		Sequence: config.Config{
			Pins:   fc.Sequence.Pins,
			Output: fc.Sequence.Output,
		},
		LEDs:    fc.Sequence.LEDs,
		Logging: logging.Config{Level: "info", Format: "text"},
	}
	if fc.Sequence.Delay != "" {
		d, err := time.ParseDuration(fc.Sequence.Delay)
		if err != nil {
			return nil, fmt.Errorf("sequence.delay: %w", err)
		}
		opts.Sequence.Delay = d
	}
	fillDefaults(opts)

	if fc.Logging.Level != "" {
		opts.Logging.Level = fc.Logging.Level
	}
	if fc.Logging.Format != "" {
		opts.Logging.Format = fc.Logging.Format
	}
	opts.MetricsAddr = fc.Metrics.Addr
	return opts, nil
}

// Load reads a TOML file; a missing file yields the defaults
func Load(path string) (*Options, error) {
	if path == "" {
		return Defaults(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadDotEnv loads a .env file into the process environment if it exists.
// Variables already set are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides options from LEDSEQ_* variables
func ApplyEnv(opts *Options, getenv func(string) string) error {
	if v := getenv(EnvPrefix + "DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sDELAY: %w", EnvPrefix, err)
		}
		opts.Sequence.Delay = d
	}
	if v := getenv(EnvPrefix + "OUTPUT"); v != "" {
		opts.Sequence.Output = v
	}
	if v := getenv(EnvPrefix + "PINS"); v != "" {
		pins, err := ParsePins(v)
		if err != nil {
			return fmt.Errorf("%sPINS: %w", EnvPrefix, err)
		}
		opts.Sequence.Pins = pins
	}
	if v := getenv(EnvPrefix + "LEDS"); v != "" {
		leds, err := SplitLEDs(v)
		if err != nil {
			return fmt.Errorf("%sLEDS: %w", EnvPrefix, err)
		}
		opts.LEDs = leds
	}
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		opts.Logging.Level = v
	}
	if v := getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		opts.Logging.Format = v
	}
	if v := getenv(EnvPrefix + "METRICS_ADDR"); v != "" {
		opts.MetricsAddr = v
	}
	return nil
}

// ParsePins parses a comma-separated GPIO list such as "16,17,18,19"
func ParsePins(s string) ([]uint32, error) {
	var pins []uint32
	for _, field := range splitList(s) {
		n, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid pin %q: %w", field, err)
		}
		pins = append(pins, uint32(n))
	}
	return pins, nil
}

// SplitLEDs parses an LED name list. Names are separated by whitespace or
// commas; once any quoting is used, only whitespace separates, so quoted
// names may contain commas: "a,b" c
func SplitLEDs(s string) ([]string, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}
	if strings.ContainsAny(s, `"'`) {
		return words, nil
	}
	var names []string
	for _, word := range words {
		names = append(names, splitList(word)...)
	}
	return names, nil
}

// SequentialPins returns count pins starting at config.FirstLEDPin
func SequentialPins(count int) []uint32 {
	pins := make([]uint32, count)
	for i := range pins {
		pins[i] = config.FirstLEDPin + uint32(i)
	}
	return pins
}

func splitList(s string) []string {
	var out []string
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			out = append(out, field)
		}
	}
	return out
}

// Count returns the number of sequence positions for the selected output
func (o *Options) Count() int {
	if o.Sequence.Output == config.OutputSysfs {
		return len(o.LEDs)
	}
	return o.Sequence.Count()
}

// Validate checks the options before the sequencer is built
func (o *Options) Validate() error {
	if o.Sequence.Output != config.OutputSysfs {
		return o.Sequence.Validate()
	}

	if len(o.LEDs) == 0 {
		return fmt.Errorf("sysfs output needs LED names: %w", config.ErrNoPins)
	}
	if len(o.LEDs) > config.MaxLEDCount {
		return fmt.Errorf("%d LEDs: %w", len(o.LEDs), config.ErrTooManyPins)
	}
	seen := make(map[string]bool, len(o.LEDs))
	for _, name := range o.LEDs {
		if seen[name] {
			return fmt.Errorf("LED %q: %w", name, config.ErrDuplicatePin)
		}
		seen[name] = true
	}
	return config.ValidateDelay(o.Sequence.Delay)
}
