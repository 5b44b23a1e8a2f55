// Command ledseq-host runs the LED sequence on a Linux host and follows the
// firmware's debug output over USB serial.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ledseq/config"
	"ledseq/host/hostcfg"
	"ledseq/host/logging"
)

var rootCmd = &cobra.Command{
	Use:   "ledseq-host",
	Short: "Host tools for the LED sequence controller",
	Long: `ledseq-host runs the one-hot LED chase on a Linux host (terminal or ` +
		`sysfs LEDs) and monitors the firmware's per-tick debug lines.`,
	SilenceUsage: true,
}

func init() {
	addConfigFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(runCmd, monitorCmd, checkConfigCmd)
}

// addConfigFlags registers the flags that override file and environment settings
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("config", "ledseq.toml", "TOML configuration file")
	flags.String("env-file", ".env", "Environment file loaded before LEDSEQ_* overrides")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")

	flags.Int("count", 0, "Number of LEDs, numbered from the first LED pin")
	flags.Duration("delay", 0, fmt.Sprintf("Time each LED stays lit (%v to %v)", config.MinSequenceDelay, config.MaxSequenceDelay))
	flags.String("output", "", "Output backend (term, sysfs)")
	flags.StringSlice("leds", nil, "sysfs LED names in sequence order")
	flags.String("pins", "", "Comma-separated GPIO numbers in sequence order")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveOptions layers flags over environment over the TOML file
func resolveOptions(cmd *cobra.Command) (*hostcfg.Options, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if err := hostcfg.LoadDotEnv(envFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	path, _ := flags.GetString("config")
	opts, err := hostcfg.Load(path)
	if err != nil {
		return nil, err
	}
	if err := hostcfg.ApplyEnv(opts, os.Getenv); err != nil {
		return nil, err
	}

	if flags.Changed("count") {
		count, _ := flags.GetInt("count")
		if count <= 0 {
			return nil, fmt.Errorf("--count must be positive, got %d", count)
		}
		opts.Sequence.Pins = hostcfg.SequentialPins(count)
	}
	if flags.Changed("pins") {
		raw, _ := flags.GetString("pins")
		pins, err := hostcfg.ParsePins(raw)
		if err != nil {
			return nil, fmt.Errorf("--pins: %w", err)
		}
		opts.Sequence.Pins = pins
	}
	if flags.Changed("delay") {
		opts.Sequence.Delay, _ = flags.GetDuration("delay")
	}
	if flags.Changed("output") {
		opts.Sequence.Output, _ = flags.GetString("output")
	}
	if flags.Changed("leds") {
		opts.LEDs, _ = flags.GetStringSlice("leds")
	}
	if flags.Changed("metrics-addr") {
		opts.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("log-level") {
		opts.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		opts.Logging.Format, _ = flags.GetString("log-format")
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logging.Initialize(opts.Logging)
	return opts, nil
}

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate and print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "output:   %s\n", opts.Sequence.Output)
		fmt.Fprintf(out, "count:    %d\n", opts.Count())
		fmt.Fprintf(out, "delay:    %v\n", opts.Sequence.Delay)
		if opts.Sequence.Output == config.OutputSysfs {
			fmt.Fprintf(out, "leds:     %s\n", strings.Join(opts.LEDs, ","))
		} else {
			fmt.Fprintf(out, "pins:     %v\n", opts.Sequence.Pins)
		}
		if opts.MetricsAddr != "" {
			fmt.Fprintf(out, "metrics:  %s\n", opts.MetricsAddr)
		}
		fmt.Fprintf(out, "cycle:    %v\n", time.Duration(opts.Count())*opts.Sequence.Delay)
		return nil
	},
}
