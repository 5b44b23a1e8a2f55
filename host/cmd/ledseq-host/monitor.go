package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ledseq/host/logging"
	"ledseq/host/monitor"
	"ledseq/host/serial"
	"ledseq/host/term"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Follow the firmware's [SEQ] lines and report gaps",
	Long: `monitor reads the firmware debug port (or stdin with --device -) and ` +
		`checks that the active LED advances by one position per tick.`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringP("device", "d", "/dev/ttyACM0", "Serial device path, or - for stdin")
	monitorCmd.Flags().Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	monitorCmd.Flags().BoolP("quiet", "q", false, "Only report gaps and the final summary")
	monitorCmd.Flags().Bool("wait", false, "Keep retrying until the device appears")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	device, _ := flags.GetString("device")
	baud, _ := flags.GetInt("baud")
	quiet, _ := flags.GetBool("quiet")
	wait, _ := flags.GetBool("wait")

	logging.Initialize(logging.Config{Level: "info", Format: "text"})
	logger := logging.GetLogger("monitor")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var r io.Reader = cmd.InOrStdin()
	if device != "-" {
		cfg := serial.DefaultConfig(device)
		cfg.Baud = baud
		var port serial.Port
		var err error
		if wait {
			port, err = serial.WaitOpen(ctx, cfg, time.Second, logger)
		} else {
			port, err = serial.Open(cfg)
		}
		if err != nil {
			return err
		}
		defer port.Close()
		if err := port.Flush(); err != nil {
			logger.Debug("flush failed", "error", err)
		}
		// Unblock the pending read on interrupt
		go func() {
			<-ctx.Done()
			port.Close()
		}()
		r = port
		logger.Info("connected", "device", device)
	}

	out := cmd.OutOrStdout()
	m := monitor.New(logger)
	err := m.Run(ctx, r, func(ev monitor.Event) {
		if quiet && !ev.Gap {
			return
		}
		levels := make([]bool, ev.Count)
		levels[ev.Position] = true
		mark := ""
		if ev.Gap {
			mark = "  <- gap"
		}
		fmt.Fprintf(out, "%6d  %s%s\n", ev.Tick, term.Row(levels), mark)
	})

	stats := m.Stats()
	fmt.Fprintf(out, "events=%d gaps=%d restarts=%d ignored=%d\n",
		stats.Events, stats.Gaps, stats.Resets, stats.Ignored)

	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
