package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"ledseq/config"
	"ledseq/core"
	"ledseq/host/hostcfg"
	"ledseq/host/logging"
	"ledseq/host/metrics"
	"ledseq/host/sysfs"
	"ledseq/host/term"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the LED chase on this machine",
	RunE:  runSequence,
}

func init() {
	runCmd.Flags().Uint32("ticks", 0, "Stop after this many ticks (0 runs until interrupted)")
	runCmd.Flags().String("sysfs-root", sysfs.DefaultRoot, "LED class directory for the sysfs output")
	runCmd.Flags().Bool("debug", false, "Print firmware-style [SEQ] lines to stderr")
}

func runSequence(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	logger := logging.GetLogger("run")

	ticks, _ := cmd.Flags().GetUint32("ticks")
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		core.SetDebugWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
		core.SetDebugEnabled(true)
	}

	sink, shutdown, err := openSink(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(); err != nil {
			logger.Warn("output shutdown failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		sink = metrics.New(reg).Wrap(sink, opts.Count())
		srv := &http.Server{Addr: opts.MetricsAddr, Handler: metrics.Handler(reg)}
		go func() {
			logger.Info("serving metrics", "addr", opts.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	ctrl, err := core.NewController(opts.Count(), opts.Sequence.Delay)
	if err != nil {
		return err
	}
	seq := core.NewSequencer(ctrl, sink, contextDelay(ctx))

	logger.Info("sequence started",
		"output", opts.Sequence.Output,
		"count", ctrl.Count(),
		"delay", ctrl.Interval())

	for ticks == 0 || seq.Ticks() < ticks {
		if ctx.Err() != nil {
			break
		}
		if err := seq.Step(); err != nil {
			return err
		}
	}

	logger.Info("sequence stopped", "ticks", seq.Ticks(), "position", ctrl.Position())
	return nil
}

// openSink builds the host output named in opts
func openSink(cmd *cobra.Command, opts *hostcfg.Options) (core.OutputSink, func() error, error) {
	switch opts.Sequence.Output {
	case config.OutputTerm:
		return term.New(cmd.OutOrStdout(), opts.Count()), func() error { return nil }, nil

	case config.OutputSysfs:
		root, _ := cmd.Flags().GetString("sysfs-root")
		s, err := sysfs.New(root, opts.LEDs)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Shutdown, nil

	default:
		return nil, nil, fmt.Errorf("output %q is only available on the firmware: %w",
			opts.Sequence.Output, config.ErrUnknownOutput)
	}
}

// contextDelay sleeps for d or until ctx is cancelled
func contextDelay(ctx context.Context) core.Delay {
	return func(d time.Duration) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
	}
}
