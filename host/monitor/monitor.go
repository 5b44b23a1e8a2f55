// Package monitor follows the firmware's per-tick debug lines and checks
// that the sequence advances one position per tick
package monitor

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"ledseq/config"
)

const (
	seqPrefix    = "[SEQ]"
	timingPrefix = "[TIMING]"
)

// Event is one parsed "[SEQ] tick=<n> pos=<p> count=<c>" line
type Event struct {
	Tick     uint32
	Position int
	Count    int

	// Gap is set when the event does not directly follow the previous one
	Gap bool
}

// Stats summarises what a Monitor has seen
type Stats struct {
	Events  uint64
	Gaps    uint64
	Resets  uint64
	Ignored uint64
}

// ParseLine decodes a sequence line; ok is false for any other text,
// including counts the firmware cannot produce (above config.MaxLEDCount)
func ParseLine(line string) (Event, bool) {
	line = strings.TrimSpace(line)
	rest, found := strings.CutPrefix(line, seqPrefix)
	if !found {
		return Event{}, false
	}

	var ev Event
	var haveTick, havePos, haveCount bool
	for _, field := range strings.Fields(rest) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Event{}, false
		}
		switch key {
		case "tick":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return Event{}, false
			}
			ev.Tick, haveTick = uint32(n), true
		case "pos":
			n, err := strconv.Atoi(value)
			if err != nil {
				return Event{}, false
			}
			ev.Position, havePos = n, true
		case "count":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 || n > config.MaxLEDCount {
				return Event{}, false
			}
			ev.Count, haveCount = n, true
		}
	}
	if !haveTick || !havePos || !haveCount || ev.Position < 0 || ev.Position >= ev.Count {
		return Event{}, false
	}
	return ev, true
}

// Monitor tracks consecutive sequence events
type Monitor struct {
	logger *slog.Logger
	last   Event
	seen   bool
	stats  Stats
}

// New creates a monitor; logger may be nil
func New(logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Monitor{logger: logger}
}

// Observe checks ev against the previous event and returns it with Gap set.
// A tick of 0 is a firmware restart and starts a new run.
func (m *Monitor) Observe(ev Event) Event {
	m.stats.Events++

	switch {
	case !m.seen:
	case ev.Tick == 0:
		m.stats.Resets++
		m.logger.Info("sequence restarted", "count", ev.Count)
	default:
		wantPos := (m.last.Position + 1) % m.last.Count
		if ev.Tick != m.last.Tick+1 || ev.Count != m.last.Count || ev.Position != wantPos {
			ev.Gap = true
			m.stats.Gaps++
			m.logger.Warn("sequence gap",
				"prev_tick", m.last.Tick, "tick", ev.Tick,
				"want_pos", wantPos, "pos", ev.Position)
		}
	}

	m.last = ev
	m.seen = true
	return ev
}

// Stats returns the counters collected so far
func (m *Monitor) Stats() Stats {
	return m.stats
}

// Run reads lines from r until EOF or ctx is done, calling fn for every
// sequence event. Timing dumps are logged; other lines are counted and dropped.
// Cancelling ctx returns at once, even while a read is blocked.
func (m *Monitor) Run(ctx context.Context, r io.Reader, fn func(Event)) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return <-scanErr
			}
			m.handleLine(line, fn)
		}
	}
}

func (m *Monitor) handleLine(line string, fn func(Event)) {
	line = strings.TrimSpace(line)
	if ev, ok := ParseLine(line); ok {
		ev = m.Observe(ev)
		if fn != nil {
			fn(ev)
		}
		return
	}

	if strings.HasPrefix(line, timingPrefix) {
		m.logger.Warn("firmware timing dump", "line", strings.TrimSpace(strings.TrimPrefix(line, timingPrefix)))
		return
	}
	if line != "" {
		m.stats.Ignored++
		m.logger.Debug("firmware output", "line", line)
	}
}
