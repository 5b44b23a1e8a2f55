// Sequencer
// Drives a Controller into an OutputSink once per tick: render, wait, advance
package core

import "time"

// Delay blocks for the given duration; firmware passes time.Sleep
type Delay func(time.Duration)

// DriveError reports which position an output sink rejected
type DriveError struct {
	Position int
	Err      error
}

func (e *DriveError) Error() string {
	return "sequence: drive position " + itoa(e.Position) + ": " + e.Err.Error()
}

func (e *DriveError) Unwrap() error {
	return e.Err
}

// Sequencer owns a controller and renders it into a sink.
// It can run as a blocking loop (Run/Step) or from the timer list (Schedule).
type Sequencer struct {
	ctrl  *Controller
	sink  OutputSink
	delay Delay
	ticks uint32

	// Timer-driven mode
	timer Timer
	armed bool
	err   error
}

// NewSequencer creates a sequencer; delay may be nil when only Schedule is used
func NewSequencer(ctrl *Controller, sink OutputSink, delay Delay) *Sequencer {
	return &Sequencer{
		ctrl:  ctrl,
		sink:  sink,
		delay: delay,
	}
}

// Controller returns the controller being driven
func (s *Sequencer) Controller() *Controller {
	return s.ctrl
}

// Ticks returns the number of completed ticks
func (s *Sequencer) Ticks() uint32 {
	return s.ticks
}

// Render drives every position of the cycle into the sink
func (s *Sequencer) Render() error {
	pos := s.ctrl.Position()
	count := s.ctrl.Count()

	for i := 0; i < count; i++ {
		if err := s.sink.Drive(i, DriveSignal(s.ctrl.StateOf(i))); err != nil {
			RecordTiming(EvtDriveError, uint8(i), GetTime(), s.ticks)
			return &DriveError{Position: i, Err: err}
		}
	}
	if f, ok := s.sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			RecordTiming(EvtDriveError, uint8(pos), GetTime(), s.ticks)
			return err
		}
	}

	RecordTiming(EvtRender, uint8(pos), GetTime(), s.ticks)
	if debugEnabled {
		DebugPrintln("[SEQ] tick=" + utoa(s.ticks) + " pos=" + itoa(pos) + " count=" + itoa(count))
	}
	return nil
}

// advance moves the controller on and counts the tick
func (s *Sequencer) advance() {
	pos := s.ctrl.Advance()
	s.ticks++
	RecordTiming(EvtAdvance, uint8(pos), GetTime(), s.ticks)
}

// Step runs one tick: render outputs, wait the interval, advance
func (s *Sequencer) Step() error {
	if err := s.Render(); err != nil {
		return err
	}
	if s.delay != nil {
		s.delay(s.ctrl.Interval())
	}
	s.advance()
	return nil
}

// Run steps forever; it only returns when the sink fails
func (s *Sequencer) Run() error {
	for {
		if err := s.Step(); err != nil {
			return err
		}
	}
}

// period returns the interval in timer ticks, never zero
func (s *Sequencer) period() uint32 {
	p := TimerFromDuration(s.ctrl.Interval())
	if p == 0 {
		p = 1
	}
	return p
}

// Schedule arms the sequence timer to first fire at clock start.
// The main loop must call ProcessTimers for it to run.
func (s *Sequencer) Schedule(start uint32) {
	CancelTimer(&s.timer)
	s.err = nil
	s.armed = true
	s.timer.Next = nil
	s.timer.WakeTime = start
	s.timer.Handler = s.timerEvent
	ScheduleTimer(&s.timer)
}

// Cancel stops the timer-driven sequence
func (s *Sequencer) Cancel() {
	s.armed = false
	CancelTimer(&s.timer)
}

// Scheduled reports whether the sequence timer is armed
func (s *Sequencer) Scheduled() bool {
	return s.armed
}

// Err returns the error that stopped the timer-driven sequence, if any
func (s *Sequencer) Err() error {
	return s.err
}

// timerEvent renders the current position and reschedules one interval later
func (s *Sequencer) timerEvent(t *Timer) uint8 {
	if !s.armed {
		return SF_DONE
	}
	RecordTiming(EvtTimerFire, uint8(s.ctrl.Position()), t.WakeTime, s.ticks)

	if err := s.Render(); err != nil {
		s.err = err
		s.armed = false
		return SF_DONE
	}
	s.advance()

	t.WakeTime += s.period()
	return SF_RESCHEDULE
}
