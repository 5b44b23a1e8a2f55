//go:build rp2040 || rp2350

package main

import (
	"errors"
	"ledseq/config"
	"ledseq/core"
	ledpio "ledseq/targets/pio"
	"machine"
	"time"
)

var (
	errPinsNotConsecutive = errors.New("pio output needs consecutive pins")

	// Debug counters
	sequenceRestarts uint32
)

// ledBlink blinks the on-board LED a specific number of times for diagnostics
func ledBlink(count int) {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for i := 0; i < count; i++ {
		led.High()
		time.Sleep(150 * time.Millisecond)
		led.Low()
		time.Sleep(150 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond) // Pause after blink sequence
}

// haltBlink repeats a blink code forever; used when boot cannot continue
func haltBlink(count int) {
	for {
		ledBlink(count)
	}
}

func main() {
	InitUSB()

	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitClock()

	mode := GetMode()
	core.SetDebugWriter(usbWriteLine)
	core.SetDebugEnabled(mode.Debug)
	core.InitAsyncDebug()

	cfg := config.Default()
	cfg.Output = mode.Output

	// DIAGNOSTIC: 2 blinks forever = invalid configuration
	if err := cfg.Validate(); err != nil {
		core.DebugPrintln("config: " + err.Error())
		haltBlink(2)
	}

	core.SetGPIODriver(NewRPGPIODriver())

	// DIAGNOSTIC: 3 blinks forever = output backend failed to start
	sink, err := newSink(cfg)
	if err != nil {
		core.DebugPrintln("output: " + err.Error())
		haltBlink(3)
	}

	ctrl := core.MustController(cfg.Count(), cfg.Delay)
	seq := core.NewSequencer(ctrl, sink, time.Sleep)

	// DIAGNOSTIC: 1 blink = sequence starting
	ledBlink(1)

	if mode.TimerDriven {
		runTimerLoop(seq)
	}
	runSleepLoop(seq)
}

// newSink builds the output backend named by cfg.Output
func newSink(cfg *config.Config) (core.OutputSink, error) {
	switch cfg.Output {
	case config.OutputPIO:
		for i := 1; i < len(cfg.Pins); i++ {
			if cfg.Pins[i] != cfg.Pins[0]+uint32(i) {
				return nil, errPinsNotConsecutive
			}
		}
		return ledpio.NewParallelSink(machine.Pin(cfg.Pins[0]), cfg.Count())

	case config.OutputWS2812:
		return NewPixelSink(machine.Pin(cfg.Pins[0]), cfg.Count(), ActiveColor), nil

	default:
		pins := make([]core.GPIOPin, len(cfg.Pins))
		for i, p := range cfg.Pins {
			pins[i] = core.GPIOPin(p)
		}
		return core.NewPinBank(core.MustGPIO(), pins)
	}
}

// runSleepLoop renders, sleeps and advances forever
func runSleepLoop(seq *core.Sequencer) {
	for {
		// Recover from panics in the loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					sequenceRestarts++
					core.DumpTimingRing()
				}
			}()

			if err := seq.Run(); err != nil {
				sequenceRestarts++
				core.DebugPrintln(err.Error())
				core.DumpTimingRing()
				time.Sleep(seq.Controller().Interval())
			}
		}()
	}
}

// runTimerLoop drives the sequence from the core timer list
func runTimerLoop(seq *core.Sequencer) {
	UpdateSystemTime()
	seq.Schedule(core.GetTime())

	for {
		UpdateSystemTime()
		core.ProcessTimers()

		if err := seq.Err(); err != nil {
			sequenceRestarts++
			core.DebugAsync("[LEDSEQ] restart n=" + core.Utoa(sequenceRestarts) +
				" uptime=" + core.Utoa(core.TimerToUS(core.GetUptime())) + "us " + err.Error())
			core.DumpTimingRing()
			seq.Schedule(core.GetTime() + core.TimerFromDuration(seq.Controller().Interval()))
		}

		// Yield to other goroutines
		time.Sleep(10 * time.Microsecond)
	}
}
