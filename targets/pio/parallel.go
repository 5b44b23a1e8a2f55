//go:build rp2040 || rp2350

package pio

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

const parallelPIOOrigin = -1 // Let the PIO block pick a free offset

// buildParallelProgram returns the two-instruction frame latch:
//
//	.wrap_target
//	pull block        ; wait for the next frame word
//	out pins, <width> ; drive all positions at once
//	.wrap
func buildParallelProgram(width uint8) []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Pull(false, true).Encode(),
		asm.Out(rp2pio.OutDestPins, width).Encode(),
	}
}

// ParallelSink drives a block of consecutive pins from one state machine.
// Drive only updates the pending frame; Flush pushes it to the FIFO.
type ParallelSink struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	base   machine.Pin
	levels []bool
	pioNum uint8
	smNum  uint8
	offset uint8
}

// NewParallelSink claims a free state machine for width pins starting at base
func NewParallelSink(base machine.Pin, width int) (*ParallelSink, error) {
	if width < 1 || width > MaxWidth {
		return nil, errWidth
	}
	pioNum, smNum, ok := allocatePIO()
	if !ok {
		return nil, errNoPIO
	}

	pioHW := rp2pio.PIO0
	if pioNum == 1 {
		pioHW = rp2pio.PIO1
	}

	s := &ParallelSink{
		pio:    pioHW,
		sm:     pioHW.StateMachine(smNum),
		base:   base,
		levels: make([]bool, width),
		pioNum: pioNum,
		smNum:  smNum,
	}
	if err := s.init(); err != nil {
		releasePIO(pioNum, smNum)
		return nil, err
	}
	return s, nil
}

// init loads the program and starts the state machine with all pins low
func (s *ParallelSink) init() error {
	width := uint8(len(s.levels))

	// Claim the state machine before touching its registers
	s.sm.TryClaim()

	program := buildParallelProgram(width)
	offset, err := s.pio.AddProgram(program, parallelPIOOrigin)
	if err != nil {
		return err
	}
	s.offset = offset

	for i := uint8(0); i < width; i++ {
		(s.base + machine.Pin(i)).Configure(machine.PinConfig{Mode: s.pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetOutPins(s.base, width)
	// Shift right so bit 0 lands on the base pin; explicit PULL, no autopull
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	s.sm.Init(offset, cfg)

	// Pin directions must be set after Init
	s.sm.SetPindirsConsecutive(s.base, width, true)
	s.sm.SetPinsConsecutive(s.base, width, false)

	s.sm.SetEnabled(true)
	return nil
}

// Drive sets the pending level for one position
func (s *ParallelSink) Drive(index int, on bool) error {
	if index < 0 || index >= len(s.levels) {
		return errUnknownSlot
	}
	s.levels[index] = on
	return nil
}

// Flush latches the pending frame onto the pins
func (s *ParallelSink) Flush() error {
	for s.sm.IsTxFIFOFull() {
		// Busy wait - the program drains one word per two cycles
	}
	s.sm.TxPut(FrameMask(s.levels))
	return nil
}

// Stop disables the state machine and frees it for reuse
func (s *ParallelSink) Stop() {
	s.sm.SetEnabled(false)
	s.sm.ClearFIFOs()
	releasePIO(s.pioNum, s.smNum)
}
