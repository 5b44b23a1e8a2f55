package core

import (
	"strings"
	"testing"
	"time"
)

func TestDebugPrintlnGated(t *testing.T) {
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	if len(lines) != 0 {
		t.Errorf("disabled debug wrote %v", lines)
	}

	SetDebugEnabled(true)
	defer SetDebugEnabled(false)
	DebugPrintln("shown")
	if len(lines) != 1 || lines[0] != "shown" {
		t.Errorf("Expected [shown], got %v", lines)
	}
	if !IsDebugEnabled() {
		t.Error("IsDebugEnabled should be true")
	}
}

func TestDebugAsync(t *testing.T) {
	got := make(chan string, 1)
	SetDebugWriter(func(s string) { got <- s })
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)

	InitAsyncDebug()
	DebugAsync("[LEDSEQ] restart n=1")

	select {
	case line := <-got:
		if line != "[LEDSEQ] restart n=1" {
			t.Errorf("async line = %q", line)
		}
	case <-time.After(time.Second):
		t.Fatal("async debug message never written")
	}
	SetDebugWriter(func(string) {})
}

func TestTimingRingOrder(t *testing.T) {
	ClearTimingRing()
	defer ClearTimingRing()

	for i := 0; i < TimingRingSize+3; i++ {
		RecordTiming(EvtAdvance, uint8(i%4), uint32(i), 0)
	}

	events := TimingEvents()
	if len(events) != TimingRingSize {
		t.Fatalf("Expected %d events, got %d", TimingRingSize, len(events))
	}
	if events[0].Clock != 3 {
		t.Errorf("oldest event clock = %d, want 3", events[0].Clock)
	}
	if last := events[len(events)-1]; last.Clock != TimingRingSize+2 {
		t.Errorf("newest event clock = %d, want %d", last.Clock, TimingRingSize+2)
	}
}

func TestTimingDisabled(t *testing.T) {
	ClearTimingRing()
	SetTimingEnabled(false)
	defer SetTimingEnabled(true)

	RecordTiming(EvtRender, 0, 1, 0)
	if n := len(TimingEvents()); n != 0 {
		t.Errorf("disabled timing recorded %d events", n)
	}
}

func TestDumpTimingRing(t *testing.T) {
	ClearTimingRing()
	defer ClearTimingRing()

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	RecordTiming(EvtRender, 2, 1200, 7)
	RecordTiming(EvtDriveError, 3, 1300, 8)
	DumpTimingRing()

	if len(lines) != 4 {
		t.Fatalf("Expected header, 2 events and footer, got %v", lines)
	}
	if lines[1] != "[TIMING] RENDER pos=2 clock=1200 v=7" {
		t.Errorf("unexpected line %q", lines[1])
	}
	if !strings.Contains(lines[2], "DRIVE_ERR!") {
		t.Errorf("unexpected line %q", lines[2])
	}
}

func TestItoa(t *testing.T) {
	tests := map[int]string{0: "0", 7: "7", 42: "42", -15: "-15", 4294967: "4294967"}
	for n, want := range tests {
		if got := itoa(n); got != want {
			t.Errorf("itoa(%d) = %q, want %q", n, got, want)
		}
	}
	if got := utoa(4294967295); got != "4294967295" {
		t.Errorf("utoa(max) = %q", got)
	}
	if got := Utoa(1200); got != "1200" {
		t.Errorf("Utoa(1200) = %q", got)
	}
}
