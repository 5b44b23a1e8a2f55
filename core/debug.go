package core

// DebugWriter emits one line of debug text; targets point it at USB CDC
type DebugWriter func(string)

// TimingEvent is one entry of the post-mortem ring
type TimingEvent struct {
	EventType uint8
	Position  uint8  // sequence position; config.MaxLEDCount keeps it in range
	Clock     uint32 // GetTime() when recorded
	Value     uint32 // tick count
}

const (
	EvtRender     = 1 // all positions driven for a tick
	EvtAdvance    = 2 // controller moved on
	EvtTimerFire  = 3 // scheduled sequence timer ran
	EvtDriveError = 4 // sink rejected a level or a flush
)

// TimingRingSize is how many events survive for DumpTimingRing
const TimingRingSize = 32

var (
	debugPrintln DebugWriter = func(string) {}
	debugEnabled bool
	debugChan    chan string

	timingRing    [TimingRingSize]TimingEvent
	timingHead    uint8
	timingEnabled = true
)

// SetDebugWriter installs the line writer used by every debug helper
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled turns DebugPrintln and DebugAsync on or off
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

func IsDebugEnabled() bool {
	return debugEnabled
}

// SetTimingEnabled turns RecordTiming on or off
func SetTimingEnabled(enabled bool) {
	timingEnabled = enabled
}

// InitAsyncDebug starts the worker behind DebugAsync.
// Call it once, after SetDebugWriter.
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go func() {
		for msg := range debugChan {
			if debugPrintln != nil {
				debugPrintln(msg)
			}
		}
	}()
}

// DebugPrintln writes msg synchronously when debug output is enabled
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync hands msg to the worker; it is dropped when the queue is full
// or InitAsyncDebug was never called
func DebugAsync(msg string) {
	if !debugEnabled || debugChan == nil {
		return
	}
	select {
	case debugChan <- msg:
	default:
	}
}

// RecordTiming stores an event, overwriting the oldest one
func RecordTiming(eventType, position uint8, clock, value uint32) {
	if !timingEnabled {
		return
	}
	timingRing[timingHead] = TimingEvent{
		EventType: eventType,
		Position:  position,
		Clock:     clock,
		Value:     value,
	}
	timingHead = (timingHead + 1) % TimingRingSize
}

// TimingEvents returns the recorded events, oldest first
func TimingEvents() []TimingEvent {
	events := make([]TimingEvent, 0, TimingRingSize)
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(timingHead+i)%TimingRingSize]
		if evt.EventType != 0 {
			events = append(events, evt)
		}
	}
	return events
}

func eventName(eventType uint8) string {
	switch eventType {
	case EvtRender:
		return "RENDER"
	case EvtAdvance:
		return "ADVANCE"
	case EvtTimerFire:
		return "TIMER_FIRE"
	case EvtDriveError:
		return "DRIVE_ERR!"
	}
	return "UNKNOWN"
}

// DumpTimingRing writes every recorded event through the debug writer,
// regardless of SetDebugEnabled. Used after a sink failure or a panic.
func DumpTimingRing() {
	if debugPrintln == nil {
		return
	}
	debugPrintln("[TIMING] === Timing Ring Dump ===")
	for _, evt := range TimingEvents() {
		debugPrintln("[TIMING] " + eventName(evt.EventType) +
			" pos=" + itoa(int(evt.Position)) +
			" clock=" + utoa(evt.Clock) +
			" v=" + utoa(evt.Value))
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing forgets every recorded event
func ClearTimingRing() {
	timingRing = [TimingRingSize]TimingEvent{}
	timingHead = 0
}
