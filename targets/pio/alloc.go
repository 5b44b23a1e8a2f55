package pio

// Each RP2 chip has two PIO blocks with four state machines each.
// Slots are numbered pio*smPerPIO + sm.
const (
	numPIO   = 2
	smPerPIO = 4
	numSlots = numPIO * smPerPIO
)

// smPool hands out state machines round-robin so a just-released one is
// the last to be reused
type smPool struct {
	used [numSlots]bool
	next uint8
}

var machines smPool

func (p *smPool) claim() (pioNum, smNum uint8, ok bool) {
	for i := 0; i < numSlots; i++ {
		slot := p.next
		p.next = (p.next + 1) % numSlots
		if !p.used[slot] {
			p.used[slot] = true
			return slot / smPerPIO, slot % smPerPIO, true
		}
	}
	return 0, 0, false
}

func (p *smPool) release(pioNum, smNum uint8) {
	if pioNum < numPIO && smNum < smPerPIO {
		p.used[pioNum*smPerPIO+smNum] = false
	}
}

func allocatePIO() (pioNum, smNum uint8, ok bool) {
	return machines.claim()
}

func releasePIO(pioNum, smNum uint8) {
	machines.release(pioNum, smNum)
}

// GetPIOAllocationStatus reports which state machines are claimed, [pio][sm]
func GetPIOAllocationStatus() [numPIO][smPerPIO]bool {
	var status [numPIO][smPerPIO]bool
	for slot, used := range machines.used {
		status[slot/smPerPIO][slot%smPerPIO] = used
	}
	return status
}

// ResetPIOAllocations frees every state machine
func ResetPIOAllocations() {
	machines = smPool{}
}
