package pio

import "testing"

func TestFrameMask(t *testing.T) {
	tests := []struct {
		levels []bool
		mask   uint32
	}{
		{nil, 0},
		{[]bool{true, false, false, false}, 0x1},
		{[]bool{false, true, false, false}, 0x2},
		{[]bool{false, false, false, true}, 0x8},
		{[]bool{true, true, false, true}, 0xB},
	}
	for _, tc := range tests {
		if got := FrameMask(tc.levels); got != tc.mask {
			t.Errorf("FrameMask(%v) = %#x, want %#x", tc.levels, got, tc.mask)
		}
	}
}

func TestFrameMaskIgnoresExtraPositions(t *testing.T) {
	levels := make([]bool, MaxWidth+4)
	levels[MaxWidth-1] = true
	levels[MaxWidth+2] = true
	if got := FrameMask(levels); got != 1<<31 {
		t.Errorf("FrameMask = %#x, want %#x", got, uint32(1<<31))
	}
}

func TestAllocatePIO(t *testing.T) {
	ResetPIOAllocations()
	defer ResetPIOAllocations()

	seen := make(map[[2]uint8]bool)
	for i := 0; i < 8; i++ {
		pioNum, smNum, ok := allocatePIO()
		if !ok {
			t.Fatalf("allocation %d failed", i)
		}
		key := [2]uint8{pioNum, smNum}
		if seen[key] {
			t.Fatalf("PIO%d SM%d handed out twice", pioNum, smNum)
		}
		seen[key] = true
	}

	for pioNum, sms := range GetPIOAllocationStatus() {
		for smNum, used := range sms {
			if !used {
				t.Errorf("PIO%d SM%d not marked allocated", pioNum, smNum)
			}
		}
	}

	if _, _, ok := allocatePIO(); ok {
		t.Error("ninth allocation should fail")
	}

	releasePIO(1, 2)
	pioNum, smNum, ok := allocatePIO()
	if !ok || pioNum != 1 || smNum != 2 {
		t.Errorf("Expected released PIO1 SM2, got PIO%d SM%d ok=%v", pioNum, smNum, ok)
	}
}
