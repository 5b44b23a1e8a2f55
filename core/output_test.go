package core

import (
	"errors"
	"testing"
)

// mockGPIODriver is a test implementation of GPIODriver
type mockGPIODriver struct {
	pins       map[GPIOPin]bool
	configured map[GPIOPin]bool
	writes     int
	failPin    GPIOPin
	failErr    error
}

func newMockGPIODriver() *mockGPIODriver {
	return &mockGPIODriver{
		pins:       make(map[GPIOPin]bool),
		configured: make(map[GPIOPin]bool),
	}
}

func (m *mockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	m.configured[pin] = true
	return nil
}

func (m *mockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	if m.failErr != nil && pin == m.failPin {
		return m.failErr
	}
	m.pins[pin] = value
	m.writes++
	return nil
}

func (m *mockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	return m.pins[pin], nil
}

var testPins = []GPIOPin{16, 17, 18, 19}

func TestNewPinBank(t *testing.T) {
	drv := newMockGPIODriver()
	drv.pins[17] = true // leftover state from a previous run

	bank, err := NewPinBank(drv, testPins)
	if err != nil {
		t.Fatalf("NewPinBank failed: %v", err)
	}
	if bank.Len() != 4 {
		t.Errorf("Expected 4 positions, got %d", bank.Len())
	}
	for _, pin := range testPins {
		if !drv.configured[pin] {
			t.Errorf("pin %d not configured as output", pin)
		}
		if drv.pins[pin] {
			t.Errorf("pin %d not driven low at init", pin)
		}
	}
}

func TestNewPinBankNoPins(t *testing.T) {
	if _, err := NewPinBank(newMockGPIODriver(), nil); !errors.Is(err, ErrNoPins) {
		t.Errorf("Expected ErrNoPins, got %v", err)
	}
}

func TestPinBankCopiesPins(t *testing.T) {
	pins := []GPIOPin{2, 3}
	bank, err := NewPinBank(newMockGPIODriver(), pins)
	if err != nil {
		t.Fatal(err)
	}
	pins[0] = 9
	if pin, _ := bank.Pin(0); pin != 2 {
		t.Errorf("bank shares caller slice: position 0 maps to %d", pin)
	}
}

func TestPinBankDrive(t *testing.T) {
	drv := newMockGPIODriver()
	bank, _ := NewPinBank(drv, testPins)

	if err := bank.Drive(2, true); err != nil {
		t.Fatalf("Drive failed: %v", err)
	}
	if !drv.pins[18] {
		t.Error("position 2 should drive GPIO18 high")
	}

	if err := bank.Drive(2, false); err != nil {
		t.Fatalf("Drive failed: %v", err)
	}
	if drv.pins[18] {
		t.Error("position 2 should drive GPIO18 low")
	}
}

func TestPinBankDriveOutOfRange(t *testing.T) {
	bank, _ := NewPinBank(newMockGPIODriver(), testPins)
	for _, idx := range []int{-1, 4} {
		if err := bank.Drive(idx, true); !errors.Is(err, ErrUnknownPosition) {
			t.Errorf("Drive(%d): expected ErrUnknownPosition, got %v", idx, err)
		}
	}
}

func TestPinBankShutdown(t *testing.T) {
	drv := newMockGPIODriver()
	bank, _ := NewPinBank(drv, testPins)
	for i := range testPins {
		_ = bank.Drive(i, true)
	}

	drv.failPin = 17
	drv.failErr = errors.New("bus fault")
	err := bank.Shutdown()
	if !errors.Is(err, drv.failErr) {
		t.Errorf("Expected bus fault from Shutdown, got %v", err)
	}
	for _, pin := range []GPIOPin{16, 18, 19} {
		if drv.pins[pin] {
			t.Errorf("pin %d still high after shutdown", pin)
		}
	}
}

func TestMustGPIOPanicsWithoutDriver(t *testing.T) {
	saved := GetGPIODriver()
	defer SetGPIODriver(saved)

	SetGPIODriver(nil)
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustGPIO did not panic without a driver")
		}
	}()
	MustGPIO()
}

func TestSetGPIODriver(t *testing.T) {
	saved := GetGPIODriver()
	defer SetGPIODriver(saved)

	drv := newMockGPIODriver()
	SetGPIODriver(drv)
	if MustGPIO() != GPIODriver(drv) {
		t.Error("MustGPIO did not return the registered driver")
	}
}
