package core

// GPIOPin is a chip GPIO number
type GPIOPin uint32

// GPIODriver is the pin-level HAL the output sinks are written against.
// Each target registers its own implementation at boot.
type GPIODriver interface {
	// ConfigureOutput makes pin a push-pull output
	ConfigureOutput(pin GPIOPin) error

	// SetPin drives pin high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the level back
	GetPin(pin GPIOPin) (bool, error)
}

var gpioDriver GPIODriver

// SetGPIODriver registers the target's driver
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// GetGPIODriver returns the registered driver, nil before the target sets one
func GetGPIODriver() GPIODriver {
	return gpioDriver
}

// MustGPIO returns the registered driver and panics when there is none
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("core: no GPIO driver registered")
	}
	return gpioDriver
}
