// Package core holds the platform-independent firmware logic for the
// motor rig: command decoding, pulse generation, the limit safety
// monitor, the joystick fallback controller and the control loop that
// ties them together. Hardware access goes through the driver
// interfaces in the *_hal.go files; targets register concrete
// implementations at startup.
package core

// GPIOPin identifies a hardware GPIO pin number.
type GPIOPin uint32

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output.
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullDown configures a pin as a digital input with
	// a pull-down resistor. The limit-sense input idles low and is
	// pulled high by the switch.
	ConfigureInputPullDown(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false).
	SetPin(pin GPIOPin, value bool) error

	// ReadPin reads the current pin state.
	ReadPin(pin GPIOPin) bool
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
