package core

// ADCChannel identifies a logical analog input channel.
type ADCChannel uint8

// ADCDriver is the abstract ADC interface that core code uses. The
// joystick controller expects readings scaled to the 0-1023 range its
// thresholds were calibrated against, regardless of the underlying
// converter's resolution.
type ADCDriver interface {
	// ConfigureChannel prepares a channel for analog input.
	ConfigureChannel(ch ADCChannel) error

	// ReadRaw performs a one-shot sample from the given channel.
	ReadRaw(ch ADCChannel) (uint16, error)
}

// Global singleton used by core code.
var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}
