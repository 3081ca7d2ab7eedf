//go:build rp2040

package main

import (
	"errors"
	"machine"

	"github.com/asamhwustl/DeathRayCode/core"
)

// RPADCDriver implements core.ADCDriver using TinyGo's machine.ADC.
// The RP2040 samples at 12 bits and machine scales that to 16; the
// joystick thresholds were calibrated against a 10-bit converter, so
// ReadRaw scales readings down to 0-1023.
type RPADCDriver struct {
	channels map[core.ADCChannel]machine.ADC
}

// NewRPADCDriver constructs the driver and powers up the ADC block.
func NewRPADCDriver() *RPADCDriver {
	machine.InitADC()
	return &RPADCDriver{
		channels: make(map[core.ADCChannel]machine.ADC),
	}
}

// channelPin maps logical channels to the joystick wiper pins.
func channelPin(ch core.ADCChannel) (machine.Pin, bool) {
	switch ch {
	case chJoyLR:
		return pinJoyLR, true
	case chJoyUD:
		return pinJoyUD, true
	}
	return 0, false
}

// ConfigureChannel prepares a channel for analog input.
func (d *RPADCDriver) ConfigureChannel(ch core.ADCChannel) error {
	if _, ok := d.channels[ch]; ok {
		return nil
	}
	pin, ok := channelPin(ch)
	if !ok {
		return errors.New("unknown ADC channel")
	}
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	d.channels[ch] = adc
	return nil
}

// ReadRaw performs a one-shot sample, scaled to the 0-1023 range.
func (d *RPADCDriver) ReadRaw(ch core.ADCChannel) (uint16, error) {
	adc, ok := d.channels[ch]
	if !ok {
		if err := d.ConfigureChannel(ch); err != nil {
			return 0, err
		}
		adc = d.channels[ch]
	}
	return adc.Get() >> 6, nil
}
