//go:build rp2040

package main

import (
	"machine"

	"github.com/asamhwustl/DeathRayCode/core"
)

const serialBaud = 115200

func main() {
	// Hardware drivers first: the core panics on a missing driver.
	gpio := NewRPGPIODriver()
	core.SetGPIODriver(gpio)
	adc := NewRPADCDriver()
	core.SetADCDriver(adc)

	// Joystick reference rails: one line held low, one held high, so
	// the module plugs straight onto the header.
	pinJoyGround.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinJoyGround.Low()
	pinJoyVcc.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinJoyVcc.High()

	adc.ConfigureChannel(chJoyLR)
	adc.ConfigureChannel(chJoyUD)

	// Limit-sense input: idles low, pulled high by the switches.
	gpio.ConfigureInputPullDown(limitPin)

	backend := newAxisBackend()
	session := core.NewSession()

	joystick := core.NewJoystick(session, backend, chJoyLR, chJoyUD)

	monitor := core.NewLimitMonitor(session, backend, limitPin)
	// The handler runs in interrupt context, where time.Sleep is not
	// available; debounce with the same busy-wait the backend uses.
	monitor.SetSleep(busyWaitDuration)

	pinLimit.SetInterrupt(machine.PinRising, func(machine.Pin) {
		monitor.HandleRise()
	})

	port := newUARTPort(serialBaud)
	loop := core.NewControlLoop(session, port, backend, joystick)
	loop.Run()
}
