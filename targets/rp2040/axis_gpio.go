//go:build rp2040

package main

import (
	"machine"
	"time"

	"github.com/asamhwustl/DeathRayCode/core"
	"github.com/asamhwustl/DeathRayCode/protocol"
)

// Step pulse timing: each phase of the high/low pair is held for about
// a millisecond, matching what the step drivers on the rig expect.
const pulsePhaseMicros = 1000

// GPIOAxisBackend implements core.AxisBackend by toggling the step
// pins directly. Phase timing is a calibrated busy-wait rather than
// time.Sleep because Step also runs from the limit interrupt handler
// while it walks the axis off the switch.
type GPIOAxisBackend struct {
	stepPins [3]machine.Pin
	dirPin   machine.Pin
}

// NewGPIOAxisBackend configures the step and direction outputs.
func NewGPIOAxisBackend() *GPIOAxisBackend {
	b := &GPIOAxisBackend{
		stepPins: [3]machine.Pin{pinStepX, pinStepY, pinStepZ},
		dirPin:   pinDir,
	}
	for _, p := range b.stepPins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	b.dirPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b.dirPin.Low()
	return b
}

// Step emits one high/low pulse pair on the selected axis output.
func (b *GPIOAxisBackend) Step(axis protocol.Axis) {
	if !axis.Valid() {
		return
	}
	pin := b.stepPins[axis]
	pin.High()
	busyWaitMicros(pulsePhaseMicros)
	pin.Low()
	busyWaitMicros(pulsePhaseMicros)
}

// SetDirection drives the shared direction output. High selects
// negative travel.
func (b *GPIOAxisBackend) SetDirection(negative bool) {
	b.dirPin.Set(negative)
}

var _ core.AxisBackend = (*GPIOAxisBackend)(nil)

// busyWaitMicros spins for roughly the given number of microseconds.
// Calibrated for the 125MHz system clock; precision on the order of a
// few percent is plenty for step timing.
func busyWaitMicros(us int) {
	// ~8 iterations per cycle of the inner loop body at -opt=2.
	for i := 0; i < us*15; i++ {
		waitSink++
	}
}

// waitSink keeps the busy-wait loop from being optimized away.
var waitSink uint32

// busyWaitDuration is the time.Duration form of busyWaitMicros, used
// where the core expects a sleep function but interrupt context rules
// out time.Sleep.
func busyWaitDuration(d time.Duration) {
	busyWaitMicros(int(d.Microseconds()))
}
