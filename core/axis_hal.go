package core

import "github.com/asamhwustl/DeathRayCode/protocol"

// AxisBackend defines the hardware abstraction for step pulse output.
// Implementations can use plain GPIO, PIO state machines, or other
// methods.
type AxisBackend interface {
	// Step emits one complete high-then-low pulse pair on the output
	// bound to the given axis. The backend owns the pulse timing; the
	// GPIO implementation holds each phase for about a millisecond.
	// Step may be called from the limit interrupt handler while a
	// main-path burst is stalled, so it must not take locks.
	Step(axis protocol.Axis)

	// SetDirection drives the direction output shared by all three
	// axes. true selects negative travel.
	SetDirection(negative bool)
}
