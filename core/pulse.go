package core

import (
	"math"

	"github.com/asamhwustl/DeathRayCode/protocol"
)

// GoToLimitPulses is the pulse count substituted when go-to-limit mode
// is requested: effectively unbounded, terminated only by the limit
// monitor clearing the continuation flag.
const GoToLimitPulses = math.MaxUint32

// PulseGenerator emits counted, interruptible step pulse bursts on one
// axis output.
type PulseGenerator struct {
	backend AxisBackend
	session *Session
}

// NewPulseGenerator creates a pulse generator driving the given backend.
func NewPulseGenerator(backend AxisBackend, session *Session) *PulseGenerator {
	return &PulseGenerator{backend: backend, session: session}
}

// Pulse emits up to count pulses on the given axis and returns the
// number actually emitted. The session's continuation flag is read
// before each pulse; when the limit monitor clears it the burst exits
// early. The flag is restored to "continue" before returning, so the
// next burst always starts unimpeded.
func (g *PulseGenerator) Pulse(count uint32, axis protocol.Axis) uint32 {
	emitted := uint32(0)
	for emitted < count {
		if !g.session.KeepPulsing() {
			break
		}
		g.backend.Step(axis)
		emitted++
	}
	g.session.ResumePulsing()
	return emitted
}
