package core

import (
	"testing"

	"github.com/asamhwustl/DeathRayCode/protocol"
)

func TestPulseZeroCount(t *testing.T) {
	backend := newMockBackend()
	session := NewSession()
	gen := NewPulseGenerator(backend, session)

	if emitted := gen.Pulse(0, protocol.AxisX); emitted != 0 {
		t.Errorf("Pulse(0) emitted %d pulses", emitted)
	}
	if backend.totalSteps() != 0 {
		t.Errorf("expected no transitions, got %d", backend.totalSteps())
	}
}

func TestPulseExactCount(t *testing.T) {
	backend := newMockBackend()
	session := NewSession()
	gen := NewPulseGenerator(backend, session)

	if emitted := gen.Pulse(5, protocol.AxisY); emitted != 5 {
		t.Errorf("emitted %d pulses, want 5", emitted)
	}
	if backend.steps[protocol.AxisY] != 5 {
		t.Errorf("axis Y saw %d pulses, want 5", backend.steps[protocol.AxisY])
	}
	if backend.steps[protocol.AxisX] != 0 || backend.steps[protocol.AxisZ] != 0 {
		t.Error("pulses leaked onto inactive axes")
	}
}

func TestPulseEarlyCancel(t *testing.T) {
	backend := newMockBackend()
	session := NewSession()
	gen := NewPulseGenerator(backend, session)

	// Clear the continuation flag after the third pulse, as the limit
	// monitor would.
	backend.onStep = func(axis protocol.Axis, n int) {
		if n == 3 {
			session.StopPulsing()
		}
	}

	if emitted := gen.Pulse(10, protocol.AxisZ); emitted != 3 {
		t.Errorf("emitted %d pulses, want 3", emitted)
	}
	if !session.KeepPulsing() {
		t.Error("continuation flag not restored after burst")
	}
}

func TestPulseRestoresFlagOnCompletion(t *testing.T) {
	backend := newMockBackend()
	session := NewSession()
	gen := NewPulseGenerator(backend, session)

	gen.Pulse(2, protocol.AxisX)
	if !session.KeepPulsing() {
		t.Error("continuation flag cleared after a full burst")
	}
}
