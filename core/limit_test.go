package core

import (
	"testing"

	"github.com/asamhwustl/DeathRayCode/protocol"
)

const limitPin = GPIOPin(15)

func TestLimitReversesAndWalksOff(t *testing.T) {
	backend := newMockBackend()
	session := NewSession()

	// The switch stays engaged until the axis has backed off 4 steps.
	engaged := true
	gpio := newMockGPIO()
	gpio.readFunc = func(pin GPIOPin) bool { return engaged }
	backend.onStep = func(axis protocol.Axis, n int) {
		if n >= 4 {
			engaged = false
		}
	}
	SetGPIODriver(gpio)

	session.StartExecuting(protocol.AxisZ, true, false)

	monitor := NewLimitMonitor(session, backend, limitPin)
	monitor.SetSleep(noSleep)
	monitor.HandleRise()

	if len(backend.dirSets) == 0 {
		t.Fatal("direction output never driven")
	}
	// Commanded direction was negative; the walk-off must reverse it.
	if last := backend.dirSets[len(backend.dirSets)-1]; last != false {
		t.Error("direction not reversed from commanded negative")
	}
	if backend.steps[protocol.AxisZ] != 4 {
		t.Errorf("walked %d steps, want 4", backend.steps[protocol.AxisZ])
	}
	if !session.LimitHit() {
		t.Error("limit-hit flag not set")
	}
	if session.KeepPulsing() {
		t.Error("continuation flag not cleared")
	}
}

func TestLimitReversesFromCommandedPositive(t *testing.T) {
	backend := newMockBackend()
	session := NewSession()

	engaged := true
	gpio := newMockGPIO()
	gpio.readFunc = func(pin GPIOPin) bool { return engaged }
	backend.onStep = func(axis protocol.Axis, n int) { engaged = false }
	SetGPIODriver(gpio)

	session.StartExecuting(protocol.AxisX, false, false)

	monitor := NewLimitMonitor(session, backend, limitPin)
	monitor.SetSleep(noSleep)
	monitor.HandleRise()

	if last := backend.dirSets[len(backend.dirSets)-1]; last != true {
		t.Error("direction not reversed from commanded positive")
	}
}

func TestLimitIgnoredWhenIdle(t *testing.T) {
	backend := newMockBackend()
	session := NewSession()

	gpio := newMockGPIO()
	gpio.readFunc = func(pin GPIOPin) bool { return true }
	SetGPIODriver(gpio)

	monitor := NewLimitMonitor(session, backend, limitPin)
	monitor.SetSleep(noSleep)
	monitor.HandleRise()

	if backend.totalSteps() != 0 {
		t.Error("handler drove the motor with no command executing")
	}
	if session.LimitHit() {
		t.Error("limit-hit flag set with no command executing")
	}
	if !session.KeepPulsing() {
		t.Error("continuation flag cleared with no command executing")
	}
}

func TestLimitDebounceRejectsGlitch(t *testing.T) {
	backend := newMockBackend()
	session := NewSession()

	// Pin already released by the time the debounce re-check reads it.
	gpio := newMockGPIO()
	gpio.readFunc = func(pin GPIOPin) bool { return false }
	SetGPIODriver(gpio)

	session.StartExecuting(protocol.AxisY, false, false)

	monitor := NewLimitMonitor(session, backend, limitPin)
	monitor.SetSleep(noSleep)
	monitor.HandleRise()

	if backend.totalSteps() != 0 || session.LimitHit() {
		t.Error("glitch not rejected by debounce re-check")
	}
}
