package core

import "time"

// DefaultLimitDebounce is how long the handler waits before re-reading
// the limit input after a rising edge.
const DefaultLimitDebounce = time.Millisecond

// LimitMonitor is the end-of-travel safety handler. Targets bind
// HandleRise to a rising-edge interrupt on the limit-sense input.
//
// The handler shares session state with the main control path and runs
// with no locking; the session's atomic accessors keep the individual
// reads and writes indivisible, and the handler only acts while a
// command burst is in progress.
type LimitMonitor struct {
	session  *Session
	backend  AxisBackend
	pin      GPIOPin
	debounce time.Duration
	sleep    func(time.Duration)
}

// NewLimitMonitor creates a monitor watching the given limit-sense pin.
func NewLimitMonitor(session *Session, backend AxisBackend, pin GPIOPin) *LimitMonitor {
	return &LimitMonitor{
		session:  session,
		backend:  backend,
		pin:      pin,
		debounce: DefaultLimitDebounce,
		sleep:    time.Sleep,
	}
}

// SetDebounce overrides the debounce interval. Tests shorten it.
func (m *LimitMonitor) SetDebounce(d time.Duration) { m.debounce = d }

// SetSleep overrides the sleep function used for debouncing.
func (m *LimitMonitor) SetSleep(sleep func(time.Duration)) { m.sleep = sleep }

// HandleRise services a rising edge on the limit-sense input. After a
// debounce re-check it reverses the direction output relative to the
// commanded direction, single-steps the active axis until the switch
// releases, records the hit and aborts the in-progress burst. With no
// command executing the debounce check still runs but nothing else
// happens.
func (m *LimitMonitor) HandleRise() {
	m.sleep(m.debounce)
	if !MustGPIO().ReadPin(m.pin) {
		return
	}
	if !m.session.Executing() {
		return
	}

	// Reverse from the commanded direction. The commanded value itself
	// stays untouched while walking clear.
	m.backend.SetDirection(!m.session.CommandedNegative())

	axis := m.session.ActiveAxis()
	for MustGPIO().ReadPin(m.pin) {
		m.backend.Step(axis)
	}

	m.session.SetLimitHit()
	m.session.StopPulsing()
}
