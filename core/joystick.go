package core

import (
	"time"

	"github.com/asamhwustl/DeathRayCode/protocol"
)

// Joystick calibration. Both channels idle near the baseline; the
// asymmetric thresholds come from the fitted joystick module, whose
// output skews high at rest.
const (
	JoystickBaseline       = 700
	JoystickUpperThreshold = 200 // delta above baseline: negative travel
	JoystickLowerThreshold = 400 // delta below baseline: positive travel

	// DefaultJoystickSettle is the delay before the first read after
	// an idle cycle, to debounce rapid repeated triggering.
	DefaultJoystickSettle = 50 * time.Millisecond
)

// Joystick polls the two analog channels when no host command is
// active and issues single-step moves. Left-right drives X, up-down
// drives Y; at most one axis moves per cycle, with left-right taking
// precedence.
type Joystick struct {
	session *Session
	backend AxisBackend
	lr      ADCChannel
	ud      ADCChannel
	settle  time.Duration
	sleep   func(time.Duration)
}

// NewJoystick creates a joystick controller reading the given channels.
func NewJoystick(session *Session, backend AxisBackend, lr, ud ADCChannel) *Joystick {
	return &Joystick{
		session: session,
		backend: backend,
		lr:      lr,
		ud:      ud,
		settle:  DefaultJoystickSettle,
		sleep:   time.Sleep,
	}
}

// SetSettle overrides the idle settle delay. Tests shorten it.
func (j *Joystick) SetSettle(d time.Duration) { j.settle = d }

// SetSleep overrides the sleep function used for the settle delay.
func (j *Joystick) SetSleep(sleep func(time.Duration)) { j.sleep = sleep }

// Poll reads both channels and issues at most one single-pulse move.
// Any move marks the remote as used, both for this cycle and for the
// persistent since-last-query flag.
func (j *Joystick) Poll() {
	if !j.session.RemoteActivePrev() {
		j.sleep(j.settle)
	}

	if moved, negative := readDeflection(j.lr); moved {
		j.move(protocol.AxisX, negative)
		return
	}
	if moved, negative := readDeflection(j.ud); moved {
		j.move(protocol.AxisY, negative)
	}
}

func (j *Joystick) move(axis protocol.Axis, negative bool) {
	j.backend.SetDirection(negative)
	j.backend.Step(axis)
	j.session.MarkRemoteUsed()
}

// readDeflection samples one channel and maps it to a move decision.
// Readings inside the deadzone produce no motion.
func readDeflection(ch ADCChannel) (moved, negative bool) {
	raw, err := MustADC().ReadRaw(ch)
	if err != nil {
		return false, false
	}
	delta := int(raw) - JoystickBaseline
	switch {
	case delta > JoystickUpperThreshold:
		return true, true
	case delta < -JoystickLowerThreshold:
		return true, false
	}
	return false, false
}
