package core

import (
	"sync/atomic"

	"github.com/asamhwustl/DeathRayCode/protocol"
)

// Session is the per-cycle state record shared between the control
// loop and the limit interrupt handler. Fields the interrupt path
// touches (active axis, commanded direction, continuation flag,
// limit-hit flag, executing flag) are held in atomics; everything else
// belongs to the main loop alone.
//
// Exactly one command or one joystick micro-move is in flight per
// cycle. All per-cycle flags are cleared by EndCycle; only the
// remote-used flag survives, until the host queries it.
type Session struct {
	// Interrupt-shared state.
	executing   uint32 // a command burst is running right now
	axis        uint32 // protocol.Axis of the burst
	negative    uint32 // commanded direction (1 = negative)
	limitHit    uint32 // the limit switch engaged during this command
	keepPulsing uint32 // continuation flag: cleared to abort a burst

	// Main-loop state.
	cmd          protocol.Command
	cmdPending   bool
	queryPending bool
	goToLimit    bool
	remoteActive bool // joystick moved an axis this cycle
	remotePrev   bool // joystick moved an axis the previous cycle
	remoteUsed   bool // joystick moved since the last host query
}

// NewSession returns a session ready for the first cycle, with the
// continuation flag set to "continue".
func NewSession() *Session {
	s := &Session{}
	s.ResumePulsing()
	return s
}

// BeginCommand records a decoded command for dispatch.
func (s *Session) BeginCommand(cmd protocol.Command) {
	s.cmd = cmd
	s.cmdPending = true
}

// Command returns the pending command record.
func (s *Session) Command() protocol.Command { return s.cmd }

// CommandPending reports whether a command awaits execution.
func (s *Session) CommandPending() bool { return s.cmdPending }

// BeginQuery marks a remote-used query pending.
func (s *Session) BeginQuery() { s.queryPending = true }

// QueryPending reports whether a remote-used query awaits service.
func (s *Session) QueryPending() bool { return s.queryPending }

// StartExecuting publishes the active axis and commanded direction for
// the limit handler and marks a burst in progress. It must be called
// before the first pulse of a command.
func (s *Session) StartExecuting(axis protocol.Axis, negative, goToLimit bool) {
	atomic.StoreUint32(&s.axis, uint32(axis))
	atomic.StoreUint32(&s.negative, b2u(negative))
	s.goToLimit = goToLimit
	atomic.StoreUint32(&s.executing, 1)
}

// StopExecuting marks the burst finished.
func (s *Session) StopExecuting() {
	atomic.StoreUint32(&s.executing, 0)
}

// Executing reports whether a command burst is in progress.
func (s *Session) Executing() bool {
	return atomic.LoadUint32(&s.executing) != 0
}

// ActiveAxis returns the axis of the burst in progress.
func (s *Session) ActiveAxis() protocol.Axis {
	return protocol.Axis(atomic.LoadUint32(&s.axis))
}

// CommandedNegative returns the direction the host commanded. The
// limit handler reverses relative to this value and never rewrites it,
// even while walking the axis clear.
func (s *Session) CommandedNegative() bool {
	return atomic.LoadUint32(&s.negative) != 0
}

// GoToLimit reports whether the pending command requested go-to-limit.
func (s *Session) GoToLimit() bool { return s.goToLimit }

// KeepPulsing reports the continuation flag, read before every pulse.
func (s *Session) KeepPulsing() bool {
	return atomic.LoadUint32(&s.keepPulsing) != 0
}

// StopPulsing clears the continuation flag, aborting any burst in
// progress on the main path.
func (s *Session) StopPulsing() {
	atomic.StoreUint32(&s.keepPulsing, 0)
}

// ResumePulsing restores the continuation flag so the next burst
// starts unimpeded.
func (s *Session) ResumePulsing() {
	atomic.StoreUint32(&s.keepPulsing, 1)
}

// SetLimitHit records that the limit switch engaged during a command.
func (s *Session) SetLimitHit() {
	atomic.StoreUint32(&s.limitHit, 1)
}

// LimitHit reports whether the limit switch engaged this cycle.
func (s *Session) LimitHit() bool {
	return atomic.LoadUint32(&s.limitHit) != 0
}

// MarkRemoteUsed records a joystick move, both for this cycle and for
// the persistent since-last-query flag.
func (s *Session) MarkRemoteUsed() {
	s.remoteActive = true
	s.remoteUsed = true
}

// RemoteActivePrev reports whether the joystick moved an axis during
// the previous cycle.
func (s *Session) RemoteActivePrev() bool { return s.remotePrev }

// ConsumeRemoteUsed reports and clears the persistent remote-used flag.
func (s *Session) ConsumeRemoteUsed() bool {
	used := s.remoteUsed
	s.remoteUsed = false
	return used
}

// EndCycle clears every per-cycle flag before the loop re-enters IDLE.
// The remote-used flag is deliberately left alone.
func (s *Session) EndCycle() {
	s.cmdPending = false
	s.queryPending = false
	s.goToLimit = false
	s.cmd = protocol.Command{}
	atomic.StoreUint32(&s.limitHit, 0)
	s.ResumePulsing()
	s.remotePrev = s.remoteActive
	s.remoteActive = false
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
