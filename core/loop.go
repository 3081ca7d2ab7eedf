package core

import "github.com/asamhwustl/DeathRayCode/protocol"

// ControlLoop orchestrates one cycle of the firmware: decode, dispatch
// to command execution or the joystick fallback, respond, reset the
// per-cycle flags.
type ControlLoop struct {
	session  *Session
	port     SerialPort
	decoder  *Decoder
	pulses   *PulseGenerator
	joystick *Joystick
	backend  AxisBackend
}

// NewControlLoop wires the cycle components together.
func NewControlLoop(session *Session, port SerialPort, backend AxisBackend, joystick *Joystick) *ControlLoop {
	return &ControlLoop{
		session:  session,
		port:     port,
		decoder:  NewDecoder(port, session),
		pulses:   NewPulseGenerator(backend, session),
		joystick: joystick,
		backend:  backend,
	}
}

// AnnounceReset transmits the one-shot device-reset notice. It must be
// the very first frame on the wire, sent before the first cycle, so
// the host can detect a move interrupted by a restart.
func (l *ControlLoop) AnnounceReset() {
	frame := protocol.EncodeResponse(protocol.StatusReset)
	l.port.Write(frame[:])
}

// Run announces the reset and cycles forever.
func (l *ControlLoop) Run() {
	l.AnnounceReset()
	for {
		l.Cycle()
	}
}

// Cycle runs one pass of the state machine: IDLE → DECODING →
// {COMMAND_PENDING | QUERY_PENDING} → EXECUTING → RESPONSE_SENT →
// IDLE, or JOYSTICK_POLL when nothing is decoded and nothing pending.
func (l *ControlLoop) Cycle() {
	if !l.session.CommandPending() && !l.session.QueryPending() {
		l.decoder.Poll()
	}

	switch {
	case l.session.QueryPending():
		l.serviceQuery()
	case l.session.CommandPending():
		l.execute()
	default:
		l.joystick.Poll()
	}

	l.session.EndCycle()
}

// execute runs the pending command: direction output, pulse burst
// (possibly preempted by the limit monitor), then exactly one status
// frame.
func (l *ControlLoop) execute() {
	cmd := l.session.Command()

	l.backend.SetDirection(cmd.Negative)
	l.session.StartExecuting(cmd.Axis, cmd.Negative, cmd.GoToLimit)

	count := cmd.Pulses
	if cmd.GoToLimit {
		count = GoToLimitPulses
	}
	l.pulses.Pulse(count, cmd.Axis)

	l.session.StopExecuting()

	status := protocol.StatusSuccess
	if l.session.LimitHit() && !cmd.GoToLimit {
		status = protocol.StatusLimitHit
	}
	frame := protocol.EncodeResponse(status)
	l.port.Write(frame[:])
}

// serviceQuery answers a remote-used query, reporting and clearing the
// persistent flag.
func (l *ControlLoop) serviceQuery() {
	frame := protocol.EncodeRemoteReply(l.session.ConsumeRemoteUsed())
	l.port.Write(frame[:])
}
