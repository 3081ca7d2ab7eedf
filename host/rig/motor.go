// Package rig is the host-side driver for the motor rig firmware. A
// Motor wraps one axis and speaks the framed command protocol over a
// serial port, optionally tracking absolute position in inches.
package rig

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/golang/glog"

	"github.com/asamhwustl/DeathRayCode/host/serial"
	"github.com/asamhwustl/DeathRayCode/protocol"
)

var (
	// ErrUnexpectedLimit reports a counted move that ran into a limit
	// switch before finishing.
	ErrUnexpectedLimit = errors.New("rig: unexpectedly hit a limit switch")
	// ErrDeviceReset reports that the controller rebooted mid-move.
	// Absolute position is lost until the axis is re-homed.
	ErrDeviceReset = errors.New("rig: controller was reset during movement")
	// ErrUnknownPosition reports an absolute move attempted before the
	// axis position was established with ToLimit.
	ErrUnknownPosition = errors.New("rig: position unknown, home with ToLimit first")
	// ErrNegativeDistance reports a negative distance argument. The
	// direction flag carries the sign, not the distance.
	ErrNegativeDistance = errors.New("rig: distance must be non-negative")
	// ErrDistanceTooLarge reports a distance whose pulse count does not
	// fit the 32-bit wire field.
	ErrDistanceTooLarge = errors.New("rig: distance exceeds the maximum single move")
)

// Unit is a distance unit accepted by Move and MoveTo.
type Unit string

const (
	Inches      Unit = "in"
	Centimeters Unit = "cm"
	Millimeters Unit = "mm"
)

// inches converts a distance in this unit to inches.
func (u Unit) inches(distance float64) (float64, error) {
	switch u {
	case Inches:
		return distance, nil
	case Centimeters:
		return distance / 2.54, nil
	case Millimeters:
		return distance / 25.4, nil
	}
	return 0, fmt.Errorf("rig: unknown unit %q", string(u))
}

// Mechanical constants of the rig. The lead screws turn 625 times per
// 123 inches of carriage travel; the drivers are set to 400 pulses per
// revolution. Travel runs from the negative-limit switch at 0 to the
// positive stop at 9.8 inches.
const (
	DefaultPulsesPerRev = 400
	TurnsPerInch        = 625.0 / 123.0
	PosMin              = 0.0
	PosMax              = 9.8
)

// Motor drives a single rig axis over a shared serial port. Methods
// are not safe for concurrent use: the firmware processes one command
// at a time and replies only when the move completes.
type Motor struct {
	axis protocol.Axis
	port serial.Port
	ppr  float64

	pos      float64
	posKnown bool
}

// NewMotor returns a Motor for the given axis with unknown position.
func NewMotor(axis protocol.Axis, port serial.Port) *Motor {
	return &Motor{
		axis: axis,
		port: port,
		ppr:  DefaultPulsesPerRev,
	}
}

// NewMotorAt is NewMotor with a known starting position in inches.
func NewMotorAt(axis protocol.Axis, port serial.Port, pos float64) *Motor {
	m := NewMotor(axis, port)
	m.pos = pos
	m.posKnown = true
	return m
}

// Axis returns the axis this motor drives.
func (m *Motor) Axis() protocol.Axis { return m.axis }

// Position returns the tracked absolute position in inches and whether
// it is known.
func (m *Motor) Position() (float64, bool) {
	return m.pos, m.posKnown
}

// Move drives the axis the given distance in the given direction,
// relative to wherever it is now. Distance is always non-negative; the
// negative flag picks the direction of travel. Position tracking is
// updated when enabled.
func (m *Motor) Move(negative bool, distance float64, unit Unit) error {
	inchDistance, err := unit.inches(distance)
	if err != nil {
		return err
	}
	if inchDistance < 0 {
		return ErrNegativeDistance
	}

	pulses := inchDistance * m.ppr * TurnsPerInch
	if pulses > math.MaxUint32 {
		return ErrDistanceTooLarge
	}

	return m.send(protocol.Command{
		Axis:     m.axis,
		Negative: negative,
		Pulses:   uint32(math.Round(pulses)),
	}, inchDistance)
}

// ToLimit drives the axis in the given direction until a limit switch
// engages, then pins the tracked position to the corresponding end of
// travel. This is how absolute positioning gets established.
func (m *Motor) ToLimit(negative bool) error {
	return m.send(protocol.Command{
		Axis:      m.axis,
		Negative:  negative,
		GoToLimit: true,
	}, 0)
}

// MoveTo drives the axis to an absolute coordinate. The joystick can
// move axes behind the host's back, so the firmware is asked first
// whether the remote was used; if it was, the tracked position is
// invalidated and the move refused.
func (m *Motor) MoveTo(target float64, unit Unit) error {
	used, err := m.RemoteUsed()
	if err != nil {
		return err
	}
	if used {
		m.posKnown = false
	}
	if !m.posKnown {
		return ErrUnknownPosition
	}

	inchTarget, err := unit.inches(target)
	if err != nil {
		return err
	}

	delta := inchTarget - m.pos
	return m.Move(delta < 0, math.Abs(delta), Inches)
}

// RemoteUsed asks the firmware whether the joystick has moved any axis
// since the last query. The query also clears the firmware's flag.
func (m *Motor) RemoteUsed() (bool, error) {
	if err := m.port.Flush(); err != nil {
		return false, err
	}

	frame := protocol.EncodeCommand(protocol.Command{RemoteQuery: true})
	if _, err := m.port.Write(frame[:]); err != nil {
		return false, fmt.Errorf("rig: remote query write: %w", err)
	}

	var reply [protocol.ResponseLen]byte
	if _, err := io.ReadFull(m.port, reply[:]); err != nil {
		return false, fmt.Errorf("rig: remote query read: %w", err)
	}
	return protocol.ParseRemoteReply(reply)
}

// send transmits one command frame, waits for the status reply, and
// updates position tracking. inchDistance is the commanded travel for
// relative moves, ignored for go-to-limit moves.
func (m *Motor) send(cmd protocol.Command, inchDistance float64) error {
	glog.V(1).Infof("axis %s: negative=%v gotolimit=%v pulses=%d",
		cmd.Axis, cmd.Negative, cmd.GoToLimit, cmd.Pulses)

	// Drop any stray bytes so the status reply is the first read.
	if err := m.port.Flush(); err != nil {
		return err
	}

	frame := protocol.EncodeCommand(cmd)
	if _, err := m.port.Write(frame[:]); err != nil {
		return fmt.Errorf("rig: command write: %w", err)
	}

	// The reply arrives only once the move finishes; block until then.
	var reply [protocol.ResponseLen]byte
	if _, err := io.ReadFull(m.port, reply[:]); err != nil {
		return fmt.Errorf("rig: response read: %w", err)
	}

	status, err := protocol.ParseResponse(reply)
	if err != nil {
		return err
	}

	switch status {
	case protocol.StatusSuccess:
		if cmd.GoToLimit {
			m.setLimitPosition(cmd.Negative)
		} else if m.posKnown {
			if cmd.Negative {
				m.pos -= inchDistance
			} else {
				m.pos += inchDistance
			}
		}
		return nil

	case protocol.StatusLimitHit:
		// The axis stopped at a switch, which at least tells us where
		// it is now.
		m.setLimitPosition(cmd.Negative)
		return ErrUnexpectedLimit

	case protocol.StatusReset:
		m.posKnown = false
		return ErrDeviceReset
	}
	return protocol.ErrBadStatus
}

// setLimitPosition pins the tracked position to the end of travel the
// given direction runs into.
func (m *Motor) setLimitPosition(negative bool) {
	if negative {
		m.pos = PosMin
	} else {
		m.pos = PosMax
	}
	m.posKnown = true
}
