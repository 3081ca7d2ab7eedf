package protocol

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrFraming reports a start or end sentinel mismatch. Frames
	// failing this check are dropped with no reply.
	ErrFraming = errors.New("frame sentinel mismatch")
	// ErrBadStatus reports a response status byte outside the known set.
	ErrBadStatus = errors.New("unknown status byte")
	// ErrBadAxis reports the unassigned 0b11 axis bit pattern. Frames
	// carrying it are dropped like any other framing failure.
	ErrBadAxis = errors.New("axis bits unassigned")
)

// Command is a decoded command frame.
type Command struct {
	Axis      Axis
	Negative  bool   // direction bit: false = positive travel
	GoToLimit bool   // drive until the limit switch engages
	Pulses    uint32 // step count; ignored when GoToLimit is set
	// RemoteQuery marks a remote-used query. When set, every other
	// field of the frame is ignored.
	RemoteQuery bool
}

// ParseCommand decodes the 7 payload bytes that follow a start sentinel.
// The terminal byte must be FrameEnd or the whole frame is rejected.
func ParseCommand(payload [PayloadLen]byte) (Command, error) {
	if payload[PayloadLen-1] != FrameEnd {
		return Command{}, ErrFraming
	}

	ctrl := payload[0]
	if ctrl&ctrlQueryBit != 0 {
		return Command{RemoteQuery: true}, nil
	}

	axis := Axis(ctrl&ctrlAxisMask) >> ctrlAxisShift
	if !axis.Valid() {
		return Command{}, ErrBadAxis
	}

	return Command{
		Axis:      axis,
		Negative:  ctrl&ctrlDirBit != 0,
		GoToLimit: payload[1] == goToLimitOn,
		Pulses:    binary.BigEndian.Uint32(payload[2:6]),
	}, nil
}

// EncodeCommand builds the full 8-byte wire frame for a command.
func EncodeCommand(c Command) [CommandFrameLen]byte {
	var frame [CommandFrameLen]byte
	frame[0] = FrameStart
	frame[CommandFrameLen-1] = FrameEnd

	if c.RemoteQuery {
		frame[1] = ctrlQueryBit
		return frame
	}

	ctrl := byte(c.Axis) << ctrlAxisShift
	if c.Negative {
		ctrl |= ctrlDirBit
	}
	frame[1] = ctrl
	if c.GoToLimit {
		frame[2] = goToLimitOn
	}
	binary.BigEndian.PutUint32(frame[3:7], c.Pulses)
	return frame
}

// EncodeResponse builds the 4-byte status reply for a command.
func EncodeResponse(s Status) [ResponseLen]byte {
	return [ResponseLen]byte{FrameStart, byte(s), 0x00, FrameEnd}
}

// EncodeRemoteReply builds the 4-byte reply to a remote-used query.
// Bit 0 of the third byte reports whether the joystick moved an axis
// since the last query.
func EncodeRemoteReply(used bool) [ResponseLen]byte {
	u := byte(0x00)
	if used {
		u = 0x01
	}
	return [ResponseLen]byte{FrameStart, 0x00, u, FrameEnd}
}

// ParseResponse decodes a command status reply on the host side.
func ParseResponse(frame [ResponseLen]byte) (Status, error) {
	if frame[0] != FrameStart || frame[ResponseLen-1] != FrameEnd {
		return 0, ErrFraming
	}
	s := Status(frame[1])
	switch s {
	case StatusSuccess, StatusLimitHit, StatusReset:
		return s, nil
	}
	return 0, ErrBadStatus
}

// ParseRemoteReply decodes a remote-used query reply on the host side.
func ParseRemoteReply(frame [ResponseLen]byte) (used bool, err error) {
	if frame[0] != FrameStart || frame[ResponseLen-1] != FrameEnd {
		return false, ErrFraming
	}
	return frame[2]&0x01 != 0, nil
}
