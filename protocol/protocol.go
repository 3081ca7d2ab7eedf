// Package protocol implements the motor rig serial wire protocol:
// framed 8-byte commands from the host and framed 4-byte replies from
// the firmware.
package protocol

// Frame sentinels. Every command and response on the wire starts with
// FrameStart and ends with FrameEnd.
const (
	FrameStart = 0x07
	FrameEnd   = 0x0A
)

// Frame sizes in bytes.
const (
	CommandFrameLen = 8 // START + 7 payload bytes (ctrl, gotolimit, p3..p0, END)
	PayloadLen      = 7 // what follows START
	ResponseLen     = 4 // START + status + reserved + END
)

// ctrl byte layout (MSB to LSB): bits 7-6 axis, bit 5 direction,
// bit 0 remote-used-query flag.
const (
	ctrlAxisMask  = 0xC0
	ctrlAxisShift = 6
	ctrlDirBit    = 0x20
	ctrlQueryBit  = 0x01
)

// gotoLimit byte values. Anything other than all-ones disables the mode.
const (
	goToLimitOn  = 0xFF
	goToLimitOff = 0x00
)

// Axis identifies one of the three linear motion channels.
type Axis uint8

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

// Valid reports whether the axis is one of X, Y or Z. The two-bit wire
// encoding also admits 0b11, which no axis is bound to.
func (a Axis) Valid() bool {
	return a <= AxisZ
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// Status is the single status byte carried in a response frame.
type Status uint8

const (
	// StatusSuccess reports a command that ran to completion.
	StatusSuccess Status = 0xF0
	// StatusLimitHit reports that the limit switch engaged while
	// go-to-limit was not requested.
	StatusLimitHit Status = 0x0F
	// StatusReset is sent once at boot, before any command is
	// processed, so the host can detect an interrupted move.
	StatusReset Status = 0xFF
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusLimitHit:
		return "unexpected limit hit"
	case StatusReset:
		return "device reset"
	}
	return "unknown"
}
