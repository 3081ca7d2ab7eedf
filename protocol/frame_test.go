package protocol

import (
	"bytes"
	"testing"
)

func TestCommandRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		cmd  Command
	}{
		{"x positive", Command{Axis: AxisX, Pulses: 400}},
		{"x negative", Command{Axis: AxisX, Negative: true, Pulses: 1}},
		{"y positive", Command{Axis: AxisY, Pulses: 123456}},
		{"z negative big", Command{Axis: AxisZ, Negative: true, Pulses: 0xFFFFFFFF}},
		{"go to limit", Command{Axis: AxisY, Negative: true, GoToLimit: true}},
		{"zero pulses", Command{Axis: AxisZ}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			frame := EncodeCommand(tc.cmd)

			if frame[0] != FrameStart {
				t.Fatalf("frame does not start with START: %#x", frame[0])
			}
			if frame[CommandFrameLen-1] != FrameEnd {
				t.Fatalf("frame does not end with END: %#x", frame[CommandFrameLen-1])
			}

			var payload [PayloadLen]byte
			copy(payload[:], frame[1:])
			got, err := ParseCommand(payload)
			if err != nil {
				t.Fatalf("ParseCommand failed: %v", err)
			}
			if got != tc.cmd {
				t.Errorf("round trip mismatch: sent %+v, got %+v", tc.cmd, got)
			}
		})
	}
}

func TestCommandBitLayout(t *testing.T) {
	// z axis, negative direction, go-to-limit, pulse count 0x01020304
	frame := EncodeCommand(Command{
		Axis:      AxisZ,
		Negative:  true,
		GoToLimit: true,
		Pulses:    0x01020304,
	})

	want := []byte{0x07, 0xA0, 0xFF, 0x01, 0x02, 0x03, 0x04, 0x0A}
	if !bytes.Equal(frame[:], want) {
		t.Errorf("wire layout mismatch:\n got %#v\nwant %#v", frame[:], want)
	}
}

func TestRemoteQueryFrame(t *testing.T) {
	frame := EncodeCommand(Command{RemoteQuery: true})

	if frame[1]&0x01 == 0 {
		t.Error("query bit not set in ctrl byte")
	}

	var payload [PayloadLen]byte
	copy(payload[:], frame[1:])
	cmd, err := ParseCommand(payload)
	if err != nil {
		t.Fatalf("ParseCommand failed: %v", err)
	}
	if !cmd.RemoteQuery {
		t.Error("RemoteQuery not set after decode")
	}
}

func TestRemoteQueryIgnoresRestOfFrame(t *testing.T) {
	// Query bit set alongside axis/direction/count garbage.
	payload := [PayloadLen]byte{0xE1, 0xFF, 0xDE, 0xAD, 0xBE, 0xEF, FrameEnd}
	cmd, err := ParseCommand(payload)
	if err != nil {
		t.Fatalf("ParseCommand failed: %v", err)
	}
	if cmd != (Command{RemoteQuery: true}) {
		t.Errorf("expected bare query command, got %+v", cmd)
	}
}

func TestParseCommandBadTerminator(t *testing.T) {
	payload := [PayloadLen]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x0B}
	if _, err := ParseCommand(payload); err != ErrFraming {
		t.Errorf("expected ErrFraming, got %v", err)
	}
}

func TestParseCommandUnassignedAxis(t *testing.T) {
	// Axis bits 0b11 name no channel; the frame must be rejected, not
	// dispatched as a pulse burst onto nothing.
	payload := [PayloadLen]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x05, FrameEnd}
	if _, err := ParseCommand(payload); err != ErrBadAxis {
		t.Errorf("expected ErrBadAxis, got %v", err)
	}

	// The query bit still wins over garbage axis bits.
	payload[0] = 0xC1
	cmd, err := ParseCommand(payload)
	if err != nil || !cmd.RemoteQuery {
		t.Errorf("query with axis garbage: got %+v, %v", cmd, err)
	}
}

func TestResponseEncoding(t *testing.T) {
	testCases := []struct {
		status Status
		want   []byte
	}{
		{StatusSuccess, []byte{0x07, 0xF0, 0x00, 0x0A}},
		{StatusLimitHit, []byte{0x07, 0x0F, 0x00, 0x0A}},
		{StatusReset, []byte{0x07, 0xFF, 0x00, 0x0A}},
	}

	for _, tc := range testCases {
		frame := EncodeResponse(tc.status)
		if !bytes.Equal(frame[:], tc.want) {
			t.Errorf("%v: got %#v, want %#v", tc.status, frame[:], tc.want)
		}

		got, err := ParseResponse(frame)
		if err != nil {
			t.Errorf("%v: ParseResponse failed: %v", tc.status, err)
		}
		if got != tc.status {
			t.Errorf("status round trip: sent %v, got %v", tc.status, got)
		}
	}
}

func TestParseResponseErrors(t *testing.T) {
	if _, err := ParseResponse([ResponseLen]byte{0x00, 0xF0, 0x00, 0x0A}); err != ErrFraming {
		t.Errorf("bad start: expected ErrFraming, got %v", err)
	}
	if _, err := ParseResponse([ResponseLen]byte{0x07, 0xF0, 0x00, 0x00}); err != ErrFraming {
		t.Errorf("bad end: expected ErrFraming, got %v", err)
	}
	if _, err := ParseResponse([ResponseLen]byte{0x07, 0x42, 0x00, 0x0A}); err != ErrBadStatus {
		t.Errorf("bad status: expected ErrBadStatus, got %v", err)
	}
}

func TestRemoteReply(t *testing.T) {
	used := EncodeRemoteReply(true)
	if !bytes.Equal(used[:], []byte{0x07, 0x00, 0x01, 0x0A}) {
		t.Errorf("used reply layout: %#v", used[:])
	}

	idle := EncodeRemoteReply(false)
	if !bytes.Equal(idle[:], []byte{0x07, 0x00, 0x00, 0x0A}) {
		t.Errorf("idle reply layout: %#v", idle[:])
	}

	got, err := ParseRemoteReply(used)
	if err != nil || !got {
		t.Errorf("ParseRemoteReply(used) = %v, %v", got, err)
	}
	got, err = ParseRemoteReply(idle)
	if err != nil || got {
		t.Errorf("ParseRemoteReply(idle) = %v, %v", got, err)
	}
}
