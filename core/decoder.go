package core

import "github.com/asamhwustl/DeathRayCode/protocol"

// SerialPort is the byte-level serial link to the host. The firmware
// targets back it with a UART; tests use an in-memory fake.
type SerialPort interface {
	// Buffered returns the number of received bytes waiting to be read.
	Buffered() int

	// ReadByte returns the next received byte. The decoder only calls
	// it when Buffered reports data.
	ReadByte() (byte, error)

	// Write transmits a response frame to the host.
	Write(p []byte) (int, error)
}

// rxBufferSize sizes the staging FIFO. Eight full command frames is
// far more than a well-behaved host ever has in flight.
const rxBufferSize = 64

// Decoder scans the serial input for command frames. Received bytes
// are staged in a FIFO so a frame that trickles in across cycles is
// reassembled without ever blocking the loop.
type Decoder struct {
	port    SerialPort
	session *Session
	rx      *protocol.FifoBuffer

	// frame reassembly state
	inFrame bool
	payload [protocol.PayloadLen]byte
	have    int
}

// NewDecoder creates a decoder feeding the given session.
func NewDecoder(port SerialPort, session *Session) *Decoder {
	return &Decoder{
		port:    port,
		session: session,
		rx:      protocol.NewFifoBuffer(rxBufferSize),
	}
}

// Poll drains the port into the staging FIFO and scans it for a frame.
// Bytes outside a frame are discarded until a start sentinel appears;
// the 7 bytes after it form the payload. A valid frame marks either a
// remote-used query or a command pending on the session, at most one
// per call. Malformed frames are dropped silently; resynchronization
// is just the sentinel scan picking up again.
func (d *Decoder) Poll() {
	for d.port.Buffered() > 0 && d.rx.Free() > 0 {
		b, err := d.port.ReadByte()
		if err != nil {
			break
		}
		d.rx.WriteByte(b)
	}

	for d.rx.Buffered() > 0 {
		b, err := d.rx.ReadByte()
		if err != nil {
			return
		}

		if !d.inFrame {
			if b == protocol.FrameStart {
				d.inFrame = true
				d.have = 0
			}
			continue
		}

		d.payload[d.have] = b
		d.have++
		if d.have < protocol.PayloadLen {
			continue
		}
		d.inFrame = false

		cmd, err := protocol.ParseCommand(d.payload)
		if err != nil {
			continue
		}
		if cmd.RemoteQuery {
			d.session.BeginQuery()
		} else {
			d.session.BeginCommand(cmd)
		}
		return
	}
}
