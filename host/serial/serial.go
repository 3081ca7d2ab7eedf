package serial

import (
	"io"
)

// Port represents a serial port interface. The abstraction allows for
// different implementations:
// - Native serial (using github.com/tarm/serial)
// - In-memory fakes for testing
type Port interface {
	io.ReadWriteCloser

	// Flush discards any buffered received data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration the rig firmware expects.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 0, // responses arrive only after the move completes
	}
}
