package protocol

import "errors"

// ErrBufferEmpty is returned by ReadByte when no data is queued.
var ErrBufferEmpty = errors.New("fifo buffer empty")

// FifoBuffer is a circular byte buffer sitting between the serial RX
// path and the command decoder. The writer and reader may run in
// different goroutines as long as there is one of each; head and tail
// each have a single owner.
type FifoBuffer struct {
	buf   []byte
	read  int
	write int
	size  int
}

// NewFifoBuffer creates a FifoBuffer with the given capacity. One slot
// is sacrificed to distinguish full from empty.
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// WriteByte appends one byte, reporting false when the buffer is full.
func (f *FifoBuffer) WriteByte(b byte) bool {
	next := (f.write + 1) % f.size
	if next == f.read {
		return false
	}
	f.buf[f.write] = b
	f.write = next
	return true
}

// Write appends as much of data as fits and returns the count written.
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for _, b := range data {
		if !f.WriteByte(b) {
			break
		}
		written++
	}
	return written
}

// ReadByte removes and returns the oldest byte.
func (f *FifoBuffer) ReadByte() (byte, error) {
	if f.read == f.write {
		return 0, ErrBufferEmpty
	}
	b := f.buf[f.read]
	f.read = (f.read + 1) % f.size
	return b, nil
}

// Buffered returns the number of bytes available for reading.
func (f *FifoBuffer) Buffered() int {
	if f.write >= f.read {
		return f.write - f.read
	}
	return f.size - f.read + f.write
}

// Free returns the number of bytes that can still be written.
func (f *FifoBuffer) Free() int {
	return f.size - f.Buffered() - 1
}

// Reset discards all queued data.
func (f *FifoBuffer) Reset() {
	f.read = 0
	f.write = 0
}
