package core

import (
	"errors"
	"time"

	"github.com/asamhwustl/DeathRayCode/protocol"
)

// mockBackend records pulses and direction changes. An optional onStep
// hook fires after each pulse, letting tests inject limit events
// mid-burst.
type mockBackend struct {
	steps     map[protocol.Axis]int
	direction bool
	dirSets   []bool
	onStep    func(axis protocol.Axis, n int)
}

func newMockBackend() *mockBackend {
	return &mockBackend{steps: make(map[protocol.Axis]int)}
}

func (m *mockBackend) Step(axis protocol.Axis) {
	m.steps[axis]++
	if m.onStep != nil {
		m.onStep(axis, m.steps[axis])
	}
}

func (m *mockBackend) SetDirection(negative bool) {
	m.direction = negative
	m.dirSets = append(m.dirSets, negative)
}

func (m *mockBackend) totalSteps() int {
	total := 0
	for _, n := range m.steps {
		total += n
	}
	return total
}

// mockGPIO scripts pin reads through an optional readFunc.
type mockGPIO struct {
	pins     map[GPIOPin]bool
	readFunc func(pin GPIOPin) bool
}

func newMockGPIO() *mockGPIO {
	return &mockGPIO{pins: make(map[GPIOPin]bool)}
}

func (m *mockGPIO) ConfigureOutput(pin GPIOPin) error        { return nil }
func (m *mockGPIO) ConfigureInputPullDown(pin GPIOPin) error { return nil }

func (m *mockGPIO) SetPin(pin GPIOPin, value bool) error {
	m.pins[pin] = value
	return nil
}

func (m *mockGPIO) ReadPin(pin GPIOPin) bool {
	if m.readFunc != nil {
		return m.readFunc(pin)
	}
	return m.pins[pin]
}

// mockADC returns fixed per-channel readings.
type mockADC struct {
	readings map[ADCChannel]uint16
}

func newMockADC() *mockADC {
	return &mockADC{readings: make(map[ADCChannel]uint16)}
}

func (m *mockADC) ConfigureChannel(ch ADCChannel) error { return nil }

func (m *mockADC) ReadRaw(ch ADCChannel) (uint16, error) {
	v, ok := m.readings[ch]
	if !ok {
		return JoystickBaseline, nil
	}
	return v, nil
}

var errNoData = errors.New("no data")

// mockPort is an in-memory serial link: the test queues host bytes in
// rx and inspects firmware frames in tx.
type mockPort struct {
	rx []byte
	tx []byte
}

func (p *mockPort) Buffered() int { return len(p.rx) }

func (p *mockPort) ReadByte() (byte, error) {
	if len(p.rx) == 0 {
		return 0, errNoData
	}
	b := p.rx[0]
	p.rx = p.rx[1:]
	return b, nil
}

func (p *mockPort) Write(b []byte) (int, error) {
	p.tx = append(p.tx, b...)
	return len(b), nil
}

func (p *mockPort) queueFrame(frame [protocol.CommandFrameLen]byte) {
	p.rx = append(p.rx, frame[:]...)
}

func noSleep(time.Duration) {}
