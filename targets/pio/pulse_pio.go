//go:build rp2040

// Package pio provides a PIO-based pulse backend for RP2040 boards.
// The state machines time the step pulses in hardware, so pulse width
// and spacing stay exact regardless of what the CPU is doing.
package pio

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"github.com/asamhwustl/DeathRayCode/core"
	"github.com/asamhwustl/DeathRayCode/protocol"
)

// PIO program for pulse generation. Command word format:
//
//	Bits 0-15:  pulse count
//	Bits 16-23: low-phase cycles (inter-pulse spacing)
//
// The program pulls a word, generates count pulses of 8 cycles high,
// then spaces them by the requested number of low cycles.
func buildPulseProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),        // 0: pull block
		asm.Out(rp2pio.OutDestX, 16).Encode(), // 1: out x, 16 (pulse count)
		asm.Out(rp2pio.OutDestY, 8).Encode(),  // 2: out y, 8 (low cycles)
		// pulse_loop:
		asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode(), // 3: set pins, 1 [7]
		asm.Set(rp2pio.SetDestPins, 0).Encode(),          // 4: set pins, 0
		// space_loop:
		asm.Jmp(5, rp2pio.JmpYNZeroDec).Encode(), // 5: jmp y--, 5
		asm.Jmp(3, rp2pio.JmpXNZeroDec).Encode(), // 6: jmp x--, 3
		// .wrap
	}
}

// Jump targets are absolute, so the program must load at offset 0.
const pulseProgramOrigin = 0

// Clock divider chosen so the 8-cycle high phase lasts about a
// millisecond: 125MHz / 15625 = 8kHz, 125us per PIO cycle.
const pulseClockDiv = 15625

// Low-phase cycles queued with each pulse, matching the high phase.
const pulseSpacingCycles = 8

// AxisBackend implements core.AxisBackend on the RP2040 PIO block.
// Each axis owns a state machine running the shared pulse program on
// its step pin. Direction is a plain GPIO shared by the drivers, set
// before pulses are queued.
type AxisBackend struct {
	pio    *rp2pio.PIO
	sms    [3]rp2pio.StateMachine
	dirPin machine.Pin
}

// NewAxisBackend claims three state machines on the given PIO block
// and loads the pulse program. stepPins is indexed by axis.
func NewAxisBackend(pioNum uint8, stepPins [3]machine.Pin, dirPin machine.Pin) (*AxisBackend, error) {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}

	b := &AxisBackend{pio: pioHW, dirPin: dirPin}

	program := buildPulseProgram()
	offset, err := pioHW.AddProgram(program, pulseProgramOrigin)
	if err != nil {
		return nil, err
	}

	for i := uint8(0); i < 3; i++ {
		sm := pioHW.StateMachine(i)
		sm.TryClaim()

		pin := stepPins[i]
		pin.Configure(machine.PinConfig{Mode: pioHW.PinMode()})

		cfg := rp2pio.DefaultStateMachineConfig()
		cfg.SetSetPins(pin, 1)
		// Shift right, no autopull: the program pulls explicitly.
		cfg.SetOutShift(true, false, 32)
		cfg.SetWrap(offset+uint8(len(program))-1, offset)
		cfg.SetClkDivIntFrac(pulseClockDiv, 0)

		sm.Init(offset, cfg)
		// Pin direction must be set after Init.
		sm.SetPindirsConsecutive(pin, 1, true)
		sm.SetPinsConsecutive(pin, 1, false)
		sm.SetEnabled(true)

		b.sms[i] = sm
	}

	// Direction stays an ordinary output so the limit handler can
	// flip it without touching the PIO.
	dirPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	dirPin.Low()

	return b, nil
}

// Step queues one pulse on the axis state machine and waits for it to
// drain. Queuing a single pulse at a time keeps the continuation check
// between pulses effective: a cancelled burst stops after the pulse in
// flight, never after a queued batch.
func (b *AxisBackend) Step(axis protocol.Axis) {
	if !axis.Valid() {
		return
	}
	sm := b.sms[axis]
	cmd := uint32(1) | (uint32(pulseSpacingCycles) << 16)
	for sm.IsTxFIFOFull() {
	}
	sm.TxPut(cmd)
	for !sm.IsTxFIFOEmpty() {
	}
}

// SetDirection drives the shared direction output. High selects
// negative travel.
func (b *AxisBackend) SetDirection(negative bool) {
	b.dirPin.Set(negative)
}

var _ core.AxisBackend = (*AxisBackend)(nil)
