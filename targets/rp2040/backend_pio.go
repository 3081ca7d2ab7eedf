//go:build rp2040 && piopulse

package main

import (
	"machine"

	"github.com/asamhwustl/DeathRayCode/core"
	"github.com/asamhwustl/DeathRayCode/targets/pio"
)

// newAxisBackend hands the step pins to the PIO block and keeps the
// direction line as a plain GPIO.
func newAxisBackend() core.AxisBackend {
	backend, err := pio.NewAxisBackend(0, [3]machine.Pin{pinStepX, pinStepY, pinStepZ}, pinDir)
	if err != nil {
		// No fallback on a board-level resource conflict.
		panic(err)
	}
	return backend
}
