//go:build rp2040 && !piopulse && !unipolar

package main

import "github.com/asamhwustl/DeathRayCode/core"

// newAxisBackend selects the direct GPIO backend. Build with the
// piopulse tag to drive the step pins from the PIO block instead, or
// the unipolar tag for rigs fitted with 4-wire motors.
func newAxisBackend() core.AxisBackend {
	return NewGPIOAxisBackend()
}
