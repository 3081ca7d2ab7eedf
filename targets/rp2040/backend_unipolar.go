//go:build rp2040 && unipolar && !piopulse

package main

import "github.com/asamhwustl/DeathRayCode/core"

// newAxisBackend drives 4-wire unipolar motors through easystepper
// instead of step/dir drivers. Selected with the unipolar build tag.
func newAxisBackend() core.AxisBackend {
	backend, err := NewUnipolarAxisBackend(UnipolarConfig{
		Pins: unipolarCoilPins,
	})
	if err != nil {
		panic(err)
	}
	return backend
}
