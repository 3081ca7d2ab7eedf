//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/easystepper"

	"github.com/asamhwustl/DeathRayCode/core"
	"github.com/asamhwustl/DeathRayCode/protocol"
)

// UnipolarAxisBackend is an alternative core.AxisBackend for rigs
// fitted with 4-wire unipolar motors (28BYJ-48 class) instead of
// step/dir drivers. Each axis gets its own driver; the shared
// direction state is applied as the sign of each single-step move.
type UnipolarAxisBackend struct {
	motors   [3]*easystepper.Device
	negative bool
}

// UnipolarConfig names the four coil pins per axis.
type UnipolarConfig struct {
	Pins      [3][4]machine.Pin
	StepCount uint
	RPM       uint
}

// NewUnipolarAxisBackend configures one easystepper device per axis.
func NewUnipolarAxisBackend(cfg UnipolarConfig) (*UnipolarAxisBackend, error) {
	if cfg.StepCount == 0 {
		cfg.StepCount = 4096
	}
	if cfg.RPM == 0 {
		cfg.RPM = 10
	}

	b := &UnipolarAxisBackend{}
	for i := 0; i < 3; i++ {
		dev, err := easystepper.New(easystepper.DeviceConfig{
			Pin1:      cfg.Pins[i][0],
			Pin2:      cfg.Pins[i][1],
			Pin3:      cfg.Pins[i][2],
			Pin4:      cfg.Pins[i][3],
			StepCount: cfg.StepCount,
			RPM:       cfg.RPM,
		})
		if err != nil {
			return nil, err
		}
		dev.Configure()
		b.motors[i] = dev
	}
	return b, nil
}

// Step advances the selected axis by one motor step in the current
// direction. The driver owns the coil sequencing and step timing.
func (b *UnipolarAxisBackend) Step(axis protocol.Axis) {
	if !axis.Valid() {
		return
	}
	steps := int32(1)
	if b.negative {
		steps = -1
	}
	b.motors[axis].Move(steps)
}

// SetDirection records the direction applied to subsequent steps.
func (b *UnipolarAxisBackend) SetDirection(negative bool) {
	b.negative = negative
}

var _ core.AxisBackend = (*UnipolarAxisBackend)(nil)
