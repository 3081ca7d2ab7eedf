//go:build rp2040

package main

import (
	"machine"

	"github.com/asamhwustl/DeathRayCode/core"
)

// Pin assignment for the rig controller board.
//
// Outputs: one step line per axis plus the direction line shared by
// whichever axis is active. Inputs: the limit-sense line (all three
// end-of-travel switches are wired in parallel) and the two joystick
// potentiometer wipers. The joystick module is powered from two spare
// GPIOs held permanently low and high.
const (
	pinStepX = machine.GP2
	pinStepY = machine.GP3
	pinStepZ = machine.GP4
	pinDir   = machine.GP5

	pinLimit = machine.GP6

	pinJoyGround = machine.GP7 // reference ground for the joystick module
	pinJoyVcc    = machine.GP8 // reference voltage for the joystick module

	pinJoyLR = machine.ADC0 // GP26
	pinJoyUD = machine.ADC1 // GP27
)

// Logical channel numbers handed to the core.
const (
	chJoyLR = core.ADCChannel(0)
	chJoyUD = core.ADCChannel(1)
)

// limitPin as the core sees it (GPIO number on RP2040).
const limitPin = core.GPIOPin(6)

// Coil pins for the unipolar build, four per axis in driver order.
var unipolarCoilPins = [3][4]machine.Pin{
	{machine.GP9, machine.GP10, machine.GP11, machine.GP12},  // X
	{machine.GP13, machine.GP14, machine.GP15, machine.GP16}, // Y
	{machine.GP17, machine.GP18, machine.GP19, machine.GP20}, // Z
}
