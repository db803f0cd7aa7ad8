// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
	"math"
)

// DefaultSpecificGravity is the specific gravity of water, the fluid
// assumed throughout unless a caller passes a different value.
const DefaultSpecificGravity = 1.0

// wattsPerHorsepower is the conversion factor between mechanical
// horsepower and watts.
const wattsPerHorsepower = 745.699872

// feetOfHeadPerPSI converts between feet of water column and psi.
const feetOfHeadPerPSI = 2.31

// DefaultRoughnessCoefficient is the Hazen-Williams roughness
// coefficient of polyethylene pipe.
const DefaultRoughnessCoefficient = 140.0

// HorsepowerToWatts converts shaft power from horsepower to watts.
func HorsepowerToWatts(hp float64) float64 {
	return hp * wattsPerHorsepower
}

// StaticHead returns the pressure, in psi, exerted by a column of
// fluid of the given height in feet.
func StaticHead(heightFeet float64) float64 {
	return heightFeet / feetOfHeadPerPSI
}

// PressureToHead returns the height, in feet, of the fluid column
// exerting the given pressure in psi.
//
// Use this to seed a pump's inlet head from the outlet pressure of the
// upstream valve when wiring components into a chain.
func PressureToHead(psi float64) float64 {
	return psi * feetOfHeadPerPSI
}

// GravityFlowRate approximates the fluid flow, in gpm, due to gravity
// through a sloped pipe, using the Hazen-Williams equation. The result
// should be within 5% of the actual value.
//
// The diameter is in inches; the slope is the drop from reservoir to
// measure point; the roughness is the pipe's Hazen-Williams roughness
// coefficient (use [DefaultRoughnessCoefficient] for polyethylene).
//
// Returns [ErrInvalidArgument] when diameter, slope, or roughness is
// not strictly positive.
func GravityFlowRate(diameter, slope, roughness float64) (float64, error) {
	if diameter <= 0 || slope <= 0 || roughness <= 0 {
		return 0, fmt.Errorf("%w: gravity flow inputs must be > 0", ErrInvalidArgument)
	}
	coeff := math.Pow(roughness, 1.852)
	diam := math.Pow(diameter, 4.8704)
	return math.Sqrt((coeff * diam * slope) / 4.52), nil
}
