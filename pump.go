// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
	"log/slog"
	"time"
)

// PumpSpec holds the initial rated parameters for constructing a pump.
//
// The zero value describes a stopped, unseeded pump.
type PumpSpec struct {
	// Name identifies the pump instance.
	Name string

	// Speed is the initial rotational speed, rpm.
	Speed int

	// FlowRate is the initial outlet flow rate, gpm.
	FlowRate float64

	// HeadIn is the required head into the pump, feet.
	HeadIn float64

	// OutletPressure is the initial pressure created by the pump, psi.
	OutletPressure float64

	// ShaftPower is the initial power driving the pump, horsepower.
	ShaftPower float64

	// Displacement is the fixed volume moved per revolution, gal/rev.
	// Ignored by the centrifugal variant.
	Displacement float64
}

// NewPump returns a new [*Pump] with the given initial state.
//
// The cfg argument contains the common configuration for hydro components.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewPump(cfg *Config, spec PumpSpec, logger SLogger) *Pump {
	return &Pump{
		ErrClassifier:  cfg.ErrClassifier,
		Logger:         logger,
		TimeNow:        cfg.TimeNow,
		name:           spec.Name,
		speed:          spec.Speed,
		flowRate:       spec.FlowRate,
		headIn:         spec.HeadIn,
		outletPressure: spec.OutletPressure,
		shaftPower:     spec.ShaftPower,
	}
}

// Pump models the state shared by all pump kinds: speed, flow rate,
// inlet head, outlet pressure, and shaft power. The [CentrifugalPump]
// and [PositiveDisplacementPump] variants embed it and add their
// speed-change laws.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to methods.
type Pump struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewPump] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewPump] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewPump] from [Config.TimeNow].
	TimeNow func() time.Time

	// name is the pump identifier.
	name string

	// speed is the rotational speed, rpm. Always >= 0; 0 is a
	// stopped pump.
	speed int

	// flowRate is the outlet flow rate, gpm.
	flowRate float64

	// headIn is the required head into the pump, feet.
	headIn float64

	// outletPressure is the pressure created by the pump, psi.
	outletPressure float64

	// shaftPower is the power driving the pump, horsepower.
	shaftPower float64
}

// Name returns the pump identifier.
func (p *Pump) Name() string {
	return p.name
}

// Speed returns the rotational speed, rpm.
func (p *Pump) Speed() int {
	return p.speed
}

// FlowRate returns the outlet flow rate, gpm.
func (p *Pump) FlowRate() float64 {
	return p.flowRate
}

// HeadIn returns the required head into the pump, feet.
func (p *Pump) HeadIn() float64 {
	return p.headIn
}

// OutletPressure returns the pressure created by the pump, psi.
func (p *Pump) OutletPressure() float64 {
	return p.outletPressure
}

// ShaftPower returns the power driving the pump, horsepower.
func (p *Pump) ShaftPower() float64 {
	return p.shaftPower
}

// Wattage returns the power driving the pump, watts.
func (p *Pump) Wattage() float64 {
	return HorsepowerToWatts(p.shaftPower)
}

// SetHeadIn sets the required head into the pump, feet.
func (p *Pump) SetHeadIn(feet float64) {
	p.headIn = feet
}

// DescribeSpeed returns the human-readable pump speed: "stopped" at
// speed 0, the numeric rpm otherwise.
func (p *Pump) DescribeSpeed() string {
	if p.speed == 0 {
		return "The pump is stopped."
	}
	return fmt.Sprintf("The pump is running at %d rpm.", p.speed)
}

// DescribeFlow returns the human-readable outlet flow rate.
func (p *Pump) DescribeFlow() string {
	return fmt.Sprintf("The pump outlet flow rate is %.2f gpm.", p.flowRate)
}

// DescribePressure returns the human-readable outlet pressure.
func (p *Pump) DescribePressure() string {
	return fmt.Sprintf("The pump pressure is %.2f psi.", p.outletPressure)
}

// DescribePower returns the human-readable power usage.
func (p *Pump) DescribePower() string {
	return fmt.Sprintf("The power usage for the pump is %.2f W.", p.Wattage())
}

// validateSpeed converts a raw speed command value into an integer rpm.
//
// A fractional value fails with [ErrTypeMismatch]; a negative one with
// [ErrOutOfRange]. A speed of exactly 0 is valid: it is a stopped pump,
// not an error.
func (p *Pump) validateSpeed(value float64) (int, error) {
	speed, err := integerValue(value)
	if err != nil {
		return 0, err
	}
	if speed < 0 {
		return 0, fmt.Errorf("%w: speed must be 0 or greater, got %d", ErrOutOfRange, speed)
	}
	return speed, nil
}

// SetInlet implements [Node].
//
// A pump is a source in the network: the upstream outlet pressure
// seeds its required inlet head via [PressureToHead], matching the
// manual wiring style of the reference plant assemblies.
func (p *Pump) SetInlet(port Port) {
	p.headIn = PressureToHead(port.Pressure)
}

// Outlet implements [Node].
func (p *Pump) Outlet() Port {
	return Port{Pressure: p.outletPressure, Flow: p.flowRate}
}

// Recompute implements [Node].
//
// Pump state changes only through explicit speed-change operations, so
// recomputation during a network evaluation is a no-op.
func (p *Pump) Recompute() error {
	return nil
}

func (p *Pump) logChangeSpeedStart(value float64, t0 time.Time) {
	p.Logger.Info(
		"pumpChangeSpeedStart",
		slog.String("component", p.name),
		slog.Float64("target", value),
		slog.Int("speed", p.speed),
		slog.Time("t", t0),
	)
}

func (p *Pump) logChangeSpeedDone(value float64, t0 time.Time, err error) {
	p.Logger.Info(
		"pumpChangeSpeedDone",
		slog.String("component", p.name),
		slog.Float64("target", value),
		slog.Int("speed", p.speed),
		slog.Float64("flowRate", p.flowRate),
		slog.Float64("pressOut", p.outletPressure),
		slog.Float64("shaftPower", p.shaftPower),
		slog.Any("err", err),
		slog.String("errClass", p.ErrClassifier.Classify(err)),
		slog.Time("t0", t0),
		slog.Time("t", p.TimeNow()),
	)
}
