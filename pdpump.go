// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
	"log/slog"
)

// NewPositiveDisplacementPump returns a new [*PositiveDisplacementPump]
// with the given initial state.
//
// The cfg argument contains the common configuration for hydro components.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewPositiveDisplacementPump(cfg *Config, spec PumpSpec, logger SLogger) *PositiveDisplacementPump {
	return &PositiveDisplacementPump{
		Pump:         *NewPump(cfg, spec, logger),
		displacement: spec.Displacement,
	}
}

// PositiveDisplacementPump is a fixed-displacement pump: every
// revolution moves the same volume of fluid, so flow and power are
// linear functions of the absolute speed. This is the core behavioral
// contract separating it from [CentrifugalPump], whose scaling is a
// ratio against the previous operating point.
type PositiveDisplacementPump struct {
	Pump

	// displacement is the fixed volume moved per revolution, gal/rev.
	displacement float64

	// powerCoefficient relates shaft power to speed. Derived once at
	// a known operating point via DerivePowerCoefficient.
	powerCoefficient float64
}

var _ Node = &PositiveDisplacementPump{}

// Displacement returns the fixed volume moved per revolution, gal/rev.
func (p *PositiveDisplacementPump) Displacement() float64 {
	return p.displacement
}

// PowerCoefficient returns the derived power coefficient, hp per rpm.
func (p *PositiveDisplacementPump) PowerCoefficient() float64 {
	return p.powerCoefficient
}

// DerivePowerCoefficient captures the pump's power coefficient from
// its current operating point:
//
//	powerCoefficient = shaftPower / speed
//
// Call this once while the pump runs at a known speed, before the
// first speed change. Deriving from a stopped pump fails with
// [ErrDivisionByZero] and leaves any previous coefficient in place.
func (p *PositiveDisplacementPump) DerivePowerCoefficient() (float64, error) {
	if p.speed == 0 {
		err := fmt.Errorf("%w: cannot derive power coefficient at zero speed", ErrDivisionByZero)
		p.logDeriveCoefficient(err)
		return 0, err
	}
	p.powerCoefficient = p.shaftPower / float64(p.speed)
	p.logDeriveCoefficient(nil)
	return p.powerCoefficient, nil
}

// ChangeSpeed moves the pump to the given speed using linear scaling
// in the absolute speed, independent of the previous operating point:
//
//	flowRate   = speed * displacement
//	shaftPower = speed * powerCoefficient
//
// The speed value is validated per the shared speed contract: a
// fractional value fails with [ErrTypeMismatch] and a negative one
// with [ErrOutOfRange]. A speed of 0 stops the pump, zeroing flow and
// power.
//
// Speed, flow, and power update atomically: on any failure every field
// keeps its previous value.
func (p *PositiveDisplacementPump) ChangeSpeed(value float64) error {
	t0 := p.TimeNow()
	p.logChangeSpeedStart(value, t0)
	err := p.changeSpeed(value)
	p.logChangeSpeedDone(value, t0, err)
	return err
}

func (p *PositiveDisplacementPump) changeSpeed(value float64) error {
	newSpeed, err := p.validateSpeed(value)
	if err != nil {
		return err
	}
	flow := float64(newSpeed) * p.displacement
	power := float64(newSpeed) * p.powerCoefficient
	p.speed, p.flowRate, p.shaftPower = newSpeed, flow, power
	return nil
}

func (p *PositiveDisplacementPump) logDeriveCoefficient(err error) {
	p.Logger.Debug(
		"pumpDeriveCoefficient",
		slog.String("component", p.Name()),
		slog.Int("speed", p.Speed()),
		slog.Float64("powerCoefficient", p.powerCoefficient),
		slog.Any("err", err),
		slog.String("errClass", p.ErrClassifier.Classify(err)),
		slog.Time("t", p.TimeNow()),
	)
}
