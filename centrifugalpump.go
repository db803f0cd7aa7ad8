// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
)

// NewCentrifugalPump returns a new [*CentrifugalPump] with the given
// initial state.
//
// The cfg argument contains the common configuration for hydro components.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewCentrifugalPump(cfg *Config, spec PumpSpec, logger SLogger) *CentrifugalPump {
	return &CentrifugalPump{Pump: *NewPump(cfg, spec, logger)}
}

// CentrifugalPump is a variable-speed pump governed by the affinity
// laws: relative to the current operating point, flow scales linearly
// with the speed ratio, outlet pressure with its square, and shaft
// power with its cube.
type CentrifugalPump struct {
	Pump
}

var _ Node = &CentrifugalPump{}

// ChangeSpeed applies the affinity laws to move the pump from its
// current operating point to the given speed:
//
//	flow'     = flow     * (new/old)
//	pressure' = pressure * (new/old)^2
//	power'    = power    * (new/old)^3
//
// The speed value is validated per the shared speed contract: a
// fractional value fails with [ErrTypeMismatch] and a negative one
// with [ErrOutOfRange].
//
// Scaling ratios from a stopped pump is undefined, so when the current
// speed is 0 the operation fails with [ErrDivisionByZero] instead of
// silently producing NaN or Inf; use [CentrifugalPump.Start] to bring
// a stopped pump online.
//
// Speed, flow, pressure, and power update atomically: on any failure
// every field keeps its previous value.
func (p *CentrifugalPump) ChangeSpeed(value float64) error {
	t0 := p.TimeNow()
	p.logChangeSpeedStart(value, t0)
	err := p.changeSpeed(value)
	p.logChangeSpeedDone(value, t0, err)
	return err
}

func (p *CentrifugalPump) changeSpeed(value float64) error {
	newSpeed, err := p.validateSpeed(value)
	if err != nil {
		return err
	}
	if p.speed == 0 {
		return fmt.Errorf("%w: cannot scale from a stopped pump", ErrDivisionByZero)
	}
	ratio := float64(newSpeed) / float64(p.speed)
	flow := p.flowRate * ratio
	pressure := p.outletPressure * ratio * ratio
	power := p.shaftPower * ratio * ratio * ratio
	p.speed, p.flowRate, p.outletPressure, p.shaftPower = newSpeed, flow, pressure, power
	return nil
}

// Start seeds the pump with a known operating point, bringing it
// online from any state including stopped.
//
// The speed value is validated per the shared speed contract. On
// failure the pump state is unchanged.
func (p *CentrifugalPump) Start(speed, flowRate, outletPressure float64) error {
	t0 := p.TimeNow()
	p.logChangeSpeedStart(speed, t0)
	newSpeed, err := p.validateSpeed(speed)
	if err == nil {
		p.speed = newSpeed
		p.flowRate = flowRate
		p.outletPressure = outletPressure
	}
	p.logChangeSpeedDone(speed, t0, err)
	return err
}
