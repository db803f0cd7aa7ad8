// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
	"log/slog"
	"time"
)

// NewReliefValve returns a new [*ReliefValve] with the given initial state.
//
// The cfg argument contains the common configuration for hydro components.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewReliefValve(cfg *Config, spec ValveSpec, logger SLogger) *ReliefValve {
	return &ReliefValve{Valve: *NewValve(cfg, spec, logger)}
}

// ReliefValve is a pressure-triggered valve with hysteresis.
//
// The valve snaps fully open when the inlet pressure reaches the open
// setpoint and fully closed when it falls to the close setpoint. With
// the pressure strictly between the two setpoints the valve holds its
// state: the gap is a deadband preventing rapid toggling near a single
// threshold.
//
// The valve does not alter flow or pressure values itself; it only
// reports its open/closed status. Relief discharge effects must be
// modeled elsewhere in the network.
type ReliefValve struct {
	Valve
}

var _ Node = &ReliefValve{}

// OpenSetpoint returns the pressure at which the valve opens, psi.
func (v *ReliefValve) OpenSetpoint() float64 {
	return v.openSetpoint
}

// CloseSetpoint returns the pressure at which the valve closes, psi.
func (v *ReliefValve) CloseSetpoint() float64 {
	return v.closeSetpoint
}

// SetOpenSetpoint sets the pressure at which the valve opens, psi.
//
// The two setpoints are mutated independently: no ordering between
// them is enforced. See [ReliefValve.Evaluate] for how an inverted
// pair is handled.
func (v *ReliefValve) SetOpenSetpoint(pressure float64) {
	v.openSetpoint = pressure
	v.logSetpoint("reliefOpenSetpoint", pressure)
}

// SetCloseSetpoint sets the pressure at which the valve closes, psi.
//
// Also known as the blowdown setting.
func (v *ReliefValve) SetCloseSetpoint(pressure float64) {
	v.closeSetpoint = pressure
	v.logSetpoint("reliefCloseSetpoint", pressure)
}

// IsOpen reports whether the valve is fully open.
func (v *ReliefValve) IsOpen() bool {
	return v.Position() == 100
}

// DescribePosition returns the human-readable valve status.
//
// Automatic operation only ever yields "open" or "closed"; the
// "partially open" warning can appear only after a manual override.
func (v *ReliefValve) DescribePosition() string {
	switch v.Position() {
	case 0:
		return fmt.Sprintf("%s is closed.", v.Name())
	case 100:
		return fmt.Sprintf("%s is open.", v.Name())
	default:
		return fmt.Sprintf("Warning! %s is partially open.", v.Name())
	}
}

// Evaluate applies the hysteresis rule to the given inlet pressure and
// reports whether the valve is open afterwards.
//
// The transition rule is:
//   - pressure >= open setpoint: open (idempotent if already open)
//   - pressure <= close setpoint: close (idempotent if already closed)
//   - strictly between the setpoints: hold the current state
//
// An inverted setpoint pair (close above open) is permitted and
// preserved: the valve then opens below its nominal close point. The
// anomaly is flagged with a warning event, never auto-corrected.
func (v *ReliefValve) Evaluate(inletPressure float64) bool {
	t0 := v.TimeNow()
	v.logEvaluateStart(inletPressure, t0)
	if v.closeSetpoint > v.openSetpoint {
		v.Logger.Warn(
			"reliefSetpointsInverted",
			slog.String("component", v.Name()),
			slog.Float64("openSetpoint", v.openSetpoint),
			slog.Float64("closeSetpoint", v.closeSetpoint),
			slog.Time("t", v.TimeNow()),
		)
	}
	switch {
	case inletPressure >= v.openSetpoint:
		v.Open()
	case inletPressure <= v.closeSetpoint:
		v.Close()
	}
	v.logEvaluateDone(inletPressure, t0)
	return v.IsOpen()
}

// SetInlet implements [Node].
func (v *ReliefValve) SetInlet(port Port) {
	v.inletPressure = port.Pressure
	v.inletFlow = port.Flow
}

// Outlet implements [Node].
//
// A relief valve passes its inlet through unchanged regardless of its
// own state, by construction: discharge effects live elsewhere.
func (v *ReliefValve) Outlet() Port {
	return Port{Pressure: v.outletPressure, Flow: v.outletFlow}
}

// Recompute implements [Node].
//
// Recomputation evaluates the hysteresis rule against the current
// inlet pressure and forwards the inlet values to the outlet.
func (v *ReliefValve) Recompute() error {
	v.Evaluate(v.inletPressure)
	v.outletPressure = v.inletPressure
	v.outletFlow = v.inletFlow
	return nil
}

func (v *ReliefValve) logSetpoint(event string, pressure float64) {
	v.Logger.Info(
		event,
		slog.String("component", v.Name()),
		slog.Float64("pressure", pressure),
		slog.Time("t", v.TimeNow()),
	)
}

func (v *ReliefValve) logEvaluateStart(inletPressure float64, t0 time.Time) {
	v.Logger.Info(
		"reliefEvaluateStart",
		slog.String("component", v.Name()),
		slog.Float64("pressIn", inletPressure),
		slog.Time("t", t0),
	)
}

func (v *ReliefValve) logEvaluateDone(inletPressure float64, t0 time.Time) {
	v.Logger.Info(
		"reliefEvaluateDone",
		slog.String("component", v.Name()),
		slog.Float64("pressIn", inletPressure),
		slog.Int("position", v.Position()),
		slog.Time("t0", t0),
		slog.Time("t", v.TimeNow()),
	)
}
