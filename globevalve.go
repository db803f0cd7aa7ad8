// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
	"log/slog"
	"time"
)

// NewGlobeValve returns a new [*GlobeValve] with the given initial state.
//
// The cfg argument contains the common configuration for hydro components.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewGlobeValve(cfg *Config, spec ValveSpec, logger SLogger) *GlobeValve {
	return &GlobeValve{Valve: *NewValve(cfg, spec, logger)}
}

// GlobeValve is a continuous throttling valve.
//
// The throttle law is deliberately the reference model's simplified
// one: the position modulates a secondary induced flow term on top of
// the inlet flow, so opening the valve increases the modeled outlet
// flow above the inlet flow,
//
//	flowOut = flowIn * (1 + position/100)
//
// rather than attenuating it. Compatibility with the reference model
// requires this exact relationship.
type GlobeValve struct {
	Valve
}

var _ Node = &GlobeValve{}

// DescribePosition returns the human-readable valve status, always
// reporting the numeric percent open.
func (v *GlobeValve) DescribePosition() string {
	return fmt.Sprintf("%s is %d%% open.", v.Name(), v.Position())
}

// Operate executes an operator command to throttle the valve.
//
// The target is validated per [Valve.SetPosition]. At position 0 the
// outlet flow and the pressure drop are forced to exactly 0.0 with no
// formula evaluation, avoiding divide-by-near-zero artifacts. At any
// other position the outlet flow follows the throttle law and the
// pressure drop is recomputed from it, which fails with
// [ErrDivisionByZero] when the flow coefficient is zero.
func (v *GlobeValve) Operate(target float64) error {
	t0 := v.TimeNow()
	v.logOperateStart(target, t0)
	err := v.operate(target)
	v.logOperateDone(target, t0, err)
	return err
}

func (v *GlobeValve) operate(target float64) error {
	if err := v.SetPosition(target); err != nil {
		return err
	}
	return v.throttle()
}

// throttle applies the throttle law at the current position.
func (v *GlobeValve) throttle() error {
	if v.Position() == 0 {
		v.outletFlow = 0.0
		v.deltaP = 0.0
		return nil
	}
	v.outletFlow = v.inletFlow * (1 + float64(v.Position())/100)
	_, err := v.ComputePressureDrop(v.outletFlow, DefaultSpecificGravity)
	return err
}

// Recompute implements [Node].
//
// Recomputation re-applies the throttle law at the current position to
// the (possibly updated) inlet values, then refreshes the outlet
// pressure. A closed globe valve blocks the line.
func (v *GlobeValve) Recompute() error {
	if err := v.throttle(); err != nil {
		return err
	}
	if v.Position() == 0 {
		v.outletPressure = 0.0
		return nil
	}
	v.UpdateOutletPressure(v.inletPressure)
	return nil
}

func (v *GlobeValve) logOperateStart(target float64, t0 time.Time) {
	v.Logger.Info(
		"globeOperateStart",
		slog.String("component", v.Name()),
		slog.Float64("target", target),
		slog.Time("t", t0),
	)
}

func (v *GlobeValve) logOperateDone(target float64, t0 time.Time, err error) {
	v.Logger.Info(
		"globeOperateDone",
		slog.String("component", v.Name()),
		slog.Float64("target", target),
		slog.Int("position", v.Position()),
		slog.Float64("flowOut", v.OutletFlow()),
		slog.Float64("deltaP", v.PressureDrop()),
		slog.Any("err", err),
		slog.String("errClass", v.ErrClassifier.Classify(err)),
		slog.Time("t0", t0),
		slog.Time("t", v.TimeNow()),
	)
}
