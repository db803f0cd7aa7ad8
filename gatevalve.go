// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
	"log/slog"
	"time"
)

// NewGateValve returns a new [*GateValve] with the given initial state.
//
// The cfg argument contains the common configuration for hydro components.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewGateValve(cfg *Config, spec ValveSpec, logger SLogger) *GateValve {
	return &GateValve{Valve: *NewValve(cfg, spec, logger)}
}

// GateValve is a binary shut-off valve: fully open or fully closed.
//
// Gate valves are not throttling devices. An intermediate position is
// treated as an anomaly rather than suppressed: [GateValve.Operate]
// refuses intermediate targets, and [GateValve.DescribePosition]
// reports a warning if a manual override left the valve partially open.
type GateValve struct {
	Valve
}

var _ Node = &GateValve{}

// DescribePosition returns the human-readable valve status.
//
// The status is "open" at position 100, "closed" at position 0, and an
// explicit "partially open" warning for any intermediate position.
func (v *GateValve) DescribePosition() string {
	switch v.Position() {
	case 0:
		return fmt.Sprintf("%s is closed.", v.Name())
	case 100:
		return fmt.Sprintf("%s is open.", v.Name())
	default:
		v.Logger.Warn(
			"gatePartiallyOpen",
			slog.String("component", v.Name()),
			slog.Int("position", v.Position()),
			slog.Time("t", v.TimeNow()),
		)
		return fmt.Sprintf("Warning! %s is partially open.", v.Name())
	}
}

// Operate executes an operator command to reposition the valve.
//
// A target of 0 closes the valve and a target of 100 opens it. A
// fractional target fails with [ErrTypeMismatch]. Any other target is
// refused with a [*RejectedCommandError] and the position is left
// unchanged: a gate valve must never hold an intermediate position.
func (v *GateValve) Operate(target float64) error {
	t0 := v.TimeNow()
	v.logOperateStart(target, t0)
	err := v.operate(target)
	v.logOperateDone(target, t0, err)
	return err
}

func (v *GateValve) operate(target float64) error {
	position, err := integerValue(target)
	if err != nil {
		return err
	}
	switch position {
	case 0:
		v.Close()
		return nil
	case 100:
		v.Open()
		return nil
	default:
		return &RejectedCommandError{
			Component: v.Name(),
			Reason:    fmt.Sprintf("invalid gate position %d: only 0 and 100 are allowed", position),
		}
	}
}

func (v *GateValve) logOperateStart(target float64, t0 time.Time) {
	v.Logger.Info(
		"gateOperateStart",
		slog.String("component", v.Name()),
		slog.Float64("target", target),
		slog.Time("t", t0),
	)
}

func (v *GateValve) logOperateDone(target float64, t0 time.Time, err error) {
	v.Logger.Info(
		"gateOperateDone",
		slog.String("component", v.Name()),
		slog.Float64("target", target),
		slog.Int("position", v.Position()),
		slog.Any("err", err),
		slog.String("errClass", v.ErrClassifier.Classify(err)),
		slog.Time("t0", t0),
		slog.Time("t", v.TimeNow()),
	)
}
