// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// ValveSpec holds the initial state for constructing a valve.
//
// The zero value describes a fully closed valve with no rated
// coefficient and no seeded flow or pressure.
type ValveSpec struct {
	// Name identifies the valve instance.
	Name string

	// Position is the initial percent open, in [0, 100].
	Position int

	// FlowCoeff is the rated flow coefficient (Cv): gallons per
	// minute through the fully open valve at a 1 psi drop.
	FlowCoeff float64

	// InletFlow seeds the flow rate into the valve, gpm.
	InletFlow float64

	// InletPressure seeds the pressure at the valve inlet, psi.
	InletPressure float64

	// PressureDrop seeds the pressure drop across the valve, psi.
	PressureDrop float64

	// OpenSetpoint is the pressure at which a relief valve opens, psi.
	// Ignored by the gate and globe variants.
	OpenSetpoint float64

	// CloseSetpoint is the pressure at which a relief valve closes, psi.
	// Ignored by the gate and globe variants.
	CloseSetpoint float64
}

// NewValve returns a new [*Valve] with the given initial state.
//
// The cfg argument contains the common configuration for hydro components.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewValve(cfg *Config, spec ValveSpec, logger SLogger) *Valve {
	return &Valve{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		TimeNow:       cfg.TimeNow,
		name:          spec.Name,
		position:      spec.Position,
		cv:            spec.FlowCoeff,
		inletFlow:     spec.InletFlow,
		inletPressure: spec.InletPressure,
		deltaP:        spec.PressureDrop,
		openSetpoint:  spec.OpenSetpoint,
		closeSetpoint: spec.CloseSetpoint,
	}
}

// Valve models the steady-state hydraulic behavior shared by all valve
// kinds: the pressure drop and flow formulas plus the percent-open
// position. The [GateValve], [GlobeValve], and [ReliefValve] variants
// embed it and add their operating rules.
//
// A valve recomputes only when explicitly told to; there is no
// automatic re-evaluation when an inlet value changes. Use [Network]
// to propagate values across chained components in order.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to methods.
type Valve struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewValve] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewValve] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewValve] from [Config.TimeNow].
	TimeNow func() time.Time

	// name is the valve identifier.
	name string

	// position is the percent open, in [0, 100].
	position int

	// cv is the valve flow coefficient.
	cv float64

	// inletFlow is the flow into the valve, gpm.
	inletFlow float64

	// outletFlow is the flow out of the valve, gpm.
	outletFlow float64

	// inletPressure is the pressure at the inlet, psi.
	inletPressure float64

	// outletPressure is the pressure at the outlet, psi.
	outletPressure float64

	// deltaP is the pressure drop across the valve, psi. Derived.
	deltaP float64

	// openSetpoint is the relief opening threshold, psi.
	openSetpoint float64

	// closeSetpoint is the relief closing threshold, psi.
	closeSetpoint float64
}

// Name returns the valve identifier.
func (v *Valve) Name() string {
	return v.name
}

// Position returns the percent open, in [0, 100].
func (v *Valve) Position() int {
	return v.position
}

// FlowCoefficient returns the current Cv.
func (v *Valve) FlowCoefficient() float64 {
	return v.cv
}

// InletFlow returns the flow into the valve, gpm.
func (v *Valve) InletFlow() float64 {
	return v.inletFlow
}

// OutletFlow returns the flow out of the valve, gpm.
func (v *Valve) OutletFlow() float64 {
	return v.outletFlow
}

// InletPressure returns the pressure at the inlet, psi.
func (v *Valve) InletPressure() float64 {
	return v.inletPressure
}

// OutletPressure returns the pressure at the outlet, psi.
func (v *Valve) OutletPressure() float64 {
	return v.outletPressure
}

// PressureDrop returns the pressure drop across the valve, psi.
func (v *Valve) PressureDrop() float64 {
	return v.deltaP
}

// SetInletFlow sets the flow into the valve, gpm.
//
// Changing the inlet does not trigger any recomputation.
func (v *Valve) SetInletFlow(flow float64) {
	v.inletFlow = flow
}

// SetInletPressure sets the pressure at the inlet, psi.
//
// Changing the inlet does not trigger any recomputation.
func (v *Valve) SetInletPressure(pressure float64) {
	v.inletPressure = pressure
}

// CoefficientFromDiameter estimates the flow coefficient from the
// valve diameter in inches, as Cv = 15 * diameter^2, overwriting the
// rated coefficient. This is a rough estimate only.
func (v *Valve) CoefficientFromDiameter(diameter float64) float64 {
	v.cv = 15 * math.Pow(diameter, 2)
	v.Logger.Debug(
		"valveCoefficientUpdate",
		slog.String("component", v.name),
		slog.Float64("diameter", diameter),
		slog.Float64("cv", v.cv),
		slog.Time("t", v.TimeNow()),
	)
	return v.cv
}

// ComputePressureDrop computes and stores the pressure drop across the
// valve for the given inlet flow rate:
//
//	deltaP = (flowIn / Cv)^2 * specificGravity
//
// Pass [DefaultSpecificGravity] for water.
//
// Returns [ErrDivisionByZero] when the flow coefficient is zero. The
// failure is reported to the caller so that it remains distinguishable
// from a legitimate zero-drop result; the stored drop is not modified.
func (v *Valve) ComputePressureDrop(flowIn, specificGravity float64) (float64, error) {
	if v.cv == 0 {
		err := fmt.Errorf("%w: flow coefficient must be > 0", ErrDivisionByZero)
		v.logFormula("pressureDrop", slog.Float64("flowIn", flowIn), err)
		return 0, err
	}
	ratio := flowIn / v.cv
	v.deltaP = math.Pow(ratio, 2) * specificGravity
	v.logFormula("pressureDrop", slog.Float64("deltaP", v.deltaP), nil)
	return v.deltaP, nil
}

// FlowFromDrop computes and stores the outlet flow rate through a
// valve with the given flow coefficient and pressure drop:
//
//	flowOut = cv / sqrt(specificGravity / drop)
//
// Pass [DefaultSpecificGravity] for water.
//
// Returns [ErrInvalidArgument] when cv <= 0 or drop <= 0; the stored
// outlet flow is not modified in that case.
func (v *Valve) FlowFromDrop(cv, drop, specificGravity float64) (float64, error) {
	if cv <= 0 || drop <= 0 {
		err := fmt.Errorf("%w: flow coefficient and pressure drop must be > 0", ErrInvalidArgument)
		v.logFormula("flowFromDrop", slog.Float64("cv", cv), err)
		return 0, err
	}
	v.outletFlow = cv / math.Sqrt(specificGravity/drop)
	v.logFormula("flowFromDrop", slog.Float64("flowOut", v.outletFlow), nil)
	return v.outletFlow, nil
}

// UpdateOutletPressure computes and stores the outlet pressure from
// the given inlet pressure and the stored pressure drop.
func (v *Valve) UpdateOutletPressure(inletPressure float64) float64 {
	v.outletPressure = inletPressure - v.deltaP
	v.logFormula("outletPressure", slog.Float64("pressOut", v.outletPressure), nil)
	return v.outletPressure
}

// SetPosition sets the valve position from a raw command value.
//
// The value must be an integer in [0, 100]: a fractional value fails
// with [ErrTypeMismatch] and a value outside the range fails with
// [ErrOutOfRange]. The value is never clamped or truncated, and the
// position is unchanged on failure.
func (v *Valve) SetPosition(value float64) error {
	t0 := v.TimeNow()
	v.logSetPositionStart(value, t0)
	position, err := integerValue(value)
	if err == nil && (position < 0 || position > 100) {
		err = fmt.Errorf("%w: position %d not in [0, 100]", ErrOutOfRange, position)
	}
	if err == nil {
		v.position = position
	}
	v.logSetPositionDone(value, t0, err)
	return err
}

// Open fully opens the valve, setting the position to 100.
func (v *Valve) Open() {
	v.position = 100
	v.logHandle("valveOpen")
}

// Close fully closes the valve, setting the position to 0.
func (v *Valve) Close() {
	v.position = 0
	v.logHandle("valveClose")
}

// SetInlet implements [Node].
func (v *Valve) SetInlet(port Port) {
	v.inletPressure = port.Pressure
	v.inletFlow = port.Flow
}

// Outlet implements [Node].
func (v *Valve) Outlet() Port {
	return Port{Pressure: v.outletPressure, Flow: v.outletFlow}
}

// Recompute implements [Node].
//
// The base rule treats the valve as a straight-through restriction: a
// closed valve blocks the line (zero outlet flow, zero drop, zero
// outlet pressure), and an open one passes the inlet flow while
// dropping pressure per [Valve.ComputePressureDrop]. The globe and
// relief variants override this with their own operating rules.
func (v *Valve) Recompute() error {
	if v.position == 0 {
		v.outletFlow = 0.0
		v.deltaP = 0.0
		v.outletPressure = 0.0
		return nil
	}
	v.outletFlow = v.inletFlow
	if _, err := v.ComputePressureDrop(v.outletFlow, DefaultSpecificGravity); err != nil {
		return err
	}
	v.UpdateOutletPressure(v.inletPressure)
	return nil
}

func (v *Valve) logSetPositionStart(value float64, t0 time.Time) {
	v.Logger.Info(
		"valveSetPositionStart",
		slog.String("component", v.name),
		slog.Float64("target", value),
		slog.Time("t", t0),
	)
}

func (v *Valve) logSetPositionDone(value float64, t0 time.Time, err error) {
	v.Logger.Info(
		"valveSetPositionDone",
		slog.String("component", v.name),
		slog.Float64("target", value),
		slog.Int("position", v.position),
		slog.Any("err", err),
		slog.String("errClass", v.ErrClassifier.Classify(err)),
		slog.Time("t0", t0),
		slog.Time("t", v.TimeNow()),
	)
}

func (v *Valve) logHandle(event string) {
	v.Logger.Info(
		event,
		slog.String("component", v.name),
		slog.Int("position", v.position),
		slog.Time("t", v.TimeNow()),
	)
}

func (v *Valve) logFormula(event string, result slog.Attr, err error) {
	v.Logger.Debug(
		event,
		slog.String("component", v.name),
		result,
		slog.Any("err", err),
		slog.String("errClass", v.ErrClassifier.Classify(err)),
		slog.Time("t", v.TimeNow()),
	)
}
