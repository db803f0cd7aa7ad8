// SPDX-License-Identifier: GPL-3.0-or-later

// Package hydro models the steady-state hydraulic behavior of valves
// and pumps in a piping network, serving as a virtual-plant stand-in
// behind a PLC/SCADA control layer.
//
// # Core Abstraction
//
// Each component is a small state-holding value model with explicit
// recomputation methods. Nothing recomputes automatically: state
// changes only through discrete operator actions (open, close, turn,
// speed change) and explicit recompute calls, modeling a sequence of
// steady-state recalculations rather than a continuous-time solver.
//
// # Available Components
//
// Valves (sharing the [Valve] pressure/flow formulas):
//   - [GateValve]: binary shut-off valve; refuses intermediate positions
//   - [GlobeValve]: continuous throttling valve
//   - [ReliefValve]: pressure-triggered valve with open/close hysteresis
//
// Pumps (sharing the [Pump] speed/flow/pressure/power state):
//   - [CentrifugalPump]: variable-speed pump scaling by the affinity laws
//   - [PositiveDisplacementPump]: fixed-displacement pump, linear in speed
//
// Assembly:
//   - [Network]: a directed acyclic graph of components evaluated in
//     topological order, copying outlet ports into downstream inlets
//   - [LoadPlant]: builds a wired [Network] from a YAML plant file
//   - [Recorder]: captures per-component state rows as CSV
//
// No component depends on another at the type level: a network is an
// external assembly, and manual outlet-to-inlet wiring remains fully
// supported for callers that prefer it. When wiring by hand, apply
// updates upstream to downstream; the ordering discipline is a caller
// obligation.
//
// # Error Handling
//
// Failures are synchronous, deterministic input violations; nothing is
// retried, clamped, or silently defaulted. Every error wraps one of
// [ErrInvalidArgument], [ErrDivisionByZero], [ErrTypeMismatch], or
// [ErrOutOfRange], so callers branch with [errors.Is]. A refused
// operator command (say, a gate valve asked for position 50) is not a
// data error: it is reported as a [*RejectedCommandError] and the
// component state is guaranteed unchanged.
//
// # Observability
//
// All components support structured logging via [SLogger] (compatible
// with [log/slog]).
//
// By default, logging is disabled. Pass a custom [*slog.Logger] to the
// constructors to enable logging. Error classification is configurable
// via [ErrClassifier]; the default maps domain errors to short class
// labels such as "EDIVZERO".
//
// Operator actions emit *Start/*Done event pairs carrying t0, t, err,
// and errClass attributes; per-formula recomputations are emitted at
// [slog.LevelDebug]; flagged anomalies (a partially open gate valve,
// inverted relief setpoints) are emitted at [slog.LevelWarn].
//
// Use [NewActionID] to generate a unique, time-ordered identifier for
// each operator action, then attach it to the logger with
// [*slog.Logger.With] so that every event the action triggers shares
// the same actionID.
//
// # Design Boundaries
//
// This package intentionally models physics only. The following are
// out of scope and belong to higher-level packages:
//
//   - PLC/SCADA network communication
//   - Command-line or report-style output beyond Describe* strings
//   - Transient (time-dependent) fluid simulation
//   - Automatic invalidation when an inlet value changes
package hydro
