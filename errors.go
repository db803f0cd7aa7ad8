// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"errors"
	"fmt"
)

// Error kinds for hydraulic computations and operator commands.
//
// Every failing operation in this package wraps exactly one of these
// sentinels, so callers can branch with [errors.Is] regardless of the
// descriptive text attached at the failure site.
var (
	// ErrInvalidArgument indicates a non-positive coefficient or
	// pressure drop passed to a flow formula.
	ErrInvalidArgument = errors.New("hydro: invalid argument")

	// ErrDivisionByZero indicates a computation that would divide by
	// zero: a zero flow coefficient, a zero old speed in affinity
	// scaling, or a zero speed when deriving a power coefficient.
	ErrDivisionByZero = errors.New("hydro: division by zero")

	// ErrTypeMismatch indicates a command value that must be an
	// integer but carries a fractional part. Command values arrive
	// from the control layer as raw numbers, so the integer check
	// happens at runtime rather than in the type system.
	ErrTypeMismatch = errors.New("hydro: integer value required")

	// ErrOutOfRange indicates an integer command value outside the
	// permitted range (a negative speed, a position outside 0..100).
	ErrOutOfRange = errors.New("hydro: value out of range")
)

// RejectedCommandError reports an operator command that a component
// refused to execute. The component's state is guaranteed unchanged.
//
// This is deliberately distinct from the data-error sentinels above: a
// rejected command is a disallowed control input (say, a gate valve
// asked to hold an intermediate position), not invalid data. Use
// [errors.As] to distinguish the two at the call site.
type RejectedCommandError struct {
	// Component is the name of the component that refused the command.
	Component string

	// Reason is the human-readable warning describing the refusal.
	Reason string
}

var _ error = &RejectedCommandError{}

// Error implements error.
func (e *RejectedCommandError) Error() string {
	return fmt.Sprintf("Warning: %s: %s", e.Component, e.Reason)
}
