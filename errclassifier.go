// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"errors"

	"github.com/bassosimone/errclass"
)

// Error class labels attached to structured log events.
//
// Classes facilitate systematic analysis of operation logs collected
// from a running virtual plant: grepping for EDIVZERO across an
// evaluation trace immediately surfaces every component that was asked
// to compute from an unseeded state.
const (
	// ClassInvalidArgument is the class for [ErrInvalidArgument].
	ClassInvalidArgument = "EINVAL"

	// ClassDivisionByZero is the class for [ErrDivisionByZero].
	ClassDivisionByZero = "EDIVZERO"

	// ClassTypeMismatch is the class for [ErrTypeMismatch].
	ClassTypeMismatch = "ETYPE"

	// ClassOutOfRange is the class for [ErrOutOfRange].
	ClassOutOfRange = "ERANGE"

	// ClassRejectedCommand is the class for [*RejectedCommandError].
	ClassRejectedCommand = "EREJECTED"
)

// ErrClassifier classifies errors into categorical strings for analysis.
//
// Implementations map errors to short, descriptive labels (e.g.,
// "EDIVZERO", "ETYPE") that facilitate systematic analysis of
// evaluation logs.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to the [ErrClassifier] interface.
//
// This allows using simple functions as classifiers:
//
//	cfg.ErrClassifier = ErrClassifierFunc(ClassifyError)
type ErrClassifierFunc func(error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// ClassifyError maps an error to its class label.
//
// Domain errors map to the Class* constants above. Errors foreign to
// this package (for instance I/O errors surfaced by the plant loader)
// fall through to [errclass.New]. A nil error maps to the empty string.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return ClassInvalidArgument
	case errors.Is(err, ErrDivisionByZero):
		return ClassDivisionByZero
	case errors.Is(err, ErrTypeMismatch):
		return ClassTypeMismatch
	case errors.Is(err, ErrOutOfRange):
		return ClassOutOfRange
	}
	var rejected *RejectedCommandError
	if errors.As(err, &rejected) {
		return ClassRejectedCommand
	}
	return errclass.New(err)
}

// DefaultErrClassifier is the classifier used by [NewConfig].
var DefaultErrClassifier = ErrClassifierFunc(ClassifyError)
