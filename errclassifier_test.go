// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bassosimone/errclass"
	"github.com/stretchr/testify/assert"
)

// ClassifyError maps each error kind to its class label.
func TestClassifyError(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// err is the error to classify.
		err error

		// want is the expected class label.
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},

		{
			name: "invalid argument",
			err:  fmt.Errorf("%w: pressure drop must be > 0", ErrInvalidArgument),
			want: ClassInvalidArgument,
		},

		{
			name: "division by zero",
			err:  fmt.Errorf("%w: flow coefficient must be > 0", ErrDivisionByZero),
			want: ClassDivisionByZero,
		},

		{
			name: "type mismatch",
			err:  fmt.Errorf("%w: got 12.5", ErrTypeMismatch),
			want: ClassTypeMismatch,
		},

		{
			name: "out of range",
			err:  fmt.Errorf("%w: speed must be 0 or greater", ErrOutOfRange),
			want: ClassOutOfRange,
		},

		{
			name: "rejected command",
			err:  &RejectedCommandError{Component: "inlet gate", Reason: "invalid gate position 33"},
			want: ClassRejectedCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

// Errors foreign to this package fall through to errclass.
func TestClassifyErrorFallback(t *testing.T) {
	// Should classify known generic errors using errclass
	result := ClassifyError(context.DeadlineExceeded)
	assert.Equal(t, errclass.ETIMEDOUT, result)

	// Should return EGENERIC for unknown errors
	result = ClassifyError(errors.New("unknown error"))
	assert.Equal(t, errclass.EGENERIC, result)
}

// DefaultErrClassifier uses ClassifyError.
func TestDefaultErrClassifier(t *testing.T) {
	assert.Equal(t, "", DefaultErrClassifier.Classify(nil))
	assert.Equal(t, ClassDivisionByZero, DefaultErrClassifier.Classify(ErrDivisionByZero))
}
