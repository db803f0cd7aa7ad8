// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ChangeSpeed is linear in the absolute speed: flow is speed times
// displacement.
func TestPositiveDisplacementPumpChangeSpeed(t *testing.T) {
	p := NewPositiveDisplacementPump(NewConfig(), PumpSpec{
		Name:         "gear pump",
		Speed:        75,
		ShaftPower:   0.05,
		Displacement: 0.096,
	}, DefaultSLogger())

	_, err := p.DerivePowerCoefficient()
	require.NoError(t, err)

	require.NoError(t, p.ChangeSpeed(100))

	assert.Equal(t, 100, p.Speed())
	assert.InDelta(t, 9.6, p.FlowRate(), 1e-12)
	assert.InDelta(t, 100*(0.05/75.0), p.ShaftPower(), 1e-12)
}

// Unlike the centrifugal ratio laws, successive speed changes do not
// compound: each change is a function of the absolute speed alone.
func TestPositiveDisplacementPumpAbsoluteScaling(t *testing.T) {
	p := NewPositiveDisplacementPump(NewConfig(), PumpSpec{
		Name:         "gear pump",
		Speed:        75,
		ShaftPower:   0.05,
		Displacement: 0.05,
	}, DefaultSLogger())

	_, err := p.DerivePowerCoefficient()
	require.NoError(t, err)

	require.NoError(t, p.ChangeSpeed(25))
	assert.InDelta(t, 1.25, p.FlowRate(), 1e-12)

	// Reaching 50 directly or via 25 must land on the same flow
	require.NoError(t, p.ChangeSpeed(50))
	assert.InDelta(t, 2.5, p.FlowRate(), 1e-12)
}

// A speed of zero stops the pump and zeroes flow and power.
func TestPositiveDisplacementPumpChangeSpeedToZero(t *testing.T) {
	p := NewPositiveDisplacementPump(NewConfig(), PumpSpec{
		Name:         "gear pump",
		Speed:        75,
		ShaftPower:   0.05,
		Displacement: 0.05,
	}, DefaultSLogger())

	_, err := p.DerivePowerCoefficient()
	require.NoError(t, err)

	require.NoError(t, p.ChangeSpeed(0))

	assert.Equal(t, 0, p.Speed())
	assert.Equal(t, 0.0, p.FlowRate())
	assert.Equal(t, 0.0, p.ShaftPower())
	assert.Equal(t, "The pump is stopped.", p.DescribeSpeed())
}

// Invalid speed values fail without touching any field.
func TestPositiveDisplacementPumpChangeSpeedInvalid(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// value is the raw speed command value.
		value float64

		// wantErr is the sentinel the call must wrap.
		wantErr error
	}{
		{
			name:    "fractional value",
			value:   12.5,
			wantErr: ErrTypeMismatch,
		},

		{
			name:    "negative value",
			value:   -10,
			wantErr: ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPositiveDisplacementPump(NewConfig(), PumpSpec{
				Name:         "gear pump",
				Speed:        75,
				ShaftPower:   0.05,
				Displacement: 0.05,
			}, DefaultSLogger())

			err := p.ChangeSpeed(tt.value)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			// Speed, flow, and power must be unchanged as one unit
			assert.Equal(t, 75, p.Speed())
			assert.Equal(t, 0.0, p.FlowRate())
			assert.Equal(t, 0.05, p.ShaftPower())
		})
	}
}

// DerivePowerCoefficient captures power per rpm once at a known
// operating point.
func TestDerivePowerCoefficient(t *testing.T) {
	p := NewPositiveDisplacementPump(NewConfig(), PumpSpec{
		Name:       "gear pump",
		Speed:      75,
		ShaftPower: 0.05,
	}, DefaultSLogger())

	coeff, err := p.DerivePowerCoefficient()

	require.NoError(t, err)
	assert.InDelta(t, 0.05/75.0, coeff, 1e-15)
	assert.Equal(t, coeff, p.PowerCoefficient())
}

// Deriving from a stopped pump is a division-by-zero failure.
func TestDerivePowerCoefficientStopped(t *testing.T) {
	p := NewPositiveDisplacementPump(NewConfig(), PumpSpec{
		Name:       "gear pump",
		ShaftPower: 0.05,
	}, DefaultSLogger())

	coeff, err := p.DerivePowerCoefficient()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDivisionByZero))
	assert.Equal(t, 0.0, coeff)
	assert.Equal(t, 0.0, p.PowerCoefficient())
}
