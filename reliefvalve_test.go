// SPDX-License-Identifier: GPL-3.0-or-later

package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Setpoints are mutated and read independently of each other.
func TestReliefValveSetpoints(t *testing.T) {
	v := NewReliefValve(NewConfig(), ValveSpec{
		Name:          "relief1",
		OpenSetpoint:  25,
		CloseSetpoint: 20,
	}, DefaultSLogger())

	assert.Equal(t, 25.0, v.OpenSetpoint())
	assert.Equal(t, 20.0, v.CloseSetpoint())

	v.SetOpenSetpoint(75)
	v.SetCloseSetpoint(73)

	assert.Equal(t, 75.0, v.OpenSetpoint())
	assert.Equal(t, 73.0, v.CloseSetpoint())
}

// Evaluate snaps open at the open setpoint, snaps closed at the close
// setpoint, and holds its state in the deadband between them.
func TestReliefValveHysteresis(t *testing.T) {
	v := NewReliefValve(NewConfig(), ValveSpec{
		Name:          "relief1",
		OpenSetpoint:  150,
		CloseSetpoint: 125,
	}, DefaultSLogger())

	// Reaching the open setpoint opens the valve
	assert.True(t, v.Evaluate(150))
	assert.Equal(t, 100, v.Position())

	// Inside the deadband the valve holds open
	assert.True(t, v.Evaluate(140))
	assert.Equal(t, 100, v.Position())

	// Falling to the close setpoint closes it
	assert.False(t, v.Evaluate(125))
	assert.Equal(t, 0, v.Position())

	// Inside the deadband the valve now holds closed
	assert.False(t, v.Evaluate(130))
	assert.Equal(t, 0, v.Position())
}

// Transitions are idempotent above and below the setpoints.
func TestReliefValveIdempotentTransitions(t *testing.T) {
	v := NewReliefValve(NewConfig(), ValveSpec{
		Name:          "relief1",
		OpenSetpoint:  150,
		CloseSetpoint: 125,
	}, DefaultSLogger())

	assert.True(t, v.Evaluate(160))
	assert.True(t, v.Evaluate(175))
	assert.Equal(t, 100, v.Position())

	assert.False(t, v.Evaluate(100))
	assert.False(t, v.Evaluate(90))
	assert.Equal(t, 0, v.Position())
}

// An inverted setpoint pair is preserved and flagged, never corrected.
func TestReliefValveInvertedSetpoints(t *testing.T) {
	logger, records := newCapturingLogger()
	v := NewReliefValve(NewConfig(), ValveSpec{
		Name:          "relief1",
		OpenSetpoint:  100,
		CloseSetpoint: 120,
	}, logger)

	// Both rules match at 110; the open rule wins by order, matching
	// the reference model
	assert.True(t, v.Evaluate(110))

	warnings := findRecords(*records, "reliefSetpointsInverted")
	require.NotEmpty(t, warnings)
	assert.Equal(t, 100.0, v.OpenSetpoint())
	assert.Equal(t, 120.0, v.CloseSetpoint())
}

// DescribePosition mirrors the gate wording, warning on a manual
// override to an intermediate position.
func TestReliefValveDescribePosition(t *testing.T) {
	v := NewReliefValve(NewConfig(), ValveSpec{Name: "relief1"}, DefaultSLogger())

	assert.Equal(t, "relief1 is closed.", v.DescribePosition())

	v.Open()
	assert.Equal(t, "relief1 is open.", v.DescribePosition())

	// Manual override: the position field permits any integer
	require.NoError(t, v.SetPosition(40))
	assert.Equal(t, "Warning! relief1 is partially open.", v.DescribePosition())
}

// Recompute evaluates against the inlet pressure and passes the inlet
// through unchanged.
func TestReliefValveRecompute(t *testing.T) {
	v := NewReliefValve(NewConfig(), ValveSpec{
		Name:          "relief1",
		OpenSetpoint:  150,
		CloseSetpoint: 125,
	}, DefaultSLogger())

	v.SetInlet(Port{Pressure: 160, Flow: 9.6})
	require.NoError(t, v.Recompute())

	assert.Equal(t, 100, v.Position())
	out := v.Outlet()
	assert.Equal(t, 160.0, out.Pressure)
	assert.Equal(t, 9.6, out.Flow)
}
