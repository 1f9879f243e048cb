package psadt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGeometricSeries(t *testing.T) {
	// PSA doubles exactly every 90 days.
	values := []Measurement{
		{Day: 0, PSA: 1.0},
		{Day: 90, PSA: 2.0},
		{Day: 180, PSA: 4.0},
	}

	result := Compute(values, DefaultOptions())

	require.True(t, result.OK, result.Reason)
	assert.InDelta(t, 90, result.PSADTDays, 1.0)
	assert.InDelta(t, 3.0, result.PSADTMonths, 0.1)
	assert.InDelta(t, 1.0, result.RSquared, 0.001)
	assert.Equal(t, 3, result.NValues)
	assert.Equal(t, float64(180), result.ObservationDays)
	assert.Equal(t, "Very high risk", result.Interpretation)
}

func TestComputeUnsortedInput(t *testing.T) {
	values := []Measurement{
		{Day: 180, PSA: 4.0},
		{Day: 0, PSA: 1.0},
		{Day: 90, PSA: 2.0},
	}

	result := Compute(values, DefaultOptions())

	require.True(t, result.OK, result.Reason)
	assert.InDelta(t, 90, result.PSADTDays, 1.0)
}

func TestComputeTooFewValues(t *testing.T) {
	values := []Measurement{
		{Day: 0, PSA: 1.0},
		{Day: 120, PSA: 2.0},
	}

	result := Compute(values, DefaultOptions())

	require.False(t, result.OK)
	assert.Contains(t, result.Reason, "Need >=3 PSA values")
}

func TestComputeObservationTooShort(t *testing.T) {
	values := []Measurement{
		{Day: 0, PSA: 1.0},
		{Day: 30, PSA: 1.5},
		{Day: 60, PSA: 2.0},
	}

	result := Compute(values, DefaultOptions())

	require.False(t, result.OK)
	assert.Contains(t, result.Reason, "Need >=90 days")
}

func TestComputeNotRising(t *testing.T) {
	values := []Measurement{
		{Day: 0, PSA: 2.0},
		{Day: 90, PSA: 1.5},
		{Day: 180, PSA: 3.0},
	}

	result := Compute(values, DefaultOptions())

	require.False(t, result.OK)
	assert.Contains(t, result.Reason, "must be rising")
}

func TestComputeRisingNotRequired(t *testing.T) {
	opts := DefaultOptions()
	opts.RequireRising = false

	values := []Measurement{
		{Day: 0, PSA: 2.0},
		{Day: 90, PSA: 1.5},
		{Day: 180, PSA: 3.0},
	}

	result := Compute(values, opts)
	require.True(t, result.OK, result.Reason)
}

func TestComputeBelowMinimumPSA(t *testing.T) {
	values := []Measurement{
		{Day: 0, PSA: 0.05},
		{Day: 90, PSA: 0.25},
		{Day: 180, PSA: 0.50},
	}

	result := Compute(values, DefaultOptions())

	require.False(t, result.OK)
	assert.Contains(t, result.Reason, ">=0.20 ng/mL")
}

func TestComputeDecliningIsStable(t *testing.T) {
	opts := DefaultOptions()
	opts.RequireRising = false

	values := []Measurement{
		{Day: 0, PSA: 4.0},
		{Day: 90, PSA: 2.0},
		{Day: 180, PSA: 1.0},
	}

	result := Compute(values, opts)

	require.True(t, result.OK)
	assert.True(t, result.Stable())
	assert.True(t, math.IsInf(result.PSADTMonths, 1))
	assert.Equal(t, "PSA stable or declining", result.Interpretation)
}

func TestInterpretBands(t *testing.T) {
	tests := []struct {
		months float64
		want   string
	}{
		{2.0, "Extremely high risk"},
		{4.5, "Very high risk"},
		{8.0, "High risk"},
		{10.0, "Moderate-high risk"},
		{13.0, "Moderate risk"},
		{20.0, "Favorable"},
	}

	for _, tt := range tests {
		got := Interpret(tt.months)
		assert.Equal(t, tt.want, got.Interpretation, "months=%.1f", tt.months)
		assert.NotEmpty(t, got.Detail)
		assert.NotEmpty(t, got.Recommendation)
	}
}
