package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

func TestUniformPreset(t *testing.T) {
	t.Parallel()

	curve := UniformPreset(5)
	want := []float64{0.2, 0.4, 0.6, 0.8, 1.0}

	require.Len(t, curve, 5)
	for i := range want {
		assert.InDelta(t, want[i], curve[i], 1e-12)
	}

	assert.Empty(t, UniformPreset(0))
}

func TestGaussianPreset(t *testing.T) {
	t.Parallel()

	curve := GaussianPreset(10, domain.DistributionParams{Mean: 0.5, StdDev: 0.2})

	require.Len(t, curve, 10)
	// Peak sits at x = 0.5 exactly, i.e. index 4.
	peak := 0
	for i := range curve {
		if curve[i] > curve[peak] {
			peak = i
		}
	}
	assert.Equal(t, 4, peak)
	assert.InDelta(t, 1.0, curve[4], 1e-12)
	assert.Less(t, curve[0], curve[peak])
	assert.Less(t, curve[9], curve[peak])
}

func TestBimodalPreset(t *testing.T) {
	t.Parallel()

	curve := BimodalPreset(12, domain.DistributionParams{})

	require.Len(t, curve, 12)
	// Two humps around the default means 1/3 and 2/3, with a dip between.
	mid := curve[5] // x = 0.5
	assert.Greater(t, curve[3], mid)
	assert.Greater(t, curve[7], mid)
}

func TestPresetCurve_Fallbacks(t *testing.T) {
	t.Parallel()

	uniform := UniformPreset(4)

	assert.Equal(t, uniform, PresetCurve(nil, 4))
	assert.Equal(t, uniform, PresetCurve(&domain.DistributionConfig{
		FunctionType: "Triangular",
	}, 4))
}

func TestAssignPresetValues(t *testing.T) {
	t.Parallel()

	scores := []float64{0.3, 0.1, 0.2}
	curve := UniformPreset(3)

	got := AssignPresetValues(scores, curve)

	require.Len(t, got, 3)
	// Lowest score gets the first curve value; output keeps input order.
	assert.InDelta(t, curve[2], got[0], 1e-12)
	assert.InDelta(t, curve[0], got[1], 1e-12)
	assert.InDelta(t, curve[1], got[2], 1e-12)
}

func TestAssignPresetValues_ShortCurve(t *testing.T) {
	t.Parallel()

	got := AssignPresetValues([]float64{0.1, 0.2, 0.3}, []float64{0.5})
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, got)

	got = AssignPresetValues([]float64{0.1, 0.2}, nil)
	assert.Equal(t, []float64{0, 0}, got)
}
