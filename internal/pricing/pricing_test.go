package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"labelworks-backend/internal/apperror"
	"labelworks-backend/internal/pricing"
)

func TestEstimate_StandardImageNoAddOns(t *testing.T) {
	result, err := pricing.Estimate(pricing.Input{
		DataType:   pricing.DataTypeImage,
		Complexity: pricing.ComplexityStandard,
		ItemCount:  1000,
		Turnaround: pricing.TurnaroundStandard,
		QALayers:   0,
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, result.BillableUnits)
	assert.Equal(t, "item", result.UnitLabel)
	assert.Equal(t, 0.35, result.BaseUnitRate)
	assert.Equal(t, 0, result.VolumeDiscountPct)
	assert.InDelta(t, 0.35, result.EffectiveUnitRate, 1e-9)
	assert.InDelta(t, 350.00, result.CoreSubtotal, 1e-9)
	assert.InDelta(t, 350.00, result.GrandTotal, 1e-9)
}

func TestEstimate_RushVideoWithQA(t *testing.T) {
	result, err := pricing.Estimate(pricing.Input{
		DataType:       pricing.DataTypeVideo,
		Complexity:     pricing.ComplexityBasic,
		ItemCount:      1000,
		AvgClipSeconds: 8,
		Turnaround:     pricing.TurnaroundRush,
		QALayers:       1,
	})
	require.NoError(t, err)

	// 1000 clips x 8s = 8000 seconds, which crosses the 5,000-unit
	// discount tier even though the clip count alone would not.
	assert.Equal(t, 8000.0, result.BillableUnits)
	assert.Equal(t, "second", result.UnitLabel)
	assert.Equal(t, 8, result.VolumeDiscountPct)
	assert.InDelta(t, 0.0759, result.EffectiveUnitRate, 1e-9)
	assert.InDelta(t, 607.20, result.CoreSubtotal, 1e-9)
}

func TestEstimate_ZeroItems(t *testing.T) {
	result, err := pricing.Estimate(pricing.Input{
		DataType:    pricing.DataTypeText,
		Complexity:  pricing.ComplexityBasic,
		ItemCount:   0,
		Turnaround:  pricing.TurnaroundStandard,
		QALayers:    2,
		DedicatedPM: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.BillableUnits)
	assert.Equal(t, 0.0, result.CoreSubtotal)
	assert.Equal(t, 0.0, result.PIIAddOn)
	assert.Equal(t, 600.0, result.PMAddOn)
	assert.Equal(t, 600.0, result.GrandTotal)
}

func TestEstimate_NegativeItemCountClamped(t *testing.T) {
	result, err := pricing.Estimate(pricing.Input{
		DataType:   pricing.DataTypeImage,
		Complexity: pricing.ComplexityBasic,
		ItemCount:  -50,
		Turnaround: pricing.TurnaroundStandard,
		QALayers:   0,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.BillableUnits)
	assert.Equal(t, 0.0, result.GrandTotal)
}

func TestEstimate_InvalidQALayers(t *testing.T) {
	_, err := pricing.Estimate(pricing.Input{
		DataType:   pricing.DataTypeImage,
		Complexity: pricing.ComplexityBasic,
		ItemCount:  100,
		Turnaround: pricing.TurnaroundStandard,
		QALayers:   3,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidConfiguration(err))
}

func TestEstimate_InvalidEnums(t *testing.T) {
	cases := []pricing.Input{
		{DataType: "audio", Complexity: pricing.ComplexityBasic, Turnaround: pricing.TurnaroundStandard},
		{DataType: pricing.DataTypeImage, Complexity: "expert", Turnaround: pricing.TurnaroundStandard},
		{DataType: pricing.DataTypeImage, Complexity: pricing.ComplexityBasic, Turnaround: "overnight"},
	}
	for _, in := range cases {
		_, err := pricing.Estimate(in)
		require.Error(t, err)
		assert.True(t, apperror.IsInvalidConfiguration(err))
	}
}

func TestEstimate_GrandTotalIdentity(t *testing.T) {
	inputs := []pricing.Input{
		{DataType: pricing.DataTypeImage, Complexity: pricing.ComplexityAdvanced, ItemCount: 25000, Turnaround: pricing.TurnaroundFlex, QALayers: 2, PIIRedaction: true},
		{DataType: pricing.DataTypeVideo, Complexity: pricing.ComplexityStandard, ItemCount: 400, AvgClipSeconds: 30, Turnaround: pricing.TurnaroundRush, QALayers: 1, DedicatedPM: true},
		{DataType: pricing.DataTypeText, Complexity: pricing.ComplexityStandard, ItemCount: 750000, Turnaround: pricing.TurnaroundStandard, QALayers: 0, PIIRedaction: true, DedicatedPM: true},
	}
	for _, in := range inputs {
		result, err := pricing.Estimate(in)
		require.NoError(t, err)
		assert.Equal(t, result.CoreSubtotal+result.PIIAddOn+result.PMAddOn, result.GrandTotal)
		assert.GreaterOrEqual(t, result.GrandTotal, result.CoreSubtotal)
		assert.GreaterOrEqual(t, result.CoreSubtotal, 0.0)
	}
}

func TestEstimate_TurnaroundOrdering(t *testing.T) {
	base := pricing.Input{
		DataType:   pricing.DataTypeImage,
		Complexity: pricing.ComplexityStandard,
		ItemCount:  10000,
		QALayers:   1,
	}

	flex := base
	flex.Turnaround = pricing.TurnaroundFlex
	standard := base
	standard.Turnaround = pricing.TurnaroundStandard
	rush := base
	rush.Turnaround = pricing.TurnaroundRush

	flexResult, err := pricing.Estimate(flex)
	require.NoError(t, err)
	standardResult, err := pricing.Estimate(standard)
	require.NoError(t, err)
	rushResult, err := pricing.Estimate(rush)
	require.NoError(t, err)

	assert.LessOrEqual(t, flexResult.GrandTotal, standardResult.GrandTotal)
	assert.GreaterOrEqual(t, rushResult.GrandTotal, standardResult.GrandTotal)
}

func TestEstimate_DiscountTierBoundaries(t *testing.T) {
	estimate := func(count float64) *pricing.Result {
		result, err := pricing.Estimate(pricing.Input{
			DataType:   pricing.DataTypeImage,
			Complexity: pricing.ComplexityBasic,
			ItemCount:  count,
			Turnaround: pricing.TurnaroundStandard,
			QALayers:   0,
		})
		require.NoError(t, err)
		return result
	}

	// Within a tier the per-unit rate is flat, so the subtotal grows with
	// volume.
	tiers := [][2]float64{
		{100, 4999},
		{5000, 19999},
		{20000, 99999},
		{100000, 499999},
		{500000, 1000000},
	}
	for _, tier := range tiers {
		lo, hi := estimate(tier[0]), estimate(tier[1])
		assert.Equal(t, lo.VolumeDiscountPct, hi.VolumeDiscountPct, "counts %v and %v share a tier", tier[0], tier[1])
		assert.Greater(t, hi.CoreSubtotal, lo.CoreSubtotal, "counts %v and %v", tier[0], tier[1])
	}

	// The discount is a step function on the whole order, not marginal
	// bands, so crossing a boundary re-rates every unit: the per-unit rate
	// steps down and the subtotal drops at the boundary itself (e.g.
	// 499,999 units at 22% off cost more than 500,000 at 28% off).
	for _, boundary := range []float64{5000, 20000, 100000, 500000} {
		below, at := estimate(boundary-1), estimate(boundary)
		assert.Greater(t, at.VolumeDiscountPct, below.VolumeDiscountPct, "boundary %v", boundary)
		assert.Less(t, at.EffectiveUnitRate, below.EffectiveUnitRate, "boundary %v", boundary)
		assert.Less(t, at.CoreSubtotal, below.CoreSubtotal, "boundary %v", boundary)
	}
}

func TestEstimate_DiscountTierOnComputedUnits(t *testing.T) {
	// 100 clips x 50s = 5000 seconds: the tier lookup must see 5000 units,
	// not the raw clip count of 100.
	result, err := pricing.Estimate(pricing.Input{
		DataType:       pricing.DataTypeVideo,
		Complexity:     pricing.ComplexityBasic,
		ItemCount:      100,
		AvgClipSeconds: 50,
		Turnaround:     pricing.TurnaroundStandard,
		QALayers:       0,
	})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, result.BillableUnits)
	assert.Equal(t, 8, result.VolumeDiscountPct)
}

func TestEstimate_FractionalUnitsRoundHalfUp(t *testing.T) {
	// 3 clips x 1.5s = 4.5 seconds, rounds up to 5 units before pricing.
	result, err := pricing.Estimate(pricing.Input{
		DataType:       pricing.DataTypeVideo,
		Complexity:     pricing.ComplexityBasic,
		ItemCount:      3,
		AvgClipSeconds: 1.5,
		Turnaround:     pricing.TurnaroundStandard,
		QALayers:       0,
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, result.BillableUnits)
}

func TestEstimate_Deterministic(t *testing.T) {
	in := pricing.Input{
		DataType:       pricing.DataTypeVideo,
		Complexity:     pricing.ComplexityAdvanced,
		ItemCount:      1234,
		AvgClipSeconds: 17,
		Turnaround:     pricing.TurnaroundRush,
		QALayers:       2,
		PIIRedaction:   true,
		DedicatedPM:    true,
	}
	first, err := pricing.Estimate(in)
	require.NoError(t, err)
	second, err := pricing.Estimate(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
