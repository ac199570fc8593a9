// Package pricing implements the cost estimator for labeling engagements.
// Estimates are deterministic: the same input always produces the same
// breakdown, and no state is kept between calls.
package pricing

import (
	"fmt"
	"math"

	"labelworks-backend/internal/apperror"
)

type DataType string

const (
	DataTypeImage DataType = "image"
	DataTypeVideo DataType = "video"
	DataTypeText  DataType = "text"
)

type Complexity string

const (
	ComplexityBasic    Complexity = "basic"
	ComplexityStandard Complexity = "standard"
	ComplexityAdvanced Complexity = "advanced"
)

type Turnaround string

const (
	TurnaroundFlex     Turnaround = "flex"
	TurnaroundStandard Turnaround = "standard"
	TurnaroundRush     Turnaround = "rush"
)

type Input struct {
	DataType       DataType   `json:"data_type"`
	Complexity     Complexity `json:"complexity"`
	ItemCount      float64    `json:"item_count"`
	AvgClipSeconds float64    `json:"avg_clip_seconds"` // video only, ignored otherwise
	Turnaround     Turnaround `json:"turnaround"`
	QALayers       int        `json:"qa_layers"`
	DedicatedPM    bool       `json:"dedicated_pm"`
	PIIRedaction   bool       `json:"pii_redaction"`
}

type Result struct {
	BillableUnits     float64 `json:"billable_units"`
	UnitLabel         string  `json:"unit_label"`
	BaseUnitRate      float64 `json:"base_unit_rate"`
	EffectiveUnitRate float64 `json:"effective_unit_rate"`
	VolumeDiscountPct int     `json:"volume_discount_pct"`
	CoreSubtotal      float64 `json:"core_subtotal"`
	PIIAddOn          float64 `json:"pii_add_on"`
	PMAddOn           float64 `json:"pm_add_on"`
	GrandTotal        float64 `json:"grand_total"`
}

// Base rate per billable unit, keyed by (data type, complexity).
// Images and text bill per item, video bills per second of footage.
var baseRates = map[DataType]map[Complexity]float64{
	DataTypeImage: {
		ComplexityBasic:    0.15,
		ComplexityStandard: 0.35,
		ComplexityAdvanced: 0.85,
	},
	DataTypeVideo: {
		ComplexityBasic:    0.06,
		ComplexityStandard: 0.12,
		ComplexityAdvanced: 0.25,
	},
	DataTypeText: {
		ComplexityBasic:    0.02,
		ComplexityStandard: 0.05,
		ComplexityAdvanced: 0.12,
	},
}

var turnaroundMultipliers = map[Turnaround]float64{
	TurnaroundFlex:     0.90,
	TurnaroundStandard: 1.00,
	TurnaroundRush:     1.25,
}

// Each QA layer adds cross-checks: +10% for one layer, +18% total for two.
var qaLayerAdders = map[int]float64{
	0: 0.00,
	1: 0.10,
	2: 0.18,
}

const (
	dedicatedPMPerMonth = 600.0 // flat, one month
	piiRedactionPerUnit = 0.02
)

// volumeDiscountMultiplier returns the tiered discount multiplier for the
// given billable units. Tiers are step functions, not interpolated, and are
// evaluated on computed billable units (seconds for video, not clip count).
func volumeDiscountMultiplier(units float64) float64 {
	switch {
	case units >= 500_000:
		return 0.72
	case units >= 100_000:
		return 0.78
	case units >= 20_000:
		return 0.85
	case units >= 5_000:
		return 0.92
	default:
		return 1.00
	}
}

// roundHalfUp rounds to the nearest integer, halves away from zero being
// rounded up.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// billableUnits computes the quantity the engagement is billed on. Video
// bills per second (items x average clip length); image and text bill per
// item. Negative item counts clamp to zero rather than erroring.
func billableUnits(in Input) float64 {
	items := math.Max(0, in.ItemCount)
	if in.DataType == DataTypeVideo {
		seconds := items * math.Max(0, in.AvgClipSeconds)
		return roundHalfUp(seconds)
	}
	return roundHalfUp(items)
}

// Estimate computes the full cost breakdown for an engagement. It is a pure
// function: valid enum inputs never fail, out-of-range numeric inputs are
// clamped, and unknown enum values or QA layer counts outside {0,1,2}
// return an invalid-configuration error.
func Estimate(in Input) (*Result, error) {
	rates, ok := baseRates[in.DataType]
	if !ok {
		return nil, apperror.New(apperror.ErrCodeInvalidConfiguration,
			fmt.Sprintf("unknown data type %q", in.DataType))
	}
	baseRate, ok := rates[in.Complexity]
	if !ok {
		return nil, apperror.New(apperror.ErrCodeInvalidConfiguration,
			fmt.Sprintf("unknown complexity %q", in.Complexity))
	}
	turnaroundMult, ok := turnaroundMultipliers[in.Turnaround]
	if !ok {
		return nil, apperror.New(apperror.ErrCodeInvalidConfiguration,
			fmt.Sprintf("unknown turnaround %q", in.Turnaround))
	}
	qaAdder, ok := qaLayerAdders[in.QALayers]
	if !ok {
		return nil, apperror.New(apperror.ErrCodeInvalidConfiguration,
			fmt.Sprintf("qa_layers must be 0, 1 or 2, got %d", in.QALayers))
	}

	units := billableUnits(in)
	discountMult := volumeDiscountMultiplier(units)
	effectiveRate := baseRate * turnaroundMult * (1 + qaAdder) * discountMult

	coreSubtotal := units * effectiveRate

	piiAddOn := 0.0
	if in.PIIRedaction {
		piiAddOn = units * piiRedactionPerUnit
	}
	pmAddOn := 0.0
	if in.DedicatedPM {
		pmAddOn = dedicatedPMPerMonth
	}

	unitLabel := "item"
	if in.DataType == DataTypeVideo {
		unitLabel = "second"
	}

	return &Result{
		BillableUnits:     units,
		UnitLabel:         unitLabel,
		BaseUnitRate:      baseRate,
		EffectiveUnitRate: effectiveRate,
		VolumeDiscountPct: int(math.Round((1 - discountMult) * 100)),
		CoreSubtotal:      coreSubtotal,
		PIIAddOn:          piiAddOn,
		PMAddOn:           pmAddOn,
		GrandTotal:        coreSubtotal + piiAddOn + pmAddOn,
	}, nil
}
