package power

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/trialworks/biopower/internal/calibration"
	"github.com/trialworks/biopower/internal/models"
	"github.com/trialworks/biopower/internal/stats"
)

// Default sweep bounds for the spatial design-comparison curves.
const (
	spatialSweepFrom = 4
	spatialSweepTo   = 80
	spatialSweepStep = 4
)

// SpatialCalculator evaluates spatial-transcriptomics designs with a nested
// patient/slice/technical variance decomposition and longitudinal gain from
// repeated visits. Single-arm designs benefit from paired-drift
// cancellation; two-arm designs carry the full placebo-comparison variance.
type SpatialCalculator struct{}

// NewSpatialCalculator returns a new calculator instance.
func NewSpatialCalculator() *SpatialCalculator {
	return &SpatialCalculator{}
}

// Calculate evaluates power and cost for the design named in the inputs.
// Non-positive N, slices, or timepoints yield an explicit zero result.
func (calc *SpatialCalculator) Calculate(inputs models.SpatialInputs) models.SpatialResult {
	groupSE, ok := calc.groupSE(inputs)
	if !ok {
		return models.SpatialResult{Cost: decimal.Zero}
	}

	finalSE := calc.finalSE(groupSE, inputs.Design)
	return models.SpatialResult{
		Power:   calc.power(inputs.TreatmentEffect, finalSE, inputs.Alpha),
		GroupSE: groupSE,
		FinalSE: finalSE,
		Cost:    calc.cost(inputs),
	}
}

// Sweep produces parallel single-/two-arm power and cost series over the
// default per-arm N range, plus the variance decomposition at the inputs'
// own N.
func (calc *SpatialCalculator) Sweep(inputs models.SpatialInputs) models.SpatialSweep {
	sweep := models.SpatialSweep{
		Breakdown: calc.VarianceBreakdown(inputs),
	}
	for n := spatialSweepFrom; n <= spatialSweepTo; n += spatialSweepStep {
		point := inputs
		point.NPerArm = n

		point.Design = models.DesignSingleArm
		single := calc.Calculate(point)
		point.Design = models.DesignTwoArm
		two := calc.Calculate(point)

		sweep.Points = append(sweep.Points, models.SpatialSweepPoint{
			NPerArm:     n,
			PowerSingle: single.Power,
			PowerTwo:    two.Power,
			CostSingle:  single.Cost,
			CostTwo:     two.Cost,
		})
	}
	return sweep
}

// VarianceBreakdown returns the three components of the group-level
// variance (patient, slice, technical) with their fractional shares.
func (calc *SpatialCalculator) VarianceBreakdown(inputs models.SpatialInputs) []models.VarianceComponent {
	patient, slice, technical, ok := calc.varianceComponents(inputs)
	if !ok {
		return nil
	}
	total := patient + slice + technical
	if total <= 0 {
		return nil
	}
	return []models.VarianceComponent{
		{Name: "patient", Value: patient, Share: patient / total},
		{Name: "slice", Value: slice, Share: slice / total},
		{Name: "technical", Value: technical, Share: technical / total},
	}
}

func (calc *SpatialCalculator) varianceComponents(inputs models.SpatialInputs) (patient, slice, technical float64, ok bool) {
	n := float64(inputs.NPerArm)
	s := float64(inputs.SlicesPerPatient)
	t := float64(inputs.Timepoints)
	if n <= 0 || s <= 0 || t <= 0 {
		return 0, 0, 0, false
	}

	capture := inputs.Platform.CaptureEfficiency
	if capture <= 0 {
		capture = 1
	}
	effObs := inputs.Platform.EffectiveObservations
	if effObs <= 0 {
		effObs = 1
	}

	adjustedPatientSD := inputs.PatientSD * inputs.Platform.ResolutionGain
	sigmaP2 := adjustedPatientSD * adjustedPatientSD
	sigmaS2 := inputs.SliceSD * inputs.SliceSD
	sigmaT2 := inputs.Platform.TechnicalVariance / capture

	gain := 1 + (t-1)*calibration.SpatialIntraSubjectCorr

	patient = sigmaP2 / (n * gain)
	slice = sigmaS2 / (n * s * t)
	technical = sigmaT2 / (n * s * t * effObs)
	return patient, slice, technical, true
}

func (calc *SpatialCalculator) groupSE(inputs models.SpatialInputs) (float64, bool) {
	patient, slice, technical, ok := calc.varianceComponents(inputs)
	if !ok {
		return 0, false
	}
	return math.Sqrt(patient + slice + technical), true
}

// finalSE scales the group SE to the design's contrast: single-arm pre/post
// comparisons cancel shared patient drift, two-arm comparisons carry two
// independent groups.
func (calc *SpatialCalculator) finalSE(groupSE float64, design models.StudyDesign) float64 {
	if design == models.DesignTwoArm {
		return groupSE * math.Sqrt2
	}
	return groupSE * math.Sqrt(2*(1-calibration.SpatialIntraSubjectCorr))
}

func (calc *SpatialCalculator) power(effect, finalSE, alpha float64) float64 {
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.05
	}
	if finalSE <= 0 || math.IsNaN(finalSE) || math.IsInf(finalSE, 0) {
		if effect > 0 && finalSE == 0 {
			return 1
		}
		return 0
	}
	return clamp(stats.CDF(effect/finalSE-stats.Probit(1-alpha/2)), 0, 1)
}

// cost is N * arms * slices * timepoints * costPerSlice, expressed in
// thousands. Decimal arithmetic keeps currency exact.
func (calc *SpatialCalculator) cost(inputs models.SpatialInputs) decimal.Decimal {
	units := int64(inputs.NPerArm) * inputs.Design.ArmMultiplier() *
		int64(inputs.SlicesPerPatient) * int64(inputs.Timepoints)
	if units <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(units).
		Mul(inputs.Platform.CostPerSlice).
		Div(decimal.NewFromInt(calibration.CostScaleDivisor))
}
