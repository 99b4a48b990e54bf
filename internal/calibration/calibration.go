// Package calibration collects every tuned constant of the simulation and
// power models in one place, so the calibration itself can be audited and
// sensitivity-tested instead of hiding inline in formulas.
package calibration

import "github.com/trialworks/biopower/internal/models"

const (
	// EpsilonFloor is the minimum measurement value; simulated and
	// derived values are clamped here so concentrations never reach zero.
	EpsilonFloor = 0.01

	// LowDoseFactor scales the drug effect on the 1mg arm relative to
	// the 2mg arm.
	LowDoseFactor  = 0.7
	HighDoseFactor = 1.0

	// NoiseDamping scales intra-patient measurement noise relative to
	// baseline variability.
	NoiseDamping = 0.4

	// SingleCellLongitudinalDivisor is the per-extra-timepoint variance
	// discount in the pseudobulk model: 1/(1+(T-2)*divisor).
	SingleCellLongitudinalDivisor = 0.5

	// SingleCellMinEffectiveN is the floor below which a design is
	// declared a dropout failure.
	SingleCellMinEffectiveN = 3.0

	// ResolutionReferenceGenes anchors the pseudobulk count heuristic:
	// counts scale with meanGenes relative to a 500-gene reference.
	ResolutionReferenceGenes = 500.0

	// SpatialIntraSubjectCorr is the fixed repeated-measures correlation
	// rho used by the spatial hierarchical model.
	SpatialIntraSubjectCorr = 0.45

	// CostScaleDivisor expresses spatial study cost in thousands.
	CostScaleDivisor = 1000
)

// profileMultipliers maps each time profile to its fractional plateau
// multipliers at (Week4, Week12, Week24).
var profileMultipliers = map[models.TimeProfile][3]float64{
	models.ProfileLinear:    {0.33, 0.66, 1.0},
	models.ProfileImmediate: {0.8, 0.9, 1.0},
	models.ProfileDelayed:   {0.05, 0.4, 1.0},
	models.ProfileBiphasic:  {0.7, 1.0, 0.2},
	models.ProfilePeakDrop:  {1.0, 0.5, 0.1},
}

// ProfileMultiplier returns the plateau multiplier for a follow-up visit
// (timepoint index 1..3). Unknown profiles fall back to linear.
func ProfileMultiplier(profile models.TimeProfile, timepointIndex int) float64 {
	mults, ok := profileMultipliers[profile]
	if !ok {
		mults = profileMultipliers[models.ProfileLinear]
	}
	if timepointIndex < 1 || timepointIndex > len(mults) {
		return 0
	}
	return mults[timepointIndex-1]
}

// DoseFactor returns the drug-effect scaling for an arm. Placebo carries no
// drug effect.
func DoseFactor(arm models.Arm) float64 {
	switch arm {
	case models.ArmDrug2mg:
		return HighDoseFactor
	case models.ArmDrug1mg:
		return LowDoseFactor
	default:
		return 0
	}
}
