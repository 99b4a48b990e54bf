// Package power implements the three sample-size/power calculators: bulk
// proteomic two-arm tests, single-cell pseudobulk designs, and spatial
// hierarchical designs. All calculators are stateless and pure; degenerate
// inputs produce explicit zero results instead of NaN or Inf.
package power

import (
	"math"

	"github.com/trialworks/biopower/internal/models"
	"github.com/trialworks/biopower/internal/stats"
)

// Default sweep bounds for the proteomic power-vs-N curve.
const (
	proteomicCurveFrom = 5
	proteomicCurveTo   = 150
	proteomicCurveStep = 5
)

// ProteomicCalculator sizes two-arm, two-sided, equal-allocation t-tests on
// bulk protein measurements, decomposing assay CV into technical and
// biological components and applying Bonferroni correction across analytes.
type ProteomicCalculator struct{}

// NewProteomicCalculator returns a new calculator instance.
func NewProteomicCalculator() *ProteomicCalculator {
	return &ProteomicCalculator{}
}

// Calculate derives the standardized effect size and required per-arm
// sample size, plus an achieved-power curve over the default N sweep.
// A zero or undetectable effect (d <= 0) short-circuits to an explicit
// Detectable=false result with RequiredN 0 and no curve.
func (calc *ProteomicCalculator) Calculate(inputs models.ProteomicInputs) models.ProteomicResult {
	totalCV := math.Sqrt(inputs.TechnicalCV*inputs.TechnicalCV + inputs.BiologicalCV*inputs.BiologicalCV)
	effectiveAlpha := calc.effectiveAlpha(inputs)

	result := models.ProteomicResult{
		TotalCV:        totalCV,
		EffectiveAlpha: effectiveAlpha,
	}

	if inputs.ControlMean <= 0 || totalCV <= 0 {
		return result
	}

	sd := inputs.ControlMean * totalCV / 100
	delta := inputs.ControlMean * math.Abs(inputs.PercentChange) / 100
	d := delta / sd
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return result
	}

	zAlpha := stats.Probit(1 - effectiveAlpha/2)
	zPower := stats.Probit(inputs.TargetPower)

	result.Detectable = true
	result.CohensD = d
	result.RequiredN = int(math.Ceil(2 * math.Pow((zAlpha+zPower)/d, 2)))
	result.Curve = calc.curve(d, zAlpha, proteomicCurveFrom, proteomicCurveTo, proteomicCurveStep)
	return result
}

// Power returns the achieved power of an n-per-arm design for the given
// inputs, 0 when the effect is undetectable.
func (calc *ProteomicCalculator) Power(inputs models.ProteomicInputs, n int) float64 {
	res := calc.Calculate(inputs)
	if !res.Detectable || n <= 0 {
		return 0
	}
	zAlpha := stats.Probit(1 - res.EffectiveAlpha/2)
	return achievedPower(res.CohensD, zAlpha, n)
}

func (calc *ProteomicCalculator) effectiveAlpha(inputs models.ProteomicInputs) float64 {
	alpha := inputs.Alpha
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.05
	}
	if inputs.MultiplicityCorrection && inputs.AnalyteCount > 1 {
		alpha /= float64(inputs.AnalyteCount)
	}
	return alpha
}

func (calc *ProteomicCalculator) curve(d, zAlpha float64, from, to, step int) []models.PowerPoint {
	points := make([]models.PowerPoint, 0, (to-from)/step+1)
	for n := from; n <= to; n += step {
		points = append(points, models.PowerPoint{N: n, Power: achievedPower(d, zAlpha, n)})
	}
	return points
}

// achievedPower is the normal-approximation power of a two-sample test with
// n subjects per arm: Phi(sqrt(n*d^2/2) - z_alpha).
func achievedPower(d, zAlpha float64, n int) float64 {
	return stats.CDF(math.Sqrt(float64(n)*d*d/2) - zAlpha)
}
