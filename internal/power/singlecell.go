package power

import (
	"math"

	"github.com/trialworks/biopower/internal/calibration"
	"github.com/trialworks/biopower/internal/models"
	"github.com/trialworks/biopower/internal/stats"
)

// SingleCellCalculator evaluates pseudobulk mixed-model designs. QC gates
// run in a fixed order and short-circuit at the first failure; a failed
// gate is a first-class zero-power result with a reason code, never an
// error.
type SingleCellCalculator struct{}

// NewSingleCellCalculator returns a new calculator instance.
func NewSingleCellCalculator() *SingleCellCalculator {
	return &SingleCellCalculator{}
}

// Calculate runs the QC gates and, when all pass, the variance model:
// biological variance attenuated by intra-subject correlation and repeated
// visits, technical variance attenuated by pseudobulk counts and module
// size.
func (calc *SingleCellCalculator) Calculate(inputs models.SingleCellInputs) models.SingleCellResult {
	if inputs.MeanGenesPerCell < inputs.MinGenesPerCell {
		return models.SingleCellResult{QCFail: true, Reason: models.ReasonLowResolution}
	}
	if inputs.TargetCellsPerPatient < inputs.MinTotalCells {
		return models.SingleCellResult{QCFail: true, Reason: models.ReasonLowYield}
	}

	expectedCells := inputs.TargetCellsPerPatient * inputs.Abundance
	dropout := 1.0
	if inputs.MinClusterSize > 0 {
		dropout = math.Min(1, expectedCells/inputs.MinClusterSize)
	}
	effectiveN := float64(inputs.PatientsPerArm) * dropout

	if effectiveN < calibration.SingleCellMinEffectiveN {
		return models.SingleCellResult{
			EffectiveN:    effectiveN,
			ExpectedCells: expectedCells,
			QCFail:        true,
			Reason:        models.ReasonHighDropout,
		}
	}

	timepoints := float64(inputs.Timepoints)
	if timepoints < 1 {
		timepoints = 1
	}
	rho := clamp(inputs.IntraSubjectCorr, 0, 0.99)
	moduleSize := math.Max(1, inputs.ModuleSize)

	longitudinalFactor := 1 / (1 + (timepoints-2)*calibration.SingleCellLongitudinalDivisor)
	bioVariance := 2 * inputs.BiologicalCV * inputs.BiologicalCV / effectiveN * (1 - rho) * longitudinalFactor

	pseudobulkCounts := expectedCells * (2.0 / (calibration.ResolutionReferenceGenes / math.Max(inputs.MeanGenesPerCell, 1)))
	techVariance := 2 / (effectiveN * timepoints * pseudobulkCounts * moduleSize)

	se := math.Sqrt(bioVariance + techVariance)
	result := models.SingleCellResult{
		EffectiveN:    effectiveN,
		ExpectedCells: expectedCells,
	}
	if se <= 0 || math.IsNaN(se) || math.IsInf(se, 0) {
		if inputs.EffectSizeLog2 != 0 && se == 0 {
			result.Power = 1
		}
		return result
	}

	alpha := inputs.Alpha
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.05
	}
	z := math.Abs(inputs.EffectSizeLog2)/se - stats.Probit(1-alpha/2)
	result.Power = clamp(stats.CDF(z), 0, 1)
	return result
}

// CalculateMatrix evaluates the model across a sample-size by abundance
// grid for sensitivity-heatmap rendering. Rows follow sampleSizes, columns
// follow abundances.
func (calc *SingleCellCalculator) CalculateMatrix(
	inputs models.SingleCellInputs,
	sampleSizes []int,
	abundances []float64,
) models.SingleCellMatrix {
	matrix := models.SingleCellMatrix{
		SampleSizes: sampleSizes,
		Abundances:  abundances,
		Power:       make([][]float64, len(sampleSizes)),
	}
	for i, n := range sampleSizes {
		row := make([]float64, len(abundances))
		for j, abundance := range abundances {
			cell := inputs
			cell.PatientsPerArm = n
			cell.Abundance = abundance
			row[j] = calc.Calculate(cell).Power
		}
		matrix.Power[i] = row
	}
	return matrix
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
