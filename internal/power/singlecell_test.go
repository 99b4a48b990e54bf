package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trialworks/biopower/internal/models"
)

func healthySingleCellInputs() models.SingleCellInputs {
	return models.SingleCellInputs{
		PatientsPerArm:        10,
		TargetCellsPerPatient: 2000,
		MeanGenesPerCell:      1000,
		MinGenesPerCell:       200,
		MinTotalCells:         500,
		MinClusterSize:        50,
		Abundance:             0.2,
		Timepoints:            3,
		ModuleSize:            25,
		EffectSizeLog2:        0.5,
		BiologicalCV:          0.4,
		IntraSubjectCorr:      0.5,
		Alpha:                 0.05,
	}
}

func TestSingleCellHealthyDesign(t *testing.T) {
	calc := NewSingleCellCalculator()
	res := calc.Calculate(healthySingleCellInputs())

	require.False(t, res.QCFail)
	assert.Empty(t, res.Reason)
	assert.Equal(t, 10.0, res.EffectiveN)
	assert.Equal(t, 400.0, res.ExpectedCells)
	// Hand-computed: bioVar=0.010667, techVar=1.67e-6, SE=0.10329,
	// z = 0.5/SE - 1.96 = 2.881.
	assert.InDelta(t, 0.998, res.Power, 0.002)
}

func TestSingleCellLowResolutionGate(t *testing.T) {
	calc := NewSingleCellCalculator()

	// The first gate fires regardless of every other input.
	tests := []struct {
		name   string
		mutate func(*models.SingleCellInputs)
	}{
		{"otherwise healthy", func(in *models.SingleCellInputs) {}},
		{"huge cohort", func(in *models.SingleCellInputs) { in.PatientsPerArm = 10000 }},
		{"huge effect", func(in *models.SingleCellInputs) { in.EffectSizeLog2 = 8 }},
		{"also low yield", func(in *models.SingleCellInputs) { in.TargetCellsPerPatient = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := healthySingleCellInputs()
			inputs.MeanGenesPerCell = 150 // below MinGenesPerCell
			tt.mutate(&inputs)
			res := calc.Calculate(inputs)
			assert.True(t, res.QCFail)
			assert.Equal(t, models.ReasonLowResolution, res.Reason)
			assert.Zero(t, res.Power)
		})
	}
}

func TestSingleCellLowYieldGate(t *testing.T) {
	calc := NewSingleCellCalculator()
	inputs := healthySingleCellInputs()
	inputs.TargetCellsPerPatient = 400 // below MinTotalCells

	res := calc.Calculate(inputs)
	assert.True(t, res.QCFail)
	assert.Equal(t, models.ReasonLowYield, res.Reason)
	assert.Zero(t, res.Power)
}

func TestSingleCellHighDropoutGate(t *testing.T) {
	calc := NewSingleCellCalculator()
	inputs := healthySingleCellInputs()
	inputs.Abundance = 0.005 // expected 10 cells, dropout 0.2, effectiveN 2

	res := calc.Calculate(inputs)
	assert.True(t, res.QCFail)
	assert.Equal(t, models.ReasonHighDropout, res.Reason)
	assert.Zero(t, res.Power)
	assert.InDelta(t, 2.0, res.EffectiveN, 1e-9)
	assert.InDelta(t, 10.0, res.ExpectedCells, 1e-9)
}

func TestSingleCellDropoutAttenuatesN(t *testing.T) {
	calc := NewSingleCellCalculator()
	inputs := healthySingleCellInputs()
	inputs.Abundance = 0.01 // expected 20 cells, dropout 0.4

	res := calc.Calculate(inputs)
	require.False(t, res.QCFail)
	assert.InDelta(t, 4.0, res.EffectiveN, 1e-9)

	full := calc.Calculate(healthySingleCellInputs())
	assert.Less(t, res.Power, full.Power, "attenuated designs must lose power")
}

func TestSingleCellPowerGrowsWithDesignStrength(t *testing.T) {
	calc := NewSingleCellCalculator()

	t.Run("more patients", func(t *testing.T) {
		small := healthySingleCellInputs()
		small.PatientsPerArm = 5
		large := healthySingleCellInputs()
		large.PatientsPerArm = 40
		assert.Greater(t, calc.Calculate(large).Power, calc.Calculate(small).Power)
	})

	t.Run("more timepoints", func(t *testing.T) {
		short := healthySingleCellInputs()
		short.Timepoints = 2
		long := healthySingleCellInputs()
		long.Timepoints = 4
		assert.GreaterOrEqual(t, calc.Calculate(long).Power, calc.Calculate(short).Power)
	})

	t.Run("larger module", func(t *testing.T) {
		single := healthySingleCellInputs()
		single.ModuleSize = 1
		module := healthySingleCellInputs()
		module.ModuleSize = 50
		assert.GreaterOrEqual(t, calc.Calculate(module).Power, calc.Calculate(single).Power)
	})
}

func TestSingleCellMatrixShape(t *testing.T) {
	calc := NewSingleCellCalculator()
	sizes := []int{4, 8, 12, 16}
	abundances := []float64{0.05, 0.1, 0.2}

	matrix := calc.CalculateMatrix(healthySingleCellInputs(), sizes, abundances)
	require.Len(t, matrix.Power, len(sizes))
	for i := range matrix.Power {
		require.Len(t, matrix.Power[i], len(abundances))
	}

	// For a fixed abundance, power must not drop as patients are added.
	for j := range abundances {
		for i := 1; i < len(sizes); i++ {
			assert.GreaterOrEqual(t, matrix.Power[i][j], matrix.Power[i-1][j],
				"n=%d abundance=%v", sizes[i], abundances[j])
		}
	}
}
