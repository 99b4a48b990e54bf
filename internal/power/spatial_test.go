package power

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trialworks/biopower/internal/models"
)

func testPlatform() models.SpatialPlatform {
	return models.SpatialPlatform{
		Name:                  "visium",
		TechnicalVariance:     0.8,
		CaptureEfficiency:     0.8,
		CostPerSlice:          decimal.NewFromInt(500),
		EffectiveObservations: 1000,
		ResolutionGain:        1.0,
	}
}

func testSpatialInputs(design models.StudyDesign) models.SpatialInputs {
	return models.SpatialInputs{
		Platform:         testPlatform(),
		Design:           design,
		NPerArm:          10,
		SlicesPerPatient: 3,
		Timepoints:       4,
		TreatmentEffect:  0.4,
		PatientSD:        0.5,
		SliceSD:          0.3,
		Alpha:            0.05,
	}
}

func TestSpatialReferenceValues(t *testing.T) {
	calc := NewSpatialCalculator()

	single := calc.Calculate(testSpatialInputs(models.DesignSingleArm))
	two := calc.Calculate(testSpatialInputs(models.DesignTwoArm))

	// Hand-computed with rho=0.45: gain=2.35, sigmaT^2=1.0,
	// groupVar = 0.25/23.5 + 0.09/120 + 1.0/120000 = 0.011397.
	assert.InDelta(t, 0.10676, single.GroupSE, 1e-4)
	assert.InDelta(t, 0.9466, single.Power, 0.005)
	assert.InDelta(t, 0.7547, two.Power, 0.005)
}

func TestSpatialTwoArmNeverBeatsSingleArm(t *testing.T) {
	calc := NewSpatialCalculator()
	for n := 4; n <= 80; n += 4 {
		single := testSpatialInputs(models.DesignSingleArm)
		single.NPerArm = n
		two := testSpatialInputs(models.DesignTwoArm)
		two.NPerArm = n
		assert.LessOrEqual(t, calc.Calculate(two).Power, calc.Calculate(single).Power, "n=%d", n)
	}
}

func TestSpatialCostExact(t *testing.T) {
	calc := NewSpatialCalculator()

	two := calc.Calculate(testSpatialInputs(models.DesignTwoArm))
	// 10 patients * 2 arms * 3 slices * 4 visits * 500 / 1000 = 120
	assert.True(t, two.Cost.Equal(decimal.NewFromInt(120)), "got %s", two.Cost)

	single := calc.Calculate(testSpatialInputs(models.DesignSingleArm))
	assert.True(t, single.Cost.Equal(decimal.NewFromInt(60)), "got %s", single.Cost)
}

func TestSpatialSweep(t *testing.T) {
	calc := NewSpatialCalculator()
	sweep := calc.Sweep(testSpatialInputs(models.DesignTwoArm))

	require.Len(t, sweep.Points, 20) // 4..80 step 4
	prevSingle, prevTwo := 0.0, 0.0
	for _, pt := range sweep.Points {
		assert.GreaterOrEqual(t, pt.PowerSingle, prevSingle, "n=%d", pt.NPerArm)
		assert.GreaterOrEqual(t, pt.PowerTwo, prevTwo, "n=%d", pt.NPerArm)
		assert.LessOrEqual(t, pt.PowerTwo, pt.PowerSingle, "n=%d", pt.NPerArm)
		assert.True(t, pt.CostTwo.Equal(pt.CostSingle.Mul(decimal.NewFromInt(2))), "n=%d", pt.NPerArm)
		prevSingle, prevTwo = pt.PowerSingle, pt.PowerTwo
	}
}

func TestSpatialVarianceBreakdown(t *testing.T) {
	calc := NewSpatialCalculator()
	breakdown := calc.VarianceBreakdown(testSpatialInputs(models.DesignTwoArm))

	require.Len(t, breakdown, 3)
	assert.Equal(t, "patient", breakdown[0].Name)
	assert.Equal(t, "slice", breakdown[1].Name)
	assert.Equal(t, "technical", breakdown[2].Name)

	totalShare := 0.0
	for _, c := range breakdown {
		assert.Greater(t, c.Value, 0.0)
		totalShare += c.Share
	}
	assert.InDelta(t, 1.0, totalShare, 1e-9)

	// With a high-sensitivity platform the patient component dominates.
	assert.Greater(t, breakdown[0].Share, breakdown[1].Share)
}

func TestSpatialResolutionGainShrinksPatientVariance(t *testing.T) {
	calc := NewSpatialCalculator()
	base := testSpatialInputs(models.DesignTwoArm)
	sharpened := base
	sharpened.Platform.ResolutionGain = 0.5

	assert.Greater(t, calc.Calculate(sharpened).Power, calc.Calculate(base).Power)
}

func TestSpatialDegenerateInputs(t *testing.T) {
	calc := NewSpatialCalculator()

	inputs := testSpatialInputs(models.DesignTwoArm)
	inputs.NPerArm = 0
	res := calc.Calculate(inputs)
	assert.Zero(t, res.Power)
	assert.True(t, res.Cost.IsZero())
	assert.Nil(t, calc.VarianceBreakdown(inputs))

	inputs = testSpatialInputs(models.DesignTwoArm)
	inputs.Timepoints = 0
	assert.Zero(t, calc.Calculate(inputs).Power)
}
