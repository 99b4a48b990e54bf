package simulation

import (
	"github.com/trialworks/biopower/internal/calibration"
	"github.com/trialworks/biopower/internal/models"
	"github.com/trialworks/biopower/internal/stats"
)

// TrajectorySimulator generates one patient's longitudinal measurement
// series for one biomarker under a pharmacologic/placebo/noise model.
type TrajectorySimulator struct {
	src *stats.Source
}

// NewTrajectorySimulator returns a simulator drawing from src. A nil src
// falls back to a time-seeded source.
func NewTrajectorySimulator(src *stats.Source) *TrajectorySimulator {
	if src == nil {
		src = stats.NewTimeSource()
	}
	return &TrajectorySimulator{src: src}
}

// Simulate produces one measurement per scheduled visit. The patient-level
// baseline is a Gaussian draw around the biomarker's population mean;
// follow-up values apply the arm's plateau effect shaped by the config's
// time profile, plus measurement noise and visit-indexed drift. Change
// fields are always relative to this patient's own baseline, and the
// baseline visit carries exact zeros by construction.
func (s *TrajectorySimulator) Simulate(
	biomarker models.BiomarkerDefinition,
	arm models.Arm,
	cfg models.SimulationConfig,
	isResponder bool,
) []models.Measurement {
	baseline := s.src.Gaussian(biomarker.BaselineMean, biomarker.BaselineMean*cfg.Variability)
	baseline = clampFloor(baseline)

	plateau := s.plateauEffect(biomarker, arm, cfg, isResponder)

	measurements := make([]models.Measurement, 0, len(models.Timepoints))
	measurements = append(measurements, models.Measurement{
		BiomarkerID: biomarker.ID,
		Timepoint:   models.TimepointBaseline,
		Value:       baseline,
	})

	for _, tp := range models.Timepoints[1:] {
		idx := tp.Index()
		frac := plateau * calibration.ProfileMultiplier(cfg.TimeProfile, idx)

		value := baseline * (1 + frac)
		value += s.src.Gaussian(0, baseline*cfg.Variability*calibration.NoiseDamping)
		value += s.src.Gaussian(0, baseline*cfg.Drift*float64(idx))
		value = clampFloor(value)

		change := value - baseline
		measurements = append(measurements, models.Measurement{
			BiomarkerID:        biomarker.ID,
			Timepoint:          tp,
			Value:              value,
			ChangeFromBaseline: change,
			PercentChange:      change / baseline * 100,
		})
	}
	return measurements
}

// plateauEffect is the fractional change reached at full effect,
// sign-corrected for the biomarker's beneficial direction. Placebo arms and
// non-responders on active arms follow the placebo effect; responders scale
// the drug effect by their arm's dose factor.
func (s *TrajectorySimulator) plateauEffect(
	biomarker models.BiomarkerDefinition,
	arm models.Arm,
	cfg models.SimulationConfig,
	isResponder bool,
) float64 {
	magnitude := cfg.PlaceboEffectSize
	if arm.Active() && isResponder {
		magnitude = cfg.DrugEffectSize * calibration.DoseFactor(arm)
	}
	return biomarker.Direction.Sign() * magnitude
}

func clampFloor(v float64) float64 {
	if v < calibration.EpsilonFloor {
		return calibration.EpsilonFloor
	}
	return v
}
