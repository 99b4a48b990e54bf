package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trialworks/biopower/internal/models"
	"github.com/trialworks/biopower/internal/stats"
)

var (
	// ErrEmptyPanel indicates a generation call without biomarkers.
	ErrEmptyPanel = errors.New("at least one biomarker is required")

	// ErrInvalidCohortSize indicates a non-positive patient count.
	ErrInvalidCohortSize = errors.New("cohort size must be positive")

	// ErrInvalidProfile indicates an unrecognized time profile.
	ErrInvalidProfile = errors.New("unknown time profile")

	// ErrBiomarkerExists indicates an augment call for a biomarker the
	// cohort already carries.
	ErrBiomarkerExists = errors.New("biomarker already present in cohort")
)

// CohortGenerator orchestrates the trajectory simulator across patients and
// biomarkers. A generated cohort is a snapshot: regeneration replaces it
// wholesale, augmentation returns a new snapshot with the existing
// measurements untouched.
type CohortGenerator struct {
	src *stats.Source
	sim *TrajectorySimulator
}

// NewCohortGenerator returns a generator drawing from src. A nil src falls
// back to a time-seeded source, so repeated generations are statistically
// similar but numerically different by design.
func NewCohortGenerator(src *stats.Source) *CohortGenerator {
	if src == nil {
		src = stats.NewTimeSource()
	}
	return &CohortGenerator{src: src, sim: NewTrajectorySimulator(src)}
}

// Generate builds a cohort of n patients measured on every biomarker in the
// panel. Patients are assigned to arms round-robin (index mod 3), so any n
// divisible by three splits exactly 1:1:1. Responder status is rolled once
// per (patient, biomarker) and persisted on the record.
func (g *CohortGenerator) Generate(
	n int,
	biomarkers []models.BiomarkerDefinition,
	cfg models.SimulationConfig,
) (*models.Cohort, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCohortSize, n)
	}
	if len(biomarkers) == 0 {
		return nil, ErrEmptyPanel
	}
	if !cfg.TimeProfile.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProfile, cfg.TimeProfile)
	}

	patients := make([]models.PatientRecord, 0, n)
	for i := 0; i < n; i++ {
		rec := models.PatientRecord{
			PatientID:    patientID(i),
			Arm:          models.ArmForIndex(i),
			Responder:    make(map[string]bool, len(biomarkers)),
			Measurements: make([]models.Measurement, 0, len(biomarkers)*len(models.Timepoints)),
		}
		for _, b := range biomarkers {
			responder := g.src.Float64() < cfg.ResponderRate
			rec.Responder[b.ID] = responder
			rec.Measurements = append(rec.Measurements, g.sim.Simulate(b, rec.Arm, cfg, responder)...)
		}
		patients = append(patients, rec)
	}

	return &models.Cohort{
		RunID:       uuid.NewString(),
		Scenario:    cfg.ScenarioName,
		GeneratedAt: time.Now().UTC(),
		Patients:    patients,
	}, nil
}

// Augment returns a new cohort snapshot with measurements for one
// additional biomarker appended to every patient. The operation is strictly
// additive: existing measurements are copied unchanged and each patient
// gains exactly one measurement per scheduled visit. The responder roll for
// the new biomarker is made once here and persisted alongside the
// generation-time rolls.
func (g *CohortGenerator) Augment(
	cohort *models.Cohort,
	biomarker models.BiomarkerDefinition,
	cfg models.SimulationConfig,
) (*models.Cohort, error) {
	if cohort == nil || len(cohort.Patients) == 0 {
		return nil, errors.New("cohort is empty")
	}
	if !cfg.TimeProfile.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProfile, cfg.TimeProfile)
	}
	for _, m := range cohort.Patients[0].Measurements {
		if m.BiomarkerID == biomarker.ID {
			return nil, fmt.Errorf("%w: %s", ErrBiomarkerExists, biomarker.ID)
		}
	}

	patients := make([]models.PatientRecord, 0, len(cohort.Patients))
	for _, src := range cohort.Patients {
		rec := models.PatientRecord{
			PatientID:    src.PatientID,
			Arm:          src.Arm,
			Responder:    make(map[string]bool, len(src.Responder)+1),
			Measurements: make([]models.Measurement, len(src.Measurements), len(src.Measurements)+len(models.Timepoints)),
		}
		copy(rec.Measurements, src.Measurements)
		for id, v := range src.Responder {
			rec.Responder[id] = v
		}

		responder := g.src.Float64() < cfg.ResponderRate
		rec.Responder[biomarker.ID] = responder
		rec.Measurements = append(rec.Measurements, g.sim.Simulate(biomarker, rec.Arm, cfg, responder)...)
		patients = append(patients, rec)
	}

	return &models.Cohort{
		RunID:       uuid.NewString(),
		Scenario:    cohort.Scenario,
		GeneratedAt: time.Now().UTC(),
		Patients:    patients,
	}, nil
}

func patientID(index int) string {
	return fmt.Sprintf("PT-%04d", index+1)
}
