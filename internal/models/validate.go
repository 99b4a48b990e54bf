package models

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPatientID indicates a record with no patient identifier.
	ErrEmptyPatientID = errors.New("patient record has empty patient id")

	// ErrUnknownArm indicates a record assigned to an unrecognized arm.
	ErrUnknownArm = errors.New("patient record has unknown arm")

	// ErrNonPositiveValue indicates a measurement at or below zero.
	ErrNonPositiveValue = errors.New("measurement value must be positive")

	// ErrDuplicateCell indicates two measurements for the same
	// (biomarker, timepoint) pair on one record.
	ErrDuplicateCell = errors.New("duplicate (biomarker, timepoint) measurement")

	// ErrIncompleteSeries indicates a biomarker missing one or more
	// scheduled visits.
	ErrIncompleteSeries = errors.New("incomplete measurement series")
)

// ValidateRecords checks externally supplied patient data for structural
// soundness before the engine consumes it: known arms, positive values,
// exactly one measurement per (biomarker, timepoint) pair, and a complete
// visit series per biomarker. The first violation is returned with enough
// context to locate it; valid simulated cohorts pass by construction.
func ValidateRecords(records []PatientRecord) error {
	for ri := range records {
		rec := &records[ri]
		if rec.PatientID == "" {
			return fmt.Errorf("record %d: %w", ri, ErrEmptyPatientID)
		}
		if !rec.Arm.Valid() {
			return fmt.Errorf("record %d (%s): %w: %q", ri, rec.PatientID, ErrUnknownArm, rec.Arm)
		}

		seen := make(map[string]map[Timepoint]bool)
		for mi, m := range rec.Measurements {
			if m.Value <= 0 {
				return fmt.Errorf("record %s measurement %d (%s @ %s): %w: %v",
					rec.PatientID, mi, m.BiomarkerID, m.Timepoint, ErrNonPositiveValue, m.Value)
			}
			if m.Timepoint.Index() < 0 {
				return fmt.Errorf("record %s measurement %d (%s): unknown timepoint %q",
					rec.PatientID, mi, m.BiomarkerID, m.Timepoint)
			}
			cells := seen[m.BiomarkerID]
			if cells == nil {
				cells = make(map[Timepoint]bool)
				seen[m.BiomarkerID] = cells
			}
			if cells[m.Timepoint] {
				return fmt.Errorf("record %s (%s @ %s): %w",
					rec.PatientID, m.BiomarkerID, m.Timepoint, ErrDuplicateCell)
			}
			cells[m.Timepoint] = true
		}

		for biomarkerID, cells := range seen {
			if len(cells) != len(Timepoints) {
				return fmt.Errorf("record %s (%s): %w: %d of %d visits present",
					rec.PatientID, biomarkerID, ErrIncompleteSeries, len(cells), len(Timepoints))
			}
		}
	}
	return nil
}
