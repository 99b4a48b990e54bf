package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSeries(biomarkerID string) []Measurement {
	out := make([]Measurement, 0, len(Timepoints))
	for _, tp := range Timepoints {
		out = append(out, Measurement{BiomarkerID: biomarkerID, Timepoint: tp, Value: 10})
	}
	return out
}

func TestValidateRecordsAccepted(t *testing.T) {
	records := []PatientRecord{
		{PatientID: "PT-0001", Arm: ArmPlacebo, Measurements: fullSeries("crp")},
		{PatientID: "PT-0002", Arm: ArmDrug2mg, Measurements: fullSeries("crp")},
	}
	require.NoError(t, ValidateRecords(records))
}

func TestValidateRecordsRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PatientRecord)
		wantErr error
	}{
		{
			name:    "empty patient id",
			mutate:  func(r *PatientRecord) { r.PatientID = "" },
			wantErr: ErrEmptyPatientID,
		},
		{
			name:    "unknown arm",
			mutate:  func(r *PatientRecord) { r.Arm = "Drug-10mg" },
			wantErr: ErrUnknownArm,
		},
		{
			name:    "non-positive value",
			mutate:  func(r *PatientRecord) { r.Measurements[2].Value = 0 },
			wantErr: ErrNonPositiveValue,
		},
		{
			name: "duplicate cell",
			mutate: func(r *PatientRecord) {
				r.Measurements = append(r.Measurements, Measurement{
					BiomarkerID: "crp", Timepoint: TimepointWeek4, Value: 5,
				})
			},
			wantErr: ErrDuplicateCell,
		},
		{
			name: "incomplete series",
			mutate: func(r *PatientRecord) {
				r.Measurements = r.Measurements[:3]
			},
			wantErr: ErrIncompleteSeries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := PatientRecord{PatientID: "PT-0001", Arm: ArmDrug1mg, Measurements: fullSeries("crp")}
			tt.mutate(&rec)
			err := ValidateRecords([]PatientRecord{rec})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRecordsUnknownTimepoint(t *testing.T) {
	rec := PatientRecord{PatientID: "PT-0001", Arm: ArmDrug1mg, Measurements: fullSeries("crp")}
	rec.Measurements[1].Timepoint = "week52"
	err := ValidateRecords([]PatientRecord{rec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown timepoint")
}
