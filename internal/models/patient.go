package models

import "time"

// Arm identifies a treatment arm of the trial.
type Arm string

const (
	ArmPlacebo Arm = "Placebo"
	ArmDrug1mg Arm = "Drug-1mg"
	ArmDrug2mg Arm = "Drug-2mg"
)

// Arms lists the trial arms in allocation order.
var Arms = []Arm{ArmPlacebo, ArmDrug1mg, ArmDrug2mg}

// ArmForIndex maps a patient index to its arm round-robin, guaranteeing a
// 1:1:1 split whenever the cohort size is divisible by three.
func ArmForIndex(i int) Arm {
	return Arms[i%len(Arms)]
}

// Active reports whether the arm receives drug.
func (a Arm) Active() bool {
	return a == ArmDrug1mg || a == ArmDrug2mg
}

// Valid reports whether the arm is one of the three known arms.
func (a Arm) Valid() bool {
	switch a {
	case ArmPlacebo, ArmDrug1mg, ArmDrug2mg:
		return true
	}
	return false
}

// Timepoint is a scheduled visit in the trial.
type Timepoint string

const (
	TimepointBaseline Timepoint = "baseline"
	TimepointWeek4    Timepoint = "week4"
	TimepointWeek12   Timepoint = "week12"
	TimepointWeek24   Timepoint = "week24"
)

// Timepoints lists visits in chronological order.
var Timepoints = []Timepoint{TimepointBaseline, TimepointWeek4, TimepointWeek12, TimepointWeek24}

// Index returns the chronological position of the timepoint, or -1 for an
// unknown value.
func (tp Timepoint) Index() int {
	for i, t := range Timepoints {
		if t == tp {
			return i
		}
	}
	return -1
}

// Measurement is one biomarker value at one visit. ChangeFromBaseline and
// PercentChange are relative to the same patient's baseline value; the
// baseline measurement carries exact zeros in both fields.
type Measurement struct {
	BiomarkerID        string    `json:"biomarker_id"`
	Timepoint          Timepoint `json:"timepoint"`
	Value              float64   `json:"value"`
	ChangeFromBaseline float64   `json:"change_from_baseline"`
	PercentChange      float64   `json:"percent_change"`
}

// PatientRecord holds one patient's full longitudinal series. Responder
// status is rolled once per biomarker at generation time and persisted so
// that later cohort augmentation reuses rather than re-rolls it.
type PatientRecord struct {
	PatientID    string          `json:"patient_id"`
	Arm          Arm             `json:"arm"`
	Responder    map[string]bool `json:"responder,omitempty"`
	Measurements []Measurement   `json:"measurements"`
}

// MeasurementCount returns the number of measurements on the record.
func (p *PatientRecord) MeasurementCount() int {
	return len(p.Measurements)
}

// Cohort is one generated snapshot of patient records. Regeneration
// replaces the snapshot wholesale; records are never mutated in place.
type Cohort struct {
	RunID       string          `json:"run_id"`
	Scenario    string          `json:"scenario,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Patients    []PatientRecord `json:"patients"`
}
