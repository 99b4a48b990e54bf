package models

import "github.com/shopspring/decimal"

// PowerPoint is one (sample size, achieved power) pair on a power curve.
type PowerPoint struct {
	N     int     `json:"n"`
	Power float64 `json:"power"`
}

// ProteomicInputs parameterizes the bulk-protein two-arm power model.
// CVs and PercentChange are percentages.
type ProteomicInputs struct {
	ControlMean            float64 `json:"control_mean"`
	PercentChange          float64 `json:"percent_change"`
	TechnicalCV            float64 `json:"technical_cv"`
	BiologicalCV           float64 `json:"biological_cv"`
	Alpha                  float64 `json:"alpha"`
	TargetPower            float64 `json:"target_power"`
	AnalyteCount           int     `json:"analyte_count"`
	MultiplicityCorrection bool    `json:"multiplicity_correction"`
}

// ProteomicResult is the outcome of a proteomic power calculation.
// Detectable is false when the effect size is zero or degenerate; in that
// case RequiredN is 0 and the curve is empty.
type ProteomicResult struct {
	Detectable     bool         `json:"detectable"`
	TotalCV        float64      `json:"total_cv"`
	CohensD        float64      `json:"cohens_d"`
	EffectiveAlpha float64      `json:"effective_alpha"`
	RequiredN      int          `json:"required_n"`
	Curve          []PowerPoint `json:"curve,omitempty"`
}

// SingleCellInputs parameterizes the single-cell pseudobulk power model.
// Abundance is the target cell type's fractional share of captured cells;
// IntraSubjectCorr is the repeated-measures correlation rho.
type SingleCellInputs struct {
	PatientsPerArm        int     `json:"patients_per_arm"`
	TargetCellsPerPatient float64 `json:"target_cells_per_patient"`
	MeanGenesPerCell      float64 `json:"mean_genes_per_cell"`
	MinGenesPerCell       float64 `json:"min_genes_per_cell"`
	MinTotalCells         float64 `json:"min_total_cells"`
	MinClusterSize        float64 `json:"min_cluster_size"`
	Abundance             float64 `json:"abundance"`
	Timepoints            int     `json:"timepoints"`
	ModuleSize            float64 `json:"module_size"`
	EffectSizeLog2        float64 `json:"effect_size_log2"`
	BiologicalCV          float64 `json:"biological_cv"`
	IntraSubjectCorr      float64 `json:"intra_subject_corr"`
	Alpha                 float64 `json:"alpha"`
}

// QC failure reason codes for the single-cell model. These are the only
// failure modes; QC failure is a first-class result, not an error.
const (
	ReasonLowResolution = "Low Resolution (< QC)"
	ReasonLowYield      = "Low Yield"
	ReasonHighDropout   = "High Dropout"
)

// SingleCellResult is the outcome of a single-cell power evaluation.
// When QCFail is true, Power is 0 and Reason carries the failing gate.
type SingleCellResult struct {
	Power         float64 `json:"power"`
	EffectiveN    float64 `json:"effective_n"`
	ExpectedCells float64 `json:"expected_cells"`
	QCFail        bool    `json:"qc_fail"`
	Reason        string  `json:"reason,omitempty"`
}

// SingleCellMatrix is a sensitivity grid of power over sample size (rows)
// by cell-type abundance (columns), for heatmap rendering.
type SingleCellMatrix struct {
	SampleSizes []int       `json:"sample_sizes"`
	Abundances  []float64   `json:"abundances"`
	Power       [][]float64 `json:"power"`
}

// SpatialPlatform is an immutable preset describing one spatial
// transcriptomics platform. CostPerSlice is in currency units.
type SpatialPlatform struct {
	Name                  string          `json:"name" mapstructure:"name"`
	TechnicalVariance     float64         `json:"technical_variance" mapstructure:"technical_variance"`
	CaptureEfficiency     float64         `json:"capture_efficiency" mapstructure:"capture_efficiency"`
	CostPerSlice          decimal.Decimal `json:"cost_per_slice" mapstructure:"cost_per_slice"`
	EffectiveObservations float64         `json:"effective_observations" mapstructure:"effective_observations"`
	ResolutionGain        float64         `json:"resolution_gain" mapstructure:"resolution_gain"`
}

// StudyDesign selects between a single-arm (paired, pre/post) and a
// two-arm (placebo-controlled) spatial design.
type StudyDesign string

const (
	DesignSingleArm StudyDesign = "single-arm"
	DesignTwoArm    StudyDesign = "two-arm"
)

// ArmMultiplier returns the number of arms the design enrolls.
func (d StudyDesign) ArmMultiplier() int64 {
	if d == DesignTwoArm {
		return 2
	}
	return 1
}

// SpatialInputs parameterizes the spatial hierarchical power model.
// PatientSD and SliceSD are standard deviations of the patient and slice
// random effects; the model squares them internally.
type SpatialInputs struct {
	Platform         SpatialPlatform `json:"platform"`
	Design           StudyDesign     `json:"design"`
	NPerArm          int             `json:"n_per_arm"`
	SlicesPerPatient int             `json:"slices_per_patient"`
	Timepoints       int             `json:"timepoints"`
	TreatmentEffect  float64         `json:"treatment_effect"`
	PatientSD        float64         `json:"patient_sd"`
	SliceSD          float64         `json:"slice_sd"`
	Alpha            float64         `json:"alpha"`
}

// SpatialResult is one spatial power evaluation for a fixed design.
type SpatialResult struct {
	Power   float64         `json:"power"`
	GroupSE float64         `json:"group_se"`
	FinalSE float64         `json:"final_se"`
	Cost    decimal.Decimal `json:"cost"`
}

// VarianceComponent is one term of the spatial variance decomposition.
type VarianceComponent struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Share float64 `json:"share"`
}

// SpatialSweepPoint carries both designs' power and cost at one N.
type SpatialSweepPoint struct {
	NPerArm     int             `json:"n_per_arm"`
	PowerSingle float64         `json:"power_single"`
	PowerTwo    float64         `json:"power_two"`
	CostSingle  decimal.Decimal `json:"cost_single"`
	CostTwo     decimal.Decimal `json:"cost_two"`
}

// SpatialSweep is the dual-curve output for the design-comparison view.
type SpatialSweep struct {
	Points    []SpatialSweepPoint `json:"points"`
	Breakdown []VarianceComponent `json:"variance_breakdown"`
}
