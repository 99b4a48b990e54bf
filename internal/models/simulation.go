package models

// TimeProfile names the shape of a biomarker response over the follow-up
// visits.
type TimeProfile string

const (
	ProfileLinear    TimeProfile = "linear"
	ProfileImmediate TimeProfile = "immediate"
	ProfileDelayed   TimeProfile = "delayed"
	ProfileBiphasic  TimeProfile = "biphasic"
	ProfilePeakDrop  TimeProfile = "peak_drop"
)

// Valid reports whether the profile is one of the known shapes.
func (p TimeProfile) Valid() bool {
	switch p {
	case ProfileLinear, ProfileImmediate, ProfileDelayed, ProfileBiphasic, ProfilePeakDrop:
		return true
	}
	return false
}

// SimulationConfig parameterizes one cohort generation call. Effect sizes
// are fractional plateau changes (0.30 = 30% at plateau); Variability is the
// between- and within-patient CV as a fraction. The config is immutable for
// the duration of a generation call.
type SimulationConfig struct {
	ScenarioName      string      `json:"scenario_name" mapstructure:"scenario_name"`
	DrugEffectSize    float64     `json:"drug_effect_size" mapstructure:"drug_effect_size"`
	PlaceboEffectSize float64     `json:"placebo_effect_size" mapstructure:"placebo_effect_size"`
	Variability       float64     `json:"variability" mapstructure:"variability"`
	ResponderRate     float64     `json:"responder_rate" mapstructure:"responder_rate"`
	TimeProfile       TimeProfile `json:"time_profile" mapstructure:"time_profile"`
	Drift             float64     `json:"drift" mapstructure:"drift"`
}
