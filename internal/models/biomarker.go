package models

// Direction states whether a decrease or an increase in a biomarker is the
// desired clinical response.
type Direction string

const (
	LowerIsBetter  Direction = "lower_is_better"
	HigherIsBetter Direction = "higher_is_better"
)

// Sign returns the multiplier applied to a beneficial effect: -1 when lower
// values are better, +1 otherwise.
func (d Direction) Sign() float64 {
	if d == LowerIsBetter {
		return -1
	}
	return 1
}

// Valid reports whether the direction is one of the two known values.
func (d Direction) Valid() bool {
	return d == LowerIsBetter || d == HigherIsBetter
}

// BiomarkerDefinition describes one assayed biomarker. Definitions are
// created by configuration and never mutated afterwards.
type BiomarkerDefinition struct {
	ID           string    `json:"id" mapstructure:"id"`
	Name         string    `json:"name" mapstructure:"name"`
	Category     string    `json:"category" mapstructure:"category"`
	Unit         string    `json:"unit" mapstructure:"unit"`
	Direction    Direction `json:"direction" mapstructure:"direction"`
	BaselineMean float64   `json:"baseline_mean" mapstructure:"baseline_mean"`
}
