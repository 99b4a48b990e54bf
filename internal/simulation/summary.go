package simulation

import (
	"sort"

	"github.com/trialworks/biopower/internal/models"
	"github.com/trialworks/biopower/internal/stats"
)

// SummaryRow is the descriptive statistics for one
// (biomarker, arm, timepoint) cell of a cohort.
type SummaryRow struct {
	BiomarkerID       string           `json:"biomarker_id"`
	Arm               models.Arm       `json:"arm"`
	Timepoint         models.Timepoint `json:"timepoint"`
	N                 int              `json:"n"`
	Mean              float64          `json:"mean"`
	StdDev            float64          `json:"std_dev"`
	CV                float64          `json:"cv"`
	MeanPercentChange float64          `json:"mean_percent_change"`
}

// Summarize reduces a cohort to per-cell descriptive statistics, ordered by
// biomarker, then arm allocation order, then visit order.
func Summarize(cohort *models.Cohort) []SummaryRow {
	if cohort == nil {
		return nil
	}

	type cell struct {
		values  []float64
		changes []float64
	}
	type key struct {
		biomarker string
		arm       models.Arm
		timepoint models.Timepoint
	}

	cells := make(map[key]*cell)
	biomarkerSet := make(map[string]bool)
	for _, rec := range cohort.Patients {
		for _, m := range rec.Measurements {
			k := key{m.BiomarkerID, rec.Arm, m.Timepoint}
			c := cells[k]
			if c == nil {
				c = &cell{}
				cells[k] = c
			}
			c.values = append(c.values, m.Value)
			c.changes = append(c.changes, m.PercentChange)
			biomarkerSet[m.BiomarkerID] = true
		}
	}

	biomarkers := make([]string, 0, len(biomarkerSet))
	for id := range biomarkerSet {
		biomarkers = append(biomarkers, id)
	}
	sort.Strings(biomarkers)

	rows := make([]SummaryRow, 0, len(cells))
	for _, id := range biomarkers {
		for _, arm := range models.Arms {
			for _, tp := range models.Timepoints {
				c := cells[key{id, arm, tp}]
				if c == nil {
					continue
				}
				rows = append(rows, SummaryRow{
					BiomarkerID:       id,
					Arm:               arm,
					Timepoint:         tp,
					N:                 len(c.values),
					Mean:              stats.Mean(c.values),
					StdDev:            stats.StdDev(c.values),
					CV:                stats.CV(c.values),
					MeanPercentChange: stats.Mean(c.changes),
				})
			}
		}
	}
	return rows
}
