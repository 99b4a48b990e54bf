package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trialworks/biopower/internal/models"
	"github.com/trialworks/biopower/internal/simulation"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatCSV  = "csv"
)

func outputFormat(cmd *cobra.Command) string {
	format, _ := cmd.Flags().GetString("format")
	return format
}

// openOutput returns the destination selected by --out, defaulting to
// stdout.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, f.Close, nil
}

// encode writes v as JSON or YAML. CSV has shape-specific writers below;
// commands without one reject the csv format.
func encode(format string, w io.Writer, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(v)
	case formatCSV:
		return fmt.Errorf("csv output is not supported for this command")
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeCohortCSV emits the flat measurement table with the engine's
// ingestion header: patientId,arm,biomarkerId,timepoint,value.
func writeCohortCSV(w io.Writer, cohort *models.Cohort) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"patientId", "arm", "biomarkerId", "timepoint", "value"}); err != nil {
		return err
	}
	for _, rec := range cohort.Patients {
		for _, m := range rec.Measurements {
			row := []string{
				rec.PatientID,
				string(rec.Arm),
				m.BiomarkerID,
				string(m.Timepoint),
				strconv.FormatFloat(m.Value, 'f', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSummaryCSV(w io.Writer, rows []simulation.SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"biomarkerId", "arm", "timepoint", "n", "mean", "stdDev", "cv", "meanPercentChange"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.BiomarkerID,
			string(r.Arm),
			string(r.Timepoint),
			strconv.Itoa(r.N),
			strconv.FormatFloat(r.Mean, 'f', 4, 64),
			strconv.FormatFloat(r.StdDev, 'f', 4, 64),
			strconv.FormatFloat(r.CV, 'f', 2, 64),
			strconv.FormatFloat(r.MeanPercentChange, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCurveCSV(w io.Writer, curve []models.PowerPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"n", "power"}); err != nil {
		return err
	}
	for _, pt := range curve {
		if err := cw.Write([]string{strconv.Itoa(pt.N), strconv.FormatFloat(pt.Power, 'f', 4, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSweepCSV(w io.Writer, sweep models.SpatialSweep) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"nPerArm", "powerSingle", "powerTwo", "costSingle", "costTwo"}); err != nil {
		return err
	}
	for _, pt := range sweep.Points {
		row := []string{
			strconv.Itoa(pt.NPerArm),
			strconv.FormatFloat(pt.PowerSingle, 'f', 4, 64),
			strconv.FormatFloat(pt.PowerTwo, 'f', 4, 64),
			pt.CostSingle.String(),
			pt.CostTwo.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// readCohort decodes a previously exported cohort. Both the cohort
// envelope and a bare record array are accepted; records are structurally
// validated before the engine touches them.
func readCohort(path string) (*models.Cohort, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cohort: %w", err)
	}

	var cohort models.Cohort
	if err := json.Unmarshal(data, &cohort); err != nil || len(cohort.Patients) == 0 {
		var records []models.PatientRecord
		if arrErr := json.Unmarshal(data, &records); arrErr != nil || len(records) == 0 {
			return nil, fmt.Errorf("parse cohort %s: neither cohort object nor record array", path)
		}
		cohort = models.Cohort{Patients: records}
	}

	if err := models.ValidateRecords(cohort.Patients); err != nil {
		return nil, fmt.Errorf("invalid cohort data: %w", err)
	}
	return &cohort, nil
}
