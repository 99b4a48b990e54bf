package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trialworks/biopower/internal/logging"
	"github.com/trialworks/biopower/internal/models"
	"github.com/trialworks/biopower/internal/simulation"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate a synthetic longitudinal cohort",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			patients, _ := cmd.Flags().GetInt("patients")
			if patients <= 0 {
				patients = a.cfg.Simulation.DefaultPatients
			}
			scenarioName, _ := cmd.Flags().GetString("scenario")
			scenario, err := a.cfg.Scenario(scenarioName)
			if err != nil {
				return err
			}
			panel, err := resolvePanel(cmd, a)
			if err != nil {
				return err
			}

			gen := simulation.NewCohortGenerator(sourceFromFlags(cmd))
			cohort, err := gen.Generate(patients, panel, scenario)
			if err != nil {
				return err
			}

			log := logging.WithOperation(logging.WithComponent(a.log, "simulation"), "generate")
			log.Info("cohort generated",
				"run_id", cohort.RunID,
				"scenario", cohort.Scenario,
				"patients", len(cohort.Patients),
				"biomarkers", len(panel),
			)

			w, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			if outputFormat(cmd) == formatCSV {
				return writeCohortCSV(w, cohort)
			}
			return encode(outputFormat(cmd), w, cohort)
		},
	}

	cmd.Flags().Int("patients", 0, "Cohort size (default from config)")
	cmd.Flags().String("scenario", "", "Scenario preset (default from config)")
	cmd.Flags().String("biomarkers", "", "Comma-separated panel biomarker IDs (default: all)")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	return cmd
}

func resolvePanel(cmd *cobra.Command, a *app) ([]models.BiomarkerDefinition, error) {
	spec, _ := cmd.Flags().GetString("biomarkers")
	if spec == "" {
		return a.cfg.Panel, nil
	}
	var panel []models.BiomarkerDefinition
	for _, id := range strings.Split(spec, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		b, err := a.cfg.Biomarker(id)
		if err != nil {
			return nil, err
		}
		panel = append(panel, b)
	}
	if len(panel) == 0 {
		return nil, fmt.Errorf("no biomarkers selected")
	}
	return panel, nil
}
