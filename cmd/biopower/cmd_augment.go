package main

import (
	"github.com/spf13/cobra"
	"github.com/trialworks/biopower/internal/logging"
	"github.com/trialworks/biopower/internal/simulation"
)

func newAugmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "augment",
		Short: "Add one biomarker's measurements to an exported cohort",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			in, _ := cmd.Flags().GetString("in")
			cohort, err := readCohort(in)
			if err != nil {
				return err
			}

			biomarkerID, _ := cmd.Flags().GetString("biomarker")
			biomarker, err := a.cfg.Biomarker(biomarkerID)
			if err != nil {
				return err
			}
			scenarioName, _ := cmd.Flags().GetString("scenario")
			scenario, err := a.cfg.Scenario(scenarioName)
			if err != nil {
				return err
			}

			gen := simulation.NewCohortGenerator(sourceFromFlags(cmd))
			augmented, err := gen.Augment(cohort, biomarker, scenario)
			if err != nil {
				return err
			}

			log := logging.WithOperation(logging.WithComponent(a.log, "simulation"), "augment")
			log.Info("cohort augmented",
				"run_id", augmented.RunID,
				"biomarker", biomarker.ID,
				"patients", len(augmented.Patients),
			)

			w, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			if outputFormat(cmd) == formatCSV {
				return writeCohortCSV(w, augmented)
			}
			return encode(outputFormat(cmd), w, augmented)
		},
	}

	cmd.Flags().String("in", "", "Exported cohort JSON file")
	cmd.Flags().String("biomarker", "", "Panel biomarker ID to add")
	cmd.Flags().String("scenario", "", "Scenario preset (default from config)")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("biomarker")
	return cmd
}
