package main

import (
	"github.com/spf13/cobra"
	"github.com/trialworks/biopower/internal/simulation"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Descriptive statistics for an exported cohort",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			cohort, err := readCohort(in)
			if err != nil {
				return err
			}

			rows := simulation.Summarize(cohort)

			w, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			if outputFormat(cmd) == formatCSV {
				return writeSummaryCSV(w, rows)
			}
			return encode(outputFormat(cmd), w, rows)
		},
	}

	cmd.Flags().String("in", "", "Exported cohort JSON file")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
