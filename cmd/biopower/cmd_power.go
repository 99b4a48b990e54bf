package main

import (
	"github.com/spf13/cobra"
	"github.com/trialworks/biopower/internal/models"
	"github.com/trialworks/biopower/internal/power"
)

func newPowerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "power",
		Short: "Sample-size and power calculators",
	}
	cmd.AddCommand(newPowerProteomicCmd(), newPowerSingleCellCmd(), newPowerSpatialCmd())
	return cmd
}

func newPowerProteomicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proteomic",
		Short: "Two-arm bulk-protein test with CV decomposition",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			inputs := models.ProteomicInputs{
				Alpha:        a.cfg.Proteomic.Alpha,
				TargetPower:  a.cfg.Proteomic.TargetPower,
				AnalyteCount: a.cfg.Proteomic.AnalyteCount,
			}
			inputs.ControlMean, _ = cmd.Flags().GetFloat64("control-mean")
			inputs.PercentChange, _ = cmd.Flags().GetFloat64("percent-change")
			inputs.TechnicalCV, _ = cmd.Flags().GetFloat64("tech-cv")
			inputs.BiologicalCV, _ = cmd.Flags().GetFloat64("bio-cv")
			inputs.MultiplicityCorrection, _ = cmd.Flags().GetBool("correction")
			if cmd.Flags().Changed("alpha") {
				inputs.Alpha, _ = cmd.Flags().GetFloat64("alpha")
			}
			if cmd.Flags().Changed("target-power") {
				inputs.TargetPower, _ = cmd.Flags().GetFloat64("target-power")
			}
			if cmd.Flags().Changed("analytes") {
				inputs.AnalyteCount, _ = cmd.Flags().GetInt("analytes")
			}

			result := power.NewProteomicCalculator().Calculate(inputs)

			w, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			if outputFormat(cmd) == formatCSV {
				return writeCurveCSV(w, result.Curve)
			}
			return encode(outputFormat(cmd), w, result)
		},
	}

	cmd.Flags().Float64("control-mean", 100, "Control-arm mean abundance")
	cmd.Flags().Float64("percent-change", 20, "Expected percent change between arms")
	cmd.Flags().Float64("tech-cv", 8, "Technical CV (%)")
	cmd.Flags().Float64("bio-cv", 45, "Biological CV (%)")
	cmd.Flags().Float64("alpha", 0.05, "Significance level (default from config)")
	cmd.Flags().Float64("target-power", 0.8, "Target power (default from config)")
	cmd.Flags().Int("analytes", 0, "Simultaneous analytes (default from config)")
	cmd.Flags().Bool("correction", false, "Apply Bonferroni correction across analytes")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	return cmd
}

func newPowerSingleCellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "singlecell",
		Short: "QC-gated pseudobulk mixed-model design",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			inputs := models.SingleCellInputs{
				MinGenesPerCell: a.cfg.SingleCell.MinGenesPerCell,
				MinTotalCells:   a.cfg.SingleCell.MinTotalCells,
				MinClusterSize:  a.cfg.SingleCell.MinClusterSize,
				Alpha:           a.cfg.SingleCell.Alpha,
			}
			inputs.PatientsPerArm, _ = cmd.Flags().GetInt("patients-per-arm")
			inputs.TargetCellsPerPatient, _ = cmd.Flags().GetFloat64("cells")
			inputs.MeanGenesPerCell, _ = cmd.Flags().GetFloat64("mean-genes")
			inputs.Abundance, _ = cmd.Flags().GetFloat64("abundance")
			inputs.Timepoints, _ = cmd.Flags().GetInt("timepoints")
			inputs.ModuleSize, _ = cmd.Flags().GetFloat64("module-size")
			inputs.EffectSizeLog2, _ = cmd.Flags().GetFloat64("effect")
			inputs.BiologicalCV, _ = cmd.Flags().GetFloat64("bio-cv")
			inputs.IntraSubjectCorr, _ = cmd.Flags().GetFloat64("rho")
			if cmd.Flags().Changed("alpha") {
				inputs.Alpha, _ = cmd.Flags().GetFloat64("alpha")
			}

			calc := power.NewSingleCellCalculator()

			w, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			if matrix, _ := cmd.Flags().GetBool("matrix"); matrix {
				sizes := intRange(4, 40, 4)
				abundances := floatRange(0.02, 0.30, 8)
				return encode(outputFormat(cmd), w, calc.CalculateMatrix(inputs, sizes, abundances))
			}
			return encode(outputFormat(cmd), w, calc.Calculate(inputs))
		},
	}

	cmd.Flags().Int("patients-per-arm", 10, "Patients per arm")
	cmd.Flags().Float64("cells", 2000, "Target cells per patient")
	cmd.Flags().Float64("mean-genes", 1000, "Mean genes detected per cell")
	cmd.Flags().Float64("abundance", 0.2, "Target cell-type abundance fraction")
	cmd.Flags().Int("timepoints", 3, "Number of timepoints")
	cmd.Flags().Float64("module-size", 25, "Co-regulated genes in the module score")
	cmd.Flags().Float64("effect", 0.5, "Log2 effect size")
	cmd.Flags().Float64("bio-cv", 0.4, "Biological CV fraction")
	cmd.Flags().Float64("rho", 0.5, "Intra-subject correlation")
	cmd.Flags().Float64("alpha", 0.05, "Significance level (default from config)")
	cmd.Flags().Bool("matrix", false, "Emit the sample-size x abundance sensitivity matrix")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	return cmd
}

func newPowerSpatialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spatial",
		Short: "Hierarchical spatial-transcriptomics design",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			platformName, _ := cmd.Flags().GetString("platform")
			platform, err := a.cfg.Platform(platformName)
			if err != nil {
				return err
			}

			inputs := models.SpatialInputs{Platform: platform}
			design, _ := cmd.Flags().GetString("design")
			inputs.Design = models.StudyDesign(design)
			inputs.NPerArm, _ = cmd.Flags().GetInt("n-per-arm")
			inputs.SlicesPerPatient, _ = cmd.Flags().GetInt("slices")
			inputs.Timepoints, _ = cmd.Flags().GetInt("timepoints")
			inputs.TreatmentEffect, _ = cmd.Flags().GetFloat64("effect")
			inputs.PatientSD, _ = cmd.Flags().GetFloat64("patient-sd")
			inputs.SliceSD, _ = cmd.Flags().GetFloat64("slice-sd")
			inputs.Alpha, _ = cmd.Flags().GetFloat64("alpha")

			calc := power.NewSpatialCalculator()

			w, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			if sweep, _ := cmd.Flags().GetBool("sweep"); sweep {
				result := calc.Sweep(inputs)
				if outputFormat(cmd) == formatCSV {
					return writeSweepCSV(w, result)
				}
				return encode(outputFormat(cmd), w, result)
			}
			return encode(outputFormat(cmd), w, calc.Calculate(inputs))
		},
	}

	cmd.Flags().String("platform", "", "Spatial platform preset (default: first configured)")
	cmd.Flags().String("design", string(models.DesignTwoArm), "Study design: single-arm or two-arm")
	cmd.Flags().Int("n-per-arm", 10, "Patients per arm")
	cmd.Flags().Int("slices", 3, "Slices per patient")
	cmd.Flags().Int("timepoints", 4, "Number of timepoints")
	cmd.Flags().Float64("effect", 0.4, "Treatment effect")
	cmd.Flags().Float64("patient-sd", 0.5, "Patient-level SD")
	cmd.Flags().Float64("slice-sd", 0.3, "Slice-level SD")
	cmd.Flags().Float64("alpha", 0.05, "Significance level")
	cmd.Flags().Bool("sweep", false, "Emit the dual-design power/cost sweep")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	return cmd
}

func intRange(from, to, step int) []int {
	var out []int
	for n := from; n <= to; n += step {
		out = append(out, n)
	}
	return out
}

func floatRange(from, to float64, steps int) []float64 {
	if steps < 2 {
		return []float64{from}
	}
	out := make([]float64, steps)
	delta := (to - from) / float64(steps-1)
	for i := range out {
		out[i] = from + float64(i)*delta
	}
	return out
}
