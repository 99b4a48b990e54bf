package main

import (
	"github.com/spf13/cobra"
	"github.com/trialworks/biopower/internal/config"
	"github.com/trialworks/biopower/internal/models"
)

// presetListing is the scenarios command's output shape.
type presetListing struct {
	DefaultScenario string                             `json:"default_scenario" yaml:"default_scenario"`
	Scenarios       map[string]models.SimulationConfig `json:"scenarios" yaml:"scenarios"`
	Panel           []models.BiomarkerDefinition       `json:"panel" yaml:"panel"`
	Platforms       []config.PlatformPreset            `json:"platforms" yaml:"platforms"`
}

func newScenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List configured scenario, panel and platform presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			listing := presetListing{
				DefaultScenario: a.cfg.Simulation.DefaultScenario,
				Scenarios:       a.cfg.Scenarios,
				Panel:           a.cfg.Panel,
				Platforms:       a.cfg.Spatial.Platforms,
			}

			w, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			defer closeOut()
			return encode(outputFormat(cmd), w, listing)
		},
	}
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	return cmd
}
