package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trialworks/biopower/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 600, cfg.Simulation.DefaultPatients)
	assert.Len(t, cfg.Panel, 4)
	assert.Len(t, cfg.Scenarios, 3)
	assert.Len(t, cfg.Spatial.Platforms, 3)
	assert.Equal(t, 1500, cfg.Proteomic.AnalyteCount)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
log_level: debug
simulation:
  default_scenario: pilot
scenarios:
  pilot:
    drug_effect_size: 0.2
    placebo_effect_size: 0.05
    variability: 0.3
    responder_rate: 0.5
    time_profile: biphasic
    drift: 0.01
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	scenario, err := cfg.Scenario("")
	require.NoError(t, err)
	assert.Equal(t, "pilot", scenario.ScenarioName)
	assert.Equal(t, models.ProfileBiphasic, scenario.TimeProfile)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestScenarioResolution(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	scenario, err := cfg.Scenario("optimistic")
	require.NoError(t, err)
	assert.Equal(t, "optimistic", scenario.ScenarioName)
	assert.Equal(t, 0.45, scenario.DrugEffectSize)

	_, err = cfg.Scenario("worst-case")
	assert.Error(t, err)
}

func TestPlatformResolution(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	p, err := cfg.Platform("Xenium")
	require.NoError(t, err)
	assert.Equal(t, "xenium", p.Name)
	assert.Equal(t, "1200", p.CostPerSlice.String())

	first, err := cfg.Platform("")
	require.NoError(t, err)
	assert.Equal(t, "visium", first.Name)

	_, err = cfg.Platform("slide-seq")
	assert.Error(t, err)
}

func TestBiomarkerResolution(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	b, err := cfg.Biomarker("CRP")
	require.NoError(t, err)
	assert.Equal(t, models.LowerIsBetter, b.Direction)

	_, err = cfg.Biomarker("tnf")
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"empty panel", func(c *Config) { c.Panel = nil }},
		{"bad direction", func(c *Config) { c.Panel[0].Direction = "sideways" }},
		{"non-positive baseline", func(c *Config) { c.Panel[0].BaselineMean = 0 }},
		{"no scenarios", func(c *Config) { c.Scenarios = nil }},
		{"bad profile", func(c *Config) {
			s := c.Scenarios["expected"]
			s.TimeProfile = "sigmoid"
			c.Scenarios["expected"] = s
		}},
		{"responder rate above one", func(c *Config) {
			s := c.Scenarios["expected"]
			s.ResponderRate = 1.2
			c.Scenarios["expected"] = s
		}},
		{"default scenario missing", func(c *Config) { c.Simulation.DefaultScenario = "ghost" }},
		{"bad capture efficiency", func(c *Config) { c.Spatial.Platforms[0].CaptureEfficiency = 0 }},
		{"negative cost", func(c *Config) { c.Spatial.Platforms[0].CostPerSlice = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
