package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/trialworks/biopower/internal/models"
)

var (
	// ErrNoPanel indicates a configuration without any biomarkers.
	ErrNoPanel = errors.New("biomarker panel is empty")

	// ErrNoScenarios indicates a configuration without scenario presets.
	ErrNoScenarios = errors.New("no scenario presets configured")
)

type Config struct {
	Environment string                             `mapstructure:"environment"`
	LogLevel    string                             `mapstructure:"log_level"`
	Simulation  SimulationConfig                   `mapstructure:"simulation"`
	Panel       []models.BiomarkerDefinition       `mapstructure:"panel"`
	Scenarios   map[string]models.SimulationConfig `mapstructure:"scenarios"`
	Proteomic   ProteomicConfig                    `mapstructure:"proteomic"`
	SingleCell  SingleCellConfig                   `mapstructure:"single_cell"`
	Spatial     SpatialConfig                      `mapstructure:"spatial"`
}

type SimulationConfig struct {
	DefaultPatients int    `mapstructure:"default_patients"`
	DefaultScenario string `mapstructure:"default_scenario"`
}

type ProteomicConfig struct {
	Alpha        float64 `mapstructure:"alpha"`
	TargetPower  float64 `mapstructure:"target_power"`
	AnalyteCount int     `mapstructure:"analyte_count"`
}

type SingleCellConfig struct {
	MinGenesPerCell float64 `mapstructure:"min_genes_per_cell"`
	MinTotalCells   float64 `mapstructure:"min_total_cells"`
	MinClusterSize  float64 `mapstructure:"min_cluster_size"`
	Alpha           float64 `mapstructure:"alpha"`
}

type SpatialConfig struct {
	Platforms []PlatformPreset `mapstructure:"platforms"`
}

// PlatformPreset mirrors models.SpatialPlatform with a float cost so it can
// be decoded straight from YAML; ToModel converts the cost to decimal.
type PlatformPreset struct {
	Name                  string  `json:"name" yaml:"name" mapstructure:"name"`
	TechnicalVariance     float64 `json:"technical_variance" yaml:"technical_variance" mapstructure:"technical_variance"`
	CaptureEfficiency     float64 `json:"capture_efficiency" yaml:"capture_efficiency" mapstructure:"capture_efficiency"`
	CostPerSlice          float64 `json:"cost_per_slice" yaml:"cost_per_slice" mapstructure:"cost_per_slice"`
	EffectiveObservations float64 `json:"effective_observations" yaml:"effective_observations" mapstructure:"effective_observations"`
	ResolutionGain        float64 `json:"resolution_gain" yaml:"resolution_gain" mapstructure:"resolution_gain"`
}

// ToModel returns the immutable platform preset used by the power engine.
func (p PlatformPreset) ToModel() models.SpatialPlatform {
	return models.SpatialPlatform{
		Name:                  p.Name,
		TechnicalVariance:     p.TechnicalVariance,
		CaptureEfficiency:     p.CaptureEfficiency,
		CostPerSlice:          decimal.NewFromFloat(p.CostPerSlice),
		EffectiveObservations: p.EffectiveObservations,
		ResolutionGain:        p.ResolutionGain,
	}
}

// Scenario resolves a named scenario preset, carrying the name into the
// returned config.
func (c *Config) Scenario(name string) (models.SimulationConfig, error) {
	if name == "" {
		name = c.Simulation.DefaultScenario
	}
	preset, ok := c.Scenarios[name]
	if !ok {
		return models.SimulationConfig{}, fmt.Errorf("unknown scenario %q", name)
	}
	preset.ScenarioName = name
	return preset, nil
}

// Platform resolves a named spatial platform preset; an empty name returns
// the first configured platform.
func (c *Config) Platform(name string) (models.SpatialPlatform, error) {
	if len(c.Spatial.Platforms) == 0 {
		return models.SpatialPlatform{}, errors.New("no spatial platforms configured")
	}
	if name == "" {
		return c.Spatial.Platforms[0].ToModel(), nil
	}
	for _, p := range c.Spatial.Platforms {
		if strings.EqualFold(p.Name, name) {
			return p.ToModel(), nil
		}
	}
	return models.SpatialPlatform{}, fmt.Errorf("unknown spatial platform %q", name)
}

// Biomarker resolves a panel biomarker by ID.
func (c *Config) Biomarker(id string) (models.BiomarkerDefinition, error) {
	for _, b := range c.Panel {
		if strings.EqualFold(b.ID, id) {
			return b, nil
		}
	}
	return models.BiomarkerDefinition{}, fmt.Errorf("unknown biomarker %q", id)
}

func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("biopower")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine when no explicit path was given;
		// defaults and environment variables carry the configuration.
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Environment = strings.ToLower(cfg.Environment)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if len(c.Panel) == 0 {
		return ErrNoPanel
	}
	for _, b := range c.Panel {
		if b.ID == "" {
			return fmt.Errorf("panel biomarker with empty id")
		}
		if !b.Direction.Valid() {
			return fmt.Errorf("biomarker %s: invalid direction %q", b.ID, b.Direction)
		}
		if b.BaselineMean <= 0 {
			return fmt.Errorf("biomarker %s: baseline mean must be positive, got %v", b.ID, b.BaselineMean)
		}
	}
	if len(c.Scenarios) == 0 {
		return ErrNoScenarios
	}
	for name, s := range c.Scenarios {
		if !s.TimeProfile.Valid() {
			return fmt.Errorf("scenario %s: invalid time profile %q", name, s.TimeProfile)
		}
		if s.Variability < 0 {
			return fmt.Errorf("scenario %s: variability must not be negative", name)
		}
		if s.ResponderRate < 0 || s.ResponderRate > 1 {
			return fmt.Errorf("scenario %s: responder rate must be within [0,1]", name)
		}
	}
	if _, ok := c.Scenarios[c.Simulation.DefaultScenario]; !ok {
		return fmt.Errorf("default scenario %q is not configured", c.Simulation.DefaultScenario)
	}
	for _, p := range c.Spatial.Platforms {
		if p.Name == "" {
			return fmt.Errorf("spatial platform with empty name")
		}
		if p.CaptureEfficiency <= 0 || p.CaptureEfficiency > 1 {
			return fmt.Errorf("platform %s: capture efficiency must be within (0,1]", p.Name)
		}
		if p.CostPerSlice < 0 {
			return fmt.Errorf("platform %s: cost per slice must not be negative", p.Name)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("simulation.default_patients", 600)
	v.SetDefault("simulation.default_scenario", "expected")

	v.SetDefault("panel", []map[string]interface{}{
		{"id": "crp", "name": "C-Reactive Protein", "category": "inflammation", "unit": "mg/L", "direction": "lower_is_better", "baseline_mean": 8.0},
		{"id": "il6", "name": "Interleukin-6", "category": "inflammation", "unit": "pg/mL", "direction": "lower_is_better", "baseline_mean": 3.2},
		{"id": "adiponectin", "name": "Adiponectin", "category": "metabolic", "unit": "ug/mL", "direction": "higher_is_better", "baseline_mean": 6.5},
		{"id": "hba1c", "name": "Hemoglobin A1c", "category": "glycemic", "unit": "%", "direction": "lower_is_better", "baseline_mean": 5.9},
	})

	v.SetDefault("scenarios", map[string]map[string]interface{}{
		"expected": {
			"drug_effect_size": 0.30, "placebo_effect_size": 0.05,
			"variability": 0.25, "responder_rate": 0.60,
			"time_profile": "linear", "drift": 0.02,
		},
		"optimistic": {
			"drug_effect_size": 0.45, "placebo_effect_size": 0.05,
			"variability": 0.20, "responder_rate": 0.75,
			"time_profile": "immediate", "drift": 0.02,
		},
		"conservative": {
			"drug_effect_size": 0.15, "placebo_effect_size": 0.05,
			"variability": 0.35, "responder_rate": 0.40,
			"time_profile": "delayed", "drift": 0.03,
		},
	})

	v.SetDefault("proteomic.alpha", 0.05)
	v.SetDefault("proteomic.target_power", 0.8)
	v.SetDefault("proteomic.analyte_count", 1500)

	v.SetDefault("single_cell.min_genes_per_cell", 200)
	v.SetDefault("single_cell.min_total_cells", 500)
	v.SetDefault("single_cell.min_cluster_size", 50)
	v.SetDefault("single_cell.alpha", 0.05)

	v.SetDefault("spatial.platforms", []map[string]interface{}{
		{"name": "visium", "technical_variance": 0.8, "capture_efficiency": 0.8, "cost_per_slice": 500.0, "effective_observations": 1000.0, "resolution_gain": 1.0},
		{"name": "xenium", "technical_variance": 0.5, "capture_efficiency": 0.9, "cost_per_slice": 1200.0, "effective_observations": 5000.0, "resolution_gain": 0.8},
		{"name": "cosmx", "technical_variance": 0.6, "capture_efficiency": 0.85, "cost_per_slice": 900.0, "effective_observations": 3000.0, "resolution_gain": 0.85},
	})
}
