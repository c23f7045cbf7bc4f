// Package config loads and validates run parameters.
// A run is described by one YAML document; absent keys keep their defaults.
package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/talgya/unrest/internal/params"
)

//go:embed config.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("config.schema.json", schemaJSON)

// Config holds every construction parameter of a run.
type Config struct {
	Seed int64 `yaml:"seed" json:"seed"`

	// Grid
	GridSize int  `yaml:"gridsize" json:"gridsize"`
	Torus    bool `yaml:"torus" json:"torus"`

	// Population
	CopDensity     float64 `yaml:"cop_density" json:"cop_density"`
	CitizenDensity float64 `yaml:"citizen_density" json:"citizen_density"`
	HardshipNoise  float64 `yaml:"hardship_noise" json:"hardship_noise"` // 0 = uniform hardship

	// Politics
	Legitimacy        float64 `yaml:"legitimacy" json:"legitimacy"`
	LegitimacyDecay   bool    `yaml:"legitimacy_decay" json:"legitimacy_decay"`
	ReductionConstant float64 `yaml:"reduction_constant" json:"reduction_constant"`
	ActiveThreshold   float64 `yaml:"active_threshold" json:"active_threshold"`

	// Economy
	IncludeWealth bool    `yaml:"include_wealth" json:"include_wealth"`
	RichThreshold float64 `yaml:"rich_threshold" json:"rich_threshold"`

	// Enforcement
	JailPeriod    int `yaml:"jail_period" json:"jail_period"`
	KillThreshold int `yaml:"kill_threshold" json:"kill_threshold"`
	CitizenVision int `yaml:"citizen_vision" json:"citizen_vision"`
	CopVision     int `yaml:"cop_vision" json:"cop_vision"`

	// Run control
	MaxTicks         uint64 `yaml:"max_ticks" json:"max_ticks"`       // 0 = until the population floor
	ReportEvery      uint64 `yaml:"report_every" json:"report_every"` // 0 = no periodic report
	TickIntervalMs   int    `yaml:"tick_interval_ms" json:"tick_interval_ms"`
	StrictInvariants bool   `yaml:"strict_invariants" json:"strict_invariants"`
}

// Default returns the standard parameter set.
func Default() Config {
	return Config{
		Seed:              42,
		GridSize:          50,
		CopDensity:        0.01,
		CitizenDensity:    0.7,
		Legitimacy:        1.0,
		LegitimacyDecay:   false,
		ReductionConstant: 0.01,
		ActiveThreshold:   0.2,
		IncludeWealth:     true,
		RichThreshold:     10,
		JailPeriod:        params.JailPeriod,
		KillThreshold:     params.KillThreshold,
		CitizenVision:     params.CitizenVision,
		CopVision:         params.CopVision,
		ReportEvery:       100,
	}
}

// TickInterval returns the wall-clock pause between ticks.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// Load reads a YAML config file, validates it against the schema, and
// overlays it onto Default.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(raw)
}

// Parse validates and decodes a YAML config document.
func Parse(raw []byte) (Config, error) {
	cfg := Default()

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return cfg, fmt.Errorf("config yaml: %w", err)
	}
	if doc == nil {
		return cfg, nil
	}
	if err := validateDocument(doc); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config yaml: %w", err)
	}
	return cfg, cfg.Validate()
}

// validateDocument checks a decoded YAML document against the schema. The
// document is normalized through JSON so the validator sees JSON types.
func validateDocument(doc any) error {
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var v any
	if err := json.Unmarshal(buf, &v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}
	return nil
}

// Validate reports parameter values no run can be built from.
func (c Config) Validate() error {
	var errs []error
	if c.GridSize <= 0 {
		errs = append(errs, fmt.Errorf("gridsize must be positive, got %d", c.GridSize))
	}
	if c.CitizenVision < 1 || c.CopVision < 1 {
		errs = append(errs, fmt.Errorf("vision radii must be at least 1, got citizen=%d cop=%d", c.CitizenVision, c.CopVision))
	}
	if c.JailPeriod < 0 || c.KillThreshold < 0 {
		errs = append(errs, fmt.Errorf("jail_period and kill_threshold must not be negative"))
	}
	if c.RichThreshold <= 0 {
		errs = append(errs, fmt.Errorf("rich_threshold must be positive, got %g", c.RichThreshold))
	}
	return errors.Join(errs...)
}

// MinLegitimacy is the lowest legitimacy that runs without a warning. Zero
// is permitted but degenerate.
const MinLegitimacy = 0.001

// Warnings reports questionable but permitted settings.
func (c Config) Warnings() []string {
	var out []string
	if c.CopDensity+c.CitizenDensity > 1 {
		out = append(out, fmt.Sprintf("density ratios exceed 1 (cop %.3f + citizen %.3f)", c.CopDensity, c.CitizenDensity))
	}
	if c.Legitimacy < MinLegitimacy || c.Legitimacy > 1 {
		out = append(out, fmt.Sprintf("legitimacy %.3f outside [%g, 1]", c.Legitimacy, MinLegitimacy))
	}
	return out
}
