package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Warnings())
	assert.Equal(t, 50, cfg.GridSize)
	assert.Equal(t, 30, cfg.JailPeriod)
	assert.Equal(t, 10, cfg.KillThreshold)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	doc := `
seed: 7
gridsize: 20
cop_density: 0.04
legitimacy: 0.8
legitimacy_decay: true
include_wealth: false
tick_interval_ms: 25
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 20, cfg.GridSize)
	assert.Equal(t, 0.04, cfg.CopDensity)
	assert.Equal(t, 0.7, cfg.CitizenDensity, "unset keys keep defaults")
	assert.Equal(t, 0.8, cfg.Legitimacy)
	assert.True(t, cfg.LegitimacyDecay)
	assert.False(t, cfg.IncludeWealth)
	assert.Equal(t, 25*time.Millisecond, cfg.TickInterval())
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_SchemaRejects(t *testing.T) {
	cases := map[string]string{
		"negative gridsize":  "gridsize: -3",
		"density above one":  "cop_density: 1.5",
		"fractional grid":    "gridsize: 2.5",
		"unknown key":        "gridsiz: 10",
		"wrong type":         "include_wealth: maybe",
		"zero rich":          "rich_threshold: 0",
		"legitimacy above 1": "legitimacy: 1.2",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWarnings_DensitySum(t *testing.T) {
	cfg, err := Parse([]byte("cop_density: 0.5\ncitizen_density: 0.7\n"))
	require.NoError(t, err, "density sum is a warning, not an error")
	require.Len(t, cfg.Warnings(), 1)
	assert.Contains(t, cfg.Warnings()[0], "density ratios exceed 1")
}

func TestWarnings_Legitimacy(t *testing.T) {
	cfg, err := Parse([]byte("legitimacy: 0\n"))
	require.NoError(t, err, "zero legitimacy is permitted")
	require.Len(t, cfg.Warnings(), 1)
	assert.Contains(t, cfg.Warnings()[0], "outside [0.001, 1]")

	cfg.Legitimacy = MinLegitimacy
	assert.Empty(t, cfg.Warnings())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.GridSize = 0
	cfg.CopVision = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gridsize")
	assert.Contains(t, err.Error(), "vision")
}
