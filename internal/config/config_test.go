package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sq-limit/internal/config"
	"sq-limit/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
spectrum:
  file: ./SolarSpectrum_AM15G.txt
  delimiter: "\t"
run:
  target_bandgap_ev: 1.42
  temperature_k: 350
  concentration_suns: 10
output:
  base: results/sq
`)
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./SolarSpectrum_AM15G.txt", c.Spectrum.File)
	assert.Equal(t, "\t", c.Spectrum.ResolveDelimiter())
	assert.Equal(t, 1.42, c.Run.TargetBandgapEV)
	assert.Equal(t, 350.0, c.Run.TemperatureK)
	assert.Equal(t, "results/sq", c.Output.Base)
}

func TestLoad_RequiresSpectrumFile(t *testing.T) {
	path := writeConfig(t, "run:\n  target_bandgap_ev: 1.1\n")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spectrum.file")
}

func TestResolveDelimiter(t *testing.T) {
	assert.Equal(t, "\t", config.SpectrumConfig{}.ResolveDelimiter())
	assert.Equal(t, "\t", config.SpectrumConfig{Delimiter: `\t`}.ResolveDelimiter())
	assert.Equal(t, ";", config.SpectrumConfig{Delimiter: ";"}.ResolveDelimiter())
}

func TestToRunParams_UnsetFieldsDefault(t *testing.T) {
	p := config.RunConfig{}.ToRunParams()
	assert.Equal(t, model.DefaultRunParams(), p)

	p = config.RunConfig{TargetBandgapEV: 1.6, TemperatureK: 250}.ToRunParams()
	assert.Equal(t, 1.6, p.TargetBandgap)
	assert.Equal(t, 250.0, p.Temperature)
	assert.Equal(t, model.DefaultConcentration, p.Concentration)
}

func TestToRunParams_CarriesResolution(t *testing.T) {
	p := config.RunConfig{Resolution: 50}.ToRunParams()
	assert.Equal(t, 50, p.Resolution)
}

func TestMerge_OverridesNonZeroFields(t *testing.T) {
	base := config.Config{
		Spectrum: config.SpectrumConfig{File: "base.txt", Delimiter: "\t"},
		Run:      config.RunConfig{TargetBandgapEV: 1.1, TemperatureK: 300},
		Output:   config.OutputConfig{Base: "results/base"},
	}
	override := config.Config{
		Run:    config.RunConfig{TargetBandgapEV: 1.5},
		Output: config.OutputConfig{Base: "results/override"},
	}
	merged := config.Merge(base, override)

	assert.Equal(t, "base.txt", merged.Spectrum.File)
	assert.Equal(t, 1.5, merged.Run.TargetBandgapEV)
	assert.Equal(t, 300.0, merged.Run.TemperatureK)
	assert.Equal(t, "results/override", merged.Output.Base)
}
