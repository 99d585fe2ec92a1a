package config

import (
	"errors"
	"os"

	"sq-limit/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration shape (YAML).
type Config struct {
	Spectrum SpectrumConfig `yaml:"spectrum"`
	Run      RunConfig      `yaml:"run"`
	Output   OutputConfig   `yaml:"output"`
}

type SpectrumConfig struct {
	// File is the two-column delimited spectrum table (e.g. ASTM AM1.5G).
	File string `yaml:"file"`
	// Delimiter defaults to TAB; "\t" may be spelled literally in YAML.
	Delimiter string `yaml:"delimiter"`
}

type RunConfig struct {
	TargetBandgapEV    float64 `yaml:"target_bandgap_ev"`
	TargetTopBandgapEV float64 `yaml:"target_top_bandgap_ev"`
	TemperatureK       float64 `yaml:"temperature_k"`
	ConcentrationSuns  float64 `yaml:"concentration_suns"`
	Resolution         int     `yaml:"resolution"`
}

type OutputConfig struct {
	// Base is the output path prefix for the three result files.
	// Empty disables text output.
	Base string `yaml:"base"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Spectrum.File == "" {
		return errors.New("spectrum.file is required")
	}
	return nil
}

// ResolveDelimiter returns the configured delimiter, defaulting to TAB.
func (s SpectrumConfig) ResolveDelimiter() string {
	switch s.Delimiter {
	case "", "\\t":
		return "\t"
	default:
		return s.Delimiter
	}
}

// ToRunParams converts the run section to engine parameters. Unset (zero)
// fields take the documented defaults; out-of-range values are left for
// RunParams.Clamp to recover.
func (r RunConfig) ToRunParams() model.RunParams {
	p := model.DefaultRunParams()
	if r.TargetBandgapEV != 0 {
		p.TargetBandgap = r.TargetBandgapEV
	}
	if r.TargetTopBandgapEV != 0 {
		p.TargetTopBandgap = r.TargetTopBandgapEV
	}
	if r.TemperatureK != 0 {
		p.Temperature = r.TemperatureK
	}
	if r.ConcentrationSuns != 0 {
		p.Concentration = r.ConcentrationSuns
	}
	p.Resolution = r.Resolution
	return p
}

// Merge overlays non-zero fields from override onto base, the same way
// request overrides are applied on top of a config file.
func Merge(base, override Config) Config {
	out := base
	if override.Spectrum.File != "" {
		out.Spectrum.File = override.Spectrum.File
	}
	if override.Spectrum.Delimiter != "" {
		out.Spectrum.Delimiter = override.Spectrum.Delimiter
	}
	if override.Run.TargetBandgapEV != 0 {
		out.Run.TargetBandgapEV = override.Run.TargetBandgapEV
	}
	if override.Run.TargetTopBandgapEV != 0 {
		out.Run.TargetTopBandgapEV = override.Run.TargetTopBandgapEV
	}
	if override.Run.TemperatureK != 0 {
		out.Run.TemperatureK = override.Run.TemperatureK
	}
	if override.Run.ConcentrationSuns != 0 {
		out.Run.ConcentrationSuns = override.Run.ConcentrationSuns
	}
	if override.Run.Resolution != 0 {
		out.Run.Resolution = override.Run.Resolution
	}
	if override.Output.Base != "" {
		out.Output.Base = override.Output.Base
	}
	return out
}
