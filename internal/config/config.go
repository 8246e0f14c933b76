// Package config loads and saves simulation configuration as YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/m-kovac/shcsim/internal/ripple"
	"github.com/m-kovac/shcsim/internal/shc"
)

const (
	DefaultDt         = 0.1     // ms, the reference step size
	DefaultDurationMs = 10000.0 // 10 s of simulated time
	DefaultLowHz      = 120.0
	DefaultHighHz     = 250.0
	DefaultOrder      = 4
)

type SimConfig struct {
	Dt         float64 `yaml:"dt"`
	DurationMs float64 `yaml:"duration_ms"`
	Integrator string  `yaml:"integrator"`
	Validate   bool    `yaml:"validate"`
}

type DriveConfig struct {
	Kind    string  `yaml:"kind"`   // none, step, ramp
	Target  string  `yaml:"target"` // ca3, ca1, ach
	Amp     float64 `yaml:"amp"`
	StartMs float64 `yaml:"start_ms"`
	StopMs  float64 `yaml:"stop_ms"`
	Slope   float64 `yaml:"slope"`
	Max     float64 `yaml:"max"`
}

type FilterConfig struct {
	LowHz  float64 `yaml:"low_hz"`
	HighHz float64 `yaml:"high_hz"`
	Order  int     `yaml:"order"`
}

type DetectorConfig struct {
	SmoothMs   float64 `yaml:"smooth_ms"`
	EnvelopeMs float64 `yaml:"envelope_ms"`
	GaussShape float64 `yaml:"gauss_shape"`
	MinDurMs   float64 `yaml:"min_dur_ms"`
	ThresholdK float64 `yaml:"threshold_k"`
}

type Config struct {
	Sim      SimConfig      `yaml:"sim"`
	Model    shc.Params     `yaml:"model"`
	Drive    DriveConfig    `yaml:"drive"`
	Filter   FilterConfig   `yaml:"filter"`
	Detector DetectorConfig `yaml:"detector"`
}

func DefaultConfig() *Config {
	det := ripple.NewDetector()
	return &Config{
		Sim: SimConfig{
			Dt:         DefaultDt,
			DurationMs: DefaultDurationMs,
			Integrator: "rk4",
		},
		Model: shc.DefaultParams(),
		Drive: DriveConfig{
			Kind:   "none",
			Target: "ach",
		},
		Filter: FilterConfig{
			LowHz:  DefaultLowHz,
			HighHz: DefaultHighHz,
			Order:  DefaultOrder,
		},
		Detector: DetectorConfig{
			SmoothMs:   det.SmoothMs,
			EnvelopeMs: det.EnvelopeMs,
			GaussShape: det.GaussShape,
			MinDurMs:   det.MinDurMs,
			ThresholdK: det.ThresholdK,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// NewDetector builds a ripple detector from the detector section.
func (c *Config) NewDetector() *ripple.Detector {
	return &ripple.Detector{
		SmoothMs:   c.Detector.SmoothMs,
		EnvelopeMs: c.Detector.EnvelopeMs,
		GaussShape: c.Detector.GaussShape,
		MinDurMs:   c.Detector.MinDurMs,
		ThresholdK: c.Detector.ThresholdK,
	}
}

// DriveParams flattens the drive section into the registry parameter map.
func (c *Config) DriveParams() (map[string]float64, error) {
	idx, err := shc.DriveIndex(c.Drive.Target)
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		"index": float64(idx),
		"amp":   c.Drive.Amp,
		"start": c.Drive.StartMs,
		"stop":  c.Drive.StopMs,
		"slope": c.Drive.Slope,
		"max":   c.Drive.Max,
	}, nil
}
