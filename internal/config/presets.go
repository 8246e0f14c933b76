package config

import "sort"

// Presets are named operating points of the circuit. "swr" is the reference
// sharp-wave-ripple regime; "theta" raises cholinergic tone, which loads the
// CA1 depression variable and suppresses ripple propagation; "quiet" lowers
// CA3 tonic drive below the bursting threshold.
var presets = map[string]func() *Config{
	"swr": func() *Config {
		return DefaultConfig()
	},
	"theta": func() *Config {
		cfg := DefaultConfig()
		cfg.Model.ACh.Drive = 1.2
		cfg.Model.CA3.Drive = 0.4
		return cfg
	},
	"quiet": func() *Config {
		cfg := DefaultConfig()
		cfg.Model.CA3.Drive = 0.15
		return cfg
	},
	"ach-pulse": func() *Config {
		cfg := DefaultConfig()
		cfg.Drive = DriveConfig{
			Kind:    "step",
			Target:  "ach",
			Amp:     1.0,
			StartMs: 3000,
			StopMs:  7000,
		}
		return cfg
	},
}

// GetPreset returns a fresh config for a named preset, or nil if unknown.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the preset names in stable order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
