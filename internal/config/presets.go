package config

import (
	"fmt"
	"sort"
)

// Presets are named run configurations, applied over DefaultConfig.
var Presets = map[string]func(*Config){
	"hover": func(c *Config) {
		c.Plan = "hover"
	},
	"plane": func(c *Config) {
		c.Plan = "plane"
	},
	"drift": func(c *Config) {
		c.Plan = "hover"
		c.InitState = InitConfig{X: 0.3, Y: -0.2}
	},
	"drop": func(c *Config) {
		c.Plan = "hover"
		c.InitState = InitConfig{Z: 1.2, Roll: 0.1, Pitch: -0.1}
	},
	"observer-hover": func(c *Config) {
		c.Plan = "hop"
		c.UseObserver = true
	},
}

// GetPreset returns DefaultConfig with the named preset applied.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
