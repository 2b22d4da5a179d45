// Package config loads the YAML site description used by the demo commands:
// module electrical parameters, array orientation, and reporting cadence.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Module holds PVWatts electrical parameters for the installed modules.
type Module struct {
	PStcW    float64  `yaml:"p_stc_w"`
	GStcWm2  float64  `yaml:"g_stc_wm2"`
	TStcC    float64  `yaml:"t_stc_c"`
	GammaPdc *float64 `yaml:"gamma_pdc"`
	NoctC    float64  `yaml:"noct_c"`
}

// Array holds the installed array orientation.
type Array struct {
	AzimuthDeg float64 `yaml:"azimuth_deg"`
	TiltDeg    float64 `yaml:"tilt_deg"`
}

// Site describes one PV installation.
type Site struct {
	Name   string `yaml:"name"`
	Module Module `yaml:"module"`
	Array  Array  `yaml:"array"`
	// EnergyIntervalMinutes is the meter reporting interval.
	EnergyIntervalMinutes int `yaml:"energy_interval_minutes"`
}

// EnergyInterval returns the meter reporting interval as a duration.
func (s Site) EnergyInterval() time.Duration {
	return time.Duration(s.EnergyIntervalMinutes) * time.Minute
}

// Default returns a plausible 6.5 kWp south-facing residential site.
func Default() Site {
	gamma := -0.004
	return Site{
		Name: "demo-site",
		Module: Module{
			PStcW:    6500,
			GStcWm2:  1000,
			TStcC:    25,
			GammaPdc: &gamma,
			NoctC:    45,
		},
		Array: Array{
			AzimuthDeg: 180,
			TiltDeg:    35,
		},
		EnergyIntervalMinutes: 24 * 60,
	}
}

// Load reads a site file and fills unset fields from Default.
func Load(path string) (Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("reading site config: %w", err)
	}

	site := Default()
	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("parsing site config: %w", err)
	}

	if site.Module.PStcW <= 0 {
		return Site{}, fmt.Errorf("site %q: module p_stc_w must be positive", site.Name)
	}
	if site.Module.GStcWm2 <= 0 {
		return Site{}, fmt.Errorf("site %q: module g_stc_wm2 must be positive", site.Name)
	}
	if site.EnergyIntervalMinutes <= 0 {
		return Site{}, fmt.Errorf("site %q: energy_interval_minutes must be positive", site.Name)
	}
	return site, nil
}
