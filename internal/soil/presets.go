// Package soil provides soil-type parameter presets for face stability
// runs. The built-in table mirrors common Japanese design practice
// values; project-specific tables load from an explicit JSON resource,
// so presets are always passed as data and never shared as mutable
// package state.
package soil

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kohta/gotfs/internal/murayama"
)

// Preset is one named soil type with typical strength and loading
// values. The flat shape doubles as the JSON resource schema.
type Preset struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Gamma       float64 `json:"gamma"`     // kN/m³
	Cohesion    float64 `json:"cohesion"`  // kPa
	Phi         float64 `json:"phi"`       // degrees
	PorePress   float64 `json:"u"`         // kPa
	Surcharge   float64 `json:"sigma_v"`   // kPa
}

// Parameters converts the preset into validated core inputs.
func (p Preset) Parameters() (murayama.SoilParameters, murayama.LoadingConditions, error) {
	soil, err := murayama.NewSoilParameters(p.Gamma, p.Cohesion, p.Phi)
	if err != nil {
		return murayama.SoilParameters{}, murayama.LoadingConditions{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	loading, err := murayama.NewLoadingConditions(p.PorePress, p.Surcharge)
	if err != nil {
		return murayama.SoilParameters{}, murayama.LoadingConditions{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return soil, loading, nil
}

// DefaultPresets returns a fresh copy of the built-in table.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "dense-sand", Description: "Dense sand", Gamma: 20.0, Cohesion: 0.0, Phi: 35.0},
		{Name: "loose-sand", Description: "Loose sand", Gamma: 18.0, Cohesion: 0.0, Phi: 30.0},
		{Name: "stiff-clay", Description: "Stiff clay", Gamma: 19.0, Cohesion: 50.0, Phi: 0.0},
		{Name: "soft-clay", Description: "Soft clay", Gamma: 17.0, Cohesion: 25.0, Phi: 0.0},
		{Name: "sandy-gravel", Description: "Sandy gravel", Gamma: 21.0, Cohesion: 0.0, Phi: 40.0},
		{Name: "silty-sand", Description: "Silty sand", Gamma: 19.0, Cohesion: 10.0, Phi: 28.0},
	}
}

// LoadPresets reads a preset table from a JSON file and validates each
// entry through the core constructors.
func LoadPresets(path string) ([]Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file: %w", err)
	}
	var presets []Preset
	if err := json.Unmarshal(raw, &presets); err != nil {
		return nil, fmt.Errorf("parsing preset file %s: %w", path, err)
	}
	for _, p := range presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset file %s: entry with empty name", path)
		}
		if _, _, err := p.Parameters(); err != nil {
			return nil, err
		}
	}
	return presets, nil
}

// Find looks up a preset by name.
func Find(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
