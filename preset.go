package explosion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// ErrUnknownPreset indicates a preset name with no built-in definition.
var ErrUnknownPreset = errors.New("unknown preset")

// Built-in preset names.
const (
	PresetDefault = "default"
	PresetGUI     = "gui"
	PresetShort   = "short"
	PresetDistant = "distant"
)

// DefaultParams returns the standard explosion: a four second, four layer
// blast with one pre-explosion, slowed to 0.45x and followed by reverb.
func DefaultParams() Params {
	return Params{
		Duration:                  defaultDuration,
		Layers:                    defaultLayers,
		PreExplosions:             defaultPreExplosions,
		PreExplosionDelay:         defaultPreExplosionDelay,
		PreExplosionLowPassFactor: defaultPreLowPassFactor,
		PreExplosionLowPassIters:  defaultPreLowPassIters,
		FinalSpeedFactor:          defaultFinalSpeedFactor,
		Reverb:                    true,
		EarlyReflections:          defaultEarlyReflections,
		LateReflections:           defaultLateReflections,
	}
}

var presets = map[string]func() Params{
	PresetDefault: DefaultParams,

	// Initial values of the interactive slider editor.
	PresetGUI: func() Params {
		p := DefaultParams()
		p.Duration = 15
		p.PreExplosionDelay = 0.2
		p.PreExplosionLowPassIters = 2
		p.FinalSpeedFactor = 1
		p.EarlyReflections = 5
		p.LateReflections = 1000
		return p
	},

	// A dry, quick pop.
	PresetShort: func() Params {
		p := DefaultParams()
		p.Duration = 1
		p.Layers = 3
		p.PreExplosions = 0
		p.FinalSpeedFactor = 1
		p.Reverb = false
		return p
	},

	// A dull rumble with a long tail.
	PresetDistant: func() Params {
		p := DefaultParams()
		p.Layers = 6
		p.PreExplosions = 2
		p.PreExplosionDelay = 0.5
		p.PreExplosionLowPassFactor = 0.4
		p.PreExplosionLowPassIters = 4
		p.FinalSpeedFactor = 0.3
		p.EarlyReflections = 20
		p.LateReflections = 400
		return p
	},
}

// PresetNames returns the built-in preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns the built-in preset called name.
func Preset(name string) (Params, error) {
	fn, ok := presets[name]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, PresetNames())
	}
	return fn(), nil
}

// LoadPreset reads JSON-encoded parameters from r. Fields absent from the
// document keep their DefaultParams value. The result is validated.
func LoadPreset(r io.Reader) (Params, error) {
	p := DefaultParams()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("%w: decode preset: %w", ErrInvalidArgument, err)
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// SavePreset writes p to w as indented JSON. Input samples are not saved.
func SavePreset(w io.Writer, p Params) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	return nil
}
