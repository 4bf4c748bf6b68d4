package config

import (
	_ "embed"
)

//go:embed defaults/watersort.yaml
var defaultWaterSortYAML []byte

// Default returns the hardcoded configuration, used when no YAML source is usable.
func Default() WaterSortConfig {
	return WaterSortConfig{
		Animation: AnimationConfig{
			LiftTicks:          15, // 0.25s at 60fps
			PourTicksPerLayer:  12,
			ReturnTicks:        15,
			CompleteDelayTicks: 30,
		},
		Layout: LayoutConfig{
			MaxColumns:  7,
			MaxRows:     2,
			BottleWidth: 5,
			LayerHeight: 1,
			SpacingX:    3,
			SpacingY:    2,
		},
		Gameplay: GameplayConfig{
			UndoLimit:   5,
			Hints:       true,
			SolverLimit: 250000,
		},
		Audio: AudioConfig{
			Music: true,
			SFX:   true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWaterSortYAML
}
