// Package config loads the game's tunable settings from YAML.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// WaterSortConfig holds all tunable parameters of the game.
type WaterSortConfig struct {
	Animation AnimationConfig `yaml:"animation"`
	Layout    LayoutConfig    `yaml:"layout"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Audio     AudioConfig     `yaml:"audio"`
}

// AnimationConfig sets the length of each pour phase in simulation ticks.
// A pour lasts LiftTicks + PourTicksPerLayer*layers + ReturnTicks.
type AnimationConfig struct {
	LiftTicks          int `yaml:"lift_ticks" validate:"gte=0,lte=600"`           // Source bottle travels to the destination
	PourTicksPerLayer  int `yaml:"pour_ticks_per_layer" validate:"gte=0,lte=600"` // Liquid flows, per layer moved
	ReturnTicks        int `yaml:"return_ticks" validate:"gte=0,lte=600"`         // Source bottle travels back
	CompleteDelayTicks int `yaml:"complete_delay_ticks" validate:"gte=0,lte=600"` // Pause before the solved banner
}

// PourTicks returns the total length of a pour of the given number of layers.
func (a AnimationConfig) PourTicks(layers int) int {
	return a.LiftTicks + a.PourTicksPerLayer*layers + a.ReturnTicks
}

// LayoutConfig controls how bottles are arranged on screen.
type LayoutConfig struct {
	MaxColumns  int `yaml:"max_columns" validate:"gte=1,lte=16"`
	MaxRows     int `yaml:"max_rows" validate:"gte=1,lte=4"`
	BottleWidth int `yaml:"bottle_width" validate:"gte=3,lte=9"`
	LayerHeight int `yaml:"layer_height" validate:"gte=1,lte=3"`
	SpacingX    int `yaml:"spacing_x" validate:"gte=0,lte=8"`
	SpacingY    int `yaml:"spacing_y" validate:"gte=0,lte=4"`
}

// GameplayConfig holds rule options that do not change the pour rules.
type GameplayConfig struct {
	UndoLimit   int  `yaml:"undo_limit" validate:"gte=0,lte=1000"` // 0 disables undo
	Hints       bool `yaml:"hints"`
	SolverLimit int  `yaml:"solver_limit" validate:"gte=100,lte=5000000"` // Positions the hint search may expand
}

// AudioConfig holds the audio settings given to new players.
type AudioConfig struct {
	Music bool `yaml:"music"`
	SFX   bool `yaml:"sfx"`
}

var validate = validator.New()

// Validate checks every field against its bounds.
func (c WaterSortConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
