package config

import (
	"fmt"
	"math"
	"strings"
)

// SpeedPreset scales the pour animation.
type SpeedPreset string

const (
	SpeedRelaxed SpeedPreset = "relaxed"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// AllSpeedPresets returns all valid speed presets.
func AllSpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedRelaxed, SpeedNormal, SpeedFast, SpeedInstant}
}

// ParseSpeedPreset converts a string to a SpeedPreset. Empty means normal.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	switch p := SpeedPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return SpeedNormal, nil
	case SpeedRelaxed, SpeedNormal, SpeedFast, SpeedInstant:
		return p, nil
	default:
		return "", fmt.Errorf("unknown speed %q (want relaxed, normal, fast or instant)", s)
	}
}

// Multiplier returns the factor applied to animation tick counts.
func (p SpeedPreset) Multiplier() float64 {
	switch p {
	case SpeedRelaxed:
		return 1.5
	case SpeedFast:
		return 0.5
	case SpeedInstant:
		return 0
	default:
		return 1
	}
}

// ApplySpeedPreset scales the animation phases of cfg by the preset.
func ApplySpeedPreset(cfg *WaterSortConfig, preset SpeedPreset) {
	m := preset.Multiplier()
	scale := func(ticks int) int {
		return int(math.Round(float64(ticks) * m))
	}
	cfg.Animation.LiftTicks = scale(cfg.Animation.LiftTicks)
	cfg.Animation.PourTicksPerLayer = scale(cfg.Animation.PourTicksPerLayer)
	cfg.Animation.ReturnTicks = scale(cfg.Animation.ReturnTicks)
	cfg.Animation.CompleteDelayTicks = scale(cfg.Animation.CompleteDelayTicks)
}
