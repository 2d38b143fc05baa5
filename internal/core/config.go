package core

import "time"

// Speed bounds applied by the driving loop. A tick always advances exactly
// one simulated day; speed only changes how often ticks fire.
const (
	MinSpeed = 0.25
	MaxSpeed = 8.0
)

// RuntimeConfig contains configuration passed to a session at initialization.
type RuntimeConfig struct {
	TickInterval time.Duration // Wall-clock interval of one tick at speed 1
	Speed        float64       // Speed multiplier, clamped to [MinSpeed, MaxSpeed]
	Seed         int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickInterval: time.Second,
		Speed:        1,
		Seed:         0, // 0 means derive from the scenario in the platform layer
	}
}

// ClampSpeed maps any speed multiplier into [MinSpeed, MaxSpeed].
// Non-finite or non-positive values fall back to 1.
func ClampSpeed(speed float64) float64 {
	if !IsFinite(speed) || speed <= 0 {
		return 1
	}
	return ClampF(speed, MinSpeed, MaxSpeed)
}

// Interval returns the speed-adjusted wall-clock interval between ticks.
func (c RuntimeConfig) Interval() time.Duration {
	base := c.TickInterval
	if base <= 0 {
		base = time.Second
	}
	return time.Duration(float64(base) / ClampSpeed(c.Speed))
}
