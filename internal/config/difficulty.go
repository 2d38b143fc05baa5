package config

import (
	"fmt"

	"github.com/vovakirdan/storage-mogul/internal/sim"
)

// DifficultyPreset represents a named starting difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. Empty means normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want easy, normal or hard)", name)
	}
}

// ApplyPreset adjusts the starting player profile for a difficulty preset.
// Easy adds cash and credit, hard takes them away.
func ApplyPreset(player sim.PlayerProfile, preset DifficultyPreset) sim.PlayerProfile {
	switch preset {
	case DifficultyEasy:
		player.Cash *= 1.5
		player.CreditScore += 60
		player.LoanToValue = max(player.LoanToValue, 0.9)
	case DifficultyHard:
		player.Cash *= 0.75
		player.CreditScore -= 60
		player.LoanToValue = min(player.LoanToValue, 0.8)
	}
	player.CreditScore = min(max(player.CreditScore, sim.MinCreditScore), sim.MaxCreditScore)
	return player
}

// SpeedPreset represents a named simulation speed.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedTurbo  SpeedPreset = "turbo"
)

// SpeedForPreset returns the multiplier for a speed preset.
func SpeedForPreset(preset SpeedPreset) float64 {
	switch preset {
	case SpeedSlow:
		return 0.5
	case SpeedFast:
		return 2
	case SpeedTurbo:
		return 4
	default:
		return 1
	}
}

// SpeedSteps are the multipliers the faster/slower controls cycle through.
var SpeedSteps = []float64{0.25, 0.5, 1, 2, 4, 8}

// NextSpeed returns the next step above (up) or below current.
func NextSpeed(current float64, up bool) float64 {
	if up {
		for _, s := range SpeedSteps {
			if s > current {
				return s
			}
		}
		return SpeedSteps[len(SpeedSteps)-1]
	}
	for i := len(SpeedSteps) - 1; i >= 0; i-- {
		if SpeedSteps[i] < current {
			return SpeedSteps[i]
		}
	}
	return SpeedSteps[0]
}
