package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/storage-mogul/internal/sim"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// DefaultSettings returns the built-in runtime settings.
func DefaultSettings() Settings {
	return Settings{
		TickInterval:     time.Second,
		MinSpeed:         0.25,
		MaxSpeed:         8,
		AutosaveCooldown: 2 * time.Second,
		DBPath:           "~/.mogul/mogul.db",
		DefaultSlot:      "autosave",
	}
}

// DefaultCatalog returns a minimal single-facility catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		TradeAreas: []sim.TradeArea{{
			ID:                  "harbor",
			Name:                "Harbor District",
			DemandIndex:         0.92,
			Competition:         0.32,
			OperatingCostFactor: 1.05,
			BaseRate:            0.055,
			ClimateRisk:         0.42,
			AvgCapRate:          0.062,
			Description:         "Dense waterfront apartments with almost no garage space keep units turning over.",
		}},
		Facilities: []sim.FacilityListing{{
			ID:                 "harbor-one",
			RegionID:           "harbor",
			Name:               "Harbor One Storage",
			City:               "Port Meridian",
			Price:              450000,
			SizeSqft:           42000,
			Occupancy:          0.78,
			AvgRentPerSqft:     1.45,
			ExpensesAnnual:     210000,
			Issues:             []string{"roof membrane", "gate controller"},
			ExpansionPotential: 0.35,
			TotalUnits:         300,
			Mix:                sim.UnitMix{ClimateControlled: 180, DriveUp: 90, Vault: 30},
		}},
		Financing: sim.DefaultFinancing(),
		Player:    sim.DefaultPlayer(),
	}
}

// GetDefaultYAML returns the embedded default YAML for "settings" or "catalog".
func GetDefaultYAML(name string) []byte {
	switch name {
	case "settings":
		return defaultSettingsYAML
	case "catalog":
		return defaultCatalogYAML
	default:
		return nil
	}
}
