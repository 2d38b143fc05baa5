// Package config provides YAML-based settings and scenario catalog loading
// for the storage mogul game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/storage-mogul/internal/core"
	"github.com/vovakirdan/storage-mogul/internal/sim"
)

// Settings holds runtime knobs for the driving shell.
type Settings struct {
	TickInterval     time.Duration `yaml:"tick_interval"`     // Wall-clock time per simulated day at 1x
	MinSpeed         float64       `yaml:"min_speed"`
	MaxSpeed         float64       `yaml:"max_speed"`
	AutosaveCooldown time.Duration `yaml:"autosave_cooldown"` // Debounce window between autosaves
	DBPath           string        `yaml:"db_path"`
	DefaultSlot      string        `yaml:"default_slot"`
}

// Runtime converts settings into the core runtime config at the given speed.
func (s Settings) Runtime(speed float64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if s.TickInterval > 0 {
		cfg.TickInterval = s.TickInterval
	}
	cfg.Speed = s.ClampSpeed(speed)
	return cfg
}

// ClampSpeed clamps speed into the configured range, itself bounded by the
// core limits.
func (s Settings) ClampSpeed(speed float64) float64 {
	speed = core.ClampSpeed(speed)
	lo := core.ClampF(s.MinSpeed, core.MinSpeed, core.MaxSpeed)
	hi := core.ClampF(s.MaxSpeed, lo, core.MaxSpeed)
	if s.MaxSpeed <= 0 {
		hi = core.MaxSpeed
	}
	return core.ClampF(speed, lo, hi)
}

// Catalog is the set of purchasable facilities and the baseline deal terms.
type Catalog struct {
	TradeAreas []sim.TradeArea       `yaml:"trade_areas"`
	Facilities []sim.FacilityListing `yaml:"facilities"`
	Financing  sim.Financing         `yaml:"financing"`
	Player     sim.PlayerProfile     `yaml:"player"`
}

// Validate checks that the catalog can open at least one game and that
// every facility points at a known trade area.
func (c Catalog) Validate() error {
	if len(c.TradeAreas) == 0 {
		return fmt.Errorf("config: catalog has no trade areas")
	}
	if len(c.Facilities) == 0 {
		return fmt.Errorf("config: catalog has no facilities")
	}
	seen := make(map[string]bool, len(c.TradeAreas))
	for _, a := range c.TradeAreas {
		if a.ID == "" {
			return fmt.Errorf("config: trade area %q has no id", a.Name)
		}
		if seen[a.ID] {
			return fmt.Errorf("config: duplicate trade area %q", a.ID)
		}
		seen[a.ID] = true
	}
	ids := make(map[string]bool, len(c.Facilities))
	for _, f := range c.Facilities {
		if ids[f.ID] {
			return fmt.Errorf("config: duplicate facility %q", f.ID)
		}
		ids[f.ID] = true
		if !seen[f.RegionID] {
			return fmt.Errorf("config: facility %q references unknown trade area %q", f.ID, f.RegionID)
		}
		if f.TotalUnits <= 0 || f.Price <= 0 {
			return fmt.Errorf("config: facility %q needs positive units and price", f.ID)
		}
	}
	return nil
}

// TradeArea looks up a trade area by id.
func (c Catalog) TradeArea(id string) (sim.TradeArea, bool) {
	for _, a := range c.TradeAreas {
		if a.ID == id {
			return a, true
		}
	}
	return sim.TradeArea{}, false
}

// Facility looks up a facility listing by id.
func (c Catalog) Facility(id string) (sim.FacilityListing, bool) {
	for _, f := range c.Facilities {
		if f.ID == id {
			return f, true
		}
	}
	return sim.FacilityListing{}, false
}

// FacilitiesIn returns the listings located in a trade area.
func (c Catalog) FacilitiesIn(regionID string) []sim.FacilityListing {
	var out []sim.FacilityListing
	for _, f := range c.Facilities {
		if f.RegionID == regionID {
			out = append(out, f)
		}
	}
	return out
}

// ExpansionRegions lists every trade area other than regionID, in catalog order.
func (c Catalog) ExpansionRegions(regionID string) []string {
	var out []string
	for _, a := range c.TradeAreas {
		if a.ID != regionID {
			out = append(out, a.ID)
		}
	}
	return out
}

// Start builds the opening configuration for buying facilityID with the
// catalog's financing and the given player profile.
func (c Catalog) Start(facilityID string, player sim.PlayerProfile) (sim.StartConfig, error) {
	return c.StartWith(facilityID, c.Financing, player)
}

// StartWith is Start with explicit financing terms.
func (c Catalog) StartWith(facilityID string, financing sim.Financing, player sim.PlayerProfile) (sim.StartConfig, error) {
	listing, ok := c.Facility(facilityID)
	if !ok {
		return sim.StartConfig{}, fmt.Errorf("config: unknown facility %q", facilityID)
	}
	region, ok := c.TradeArea(listing.RegionID)
	if !ok {
		return sim.StartConfig{}, fmt.Errorf("config: unknown trade area %q", listing.RegionID)
	}
	start := sim.BuildStart(region, listing, financing, player)
	start.ExpansionRegions = c.ExpansionRegions(region.ID)
	return start, nil
}

// DefaultStart opens the first facility of the first trade area.
func (c Catalog) DefaultStart(player sim.PlayerProfile) (sim.StartConfig, error) {
	if len(c.TradeAreas) == 0 {
		return sim.StartConfig{}, fmt.Errorf("config: catalog has no trade areas")
	}
	listings := c.FacilitiesIn(c.TradeAreas[0].ID)
	if len(listings) == 0 {
		if len(c.Facilities) == 0 {
			return sim.StartConfig{}, fmt.Errorf("config: catalog has no facilities")
		}
		listings = c.Facilities[:1]
	}
	return c.Start(listings[0].ID, player)
}
