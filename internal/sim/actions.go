package sim

import (
	"fmt"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

// ActionDefinition is the static configuration of a player action.
type ActionDefinition struct {
	ID          ActionID
	Title       string
	Description string
	Impact      string
	Cost        float64
	Cooldown    int
}

var actionDefinitions = []ActionDefinition{
	{
		ID:          ActionExpandCapacity,
		Title:       "Construct 40 New Units",
		Description: "Acquire the adjacent lot and add climate-controlled units with solar canopies.",
		Impact:      "Adds inventory and nudges valuation upward while temporarily lowering occupancy.",
		Cost:        75000,
		Cooldown:    12,
	},
	{
		ID:          ActionLaunchCampaign,
		Title:       "Launch Drone Billboard Campaign",
		Description: "Deploy geo-fenced ads and influencer tours to spike local demand.",
		Impact:      "Boosts marketing momentum and brand strength for several ticks.",
		Cost:        12000,
		Cooldown:    6,
	},
	{
		ID:          ActionOptimizePricing,
		Title:       "Recalibrate Dynamic Pricing",
		Description: "Feed new comps into the pricing AI and rebalance unit mix incentives.",
		Impact:      "Raises average rent with a slight hit to short-term absorption.",
		Cost:        3500,
		Cooldown:    4,
	},
	{
		ID:          ActionTrainAIManager,
		Title:       "Train AI Facility Manager",
		Description: "Spin up an AI personality to orchestrate maintenance drones and customer ops.",
		Impact:      "Major automation boost, steadier occupancy, and tailored event dispatches.",
		Cost:        95000,
		Cooldown:    16,
	},
}

// Actions returns the action table in display order.
func Actions() []ActionDefinition {
	out := make([]ActionDefinition, len(actionDefinitions))
	copy(out, actionDefinitions)
	return out
}

// LookupAction returns the definition for id.
func LookupAction(id ActionID) (ActionDefinition, bool) {
	for _, d := range actionDefinitions {
		if d.ID == id {
			return d, true
		}
	}
	return ActionDefinition{}, false
}

var managerProfiles = [...]ManagerProfile{
	{
		Archetype:   ArchetypeAtlas,
		Name:        "Atlas-5 Efficiency Core",
		Description: "Relentless optimizer obsessed with throughput and uptime.",
		Bonuses:     ManagerBonuses{Automation: 0.18, Reputation: -0.01, Revenue: 0.06},
	},
	{
		Archetype:   ArchetypeNebula,
		Name:        "Nebula Concierge AI",
		Description: "Customer empathy routines that turn storage tours into fandoms.",
		Bonuses:     ManagerBonuses{Automation: 0.12, Reputation: 0.06, Revenue: 0.04},
	},
	{
		Archetype:   ArchetypeCaretaker,
		Name:        "Caretaker Loop v3",
		Description: "Focuses on longevity, climate stability, and community goodwill.",
		Bonuses:     ManagerBonuses{Automation: 0.1, Reputation: 0.08, Revenue: 0.02},
	},
}

// ManagerProfileFor returns the canonical profile of an archetype.
func ManagerProfileFor(a Archetype) (ManagerProfile, bool) {
	for _, p := range managerProfiles {
		if p.Archetype == a {
			return p, true
		}
	}
	return ManagerProfile{}, false
}

// ApplyAction validates and executes a player action. Locked actions,
// actions on cooldown and unaffordable actions are rejected with a warning
// log entry and leave the rest of the state untouched.
func ApplyAction(s *GameState, id ActionID) bool {
	if !s.IsUnlocked(id) {
		PushLog(s, "Action not yet unlocked.", ToneWarning)
		return false
	}
	def, ok := LookupAction(id)
	if !ok {
		return false
	}
	if remaining := s.Cooldowns[id]; remaining > 0 {
		PushLog(s, def.Title+" is recalibrating.", ToneWarning)
		return false
	}
	if s.Financials.Cash < def.Cost {
		PushLog(s, "Insufficient liquidity for "+def.Title+".", ToneWarning)
		return false
	}

	s.Financials.Cash -= def.Cost
	s.Player.Cash = s.Financials.Cash
	ApplyActionEffects(s, id)
	return true
}

// ApplyActionEffects applies the one-time effect of an action whose cost
// has already been paid, logs the outcome and starts its cooldown.
func ApplyActionEffects(s *GameState, id ActionID) {
	switch id {
	case ActionExpandCapacity:
		s.Facility.TotalUnits += 40
		recomputeOccupancyRate(&s.Facility)
		s.Market.ReferenceRent += 5
		s.Financials.Valuation += 40 * s.Facility.AverageRent * 3.5
		s.Facility.Prestige = core.ClampF(s.Facility.Prestige+0.05, 0, 1.5)
		s.Market.StoryBeat = "Construction crews pivot drones to raise a new solar canopy wing."
		PushLog(s, "Groundbreakers deployed: 40 new climate pods coming online soon.", TonePositive)

	case ActionLaunchCampaign:
		s.Marketing.Momentum = core.ClampF(s.Marketing.Momentum+0.45, 0, maxMomentum)
		if s.Marketing.Level < maxMarketingLevel {
			s.Marketing.Level++
		}
		s.Marketing.BrandStrength = core.ClampF(s.Marketing.BrandStrength+0.18, 0, 1)
		s.Market.StoryBeat = "Drone billboards flood the skyline with iridescent storage promos."
		PushLog(s, "Influencer tours booked. Expect a rush of new move-ins within days.", TonePositive)

	case ActionOptimizePricing:
		s.Facility.AverageRent += 8
		s.Market.ReferenceRent += 2
		s.Marketing.Momentum = core.ClampF(s.Marketing.Momentum-0.05, 0, maxMomentum)
		s.Marketing.BrandStrength = core.ClampF(s.Marketing.BrandStrength+0.05, 0, 1)
		PushLog(s, "Pricing AI rolled out new tiers and micro-lease bundles.", ToneInfo)

	case ActionTrainAIManager:
		profile := managerProfiles[s.Seed.Index(len(managerProfiles))]
		s.Automation.Manager = &profile
		s.Automation.Level = core.ClampF(s.Automation.Level+profile.Bonuses.Automation+0.15, 0, MaxAutomation)
		s.Automation.Reliability = core.ClampF(s.Automation.Reliability+0.12, MinReliability, MaxReliability)
		s.Facility.AutomationLevel = s.Automation.Level
		s.Facility.Reputation = core.ClampF(s.Facility.Reputation+profile.Bonuses.Reputation*100, MinReputation, MaxReputation)
		s.Financials.Valuation += 125000 * profile.Bonuses.Revenue
		PushLog(s, profile.Name+" activated to orchestrate robotics and guest services.", TonePositive)

	default:
		title := string(id)
		if def, ok := LookupAction(id); ok {
			title = def.Title
		}
		PushLog(s, fmt.Sprintf("%s executed.", title), ToneInfo)
	}

	if def, ok := LookupAction(id); ok && def.Cooldown > 0 {
		if s.Cooldowns == nil {
			s.Cooldowns = make(map[ActionID]int)
		}
		s.Cooldowns[id] = def.Cooldown
	}
}

// tickCooldowns decrements every cooldown and drops entries that reach zero.
func tickCooldowns(s *GameState) {
	for id, remaining := range s.Cooldowns {
		if remaining <= 1 {
			delete(s.Cooldowns, id)
		} else {
			s.Cooldowns[id] = remaining - 1
		}
	}
}
