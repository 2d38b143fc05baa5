package sim

import (
	"testing"
)

func TestApplyActionEffects(t *testing.T) {
	t.Run("expand capacity", func(t *testing.T) {
		s := scenarioState()
		before := s.Clone()
		ApplyActionEffects(s, ActionExpandCapacity)

		if s.Facility.TotalUnits != before.Facility.TotalUnits+40 {
			t.Errorf("total units = %d, want %d", s.Facility.TotalUnits, before.Facility.TotalUnits+40)
		}
		if s.Market.ReferenceRent != before.Market.ReferenceRent+5 {
			t.Errorf("reference rent = %v, want +5", s.Market.ReferenceRent)
		}
		wantValuation := before.Financials.Valuation + 40*before.Facility.AverageRent*3.5
		if s.Financials.Valuation != wantValuation {
			t.Errorf("valuation = %v, want %v", s.Financials.Valuation, wantValuation)
		}
		if s.Facility.OccupancyRate != s.Facility.OccupiedUnits/140 {
			t.Errorf("occupancy rate not recomputed: %v", s.Facility.OccupancyRate)
		}
		if s.Cooldowns[ActionExpandCapacity] != 12 {
			t.Errorf("cooldown = %d, want 12", s.Cooldowns[ActionExpandCapacity])
		}
		if s.Events[0].Tone != TonePositive {
			t.Errorf("log tone = %s, want positive", s.Events[0].Tone)
		}
	})

	t.Run("launch campaign caps", func(t *testing.T) {
		s := scenarioState()
		s.Marketing = Marketing{Level: 6, Momentum: 1.7, BrandStrength: 0.95}
		ApplyActionEffects(s, ActionLaunchCampaign)
		if s.Marketing.Level != 6 || s.Marketing.Momentum != 1.8 || s.Marketing.BrandStrength != 1 {
			t.Errorf("marketing = %+v, want capped at 6/1.8/1", s.Marketing)
		}
	})

	t.Run("optimize pricing floors momentum", func(t *testing.T) {
		s := scenarioState()
		s.Marketing.Momentum = 0.01
		rent := s.Facility.AverageRent
		ApplyActionEffects(s, ActionOptimizePricing)
		if s.Marketing.Momentum != 0 {
			t.Errorf("momentum = %v, want 0", s.Marketing.Momentum)
		}
		if s.Facility.AverageRent != rent+8 {
			t.Errorf("average rent = %v, want %v", s.Facility.AverageRent, rent+8)
		}
		if s.Events[0].Tone != ToneInfo {
			t.Errorf("log tone = %s, want info", s.Events[0].Tone)
		}
	})

	t.Run("train AI manager", func(t *testing.T) {
		s := scenarioState()
		before := s.Clone()
		ApplyActionEffects(s, ActionTrainAIManager)

		m := s.Automation.Manager
		if m == nil {
			t.Fatal("manager not activated")
		}
		canonical, ok := ManagerProfileFor(m.Archetype)
		if !ok || canonical != *m {
			t.Errorf("manager %+v is not a canonical profile", *m)
		}
		wantLevel := before.Automation.Level + m.Bonuses.Automation + 0.15
		if s.Automation.Level != wantLevel {
			t.Errorf("automation level = %v, want %v", s.Automation.Level, wantLevel)
		}
		if s.Facility.AutomationLevel != s.Automation.Level {
			t.Error("facility automation mirror not updated")
		}
		if s.Seed == before.Seed {
			t.Error("manager draw did not advance the seed")
		}
		assertInvariants(t, s, "after training")
	})

	t.Run("manager draw is seed determined", func(t *testing.T) {
		a, b := scenarioState(), scenarioState()
		ApplyActionEffects(a, ActionTrainAIManager)
		ApplyActionEffects(b, ActionTrainAIManager)
		if a.Automation.Manager.Archetype != b.Automation.Manager.Archetype {
			t.Error("identical seeds drew different managers")
		}
	})

	t.Run("unknown action logs only", func(t *testing.T) {
		s := scenarioState()
		before := SnapshotOf(s)
		ApplyActionEffects(s, ActionID("teleport_units"))
		if SnapshotOf(s) != before {
			t.Error("unknown action changed state")
		}
		if s.Events[0].Message != "teleport_units executed." {
			t.Errorf("message = %q", s.Events[0].Message)
		}
		if len(s.Cooldowns) != 0 {
			t.Errorf("unknown action set cooldowns: %v", s.Cooldowns)
		}
	})
}

func TestApplyActionRejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*GameState)
		action  ActionID
		message string
	}{
		{
			name:    "locked",
			action:  ActionTrainAIManager,
			message: "Action not yet unlocked.",
		},
		{
			name:    "cooling down",
			setup:   func(s *GameState) { s.Cooldowns[ActionLaunchCampaign] = 3 },
			action:  ActionLaunchCampaign,
			message: "Launch Drone Billboard Campaign is recalibrating.",
		},
		{
			name:    "insufficient cash",
			setup:   func(s *GameState) { s.Financials.Cash = 1000 },
			action:  ActionExpandCapacity,
			message: "Insufficient liquidity for Construct 40 New Units.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scenarioState()
			s.Financials.Cash = 500000
			if tt.setup != nil {
				tt.setup(s)
			}
			before := SnapshotOf(s)
			seq := s.LogSequence

			if ApplyAction(s, tt.action) {
				t.Fatal("action should have been rejected")
			}
			if SnapshotOf(s) != before {
				t.Error("rejected action changed state")
			}
			if s.LogSequence != seq+1 {
				t.Errorf("expected exactly one log entry, sequence %d -> %d", seq, s.LogSequence)
			}
			if s.Events[0].Tone != ToneWarning || s.Events[0].Message != tt.message {
				t.Errorf("log = %+v, want warning %q", s.Events[0], tt.message)
			}
		})
	}
}

func TestApplyActionDeductsCost(t *testing.T) {
	s := scenarioState()
	s.Financials.Cash = 20000
	if !ApplyAction(s, ActionLaunchCampaign) {
		t.Fatal("campaign rejected")
	}
	if s.Financials.Cash != 8000 {
		t.Errorf("cash = %v, want 8000", s.Financials.Cash)
	}
	if s.Player.Cash != s.Financials.Cash {
		t.Error("player cash mirror not updated")
	}
}

func TestCooldownLifecycle(t *testing.T) {
	s := scenarioState()
	s.Financials.Cash = 1e7
	if !ApplyAction(s, ActionOptimizePricing) {
		t.Fatal("pricing action rejected")
	}
	def, _ := LookupAction(ActionOptimizePricing)
	if s.Cooldowns[ActionOptimizePricing] != def.Cooldown {
		t.Fatalf("cooldown = %d, want %d", s.Cooldowns[ActionOptimizePricing], def.Cooldown)
	}

	for i := 1; i <= def.Cooldown; i++ {
		if ApplyAction(s, ActionOptimizePricing) {
			t.Fatalf("action accepted during cooldown before tick %d", i)
		}
		AdvanceTick(s)
		_, present := s.Cooldowns[ActionOptimizePricing]
		if i < def.Cooldown && !present {
			t.Fatalf("cooldown cleared early after %d ticks", i)
		}
		if i == def.Cooldown && present {
			t.Fatalf("cooldown still present after %d ticks", i)
		}
	}

	if !ApplyAction(s, ActionOptimizePricing) {
		t.Error("action rejected after cooldown expired")
	}
}
