package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

func TestSaveRoundTrip(t *testing.T) {
	s := NewState(testStart())
	for i := 0; i < 40; i++ {
		AdvanceTick(s)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	data, err := EncodeSave(s, now)
	if err != nil {
		t.Fatalf("EncodeSave() failed: %v", err)
	}
	got, ts, err := DecodeSave(data, NewState(testStart()))
	if err != nil {
		t.Fatalf("DecodeSave() failed: %v", err)
	}
	if !ts.Equal(now) {
		t.Errorf("timestamp = %v, want %v", ts, now)
	}

	s.Paused = true
	if SnapshotOf(got) != SnapshotOf(s) {
		t.Errorf("restored snapshot differs:\n got %+v\nwant %+v", SnapshotOf(got), SnapshotOf(s))
	}
	if len(got.Events) != len(s.Events) || got.Events[0] != s.Events[0] {
		t.Error("event log not restored")
	}

	// A restored game replays identically.
	AdvanceTick(s)
	AdvanceTick(got)
	if SnapshotOf(got) != SnapshotOf(s) {
		t.Error("restored game diverged after one tick")
	}
}

func TestDecodeSaveRejects(t *testing.T) {
	base := NewState(testStart())
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"future version", `{"version":2,"timestamp":0,"state":{"tick":3}}`, ErrFutureSave},
		{"missing state", `{"version":1,"timestamp":0}`, ErrNoState},
		{"null state", `{"version":1,"timestamp":0,"state":null}`, ErrNoState},
		{"not json", `{"version":`, nil},
		{"fractional cooldown", `{"version":1,"timestamp":0,"state":{"cooldowns":{"launch_campaign":1.5}}}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeSave([]byte(tt.data), base)
			if err == nil {
				t.Fatal("DecodeSave() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeSave() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeSaveMergesMissingFields(t *testing.T) {
	base := NewState(testStart())
	got, ts, err := DecodeSave([]byte(`{"version":1,"timestamp":1700000000000,"state":{"tick":42,"city":"Elsewhere"}}`), base)
	if err != nil {
		t.Fatalf("DecodeSave() failed: %v", err)
	}
	if got.Tick != 42 || got.City != "Elsewhere" {
		t.Errorf("tick %d city %q, want 42 Elsewhere", got.Tick, got.City)
	}
	if got.Facility.Name != base.Facility.Name || got.Financials.Debt != base.Financials.Debt {
		t.Error("missing fields did not fall back to base")
	}
	if ts.UnixMilli() != 1700000000000 {
		t.Errorf("timestamp = %d", ts.UnixMilli())
	}
	if !got.Paused {
		t.Error("restored state should be paused")
	}
	got.Tick = 0
	if base.Tick != 0 {
		t.Error("DecodeSave mutated base")
	}
}

func TestDecodeSaveSanitizes(t *testing.T) {
	base := NewState(testStart())
	data := `{"version":1,"timestamp":0,"state":{
		"clock":{"day":45,"month":0,"year":2044,"speed":-3},
		"facility":{"totalUnits":100,"occupiedUnits":400,"reputation":500,
			"delinquency":{"baseRate":0.9,"rate":0.9,"allowPaymentPlans":false,"evictionDays":5},
			"pricing":{"specials":{"offer":"half_off","adoptionRate":0.5}}},
		"automation":{"level":9,"reliability":0.1,"aiManager":{"archetype":"rogue"}},
		"unlockedActions":["launch_campaign","launch_campaign","teleport"],
		"cooldowns":{"launch_campaign":3,"optimize_pricing":0,"teleport":4},
		"seed":0,
		"goalStage":7,
		"paused":false
	}}`
	got, _, err := DecodeSave([]byte(data), base)
	if err != nil {
		t.Fatalf("DecodeSave() failed: %v", err)
	}

	if got.Clock.Day != DaysPerMonth || got.Clock.Month != 1 || got.Clock.Speed != 1 {
		t.Errorf("clock = %+v", got.Clock)
	}
	f := got.Facility
	if f.OccupiedUnits != 100 || f.OccupancyRate != 1 {
		t.Errorf("occupied %v rate %v, want 100 and 1", f.OccupiedUnits, f.OccupancyRate)
	}
	if f.Reputation != MaxReputation {
		t.Errorf("reputation = %v", f.Reputation)
	}
	if f.Delinquency.BaseRate != 0.3 || f.Delinquency.Rate != 0.25 || f.Delinquency.EvictionDays != 15 {
		t.Errorf("delinquency = %+v", f.Delinquency)
	}
	if f.Pricing.Specials.Offer != OfferNone || f.Pricing.Specials.AdoptionRate != 0 {
		t.Errorf("specials = %+v", f.Pricing.Specials)
	}
	if got.Automation.Level != MaxAutomation || got.Automation.Reliability != MinReliability {
		t.Errorf("automation = %+v", got.Automation)
	}
	if got.Automation.Manager != nil {
		t.Error("unknown manager archetype should be dropped")
	}
	if len(got.UnlockedActions) != 1 || got.UnlockedActions[0] != ActionLaunchCampaign {
		t.Errorf("unlocked = %v", got.UnlockedActions)
	}
	if len(got.Cooldowns) != 1 || got.Cooldowns[ActionLaunchCampaign] != 3 {
		t.Errorf("cooldowns = %v", got.Cooldowns)
	}
	if got.Seed != core.DefaultSeed {
		t.Errorf("seed = %d, want default", got.Seed)
	}
	if got.GoalStage != finalGoalStage || got.Goal.ID != GoalForStage(finalGoalStage).ID {
		t.Errorf("goal stage %d goal %q", got.GoalStage, got.Goal.ID)
	}
	if !got.Paused {
		t.Error("restored state should be paused")
	}
	assertInvariants(t, got, "restored")
}
