package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

func TestEndToEndScenarioDeterministic(t *testing.T) {
	a, b := scenarioState(), scenarioState()
	ra := AdvanceTick(a)
	rb := AdvanceTick(b)

	if ra.CashFlow.DelinquentUnits != rb.CashFlow.DelinquentUnits {
		t.Errorf("remaining delinquent differs: %v vs %v", ra.CashFlow.DelinquentUnits, rb.CashFlow.DelinquentUnits)
	}
	if ra.CashFlow.PayingUnits != rb.CashFlow.PayingUnits {
		t.Errorf("paying units differ: %v vs %v", ra.CashFlow.PayingUnits, rb.CashFlow.PayingUnits)
	}
	if ra.CashFlow.OperatingDailyNet != rb.CashFlow.OperatingDailyNet {
		t.Errorf("net differs: %v vs %v", ra.CashFlow.OperatingDailyNet, rb.CashFlow.OperatingDailyNet)
	}
	if SnapshotOf(a) != SnapshotOf(b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", SnapshotOf(a), SnapshotOf(b))
	}

	// Five draws per ordinary tick: delinquency noise, demand noise, macro
	// wave, competition drift, climate drift.
	if a.Seed != 2078669041 {
		t.Errorf("seed after one tick = %d, want 2078669041", a.Seed)
	}
	if sum := ra.CashFlow.PayingUnits + ra.CashFlow.DelinquentUnits; math.Abs(sum-a.Facility.OccupiedUnits) > 1e-9 {
		t.Errorf("paying + delinquent = %v, occupied = %v", sum, a.Facility.OccupiedUnits)
	}
}

func TestLongRunDeterminism(t *testing.T) {
	a := NewState(testStart())
	b := NewState(testStart())
	for i := 0; i < 720; i++ {
		if i%45 == 0 {
			ApplyAction(a, ActionLaunchCampaign)
			ApplyAction(b, ActionLaunchCampaign)
		}
		AdvanceTick(a)
		AdvanceTick(b)
		if SnapshotOf(a) != SnapshotOf(b) {
			t.Fatalf("runs diverged at tick %d", i+1)
		}
	}
}

func TestInvariantsHoldEveryTick(t *testing.T) {
	policies := []DelinquencyUpdate{
		{AllowPaymentPlans: Ptr(false), EvictionDays: Ptr(15.0)},
		{AllowPaymentPlans: Ptr(true), EvictionDays: Ptr(180.0)},
		{Rate: Ptr(0.3), BaseRate: Ptr(0.3)},
	}

	for seed := int64(1); seed <= 4; seed++ {
		s := NewState(testStart())
		s.Seed = core.SeedOrDefault(seed * 7919)
		s.Financials.Cash = 2_000_000
		assertInvariants(t, s, "initial")

		for i := 0; i < 1500; i++ {
			switch i % 97 {
			case 5:
				for _, id := range AllActions {
					ApplyAction(s, id)
					assertInvariants(t, s, "after action "+string(id))
				}
			case 40:
				s.Facility.Delinquency = NormalizeDelinquency(policies[i%len(policies)], s.Facility.Delinquency)
			case 60:
				s.Facility.Pricing.ClimateControlled = NormalizeTier(TierUpdate{Standard: Ptr(590.0)}, s.Facility.Pricing.ClimateControlled)
				s.Facility.Pricing.Specials = NormalizeSpecials(SpecialsUpdate{Offer: Ptr(OfferOneMonthFree), AdoptionRate: Ptr(0.8)}, s.Facility.Pricing.Specials)
			}
			res := AdvanceTick(s)
			assertInvariants(t, s, "tick")
			if res.Halted {
				break
			}
		}
	}
}

func TestClockRollover(t *testing.T) {
	s := scenarioState()
	s.Clock = Clock{Day: 30, Month: 12, Year: 2043, Speed: 1}
	res := AdvanceTick(s)
	if !res.MonthRolled {
		t.Error("expected month boundary")
	}
	if s.Clock.Day != 1 || s.Clock.Month != 1 || s.Clock.Year != 2044 {
		t.Errorf("clock = %+v, want Jan 1 2044", s.Clock)
	}
	if s.Clock.String() != "Jan 1, 2044" {
		t.Errorf("String() = %q", s.Clock.String())
	}

	res = AdvanceTick(s)
	if res.MonthRolled {
		t.Error("mid-month tick reported a boundary")
	}
}

func TestHistoryFIFO(t *testing.T) {
	s := scenarioState()
	s.Financials.Cash = 5_000_000
	for i := 0; i < HistoryCap+30; i++ {
		AdvanceTick(s)
	}
	if len(s.History.Cash) != HistoryCap {
		t.Fatalf("cash history = %d samples, want %d", len(s.History.Cash), HistoryCap)
	}
	last := s.History.Cash[len(s.History.Cash)-1]
	if last != s.Financials.Cash {
		t.Errorf("newest sample = %v, want current cash %v", last, s.Financials.Cash)
	}

	series := make([]float64, 0)
	for i := 0; i < HistoryCap+3; i++ {
		series = pushSample(series, float64(i))
	}
	if series[0] != 3 || series[len(series)-1] != float64(HistoryCap+2) {
		t.Errorf("pushSample kept %v..%v, want 3..%d", series[0], series[len(series)-1], HistoryCap+2)
	}
}

func TestInsolvencyHalts(t *testing.T) {
	s := scenarioState()
	s.Financials.Cash = 100
	s.Financials.Debt = 5_000_000
	s.Financials.InterestRate = 0.12

	var res TickResult
	ticks := 0
	for ticks < 1000 {
		histLen := len(s.History.Cash)
		goal := s.Goal
		unlocked := len(s.UnlockedActions)
		res = AdvanceTick(s)
		ticks++
		if res.Halted {
			if len(s.History.Cash) != histLen {
				t.Error("history mutated on the halting tick")
			}
			if s.Goal != goal {
				t.Error("goal mutated on the halting tick")
			}
			if len(s.UnlockedActions) != unlocked {
				t.Error("unlocks mutated on the halting tick")
			}
			break
		}
	}

	if !res.Halted {
		t.Fatal("facility never became insolvent")
	}
	if s.Financials.Cash != 0 || s.Player.Cash != 0 {
		t.Errorf("cash = %v / %v, want 0", s.Financials.Cash, s.Player.Cash)
	}
	if !s.Paused || !s.Insolvent {
		t.Errorf("paused = %v, insolvent = %v, want both true", s.Paused, s.Insolvent)
	}
	if s.Events[0].Tone != ToneWarning {
		t.Errorf("last log = %+v, want receivership warning", s.Events[0])
	}
}

func TestGoalProgression(t *testing.T) {
	s := scenarioState()
	s.Financials.Cash = 1_000_000
	s.Facility.OccupiedUnits = 95
	recomputeOccupancyRate(&s.Facility)
	s.Facility.Delinquency.EvictionDays = 150
	s.Market.DemandIndex = 1.4
	s.Market.LastDemandIndex = 1.4
	s.Facility.Reputation = 90

	AdvanceTick(s)
	if s.Facility.OccupancyRate < 0.85 {
		t.Fatalf("occupancy %v did not reach the target", s.Facility.OccupancyRate)
	}
	if s.GoalStage != 0 || !s.Goal.Completed {
		t.Fatalf("stage %d completed=%v, want stage 0 completed", s.GoalStage, s.Goal.Completed)
	}

	AdvanceTick(s)
	if s.GoalStage != 1 || s.Goal.ID != GoalAutomate {
		t.Fatalf("stage %d goal %s, want stage 1 automate", s.GoalStage, s.Goal.ID)
	}
	if s.Goal.Target != 0.6 || s.Goal.Progress != s.Automation.Level {
		t.Errorf("goal = %+v, want automation progress %v", s.Goal, s.Automation.Level)
	}
	if s.Goal.Completed {
		t.Error("automation goal should not be complete yet")
	}
}

func TestFinalGoalStageSticks(t *testing.T) {
	s := scenarioState()
	s.GoalStage = finalGoalStage
	s.Goal = GoalForStage(finalGoalStage)
	s.Financials.Valuation = 3_000_000
	evaluateGoal(s)
	evaluateGoal(s)
	if s.GoalStage != finalGoalStage || s.Goal.ID != GoalScale {
		t.Errorf("stage %d goal %s, want final stage kept", s.GoalStage, s.Goal.ID)
	}
}

func TestAIManagerUnlockFiresOnce(t *testing.T) {
	s := scenarioState()
	s.Facility.OccupancyRate = 0.9
	checkUnlocks(s)
	checkUnlocks(s)

	count := 0
	for _, id := range s.UnlockedActions {
		if id == ActionTrainAIManager {
			count++
		}
	}
	if count != 1 {
		t.Errorf("train_ai_manager unlocked %d times, want 1", count)
	}
}

func TestExpansionUnlock(t *testing.T) {
	fiveYears := expansionYears * MonthsPerYear * DaysPerMonth

	s := scenarioState()
	// Feb 6 start: the calendar year turns five times before five years elapse.
	s.Clock.Year = s.Player.StartYear + 5
	s.Tick = fiveYears - 1
	checkUnlocks(s)
	if s.Player.ExpansionUnlocked {
		t.Fatalf("expansion unlocked at tick %d, before five elapsed years", s.Tick)
	}

	s.Tick = fiveYears
	checkUnlocks(s)
	if !s.Player.ExpansionUnlocked {
		t.Fatal("expansion not unlocked after five years")
	}
	if len(s.Player.RegionsUnlocked) != 2 || s.Player.RegionsUnlocked[1] != "highlands" {
		t.Errorf("regions = %v, want harbor and highlands", s.Player.RegionsUnlocked)
	}
}

func TestStoryBeatEveryEighthTick(t *testing.T) {
	s := scenarioState()
	s.Financials.Cash = 1_000_000
	for i := 0; i < 8; i++ {
		AdvanceTick(s)
	}
	found := false
	for _, beat := range marketBeats {
		if s.Market.StoryBeat == beat {
			found = true
		}
	}
	if !found {
		t.Errorf("story beat %q not drawn from the beat list", s.Market.StoryBeat)
	}
}
