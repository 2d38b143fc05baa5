package sim

import (
	"math"
	"testing"
)

func testRegion() TradeArea {
	return TradeArea{
		ID:                  "harbor",
		Name:                "Harbor District",
		DemandIndex:         0.9,
		Competition:         0.3,
		OperatingCostFactor: 1.0,
		BaseRate:            0.055,
		ClimateRisk:         0.3,
		AvgCapRate:          0.065,
		Description:         "Dense waterfront housing with limited garage space.",
	}
}

func testListing() FacilityListing {
	return FacilityListing{
		ID:             "harbor-one",
		RegionID:       "harbor",
		Name:           "Harbor One",
		City:           "Port Meridian",
		Price:          450000,
		SizeSqft:       42000,
		Occupancy:      0.78,
		AvgRentPerSqft: 1.45,
		ExpensesAnnual: 210000,
		Issues:         []string{"roof membrane"},
		TotalUnits:     300,
		Mix:            UnitMix{ClimateControlled: 180, DriveUp: 90, Vault: 30},
	}
}

func testStart() StartConfig {
	start := BuildStart(testRegion(), testListing(), DefaultFinancing(), DefaultPlayer())
	start.ExpansionRegions = []string{"highlands"}
	return start
}

// scenarioState is a 100-unit facility at 80% occupancy seeded with 1.
func scenarioState() *GameState {
	s := NewState(testStart())
	s.Seed = 1
	s.Facility.TotalUnits = 100
	s.Facility.Mix = UnitMix{ClimateControlled: 60, DriveUp: 30, Vault: 10}
	s.Facility.OccupiedUnits = 80
	s.Facility.Delinquency = DelinquencyPolicy{BaseRate: 0.035, Rate: 0.045, AllowPaymentPlans: true, EvictionDays: 45}
	recomputeOccupancyRate(&s.Facility)
	s.Facility.AverageRent = FacilityAverageRent(s.Facility.Mix, s.Facility.Pricing)
	s.Goal = GoalForStage(0)
	return s
}

func assertInvariants(t *testing.T, s *GameState, context string) {
	t.Helper()
	f := s.Facility
	if f.OccupiedUnits < 0 || f.OccupiedUnits > float64(f.TotalUnits) {
		t.Fatalf("%s: occupied %v outside [0,%d]", context, f.OccupiedUnits, f.TotalUnits)
	}
	want := 0.0
	if f.TotalUnits > 0 {
		want = f.OccupiedUnits / float64(f.TotalUnits)
	}
	if math.Abs(f.OccupancyRate-want) > 1e-12 {
		t.Fatalf("%s: occupancy rate %v, want %v", context, f.OccupancyRate, want)
	}
	checkRange(t, context, "reputation", f.Reputation, MinReputation, MaxReputation)
	checkRange(t, context, "automation level", s.Automation.Level, 0, MaxAutomation)
	checkRange(t, context, "reliability", s.Automation.Reliability, MinReliability, MaxReliability)
	checkRange(t, context, "delinquency rate", f.Delinquency.Rate, 0.01, 0.25)
	checkRange(t, context, "credit score", s.Player.CreditScore, MinCreditScore, MaxCreditScore)
	checkRange(t, context, "deferred maintenance", s.Financials.DeferredMaintenance, 0, maxDeferredMaintenance)
	checkRange(t, context, "demand", s.Market.DemandIndex, 0.2, 1.4)
	checkRange(t, context, "momentum", s.Marketing.Momentum, 0, maxMomentum)
	if len(s.Events) > EventLogCap {
		t.Fatalf("%s: %d events, cap %d", context, len(s.Events), EventLogCap)
	}
	for name, series := range map[string][]float64{
		"cash":       s.History.Cash,
		"net":        s.History.Net,
		"monthlyNet": s.History.MonthlyNet,
		"occupancy":  s.History.Occupancy,
		"demand":     s.History.Demand,
		"credit":     s.Player.CreditHistory,
	} {
		if len(series) > HistoryCap {
			t.Fatalf("%s: %s history has %d samples, cap %d", context, name, len(series), HistoryCap)
		}
	}
	if !s.Seed.Valid() {
		t.Fatalf("%s: seed %d invalid", context, s.Seed)
	}
}

func checkRange(t *testing.T, context, name string, v, min, max float64) {
	t.Helper()
	if math.IsNaN(v) || v < min || v > max {
		t.Fatalf("%s: %s = %v outside [%v,%v]", context, name, v, min, max)
	}
}
