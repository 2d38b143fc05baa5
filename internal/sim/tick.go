package sim

import (
	"math"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

const (
	lowCashThreshold     = 35000.0
	climateRiskThreshold = 0.65
	buildCreditThreshold = 750.0
	aiManagerOccupancy   = 0.78
	expansionYears       = 5
	trendThreshold       = 0.02
)

var marketBeats = [...]string{
	"Rival REIT testing drone-access lockers across town.",
	"Floodplain maps updated; insurers revisit premium schedules.",
	"Local esports league requests after-hours storage for arenas.",
	"Construction labor shortage easing, permits clearing faster.",
}

// TickResult reports what a single tick did.
type TickResult struct {
	MonthRolled bool
	Halted      bool
	CashFlow    CashFlow
}

// AdvanceTick applies one simulated day to s. The steps run in a fixed
// order because later steps read values produced earlier in the same tick.
// The only early exit is receivership: cash is floored at zero, the state
// is paused and history, unlocks and goals are left untouched.
func AdvanceTick(s *GameState) TickResult {
	f := &s.Facility
	fin := &s.Financials
	mkt := &s.Market
	auto := &s.Automation
	mk := &s.Marketing

	tickCooldowns(s)
	s.Tick++
	monthRolled := advanceClock(&s.Clock)

	mk.Momentum = math.Max(0, mk.Momentum-0.02)
	mk.BrandStrength = core.ClampF(mk.BrandStrength+(f.Reputation-55)/600, 0, 1)
	f.AverageRent = FacilityAverageRent(f.Mix, f.Pricing)

	specials := SanitizeSpecials(f.Pricing.Specials)
	specialsBoost := specials.AdoptionRate * 0.05
	specialsDiscount := SpecialsDiscountFactor(f.Pricing)

	// Delinquency drifts toward a stress-driven target.
	pressure := pricePressure(f.AverageRent, mkt.ReferenceRent)
	reputationPenalty := math.Max(0, (60-f.Reputation)/400)
	maintenancePressure := fin.DeferredMaintenance / maxDeferredMaintenance * 0.04
	noise := s.Seed.Between(-0.004, 0.006)
	policy := &f.Delinquency
	target := core.ClampF(policy.BaseRate+pressure*0.08+reputationPenalty+maintenancePressure+noise, 0.015, 0.25)
	policy.Rate = core.ClampF(policy.Rate+(target-policy.Rate)*0.35, 0.01, 0.25)
	rate := policy.Rate

	urgency := EvictionUrgencyFactor(*policy)
	collectionRate := PaymentPlanCollectionRate(*policy)
	delinquencyDrag := urgency * 0.05
	if policy.AllowPaymentPlans {
		delinquencyDrag += rate * 0.05
	} else {
		delinquencyDrag += rate * 0.12
	}

	// Demand.
	demandNoise := s.Seed.Next()*0.06 - 0.03
	macroWave := s.Seed.Next()*0.03 - 0.015
	marketingLift := float64(mk.Level)*0.025 + mk.Momentum*0.2 + mk.BrandStrength*0.12
	automationLift := auto.Level * 0.04
	reputationLift := (f.Reputation - 60) / 140
	competitionDrag := mkt.CompetitionPressure * 0.05
	mkt.DemandIndex = core.ClampF(mkt.DemandIndex+demandNoise+macroWave+marketingLift+automationLift+
		reputationLift+specialsBoost*0.4-pressure*0.5-competitionDrag, 0.2, 1.4)

	mkt.Trend = trendFor(mkt.DemandIndex - mkt.LastDemandIndex)
	mkt.LastDemandIndex = mkt.DemandIndex
	mkt.CompetitionPressure = core.ClampF(mkt.CompetitionPressure+s.Seed.Next()*0.02-0.01, 0.05, 0.8)
	mkt.ClimateRisk = core.ClampF(mkt.ClimateRisk+s.Seed.Next()*0.015-0.007, 0, 1)

	// Occupancy absorbs toward the target ratio.
	total := float64(f.TotalUnits)
	targetRatio := core.ClampF(mkt.DemandIndex+marketingLift*0.5+automationLift*0.35+reputationLift*0.6+
		specialsBoost*0.6-pressure*0.7-mkt.ClimateRisk*0.03-rate*0.25,
		0.25, 0.99+auto.Level*0.04)
	absorption := 0.12 + mk.Momentum*0.12 + auto.Level*0.05
	gap := targetRatio*total - f.OccupiedUnits
	f.OccupiedUnits = core.ClampF(f.OccupiedUnits+gap*absorption, 0, math.Max(total, 0))
	recomputeOccupancyRate(f)

	// Evictions.
	rawDelinquent := f.OccupiedUnits * rate
	evicted := rawDelinquent * urgency * evictionMitigation(*policy)
	if evicted > 0 {
		f.OccupiedUnits = core.ClampF(f.OccupiedUnits-evicted, 0, math.Max(total, 0))
		recomputeOccupancyRate(f)
	}
	remainingDelinquent := math.Min(f.OccupiedUnits, math.Max(0, rawDelinquent-evicted))
	paying := math.Max(0, f.OccupiedUnits-remainingDelinquent)

	// Reputation and reliability.
	satisfaction := f.OccupancyRate*0.65 + mk.BrandStrength*0.2 + auto.Reliability*0.1 + specialsBoost*0.4 -
		pressure*0.4 - delinquencyDrag - maintenancePressure*2.5
	if policy.AllowPaymentPlans {
		satisfaction += 0.03
	}
	satisfaction = core.ClampF(satisfaction, -1, 1)
	f.Reputation = core.ClampF(f.Reputation+satisfaction*1.3, MinReputation, MaxReputation)
	auto.Level = core.ClampF(auto.Level, 0, MaxAutomation)
	auto.Reliability = core.ClampF(auto.Reliability-0.005+auto.Level*0.01, MinReliability, MaxReliability)
	f.AutomationLevel = auto.Level

	cf := ComputeCashFlow(s, CashFlowOverrides{
		PayingUnits:              &paying,
		RemainingDelinquentUnits: &remainingDelinquent,
		CollectionRate:           &collectionRate,
		DailyRent:                Ptr(f.AverageRent / DaysPerMonth),
		SpecialsDiscount:         &specialsDiscount,
	})

	// Cash, with a principal sweep on profitable days.
	net := cf.OperatingDailyNet
	fin.Cash += net
	if net > 0 {
		sweep := math.Min(net*0.08, math.Min(fin.Debt, fin.Cash))
		if sweep > 0 {
			fin.Debt -= sweep
			fin.Cash -= sweep
			net -= sweep
		}
	}

	s.Player.MonthToDateNet += net
	fin.RevenueLastTick = cf.DailyRevenue
	fin.ExpensesLastTick = cf.DailyExpenses
	fin.NetLastTick = net
	fin.RevenueMonthly = cf.DailyRevenue * DaysPerMonth
	fin.ExpensesMonthly = cf.DailyExpenses * DaysPerMonth
	fin.NetMonthly = net * DaysPerMonth
	fin.AverageDailyRent = cf.AverageDailyRent
	fin.EffectiveOccupancyRate = cf.EffectiveOccupancyRate
	fin.DelinquentShare = cf.DelinquentShare
	fin.DeferredMaintenance = core.ClampF(fin.DeferredMaintenance+maintenanceDrift(net, f.OccupancyRate, pressure),
		0, maxDeferredMaintenance)
	fin.BurnRate = cf.DailyExpenses - cf.DailyRevenue
	fin.MonthlyDebtService = fin.Debt * fin.InterestRate / 12
	recomputeValuation(s)
	s.Player.Cash = fin.Cash

	updateCredit(s, monthRolled)

	result := TickResult{MonthRolled: monthRolled, CashFlow: cf}
	if fin.Cash < 0 {
		fin.Cash = 0
		s.Player.Cash = 0
		recomputeValuation(s)
		s.Paused = true
		s.Insolvent = true
		PushLog(s, "Cash exhausted. Lenders move the facility into receivership.", ToneWarning)
		result.Halted = true
		return result
	}
	s.Insolvent = false

	recordHistory(s)
	emitNarrative(s)
	checkUnlocks(s)
	evaluateGoal(s)
	return result
}

// trendFor labels a day-over-day demand change.
func trendFor(delta float64) Trend {
	switch {
	case delta > trendThreshold:
		return TrendSurging
	case delta < -trendThreshold:
		return TrendSoftening
	default:
		return TrendStable
	}
}

func pricePressure(averageRent, referenceRent float64) float64 {
	if referenceRent <= 0 {
		return 0
	}
	return math.Max(0, (averageRent-referenceRent)/referenceRent)
}

// maintenanceDrift grows the backlog on losses and stress and pays it down
// out of profit.
func maintenanceDrift(net, occupancy, pressure float64) float64 {
	d := 35 + math.Max(0, occupancy-0.9)*400 + pressure*300
	if net < 0 {
		d += -net * 0.15
	} else {
		d -= net * 0.1
	}
	return d
}

func emitNarrative(s *GameState) {
	if s.Financials.Cash < lowCashThreshold && s.Tick%6 == 0 {
		PushLog(s, "Cash reserves drifting low, consider pausing construction.", ToneWarning)
	}
	if s.Market.ClimateRisk > climateRiskThreshold && s.Tick%7 == 0 {
		PushLog(s, "Climate risk desk recommends revisiting insurance coverage.", ToneWarning)
	}
	if s.Tick%8 == 0 {
		s.Market.StoryBeat = marketBeats[s.Seed.Index(len(marketBeats))]
		PushLog(s, s.Market.StoryBeat, ToneInfo)
	}
}

// checkUnlocks fires each milestone once; the flag or set membership is
// the guard.
func checkUnlocks(s *GameState) {
	if s.Facility.OccupancyRate > aiManagerOccupancy && !s.IsUnlocked(ActionTrainAIManager) {
		s.UnlockedActions = append(s.UnlockedActions, ActionTrainAIManager)
		def, _ := LookupAction(ActionTrainAIManager)
		PushLog(s, def.Title+" unlocked, board approves AI staffing budget.", TonePositive)
	}

	p := &s.Player
	if p.CreditScore >= buildCreditThreshold && !p.BuildUnlocked {
		p.BuildUnlocked = true
		PushLog(s, "Credit score cleared 750. Lenders green-light new construction.", TonePositive)
	}

	if s.Tick >= expansionYears*MonthsPerYear*DaysPerMonth && !p.ExpansionUnlocked {
		p.ExpansionUnlocked = true
		for _, id := range p.RegionsAvailable {
			if !containsString(p.RegionsUnlocked, id) {
				p.RegionsUnlocked = append(p.RegionsUnlocked, id)
			}
		}
		PushLog(s, "Five-year track record established. New trade areas open for expansion.", TonePositive)
	}
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
