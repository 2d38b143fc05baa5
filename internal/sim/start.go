package sim

import (
	"math"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

// Opening calendar date of every playthrough.
const (
	startDay   = 6
	startMonth = 2
	startYear  = 2043
)

// TradeArea describes the market a facility sits in.
type TradeArea struct {
	ID                  string  `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	DemandIndex         float64 `json:"demandIndex" yaml:"demand_index"`
	Competition         float64 `json:"competition" yaml:"competition"`
	OperatingCostFactor float64 `json:"operatingCostFactor" yaml:"operating_cost_factor"`
	BaseRate            float64 `json:"baseRate" yaml:"base_rate"`
	ClimateRisk         float64 `json:"climateRisk" yaml:"climate_risk"`
	AvgCapRate          float64 `json:"avgCapRate" yaml:"avg_cap_rate"`
	Description         string  `json:"description" yaml:"description"`
}

// FacilityListing is a facility offered for purchase.
type FacilityListing struct {
	ID                 string   `json:"id" yaml:"id"`
	RegionID           string   `json:"regionId" yaml:"region_id"`
	Name               string   `json:"name" yaml:"name"`
	City               string   `json:"city" yaml:"city"`
	Price              float64  `json:"price" yaml:"price"`
	SizeSqft           float64  `json:"sizeSqft" yaml:"size_sqft"`
	Occupancy          float64  `json:"occupancy" yaml:"occupancy"`
	AvgRentPerSqft     float64  `json:"avgRentPerSqft" yaml:"avg_rent_per_sqft"`
	ExpensesAnnual     float64  `json:"expensesAnnual" yaml:"expenses_annual"`
	Issues             []string `json:"issues" yaml:"issues"`
	ExpansionPotential float64  `json:"expansionPotential" yaml:"expansion_potential"`
	TotalUnits         int      `json:"totalUnits" yaml:"total_units"`
	DebtService        float64  `json:"debtService" yaml:"debt_service"`
	Mix                UnitMix  `json:"mix" yaml:"mix"`
}

// StartConfig is everything needed to open a playthrough.
type StartConfig struct {
	Region            TradeArea       `json:"region"`
	Facility          FacilityListing `json:"facility"`
	Financing         Financing       `json:"financing"`
	Loan              LoanProfile     `json:"loan"`
	Player            PlayerProfile   `json:"player"`
	CashAfterPurchase float64         `json:"cashAfterPurchase"`
	Seed              int64           `json:"seed"`
	ExpansionRegions  []string        `json:"expansionRegions"`
}

// NewState builds the opening state for a purchase. Two PRNG draws seed
// the delinquency policy, then the cash-flow calculator is run once to
// fill the financial mirrors and history.
func NewState(start StartConfig) *GameState {
	listing := start.Facility
	region := start.Region

	totalUnits := core.Max(listing.TotalUnits, 0)
	facility := Facility{
		Name:          listing.Name,
		Location:      listing.City,
		TotalUnits:    totalUnits,
		OccupiedUnits: math.Round(float64(totalUnits) * core.ClampF(listing.Occupancy, 0, 1)),
		Mix:           listing.Mix,
		Delinquency:   DefaultDelinquency(),
		Reputation: core.ClampF(math.Min(65, 55+(region.DemandIndex-region.Competition)*30),
			MinReputation, MaxReputation),
		AutomationLevel: 0.18,
		Prestige:        0.08,
	}
	facility.Pricing = startPricing(listing)
	recomputeOccupancyRate(&facility)
	facility.AverageRent = FacilityAverageRent(facility.Mix, facility.Pricing)

	debt := math.Max(start.Loan.LoanAmount, 0)
	cash := math.Max(start.CashAfterPurchase, 0)

	s := &GameState{
		Clock:    Clock{Day: startDay, Month: startMonth, Year: startYear, Speed: 1},
		City:     listing.City,
		Facility: facility,
		Financials: Financials{
			Cash:                   cash,
			Debt:                   debt,
			InterestRate:           start.Loan.InterestRate,
			EffectiveOccupancyRate: facility.OccupancyRate,
			MonthlyDebtService:     start.Loan.MonthlyPayment,
			DeferredMaintenance: math.Round(12000 + float64(len(listing.Issues))*6500 +
				region.OperatingCostFactor*5000),
		},
		Marketing: Marketing{Level: 1, Momentum: 0.28, BrandStrength: 0.24},
		Market: Market{
			DemandIndex:         core.ClampF(region.DemandIndex, 0.2, 1.4),
			LastDemandIndex:     core.ClampF(region.DemandIndex, 0.2, 1.4),
			ReferenceRent:       facility.AverageRent * 0.92,
			CompetitionPressure: core.ClampF(region.Competition, 0.05, 0.8),
			ClimateRisk:         core.ClampF(region.ClimateRisk, 0, 1),
			Trend:               TrendStable,
			StoryBeat:           "Regional brief: " + region.Description,
		},
		Automation: Automation{Level: 0.18, Reliability: 0.82},
		Player: Player{
			Cash:             cash,
			CreditScore:      core.ClampF(start.Player.CreditScore, MinCreditScore, MaxCreditScore),
			LoanToValue:      start.Player.LoanToValue,
			MaxPurchase:      start.Player.MaxPurchase,
			RegionsUnlocked:  []string{region.ID},
			RegionsAvailable: append([]string(nil), start.ExpansionRegions...),
			SelectedRegionID: region.ID,
			StartYear:        startYear,
			PropertyPaidOff:  debt <= 0,
		},
		Goal:            GoalForStage(0),
		UnlockedActions: []ActionID{ActionExpandCapacity, ActionLaunchCampaign, ActionOptimizePricing},
		Cooldowns:       make(map[ActionID]int),
		Seed:            core.SeedOrDefault(start.Seed),
		Paused:          true,
	}
	s.Player.BuildUnlocked = s.Player.CreditScore >= buildCreditThreshold
	s.Player.CreditHistory = []float64{s.Player.CreditScore}

	baseRate := s.Seed.Between(0.026, 0.06)
	s.Facility.Delinquency.BaseRate = baseRate
	s.Facility.Delinquency.Rate = core.ClampF(baseRate+s.Seed.Between(-0.006, 0.012), 0.015, 0.2)

	cf := ComputeCashFlow(s, CashFlowOverrides{})
	fin := &s.Financials
	fin.RevenueLastTick = cf.DailyRevenue
	fin.ExpensesLastTick = cf.DailyExpenses
	fin.NetLastTick = cf.OperatingDailyNet
	fin.RevenueMonthly = cf.DailyRevenue * DaysPerMonth
	fin.ExpensesMonthly = cf.DailyExpenses * DaysPerMonth
	fin.NetMonthly = cf.OperatingDailyNet * DaysPerMonth
	fin.AverageDailyRent = cf.AverageDailyRent
	fin.EffectiveOccupancyRate = cf.EffectiveOccupancyRate
	fin.DelinquentShare = cf.DelinquentShare
	fin.BurnRate = cf.DailyExpenses - cf.DailyRevenue
	recomputeValuation(s)
	s.Player.LastMonthNetWorth = s.NetWorth()

	s.History = History{
		Cash:       []float64{fin.Cash},
		Net:        []float64{fin.NetLastTick},
		MonthlyNet: []float64{fin.NetMonthly},
		Occupancy:  []float64{s.Facility.OccupancyRate},
		Demand:     []float64{s.Market.DemandIndex},
	}

	s.Goal.Progress = GoalMetricValue(s.Goal.Metric, s)
	s.Goal.Completed = s.Goal.Progress >= s.Goal.Target

	PushLog(s, s.Market.StoryBeat, ToneInfo)
	PushLog(s, "Acquired "+listing.Name+" in "+listing.City+". Down payment "+
		FormatMoney(start.Loan.DownPayment)+" committed.", ToneInfo)
	return s
}

// startPricing scales the template tiers so the mix-weighted average rent
// matches the listing's rent per square foot times its average unit size.
func startPricing(listing FacilityListing) Pricing {
	template := DefaultPricing()
	unitSize := 100.0
	if listing.TotalUnits > 0 {
		unitSize = listing.SizeSqft / float64(listing.TotalUnits)
	}
	target := listing.AvgRentPerSqft * unitSize
	base := FacilityAverageRent(listing.Mix, template)
	multiplier := 1.0
	if base > 0 && target > 0 {
		multiplier = target / base
	}
	scale := func(t PricingTier) PricingTier {
		return SanitizeTier(PricingTier{
			Standard:   t.Standard * multiplier,
			Prime:      t.Prime * multiplier,
			PrimeShare: t.PrimeShare,
		})
	}
	return Pricing{
		ClimateControlled: scale(template.ClimateControlled),
		DriveUp:           scale(template.DriveUp),
		Vault:             scale(template.Vault),
		Specials:          template.Specials,
	}
}

// FormatMoney renders whole dollars with thousands separators.
func FormatMoney(v float64) string {
	if v < 0 {
		return "-$" + humanize.Comma(int64(math.Round(-v)))
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}
