package sim

import (
	"math"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

// CashFlowOverrides replace values the calculator would otherwise derive.
// The tick engine passes the unit splits it already computed so both sides
// agree on one set of numbers.
type CashFlowOverrides struct {
	PayingUnits              *float64
	RemainingDelinquentUnits *float64
	CollectionRate           *float64
	DailyRent                *float64
	SpecialsDiscount         *float64
	ManagerRevenueBonus      *float64
}

// RevenueBreakdown itemizes one day of revenue.
type RevenueBreakdown struct {
	PayingTenants          float64 `json:"payingTenants"`
	DelinquentCollections  float64 `json:"delinquentCollections"`
	ManagerLift            float64 `json:"managerLift"`
	SpecialsDiscountImpact float64 `json:"specialsDiscountImpact"`
	Total                  float64 `json:"total"`
}

// ExpenseBreakdown itemizes one day of expenses.
type ExpenseBreakdown struct {
	Operations float64 `json:"operations"`
	Marketing  float64 `json:"marketing"`
	Automation float64 `json:"automation"`
	Interest   float64 `json:"interest"`
	Insurance  float64 `json:"insurance"`
	Total      float64 `json:"total"`
}

// CashFlow is the full financial snapshot for one day.
type CashFlow struct {
	DailyRevenue           float64 `json:"dailyRevenue"`
	DailyExpenses          float64 `json:"dailyExpenses"`
	OperatingDailyNet      float64 `json:"operatingDailyNet"`
	AverageDailyRent       float64 `json:"averageDailyRent"`
	EffectiveOccupancyRate float64 `json:"effectiveOccupancyRate"`
	DelinquentShare        float64 `json:"delinquentShare"`

	PayingUnits     float64 `json:"payingUnits"`
	DelinquentUnits float64 `json:"delinquentUnits"`

	CollectionRate   float64 `json:"collectionRate"`
	ManagerBonus     float64 `json:"managerBonus"`
	SpecialsDiscount float64 `json:"specialsDiscount"`

	Revenue  RevenueBreakdown `json:"revenue"`
	Expenses ExpenseBreakdown `json:"expenses"`
}

// ManagerRevenueBonus returns the active manager's revenue multiplier, or 0.
func (s *GameState) ManagerRevenueBonus() float64 {
	if s.Automation.Manager == nil {
		return 0
	}
	return s.Automation.Manager.Bonuses.Revenue
}

// ComputeCashFlow derives one day of revenue and expenses from s. It never
// mutates s, so it serves both what-if previews and the tick engine.
func ComputeCashFlow(s *GameState, o CashFlowOverrides) CashFlow {
	f := &s.Facility
	policy := f.Delinquency

	specialsDiscount := SpecialsDiscountFactor(f.Pricing)
	if o.SpecialsDiscount != nil {
		specialsDiscount = *o.SpecialsDiscount
	}
	collectionRate := PaymentPlanCollectionRate(policy)
	if o.CollectionRate != nil {
		collectionRate = *o.CollectionRate
	}

	var paying, delinquent float64
	if o.PayingUnits != nil && o.RemainingDelinquentUnits != nil {
		paying = *o.PayingUnits
		delinquent = *o.RemainingDelinquentUnits
	} else {
		paying, delinquent = splitOccupancy(f.OccupiedUnits, policy)
	}

	managerBonus := s.ManagerRevenueBonus()
	if o.ManagerRevenueBonus != nil {
		managerBonus = *o.ManagerRevenueBonus
	}
	dailyRent := f.AverageRent / DaysPerMonth
	if o.DailyRent != nil {
		dailyRent = *o.DailyRent
	}

	payingRent := paying * dailyRent
	collections := delinquent * collectionRate * dailyRent
	base := payingRent + collections
	managerLift := base * managerBonus
	gross := base + managerLift
	specialsImpact := -gross * specialsDiscount
	revenue := gross + specialsImpact

	operationsShare := core.ClampF(0.26-s.Automation.Level*0.1, 0.16, 0.30)
	operations := math.Max(220, base*operationsShare)
	marketing := math.Max(30, float64(s.Marketing.Level)*70+s.Marketing.Momentum*40)
	automation := 60 * (1 + s.Automation.Level*1.8)
	interest := s.Financials.Debt * s.Financials.InterestRate / 360
	insurance := s.Market.ClimateRisk * 120
	expenses := operations + marketing + automation + interest + insurance

	units := math.Max(float64(f.TotalUnits), 1)
	effective := (paying + delinquent*collectionRate) * (1 + managerBonus)

	return CashFlow{
		DailyRevenue:           revenue,
		DailyExpenses:          expenses,
		OperatingDailyNet:      revenue - expenses,
		AverageDailyRent:       dailyRent,
		EffectiveOccupancyRate: core.ClampF(effective/units, 0, 1),
		DelinquentShare:        core.ClampF(delinquent/units, 0, 1),
		PayingUnits:            paying,
		DelinquentUnits:        delinquent,
		CollectionRate:         collectionRate,
		ManagerBonus:           managerBonus,
		SpecialsDiscount:       specialsDiscount,
		Revenue: RevenueBreakdown{
			PayingTenants:          payingRent,
			DelinquentCollections:  collections,
			ManagerLift:            managerLift,
			SpecialsDiscountImpact: specialsImpact,
			Total:                  revenue,
		},
		Expenses: ExpenseBreakdown{
			Operations: operations,
			Marketing:  marketing,
			Automation: automation,
			Interest:   interest,
			Insurance:  insurance,
			Total:      expenses,
		},
	}
}

// splitOccupancy divides occupied units into paying and still-delinquent
// units after the eviction pass implied by the policy.
func splitOccupancy(occupied float64, policy DelinquencyPolicy) (paying, delinquent float64) {
	raw := occupied * core.ClampF(policy.Rate, 0, 0.3)
	evicted := raw * EvictionUrgencyFactor(policy) * evictionMitigation(policy)
	delinquent = core.ClampF(raw-evicted, 0, math.Max(occupied, 0))
	paying = math.Max(0, occupied-delinquent)
	return paying, delinquent
}

func evictionMitigation(p DelinquencyPolicy) float64 {
	if p.AllowPaymentPlans {
		return 0.5
	}
	return 1
}
