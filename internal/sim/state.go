package sim

import "github.com/vovakirdan/storage-mogul/internal/core"

// Calendar and buffer limits.
const (
	DaysPerMonth   = 30
	MonthsPerYear  = 12
	HistoryCap     = 72
	EventLogCap    = 12
	MinReputation  = 35.0
	MaxReputation  = 98.0
	MaxAutomation  = 1.2
	MinReliability = 0.6
	MaxReliability = 0.99
	MinCreditScore = 300.0
	MaxCreditScore = 850.0

	maxDeferredMaintenance = 250000.0
	maxMarketingLevel      = 6
	maxMomentum            = 1.8
)

// Clock is the simulated calendar: 30-day months, 12-month years.
type Clock struct {
	Day   int     `json:"day"`
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Speed float64 `json:"speed"`
}

// UnitMix is the fixed partition of units into the three categories.
type UnitMix struct {
	ClimateControlled int `json:"climateControlled" yaml:"climate_controlled"`
	DriveUp           int `json:"driveUp" yaml:"drive_up"`
	Vault             int `json:"vault" yaml:"vault"`
}

// Total returns the number of units across all categories.
func (m UnitMix) Total() int {
	return m.ClimateControlled + m.DriveUp + m.Vault
}

// PricingTier is the monthly rate for one unit category.
type PricingTier struct {
	Standard   float64 `json:"standard"`
	Prime      float64 `json:"prime"`
	PrimeShare float64 `json:"primeShare"`
}

// Specials is the promotional offer configuration.
type Specials struct {
	Offer        SpecialsOffer `json:"offer"`
	AdoptionRate float64       `json:"adoptionRate"`
}

// Pricing holds the per-category tiers and the specials offer.
type Pricing struct {
	ClimateControlled PricingTier `json:"climateControlled"`
	DriveUp           PricingTier `json:"driveUp"`
	Vault             PricingTier `json:"vault"`
	Specials          Specials    `json:"specials"`
}

// DelinquencyPolicy governs late payers and evictions.
type DelinquencyPolicy struct {
	BaseRate          float64 `json:"baseRate"`
	Rate              float64 `json:"rate"`
	AllowPaymentPlans bool    `json:"allowPaymentPlans"`
	EvictionDays      float64 `json:"evictionDays"`
}

// Facility is the physical property and its operating policy.
type Facility struct {
	Name            string            `json:"name"`
	Location        string            `json:"location"`
	TotalUnits      int               `json:"totalUnits"`
	OccupiedUnits   float64           `json:"occupiedUnits"`
	OccupancyRate   float64           `json:"occupancyRate"`
	AverageRent     float64           `json:"averageRent"`
	Mix             UnitMix           `json:"mix"`
	Pricing         Pricing           `json:"pricing"`
	Delinquency     DelinquencyPolicy `json:"delinquency"`
	Reputation      float64           `json:"reputation"`
	AutomationLevel float64           `json:"automationLevel"`
	Prestige        float64           `json:"prestige"`
}

// Financials tracks cash, debt and the per-tick and monthly mirrors.
type Financials struct {
	Cash                   float64 `json:"cash"`
	Debt                   float64 `json:"debt"`
	InterestRate           float64 `json:"interestRate"`
	RevenueLastTick        float64 `json:"revenueLastTick"`
	ExpensesLastTick       float64 `json:"expensesLastTick"`
	NetLastTick            float64 `json:"netLastTick"`
	RevenueMonthly         float64 `json:"revenueMonthly"`
	ExpensesMonthly        float64 `json:"expensesMonthly"`
	NetMonthly             float64 `json:"netMonthly"`
	AverageDailyRent       float64 `json:"averageDailyRent"`
	EffectiveOccupancyRate float64 `json:"effectiveOccupancyRate"`
	DelinquentShare        float64 `json:"delinquentShare"`
	Valuation              float64 `json:"valuation"`
	MonthlyDebtService     float64 `json:"monthlyDebtService"`
	BurnRate               float64 `json:"burnRate"`
	DeferredMaintenance    float64 `json:"deferredMaintenance"`
}

// Marketing is the demand-generation state.
type Marketing struct {
	Level         int     `json:"level"`
	Momentum      float64 `json:"momentum"`
	BrandStrength float64 `json:"brandStrength"`
}

// Market is the trade-area environment around the facility.
type Market struct {
	DemandIndex         float64 `json:"demandIndex"`
	LastDemandIndex     float64 `json:"lastDemandIndex"`
	ReferenceRent       float64 `json:"referenceRent"`
	CompetitionPressure float64 `json:"competitionPressure"`
	ClimateRisk         float64 `json:"climateRisk"`
	Trend               Trend   `json:"trend"`
	StoryBeat           string  `json:"storyBeat"`
}

// ManagerBonuses are the fixed multipliers of a manager archetype.
type ManagerBonuses struct {
	Automation float64 `json:"automation"`
	Reputation float64 `json:"reputation"`
	Revenue    float64 `json:"revenue"`
}

// ManagerProfile is an AI facility manager.
type ManagerProfile struct {
	Archetype   Archetype      `json:"archetype"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Bonuses     ManagerBonuses `json:"bonuses"`
}

// Automation is the robotics state. Manager is nil until one is trained.
type Automation struct {
	Level       float64         `json:"level"`
	Reliability float64         `json:"reliability"`
	Manager     *ManagerProfile `json:"aiManager"`
}

// Player is the owner's credit profile and progression flags.
type Player struct {
	Cash                   float64   `json:"cash"`
	CreditScore            float64   `json:"creditScore"`
	LoanToValue            float64   `json:"loanToValue"`
	MaxPurchase            float64   `json:"maxPurchase"`
	BuildUnlocked          bool      `json:"buildUnlocked"`
	MonthToDateNet         float64   `json:"monthToDateNet"`
	NegativeNetMonthStreak int       `json:"negativeNetMonthStreak"`
	LastMonthNetWorth      float64   `json:"lastMonthNetWorth"`
	CreditHistory          []float64 `json:"creditHistory"`
	RegionsUnlocked        []string  `json:"regionsUnlocked"`
	RegionsAvailable       []string  `json:"regionsAvailable"`
	SelectedRegionID       string    `json:"selectedRegionId"`
	StartYear              int       `json:"startYear"`
	ExpansionUnlocked      bool      `json:"expansionUnlocked"`
	PropertyPaidOff        bool      `json:"propertyPaidOff"`
	NetWorthNegative       bool      `json:"netWorthNegative"`
}

// Goal is the active staged objective.
type Goal struct {
	ID          GoalID     `json:"id"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Metric      GoalMetric `json:"metric"`
	Target      float64    `json:"target"`
	Progress    float64    `json:"progress"`
	Completed   bool       `json:"completed"`
}

// LogEntry is one event log line.
type LogEntry struct {
	ID      int    `json:"id"`
	Tick    int    `json:"tick"`
	Tone    Tone   `json:"tone"`
	Message string `json:"message"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Day     int    `json:"day"`
}

// History holds the trailing series sampled once per tick.
type History struct {
	Cash       []float64 `json:"cash"`
	Net        []float64 `json:"net"`
	MonthlyNet []float64 `json:"monthlyNet"`
	Occupancy  []float64 `json:"occupancy"`
	Demand     []float64 `json:"demand"`
}

// GameState is the single mutable aggregate of a playthrough.
type GameState struct {
	Tick            int              `json:"tick"`
	Clock           Clock            `json:"clock"`
	City            string           `json:"city"`
	Facility        Facility         `json:"facility"`
	Financials      Financials       `json:"financials"`
	Marketing       Marketing        `json:"marketing"`
	Market          Market           `json:"market"`
	Automation      Automation       `json:"automation"`
	Player          Player           `json:"player"`
	Goal            Goal             `json:"goals"`
	GoalStage       int              `json:"goalStage"`
	Events          []LogEntry       `json:"events"`
	UnlockedActions []ActionID       `json:"unlockedActions"`
	Cooldowns       map[ActionID]int `json:"cooldowns"`
	Seed            core.Seed        `json:"seed"`
	LogSequence     int              `json:"logSequence"`
	Paused          bool             `json:"paused"`
	Insolvent       bool             `json:"insolvent"`
	History         History          `json:"history"`
}

// Clone returns a deep copy of the state. Saves and read-only views are
// taken from clones so they never alias the live aggregate.
func (s *GameState) Clone() *GameState {
	c := *s
	if s.Automation.Manager != nil {
		m := *s.Automation.Manager
		c.Automation.Manager = &m
	}
	c.Player.CreditHistory = append([]float64(nil), s.Player.CreditHistory...)
	c.Player.RegionsUnlocked = append([]string(nil), s.Player.RegionsUnlocked...)
	c.Player.RegionsAvailable = append([]string(nil), s.Player.RegionsAvailable...)
	c.Events = append([]LogEntry(nil), s.Events...)
	c.UnlockedActions = append([]ActionID(nil), s.UnlockedActions...)
	c.Cooldowns = make(map[ActionID]int, len(s.Cooldowns))
	for k, v := range s.Cooldowns {
		c.Cooldowns[k] = v
	}
	c.History = History{
		Cash:       append([]float64(nil), s.History.Cash...),
		Net:        append([]float64(nil), s.History.Net...),
		MonthlyNet: append([]float64(nil), s.History.MonthlyNet...),
		Occupancy:  append([]float64(nil), s.History.Occupancy...),
		Demand:     append([]float64(nil), s.History.Demand...),
	}
	return &c
}

// IsUnlocked reports whether the action is in the unlocked set.
func (s *GameState) IsUnlocked(id ActionID) bool {
	for _, a := range s.UnlockedActions {
		if a == id {
			return true
		}
	}
	return false
}

// NetWorth is cash plus the income-capitalized facility value less debt.
func (s *GameState) NetWorth() float64 {
	return s.Financials.Cash + facilityValue(s) - s.Financials.Debt
}

func facilityValue(s *GameState) float64 {
	return float64(s.Facility.TotalUnits) * s.Facility.AverageRent * 8
}

func recomputeOccupancyRate(f *Facility) {
	if f.TotalUnits > 0 {
		f.OccupancyRate = f.OccupiedUnits / float64(f.TotalUnits)
	} else {
		f.OccupancyRate = 0
	}
}

func recomputeValuation(s *GameState) {
	v := facilityValue(s) + s.Financials.Cash - s.Financials.Debt
	if v < 0 {
		v = 0
	}
	s.Financials.Valuation = v
}
