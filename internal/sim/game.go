// Package sim is the deterministic economic simulation of a self-storage
// facility. A GameState advances one simulated day per AdvanceTick and is
// perturbed between ticks by ApplyAction and the policy setters. The
// package performs no I/O and draws randomness only from the seed carried
// inside the state, so a start configuration and a seed replay exactly.
package sim

import "github.com/vovakirdan/storage-mogul/internal/core"

// UnitCategory names one of the three unit categories.
type UnitCategory string

const (
	CategoryClimateControlled UnitCategory = "climate_controlled"
	CategoryDriveUp           UnitCategory = "drive_up"
	CategoryVault             UnitCategory = "vault"
)

// Game owns one playthrough. It is not safe for concurrent use; callers
// serialize ticks, actions and policy changes.
type Game struct {
	start StartConfig
	state *GameState
}

// New creates a game opened from start.
func New(start StartConfig) *Game {
	g := &Game{}
	g.Reset(start)
	return g
}

// Restore wraps a previously saved state. start is kept for Reset.
func Restore(start StartConfig, state *GameState) *Game {
	return &Game{start: start, state: state}
}

// Reset replaces the whole state with a fresh one opened from start.
func (g *Game) Reset(start StartConfig) {
	g.start = start
	g.state = NewState(start)
}

// Start returns the configuration the game was opened from.
func (g *Game) Start() StartConfig {
	return g.start
}

// Step advances the simulation by one day.
func (g *Game) Step() TickResult {
	return AdvanceTick(g.state)
}

// Apply validates and executes a player action.
func (g *Game) Apply(id ActionID) bool {
	return ApplyAction(g.state, id)
}

// State returns the live state. Callers must not retain it across ticks;
// use Clone for a stable copy.
func (g *Game) State() *GameState {
	return g.state
}

// CashFlow previews today's cash flow without touching the state.
func (g *Game) CashFlow() CashFlow {
	return ComputeCashFlow(g.state, CashFlowOverrides{})
}

// SetPaused sets the pause flag. Clearing it also clears receivership so
// the owner can attempt a recovery.
func (g *Game) SetPaused(paused bool) {
	g.state.Paused = paused
	if !paused {
		g.state.Insolvent = false
	}
}

// SetSpeed stores the clamped speed multiplier.
func (g *Game) SetSpeed(speed float64) {
	g.state.Clock.Speed = core.ClampSpeed(speed)
}

// UpdatePricingTier applies a partial tier change and refreshes average rent.
// Unknown categories are ignored.
func (g *Game) UpdatePricingTier(category UnitCategory, u TierUpdate) {
	p := &g.state.Facility.Pricing
	switch category {
	case CategoryClimateControlled:
		p.ClimateControlled = NormalizeTier(u, p.ClimateControlled)
	case CategoryDriveUp:
		p.DriveUp = NormalizeTier(u, p.DriveUp)
	case CategoryVault:
		p.Vault = NormalizeTier(u, p.Vault)
	default:
		return
	}
	g.state.Facility.AverageRent = FacilityAverageRent(g.state.Facility.Mix, *p)
}

// ConfigureSpecials applies a partial specials change and refreshes average rent.
func (g *Game) ConfigureSpecials(u SpecialsUpdate) {
	f := &g.state.Facility
	f.Pricing.Specials = NormalizeSpecials(u, f.Pricing.Specials)
	f.AverageRent = FacilityAverageRent(f.Mix, f.Pricing)
}

// UpdateDelinquency applies a partial delinquency policy change.
func (g *Game) UpdateDelinquency(u DelinquencyUpdate) {
	f := &g.state.Facility
	f.Delinquency = NormalizeDelinquency(u, f.Delinquency)
}

// Snapshot captures the headline numbers for determinism checks and reports.
type Snapshot struct {
	Tick            int
	Date            string
	Cash            float64
	Debt            float64
	CreditScore     float64
	TotalUnits      int
	OccupiedUnits   float64
	OccupancyRate   float64
	DemandIndex     float64
	DelinquencyRate float64
	Reputation      float64
	AutomationLevel float64
	Valuation       float64
	NetLastTick     float64
	GoalStage       int
	Paused          bool
	Insolvent       bool
	Seed            core.Seed
}

// Snapshot returns the current headline numbers.
func (g *Game) Snapshot() Snapshot {
	return SnapshotOf(g.state)
}

// SnapshotOf returns the headline numbers of s.
func SnapshotOf(s *GameState) Snapshot {
	return Snapshot{
		Tick:            s.Tick,
		Date:            s.Clock.String(),
		Cash:            s.Financials.Cash,
		Debt:            s.Financials.Debt,
		CreditScore:     s.Player.CreditScore,
		TotalUnits:      s.Facility.TotalUnits,
		OccupiedUnits:   s.Facility.OccupiedUnits,
		OccupancyRate:   s.Facility.OccupancyRate,
		DemandIndex:     s.Market.DemandIndex,
		DelinquencyRate: s.Facility.Delinquency.Rate,
		Reputation:      s.Facility.Reputation,
		AutomationLevel: s.Automation.Level,
		Valuation:       s.Financials.Valuation,
		NetLastTick:     s.Financials.NetLastTick,
		GoalStage:       s.GoalStage,
		Paused:          s.Paused,
		Insolvent:       s.Insolvent,
		Seed:            s.Seed,
	}
}
