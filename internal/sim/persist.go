package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

// SaveVersion is the current save format version.
const SaveVersion = 1

var (
	// ErrFutureSave is returned for saves written by a newer version.
	ErrFutureSave = errors.New("sim: save was written by a newer version")
	// ErrNoState is returned when a save carries no state payload.
	ErrNoState = errors.New("sim: save has no state")
)

// SaveFile is the versioned envelope around a serialized state.
type SaveFile struct {
	Version   int        `json:"version"`
	Timestamp int64      `json:"timestamp"`
	State     *GameState `json:"state"`
}

type rawSaveFile struct {
	Version   int             `json:"version"`
	Timestamp int64           `json:"timestamp"`
	State     json.RawMessage `json:"state"`
}

// EncodeSave serializes a point-in-time copy of s.
func EncodeSave(s *GameState, now time.Time) ([]byte, error) {
	data, err := json.Marshal(SaveFile{
		Version:   SaveVersion,
		Timestamp: now.UnixMilli(),
		State:     s.Clone(),
	})
	if err != nil {
		return nil, fmt.Errorf("sim: cannot encode save: %w", err)
	}
	return data, nil
}

// DecodeSave restores a save by merging it field by field over a copy of
// base, then re-validating the result. Fields the save lacks keep base's
// values. Saves from a newer version are rejected whole. The returned
// state is always paused.
func DecodeSave(data []byte, base *GameState) (*GameState, time.Time, error) {
	var raw rawSaveFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, time.Time{}, fmt.Errorf("sim: cannot parse save: %w", err)
	}
	if raw.Version > SaveVersion {
		return nil, time.Time{}, ErrFutureSave
	}
	if len(raw.State) == 0 || string(raw.State) == "null" {
		return nil, time.Time{}, ErrNoState
	}

	merged := base.Clone()
	if err := json.Unmarshal(raw.State, merged); err != nil {
		return nil, time.Time{}, fmt.Errorf("sim: cannot parse save state: %w", err)
	}
	Finalize(merged, base)
	return merged, time.UnixMilli(raw.Timestamp), nil
}

// Finalize re-derives computed fields and clamps every bounded field of a
// restored state. Values that cannot be repaired fall back to base.
func Finalize(s *GameState, base *GameState) {
	c := &s.Clock
	c.Day = core.Clamp(c.Day, 1, DaysPerMonth)
	c.Month = core.Clamp(c.Month, 1, MonthsPerYear)
	c.Speed = core.ClampSpeed(c.Speed)

	f := &s.Facility
	if f.TotalUnits < 0 {
		f.TotalUnits = 0
	}
	f.Mix.ClimateControlled = core.Max(f.Mix.ClimateControlled, 0)
	f.Mix.DriveUp = core.Max(f.Mix.DriveUp, 0)
	f.Mix.Vault = core.Max(f.Mix.Vault, 0)
	f.OccupiedUnits = core.ClampF(core.FiniteOr(f.OccupiedUnits, base.Facility.OccupiedUnits), 0, float64(f.TotalUnits))
	recomputeOccupancyRate(f)
	f.Pricing = SanitizePricing(f.Pricing)
	f.Delinquency = SanitizeDelinquency(f.Delinquency)
	f.Delinquency.Rate = core.ClampF(f.Delinquency.Rate, 0.01, 0.25)
	f.AverageRent = core.FiniteOr(f.AverageRent, FacilityAverageRent(f.Mix, f.Pricing))
	f.Reputation = core.ClampF(core.FiniteOr(f.Reputation, base.Facility.Reputation), MinReputation, MaxReputation)
	f.Prestige = core.ClampF(core.FiniteOr(f.Prestige, base.Facility.Prestige), 0, 1.5)

	a := &s.Automation
	a.Level = core.ClampF(core.FiniteOr(a.Level, base.Automation.Level), 0, MaxAutomation)
	a.Reliability = core.ClampF(core.FiniteOr(a.Reliability, base.Automation.Reliability), MinReliability, MaxReliability)
	f.AutomationLevel = a.Level
	if a.Manager != nil {
		if profile, ok := ManagerProfileFor(a.Manager.Archetype); ok {
			a.Manager = &profile
		} else {
			a.Manager = nil
		}
	}

	m := &s.Marketing
	m.Level = core.Clamp(m.Level, 0, maxMarketingLevel)
	m.Momentum = core.ClampF(core.FiniteOr(m.Momentum, 0), 0, maxMomentum)
	m.BrandStrength = core.ClampF(core.FiniteOr(m.BrandStrength, base.Marketing.BrandStrength), 0, 1)

	mk := &s.Market
	mk.DemandIndex = core.ClampF(core.FiniteOr(mk.DemandIndex, base.Market.DemandIndex), 0.2, 1.4)
	mk.LastDemandIndex = core.ClampF(core.FiniteOr(mk.LastDemandIndex, mk.DemandIndex), 0.2, 1.4)
	mk.ReferenceRent = core.FiniteOr(mk.ReferenceRent, base.Market.ReferenceRent)
	mk.CompetitionPressure = core.ClampF(core.FiniteOr(mk.CompetitionPressure, base.Market.CompetitionPressure), 0.05, 0.8)
	mk.ClimateRisk = core.ClampF(core.FiniteOr(mk.ClimateRisk, base.Market.ClimateRisk), 0, 1)
	switch mk.Trend {
	case TrendSurging, TrendStable, TrendSoftening:
	default:
		mk.Trend = TrendStable
	}

	fin := &s.Financials
	fin.Cash = core.FiniteOr(fin.Cash, base.Financials.Cash)
	fin.Debt = core.FiniteOr(fin.Debt, base.Financials.Debt)
	if fin.Debt < 0 {
		fin.Debt = 0
	}
	fin.InterestRate = core.FiniteOr(fin.InterestRate, base.Financials.InterestRate)
	fin.DeferredMaintenance = core.ClampF(core.FiniteOr(fin.DeferredMaintenance, base.Financials.DeferredMaintenance),
		0, maxDeferredMaintenance)
	fin.MonthlyDebtService = fin.Debt * fin.InterestRate / 12
	fin.BurnRate = fin.ExpensesLastTick - fin.RevenueLastTick
	recomputeValuation(s)

	p := &s.Player
	p.Cash = fin.Cash
	p.CreditScore = core.ClampF(core.FiniteOr(p.CreditScore, base.Player.CreditScore), MinCreditScore, MaxCreditScore)
	p.CreditHistory = clampSeries(p.CreditHistory, p.CreditScore)
	if p.NegativeNetMonthStreak < 0 {
		p.NegativeNetMonthStreak = 0
	}

	h := &s.History
	h.Cash = clampSeries(h.Cash, fin.Cash)
	h.Net = clampSeries(h.Net, fin.NetLastTick)
	h.MonthlyNet = clampSeries(h.MonthlyNet, fin.NetMonthly)
	h.Occupancy = clampSeries(h.Occupancy, f.OccupancyRate)
	h.Demand = clampSeries(h.Demand, mk.DemandIndex)

	if len(s.Events) > EventLogCap {
		s.Events = s.Events[:EventLogCap]
	}
	for _, e := range s.Events {
		if e.ID > s.LogSequence {
			s.LogSequence = e.ID
		}
	}

	unlocked := make([]ActionID, 0, len(s.UnlockedActions))
	for _, id := range s.UnlockedActions {
		if id.Known() && !containsAction(unlocked, id) {
			unlocked = append(unlocked, id)
		}
	}
	s.UnlockedActions = unlocked

	cooldowns := make(map[ActionID]int, len(s.Cooldowns))
	for id, remaining := range s.Cooldowns {
		if id.Known() && remaining > 0 {
			cooldowns[id] = remaining
		}
	}
	s.Cooldowns = cooldowns

	if !s.Seed.Valid() {
		s.Seed = core.DefaultSeed
	}
	if s.Tick < 0 {
		s.Tick = 0
	}
	s.Paused = true

	s.GoalStage = core.Clamp(s.GoalStage, 0, finalGoalStage)
	if s.Goal.ID != GoalForStage(s.GoalStage).ID {
		s.Goal = GoalForStage(s.GoalStage)
	}
	s.Goal.Progress = GoalMetricValue(s.Goal.Metric, s)
	s.Goal.Completed = s.Goal.Progress >= s.Goal.Target
}

func containsAction(list []ActionID, id ActionID) bool {
	for _, a := range list {
		if a == id {
			return true
		}
	}
	return false
}
