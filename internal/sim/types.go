package sim

// ActionID identifies one of the fixed player actions.
type ActionID string

const (
	ActionExpandCapacity  ActionID = "expand_capacity"
	ActionLaunchCampaign  ActionID = "launch_campaign"
	ActionOptimizePricing ActionID = "optimize_pricing"
	ActionTrainAIManager  ActionID = "train_ai_manager"
)

// AllActions lists every action in display order.
var AllActions = []ActionID{
	ActionExpandCapacity,
	ActionLaunchCampaign,
	ActionOptimizePricing,
	ActionTrainAIManager,
}

// Known reports whether a is one of the fixed action identifiers.
func (a ActionID) Known() bool {
	switch a {
	case ActionExpandCapacity, ActionLaunchCampaign, ActionOptimizePricing, ActionTrainAIManager:
		return true
	}
	return false
}

// Tone classifies an event log entry.
type Tone string

const (
	ToneInfo     Tone = "info"
	TonePositive Tone = "positive"
	ToneWarning  Tone = "warning"
)

// Trend is the market demand direction derived from the demand delta.
type Trend string

const (
	TrendSurging   Trend = "surging"
	TrendStable    Trend = "stable"
	TrendSoftening Trend = "softening"
)

// Archetype names one of the fixed AI manager profiles.
type Archetype string

const (
	ArchetypeAtlas     Archetype = "atlas"
	ArchetypeNebula    Archetype = "nebula"
	ArchetypeCaretaker Archetype = "caretaker"
)

// SpecialsOffer is the promotional offer currently advertised.
type SpecialsOffer string

const (
	OfferNone         SpecialsOffer = "none"
	OfferOneMonthFree  SpecialsOffer = "one_month_free"
)

// GoalMetric selects the state value a goal is measured against.
type GoalMetric string

const (
	MetricOccupancy  GoalMetric = "occupancy"
	MetricAutomation GoalMetric = "automation"
	MetricValuation  GoalMetric = "valuation"
)

// GoalID names a goal stage.
type GoalID string

const (
	GoalStabilize GoalID = "stabilize"
	GoalAutomate  GoalID = "automate"
	GoalScale     GoalID = "scale"
)

// RateType is the loan rate kind chosen at purchase.
type RateType string

const (
	RateFixed    RateType = "fixed"
	RateVariable RateType = "variable"
)

// Ptr returns a pointer to v. Used to build partial updates and overrides.
func Ptr[T any](v T) *T {
	return &v
}
