package sim

const finalGoalStage = 2

// GoalForStage returns the fresh objective for a stage. Stages past the
// last one return the final objective.
func GoalForStage(stage int) Goal {
	switch stage {
	case 0:
		return Goal{
			ID:          GoalStabilize,
			Label:       "Stabilize Harbor One",
			Description: "Hold occupancy above 85% to prove the market.",
			Metric:      MetricOccupancy,
			Target:      0.85,
		}
	case 1:
		return Goal{
			ID:          GoalAutomate,
			Label:       "Automate the Depot",
			Description: "Lift automation to 60% so the facility runs itself overnight.",
			Metric:      MetricAutomation,
			Target:      0.6,
		}
	default:
		return Goal{
			ID:          GoalScale,
			Label:       "Scale Toward Megaplex",
			Description: "Reach a $2.5M valuation and tee up multi-city expansion.",
			Metric:      MetricValuation,
			Target:      2_500_000,
		}
	}
}

// GoalMetricValue reads the state value a metric refers to.
func GoalMetricValue(m GoalMetric, s *GameState) float64 {
	switch m {
	case MetricAutomation:
		return s.Automation.Level
	case MetricValuation:
		return s.Financials.Valuation
	default:
		return s.Facility.OccupancyRate
	}
}

// evaluateGoal advances a goal completed on an earlier tick to the next
// stage, then measures the active goal and marks it complete on the first
// crossing of its target.
func evaluateGoal(s *GameState) {
	if s.Goal.Completed && s.GoalStage < finalGoalStage {
		s.GoalStage++
		s.Goal = GoalForStage(s.GoalStage)
		PushLog(s, "New directive: "+s.Goal.Label, ToneInfo)
	}

	s.Goal.Progress = GoalMetricValue(s.Goal.Metric, s)
	if !s.Goal.Completed && s.Goal.Progress >= s.Goal.Target {
		s.Goal.Completed = true
		PushLog(s, "Goal achieved: "+s.Goal.Label, TonePositive)
	}
}
