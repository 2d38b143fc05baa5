package sim

import (
	"math"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

const (
	payoffPenalty           = 8.0
	negativeNetWorthPenalty = 20.0
	negativeStreakPenalty   = 5.0
	negativeStreakLimit     = 3
)

// updateCredit moves the credit score. Payoff and negative net worth are
// checked every tick and fire once each; payment history, net worth change
// and losing streaks are scored on month boundaries only.
func updateCredit(s *GameState, monthRolled bool) {
	p := &s.Player
	netWorth := s.NetWorth()
	score := core.FiniteOr(p.CreditScore, MinCreditScore)

	if s.Financials.Debt <= 0 && !p.PropertyPaidOff {
		p.PropertyPaidOff = true
		score -= payoffPenalty
		PushLog(s, "Mortgage retired. Closing the installment account trims credit mix.", ToneInfo)
	}
	if netWorth < 0 && !p.NetWorthNegative {
		p.NetWorthNegative = true
		score -= negativeNetWorthPenalty
		PushLog(s, "Net worth slipped below zero. Bureaus flag the account.", ToneWarning)
	}

	if monthRolled {
		var monthly float64
		if s.Financials.Debt > 0 {
			monthly += math.Max(MaxCreditScore-score, 0) * 0.01
		}
		if pct := netWorthChangePercent(p.LastMonthNetWorth, netWorth); pct > 0.001 {
			monthly += pct * 0.25
		} else if pct < -0.001 {
			monthly += pct * 0.5
		}
		if p.MonthToDateNet < 0 {
			p.NegativeNetMonthStreak++
		} else {
			p.NegativeNetMonthStreak = 0
		}
		if p.NegativeNetMonthStreak >= negativeStreakLimit {
			monthly -= negativeStreakPenalty
			p.NegativeNetMonthStreak = 0
		}
		if monthly > 0 {
			monthly *= math.Max(0, (MaxCreditScore-score)/(MaxCreditScore-MinCreditScore))
		}
		score += monthly

		p.LastMonthNetWorth = netWorth
		p.MonthToDateNet = 0
	}

	p.CreditScore = core.ClampF(score, MinCreditScore, MaxCreditScore)
	if monthRolled {
		p.CreditHistory = pushSample(p.CreditHistory, p.CreditScore)
	}
}

func netWorthChangePercent(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / math.Max(math.Abs(previous), 1) * 100
}
