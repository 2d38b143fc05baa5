package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

// ProjectionMonths is the horizon of the purchase forecast.
const ProjectionMonths = 60

// ProjectionMonth is one row of the purchase forecast.
type ProjectionMonth struct {
	Month       int
	Cash        float64
	CreditScore float64
	LoanBalance float64
	Revenue     float64
	Expenses    float64
	DebtService float64
	NetIncome   float64
	NetWorth    float64
	CreditDelta float64
	Events      []string
}

// Projection is a deterministic monthly forecast of a purchase. It uses the
// listing's book figures rather than the daily simulation.
type Projection struct {
	RevenueMonthly        float64
	ExpensesMonthly       float64
	DebtServiceMonthly    float64
	NetIncomeMonthly      float64
	CashAfterPurchase     float64
	NetWorthAfterPurchase float64
	NetWorthChangePercent float64
	CreditDeltaEstimate   float64
	RunwayMonths          float64 // +Inf when cash never runs out
	TotalCreditDelta      float64
	FinalCreditScore      float64
	PayoffMonth           int // 0 when the loan outlives the horizon
	ForcedSaleMonth       int // 0 when cash stays positive
	Defaulted             bool
	Timeline              []ProjectionMonth
}

// Project forecasts the first ProjectionMonths months after a purchase.
// Variable loans reset their rate every 12 months and re-amortize the
// remaining balance. The forecast stops at the first month cash goes
// negative, which is reported as a forced sale.
func Project(start StartConfig) Projection {
	facility := start.Facility
	region := start.Region
	loan := start.Loan

	// Rent per square foot is monthly, matching the opening rent roll.
	revenue := facility.Occupancy * facility.SizeSqft * facility.AvgRentPerSqft *
		(0.9 + region.DemandIndex*0.2) * (1 - region.Competition*0.05)
	expenses := facility.ExpensesAnnual / 12 * region.OperatingCostFactor

	cashAfter := start.Player.Cash - loan.DownPayment
	netWorthAfter := cashAfter + facility.Price - loan.LoanAmount

	var (
		timeline         []ProjectionMonth
		score            = start.Player.CreditScore
		balance          = loan.LoanAmount
		rate             = loan.InterestRate
		payment          = loan.MonthlyPayment
		totalDelta       float64
		payoffMonth      int
		forcedSaleMonth  int
		negativeNetWorth bool
		runway           = math.Inf(1)
		negativeStreak   int
		previousNetWorth = netWorthAfter
		cash             = cashAfter
	)

	for month := 1; month <= ProjectionMonths; month++ {
		if balance > 0 && loan.RateType == RateVariable && month > 1 && (month-1)%12 == 0 {
			years := math.Min(float64(month-1)/12, 5)
			rate = loan.InterestRate + region.ClimateRisk*0.004*years
			remaining := core.Max(loan.TermMonths-(month-1), 1)
			payment = PMT(rate, remaining, balance)
		}

		var debtService float64
		if balance > 0 {
			interest := balance * rate / 12
			debtService = math.Min(payment, balance+interest)
			principal := math.Max(debtService-interest, 0)
			balance = math.Max(balance-principal, 0)
		}
		if balance <= 0 && payoffMonth == 0 && debtService > 0 {
			payoffMonth = month
		}

		netIncome := revenue - expenses - debtService
		cashBefore := cash
		cash += netIncome
		netWorth := cash + facility.Price - balance

		var delta float64
		var events []string
		if balance > 0 {
			if bump := math.Max(850-score, 0) * 0.01; bump != 0 {
				delta += bump
				events = append(events, fmt.Sprintf("On-time payment +%.2f pts", bump))
			}
		}
		pct := netWorthChangePercent(previousNetWorth, netWorth)
		if pct > 0.001 {
			delta += pct * 0.25
			events = append(events, fmt.Sprintf("Net worth gain %.2f%%", pct))
		} else if pct < -0.001 {
			delta += pct * 0.5
			events = append(events, fmt.Sprintf("Net worth loss %.2f%%", -pct))
		}
		if netIncome < 0 {
			negativeStreak++
		} else {
			negativeStreak = 0
		}
		if negativeStreak >= negativeStreakLimit {
			delta -= negativeStreakPenalty
			events = append(events, "Three months negative cash flow -5 pts")
			negativeStreak = 0
		}
		if netWorth < 0 && !negativeNetWorth {
			delta -= negativeNetWorthPenalty
			events = append(events, "Negative net worth -20 pts")
			negativeNetWorth = true
		}
		if payoffMonth == month {
			delta += 10
			events = append(events, "Property paid off +10 pts")
		}

		score = core.ClampF(score+delta, MinCreditScore, MaxCreditScore)
		totalDelta += delta

		if cash < 0 && forcedSaleMonth == 0 {
			burn := math.Abs(netIncome)
			if burn == 0 {
				burn = 1
			}
			runway = math.Max(float64(month-1)+cashBefore/burn, 0)
			forcedSaleMonth = month
			events = append(events, "Cash dropped below zero, forced sale risk")
		}

		timeline = append(timeline, ProjectionMonth{
			Month:       month,
			Cash:        cash,
			CreditScore: score,
			LoanBalance: balance,
			Revenue:     revenue,
			Expenses:    expenses,
			DebtService: debtService,
			NetIncome:   netIncome,
			NetWorth:    netWorth,
			CreditDelta: delta,
			Events:      events,
		})
		previousNetWorth = netWorth

		if forcedSaleMonth != 0 {
			break
		}
	}

	p := Projection{
		RevenueMonthly:        revenue,
		ExpensesMonthly:       expenses,
		DebtServiceMonthly:    loan.MonthlyPayment,
		CashAfterPurchase:     cashAfter,
		NetWorthAfterPurchase: netWorthAfter,
		RunwayMonths:          runway,
		TotalCreditDelta:      totalDelta,
		FinalCreditScore:      score,
		PayoffMonth:           payoffMonth,
		ForcedSaleMonth:       forcedSaleMonth,
		Defaulted:             negativeNetWorth || forcedSaleMonth != 0,
		Timeline:              timeline,
	}

	var netSum float64
	for _, m := range timeline {
		netSum += m.NetIncome
	}
	p.NetIncomeMonthly = netSum / float64(len(timeline))
	p.CreditDeltaEstimate = totalDelta / float64(len(timeline))
	last := timeline[len(timeline)-1]
	p.NetWorthChangePercent = netWorthChangePercent(netWorthAfter, last.NetWorth)
	return p
}
