package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/storage-mogul/internal/core"
)

// Financing is the buyer's chosen loan structure.
type Financing struct {
	DownPaymentPercent float64  `json:"downPaymentPercent" yaml:"down_payment_percent"`
	TermYears          int      `json:"termYears" yaml:"term_years"`
	RateType           RateType `json:"rateType" yaml:"rate_type"`
}

// PlayerProfile is the buyer's starting balance sheet and credit.
type PlayerProfile struct {
	Cash        float64 `json:"cash" yaml:"cash"`
	CreditScore float64 `json:"creditScore" yaml:"credit_score"`
	LoanToValue float64 `json:"loanToValue" yaml:"loan_to_value"`
	MaxPurchase float64 `json:"maxPurchase" yaml:"max_purchase"`
}

// LoanProfile is the amortized mortgage derived from a purchase.
type LoanProfile struct {
	LoanAmount     float64  `json:"loanAmount"`
	DownPayment    float64  `json:"downPayment"`
	TermMonths     int      `json:"termMonths"`
	InterestRate   float64  `json:"interestRate"`
	RateType       RateType `json:"rateType"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	BaseRate       float64  `json:"baseRate"`
	MaxLoanAllowed float64  `json:"maxLoanAllowed"`
	Valid          bool     `json:"valid"`
}

// DefaultFinancing is 20% down over 20 years at a fixed rate.
func DefaultFinancing() Financing {
	return Financing{DownPaymentPercent: 0.2, TermYears: 20, RateType: RateFixed}
}

// DefaultPlayer is the baseline buyer profile.
func DefaultPlayer() PlayerProfile {
	return PlayerProfile{Cash: 100000, CreditScore: 620, LoanToValue: 0.9, MaxPurchase: 1000000}
}

// PMT returns the level monthly payment that amortizes principal over
// periods months at annualRate. Degenerate inputs return 0, and a zero
// rate falls back to straight-line repayment.
func PMT(annualRate float64, periods int, principal float64) float64 {
	if periods <= 0 || principal <= 0 {
		return 0
	}
	monthly := annualRate / 12
	if monthly == 0 {
		return principal / float64(periods)
	}
	denominator := 1 - math.Pow(1+monthly, -float64(periods))
	if denominator == 0 {
		return principal / float64(periods)
	}
	return principal * monthly / denominator
}

// InterestRate adds a credit spread to the trade area's base rate:
// 1.2 points per 100 points below 850.
func InterestRate(baseRate, creditScore float64) float64 {
	score := core.ClampF(creditScore, 300, 900)
	return baseRate + (850-score)/100*0.012
}

// LoanSeedFrom hashes the loan terms into a PRNG seed so the same purchase
// always replays the same market.
func LoanSeedFrom(parts ...string) int64 {
	base := strings.Join(parts, ":")
	var hash int64
	for _, r := range base {
		hash = (hash*31 + int64(r)) % 1_000_003
	}
	return hash + 11
}

// PreviewLoan computes the mortgage for buying facility under financing.
// The down payment is at least 10% and the loan never exceeds the buyer's
// loan-to-value cap. Variable loans start 0.4 points higher.
func PreviewLoan(region TradeArea, facility FacilityListing, financing Financing, player PlayerProfile) LoanProfile {
	downPercent := core.ClampF(financing.DownPaymentPercent, 0.1, 1)
	maxLoan := facility.Price * player.LoanToValue
	loan := facility.Price - facility.Price*downPercent
	if loan > maxLoan {
		loan = maxLoan
	}
	loan = math.Max(loan, 0)
	downPayment := facility.Price - loan

	rate := InterestRate(region.BaseRate, player.CreditScore)
	rateType := financing.RateType
	if rateType != RateVariable {
		rateType = RateFixed
	}
	termMonths := financing.TermYears * 12
	payment := PMT(rate, termMonths, loan)
	if rateType == RateVariable {
		rate += 0.004
	}

	return LoanProfile{
		LoanAmount:     loan,
		DownPayment:    downPayment,
		TermMonths:     termMonths,
		InterestRate:   rate,
		RateType:       rateType,
		MonthlyPayment: payment,
		BaseRate:       region.BaseRate,
		MaxLoanAllowed: maxLoan,
		Valid:          downPayment <= player.Cash && facility.Price <= player.MaxPurchase,
	}
}

// BuildStart assembles a StartConfig from a purchase decision. The seed
// is derived from the loan terms.
func BuildStart(region TradeArea, facility FacilityListing, financing Financing, player PlayerProfile) StartConfig {
	if financing.DownPaymentPercent < 0.1 {
		financing.DownPaymentPercent = 0.1
	}
	loan := PreviewLoan(region, facility, financing, player)
	financing.RateType = loan.RateType
	return StartConfig{
		Region:            region,
		Facility:          facility,
		Financing:         financing,
		Loan:              loan,
		Player:            player,
		CashAfterPurchase: player.Cash - loan.DownPayment,
		Seed: LoanSeedFrom(
			region.ID,
			facility.ID,
			fmt.Sprintf("%.2f", loan.LoanAmount),
			strconv.Itoa(financing.TermYears),
			string(loan.RateType),
		),
	}
}
