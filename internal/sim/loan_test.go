package sim

import (
	"math"
	"testing"
)

func TestPMT(t *testing.T) {
	r := 0.06 / 12
	want := 200000 * r / (1 - math.Pow(1+r, -360))
	if got := PMT(0.06, 360, 200000); math.Abs(got-want) > 1e-9 {
		t.Errorf("PMT(0.06, 360, 200000) = %v, want %v", got, want)
	}
	if got := PMT(0.06, 360, 200000); math.Abs(got-1199.10) > 0.01 {
		t.Errorf("PMT(0.06, 360, 200000) = %.2f, want about 1199.10", got)
	}

	tests := []struct {
		name      string
		rate      float64
		periods   int
		principal float64
		want      float64
	}{
		{"zero periods", 0.06, 0, 200000, 0},
		{"negative periods", 0.06, -12, 200000, 0},
		{"zero principal", 0.06, 360, 0, 0},
		{"zero rate straight line", 0, 100, 50000, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PMT(tt.rate, tt.periods, tt.principal); got != tt.want {
				t.Errorf("PMT(%v, %d, %v) = %v, want %v", tt.rate, tt.periods, tt.principal, got, tt.want)
			}
		})
	}
}

func TestInterestRate(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{850, 0.05},
		{750, 0.062},
		{620, 0.05 + 2.3*0.012},
		{100, 0.05 + 5.5*0.012},
		{900, 0.044},
	}
	for _, tt := range tests {
		if got := InterestRate(0.05, tt.score); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("InterestRate(0.05, %v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestLoanSeedFrom(t *testing.T) {
	a := LoanSeedFrom("harbor", "harbor-one", "360000.00", "20", "fixed")
	b := LoanSeedFrom("harbor", "harbor-one", "360000.00", "20", "fixed")
	c := LoanSeedFrom("harbor", "harbor-one", "360000.00", "20", "variable")
	if a != b {
		t.Error("same terms produced different seeds")
	}
	if a == c {
		t.Error("different terms produced the same seed")
	}
	if a < 11 || a >= 1_000_003+11 {
		t.Errorf("seed %d outside hash range", a)
	}
	if got := LoanSeedFrom(); got != 11 {
		t.Errorf("empty seed = %d, want 11", got)
	}
	// "a" = 97
	if got := LoanSeedFrom("a"); got != 108 {
		t.Errorf(`LoanSeedFrom("a") = %d, want 108`, got)
	}
}

func TestPreviewLoan(t *testing.T) {
	region := testRegion()
	listing := testListing()
	player := DefaultPlayer()

	t.Run("default financing", func(t *testing.T) {
		loan := PreviewLoan(region, listing, DefaultFinancing(), player)
		if loan.DownPayment != 90000 || loan.LoanAmount != 360000 {
			t.Errorf("down %v loan %v, want 90000/360000", loan.DownPayment, loan.LoanAmount)
		}
		if !loan.Valid {
			t.Error("affordable purchase marked invalid")
		}
		if loan.TermMonths != 240 {
			t.Errorf("term = %d, want 240", loan.TermMonths)
		}
		wantRate := InterestRate(region.BaseRate, player.CreditScore)
		if loan.InterestRate != wantRate {
			t.Errorf("rate = %v, want %v", loan.InterestRate, wantRate)
		}
		if loan.MonthlyPayment != PMT(wantRate, 240, 360000) {
			t.Errorf("payment = %v", loan.MonthlyPayment)
		}
	})

	t.Run("minimum down payment", func(t *testing.T) {
		loan := PreviewLoan(region, listing, Financing{DownPaymentPercent: 0, TermYears: 10, RateType: RateFixed}, player)
		if math.Abs(loan.DownPayment-45000) > 1e-6 {
			t.Errorf("down payment = %v, want 45000 at the 10%% floor", loan.DownPayment)
		}
	})

	t.Run("loan to value cap", func(t *testing.T) {
		capped := player
		capped.LoanToValue = 0.5
		loan := PreviewLoan(region, listing, DefaultFinancing(), capped)
		if loan.LoanAmount != 225000 || loan.DownPayment != 225000 {
			t.Errorf("loan %v down %v, want 225000 each", loan.LoanAmount, loan.DownPayment)
		}
		if loan.Valid {
			t.Error("down payment above cash should be invalid")
		}
	})

	t.Run("variable premium", func(t *testing.T) {
		fixed := PreviewLoan(region, listing, DefaultFinancing(), player)
		variable := PreviewLoan(region, listing, Financing{DownPaymentPercent: 0.2, TermYears: 20, RateType: RateVariable}, player)
		if math.Abs(variable.InterestRate-fixed.InterestRate-0.004) > 1e-12 {
			t.Errorf("variable rate %v, fixed %v, want +0.004", variable.InterestRate, fixed.InterestRate)
		}
	})

	t.Run("price above max purchase", func(t *testing.T) {
		big := listing
		big.Price = 2_000_000
		rich := player
		rich.Cash = 5_000_000
		if PreviewLoan(region, big, DefaultFinancing(), rich).Valid {
			t.Error("purchase above max should be invalid")
		}
	})
}

func TestBuildStart(t *testing.T) {
	start := BuildStart(testRegion(), testListing(), DefaultFinancing(), DefaultPlayer())
	if start.CashAfterPurchase != 10000 {
		t.Errorf("cash after purchase = %v, want 10000", start.CashAfterPurchase)
	}
	want := LoanSeedFrom("harbor", "harbor-one", "360000.00", "20", "fixed")
	if start.Seed != want {
		t.Errorf("seed = %d, want %d", start.Seed, want)
	}
}
