package sim

import (
	"math"
	"strings"
	"testing"
)

func TestNewState(t *testing.T) {
	start := testStart()
	s := NewState(start)

	if !s.Paused || s.Insolvent {
		t.Errorf("paused %v insolvent %v, want paused and solvent", s.Paused, s.Insolvent)
	}
	if s.Clock.String() != "Feb 6, 2043" {
		t.Errorf("opening date = %q", s.Clock.String())
	}
	if s.Facility.TotalUnits != 300 || s.Facility.OccupiedUnits != 234 {
		t.Errorf("units %d occupied %v, want 300 and 234", s.Facility.TotalUnits, s.Facility.OccupiedUnits)
	}
	if s.Financials.Cash != start.CashAfterPurchase || s.Player.Cash != s.Financials.Cash {
		t.Errorf("cash %v player %v, want %v", s.Financials.Cash, s.Player.Cash, start.CashAfterPurchase)
	}
	if s.Financials.Debt != start.Loan.LoanAmount {
		t.Errorf("debt = %v, want %v", s.Financials.Debt, start.Loan.LoanAmount)
	}
	if s.IsUnlocked(ActionTrainAIManager) {
		t.Error("AI manager should start locked")
	}
	for _, id := range []ActionID{ActionExpandCapacity, ActionLaunchCampaign, ActionOptimizePricing} {
		if !s.IsUnlocked(id) {
			t.Errorf("%s should start unlocked", id)
		}
	}
	rate := s.Facility.Delinquency
	if rate.BaseRate < 0.026 || rate.BaseRate >= 0.06 {
		t.Errorf("base delinquency %v outside draw range", rate.BaseRate)
	}
	if rate.Rate < 0.015 || rate.Rate > 0.2 {
		t.Errorf("delinquency %v outside opening clamp", rate.Rate)
	}
	if got := FacilityAverageRent(s.Facility.Mix, s.Facility.Pricing); math.Abs(got-140*1.45) > 1e-6 {
		t.Errorf("opening average rent = %v, want %v", got, 140*1.45)
	}
	if len(s.Events) != 2 || !strings.HasPrefix(s.Events[0].Message, "Acquired Harbor One") {
		t.Errorf("opening events = %+v", s.Events)
	}
	if !strings.Contains(s.Events[0].Message, "$90,000") {
		t.Errorf("acquisition message %q lacks the down payment", s.Events[0].Message)
	}
	if len(s.History.Cash) != 1 || s.History.Cash[0] != s.Financials.Cash {
		t.Errorf("history not seeded: %v", s.History.Cash)
	}
	assertInvariants(t, s, "opening")
}

func TestNewStateSameStartSameState(t *testing.T) {
	a, b := NewState(testStart()), NewState(testStart())
	if SnapshotOf(a) != SnapshotOf(b) {
		t.Error("same start produced different states")
	}
}

func TestNewStateNegativeUnitCount(t *testing.T) {
	start := testStart()
	start.Facility.TotalUnits = -40
	s := NewState(start)

	if s.Facility.TotalUnits != 0 || s.Facility.OccupiedUnits != 0 {
		t.Errorf("units %d occupied %v, want 0 and 0", s.Facility.TotalUnits, s.Facility.OccupiedUnits)
	}
	assertInvariants(t, s, "negative unit count")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "$0"},
		{1234.4, "$1,234"},
		{1234567.5, "$1,234,568"},
		{-90000, "-$90,000"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.v); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
