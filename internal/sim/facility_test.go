package sim

import (
	"math"
	"testing"
)

func TestSanitizeTier(t *testing.T) {
	tests := []struct {
		name string
		in   PricingTier
		want PricingTier
	}{
		{
			name: "valid tier unchanged",
			in:   PricingTier{Standard: 142, Prime: 175, PrimeShare: 0.25},
			want: PricingTier{Standard: 142, Prime: 175, PrimeShare: 0.25},
		},
		{
			name: "standard clamped low",
			in:   PricingTier{Standard: 5, Prime: 60, PrimeShare: 0.1},
			want: PricingTier{Standard: 40, Prime: 60, PrimeShare: 0.1},
		},
		{
			name: "prime lifted above standard",
			in:   PricingTier{Standard: 300, Prime: 280, PrimeShare: 0.1},
			want: PricingTier{Standard: 300, Prime: 305, PrimeShare: 0.1},
		},
		{
			name: "share clamped",
			in:   PricingTier{Standard: 100, Prime: 120, PrimeShare: 0.9},
			want: PricingTier{Standard: 100, Prime: 120, PrimeShare: 0.6},
		},
		{
			name: "non-finite fallbacks",
			in:   PricingTier{Standard: math.NaN(), Prime: math.Inf(1), PrimeShare: math.NaN()},
			want: PricingTier{Standard: 40, Prime: 50, PrimeShare: 0.2},
		},
		{
			name: "prime ceiling wins over spread when standard is maxed",
			in:   PricingTier{Standard: 900, Prime: 900, PrimeShare: 0.3},
			want: PricingTier{Standard: 600, Prime: 800, PrimeShare: 0.3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTier(tt.in); got != tt.want {
				t.Errorf("SanitizeTier(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTierPartial(t *testing.T) {
	current := PricingTier{Standard: 142, Prime: 175, PrimeShare: 0.25}
	got := NormalizeTier(TierUpdate{Standard: Ptr(200.0)}, current)
	want := PricingTier{Standard: 200, Prime: 205, PrimeShare: 0.25}
	if got != want {
		t.Errorf("NormalizeTier = %+v, want %+v", got, want)
	}
}

func TestSanitizeSpecials(t *testing.T) {
	tests := []struct {
		name string
		in   Specials
		want Specials
	}{
		{"none zeroes adoption", Specials{Offer: OfferNone, AdoptionRate: 0.7}, Specials{Offer: OfferNone}},
		{"unknown offer", Specials{Offer: "half_off", AdoptionRate: 0.4}, Specials{Offer: OfferNone}},
		{"free month clamped", Specials{Offer: OfferOneMonthFree, AdoptionRate: 1.7}, Specials{Offer: OfferOneMonthFree, AdoptionRate: 1}},
		{"free month NaN", Specials{Offer: OfferOneMonthFree, AdoptionRate: math.NaN()}, Specials{Offer: OfferOneMonthFree}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeSpecials(tt.in); got != tt.want {
				t.Errorf("SanitizeSpecials(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDelinquency(t *testing.T) {
	current := DelinquencyPolicy{BaseRate: 0.03, Rate: 0.045, AllowPaymentPlans: true, EvictionDays: 45}

	got := NormalizeDelinquency(DelinquencyUpdate{
		Rate:              Ptr(0.9),
		EvictionDays:      Ptr(3.0),
		AllowPaymentPlans: Ptr(false),
	}, current)
	want := DelinquencyPolicy{BaseRate: 0.03, Rate: 0.3, AllowPaymentPlans: false, EvictionDays: 15}
	if got != want {
		t.Errorf("NormalizeDelinquency = %+v, want %+v", got, want)
	}

	got = NormalizeDelinquency(DelinquencyUpdate{Rate: Ptr(math.NaN()), EvictionDays: Ptr(math.Inf(1))}, current)
	if got.Rate != 0.045 || got.EvictionDays != 45 {
		t.Errorf("non-finite update should keep current values, got %+v", got)
	}
}

func TestDerivedMetrics(t *testing.T) {
	tier := PricingTier{Standard: 100, Prime: 200, PrimeShare: 0.5}
	if got := TierAverageRate(tier); got != 150 {
		t.Errorf("TierAverageRate = %v, want 150", got)
	}

	pricing := Pricing{
		ClimateControlled: PricingTier{Standard: 100, Prime: 200, PrimeShare: 0.5},
		DriveUp:           PricingTier{Standard: 50, Prime: 60, PrimeShare: 0},
		Vault:             PricingTier{Standard: 300, Prime: 305, PrimeShare: 0},
	}
	mix := UnitMix{ClimateControlled: 2, DriveUp: 1, Vault: 1}
	if got, want := FacilityAverageRent(mix, pricing), (2*150.0+50+300)/4; got != want {
		t.Errorf("FacilityAverageRent = %v, want %v", got, want)
	}
	if got := FacilityAverageRent(UnitMix{}, pricing); got != 0 {
		t.Errorf("FacilityAverageRent with empty mix = %v, want 0", got)
	}

	pricing.Specials = Specials{Offer: OfferOneMonthFree, AdoptionRate: 0.6}
	if got := SpecialsDiscountFactor(pricing); math.Abs(got-0.05) > 1e-15 {
		t.Errorf("SpecialsDiscountFactor = %v, want 0.05", got)
	}

	if got := PaymentPlanCollectionRate(DelinquencyPolicy{AllowPaymentPlans: true}); got != 0.55 {
		t.Errorf("collection rate with plans = %v, want 0.55", got)
	}
	if got := PaymentPlanCollectionRate(DelinquencyPolicy{}); got != 0 {
		t.Errorf("collection rate without plans = %v, want 0", got)
	}

	urgency := []struct {
		days float64
		want float64
	}{
		{45, 0.7},
		{15, 0.85},
		{150, 0},
		{180, 0},
	}
	for _, u := range urgency {
		got := EvictionUrgencyFactor(DelinquencyPolicy{EvictionDays: u.days})
		if math.Abs(got-u.want) > 1e-12 {
			t.Errorf("EvictionUrgencyFactor(%v) = %v, want %v", u.days, got, u.want)
		}
	}
}
