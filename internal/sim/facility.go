package sim

import "github.com/vovakirdan/storage-mogul/internal/core"

// TierUpdate is a partial pricing tier change. Nil fields keep the current value.
type TierUpdate struct {
	Standard   *float64
	Prime      *float64
	PrimeShare *float64
}

// SpecialsUpdate is a partial specials change.
type SpecialsUpdate struct {
	Offer        *SpecialsOffer
	AdoptionRate *float64
}

// DelinquencyUpdate is a partial delinquency policy change.
type DelinquencyUpdate struct {
	BaseRate          *float64
	Rate              *float64
	AllowPaymentPlans *bool
	EvictionDays      *float64
}

// DefaultPricing returns the template tiers every facility starts from.
func DefaultPricing() Pricing {
	return Pricing{
		ClimateControlled: PricingTier{Standard: 142, Prime: 175, PrimeShare: 0.25},
		DriveUp:           PricingTier{Standard: 105, Prime: 125, PrimeShare: 0.2},
		Vault:             PricingTier{Standard: 200, Prime: 240, PrimeShare: 0.35},
		Specials:          Specials{Offer: OfferNone},
	}
}

// DefaultDelinquency returns the template delinquency policy.
func DefaultDelinquency() DelinquencyPolicy {
	return DelinquencyPolicy{
		BaseRate:          0.035,
		Rate:              0.045,
		AllowPaymentPlans: true,
		EvictionDays:      45,
	}
}

// SanitizeTier clamps a tier into its valid ranges. The prime rate always
// sits at least 5 above the standard rate.
func SanitizeTier(t PricingTier) PricingTier {
	standard := core.ClampF(core.FiniteOr(t.Standard, 0), 40, 600)
	prime := core.ClampF(core.FiniteOr(t.Prime, standard+10), 50, 800)
	if prime < standard+5 {
		prime = standard + 5
	}
	share := core.ClampF(core.FiniteOr(t.PrimeShare, 0.2), 0, 0.6)
	return PricingTier{Standard: standard, Prime: prime, PrimeShare: share}
}

// NormalizeTier applies a partial update over fallback and sanitizes the result.
func NormalizeTier(u TierUpdate, fallback PricingTier) PricingTier {
	next := fallback
	if u.Standard != nil {
		next.Standard = *u.Standard
	}
	if u.Prime != nil {
		next.Prime = *u.Prime
	}
	if u.PrimeShare != nil {
		next.PrimeShare = *u.PrimeShare
	}
	return SanitizeTier(next)
}

// SanitizeSpecials coerces the offer into the closed set. Adoption is
// meaningless without an offer and is forced to 0.
func SanitizeSpecials(s Specials) Specials {
	if s.Offer != OfferOneMonthFree {
		return Specials{Offer: OfferNone}
	}
	return Specials{
		Offer:        OfferOneMonthFree,
		AdoptionRate: core.ClampF(core.FiniteOr(s.AdoptionRate, 0), 0, 1),
	}
}

// NormalizeSpecials applies a partial update over fallback and sanitizes it.
func NormalizeSpecials(u SpecialsUpdate, fallback Specials) Specials {
	next := fallback
	if u.Offer != nil {
		next.Offer = *u.Offer
	}
	if u.AdoptionRate != nil {
		next.AdoptionRate = *u.AdoptionRate
	}
	return SanitizeSpecials(next)
}

// SanitizePricing sanitizes all three tiers and the specials offer.
func SanitizePricing(p Pricing) Pricing {
	return Pricing{
		ClimateControlled: SanitizeTier(p.ClimateControlled),
		DriveUp:           SanitizeTier(p.DriveUp),
		Vault:             SanitizeTier(p.Vault),
		Specials:          SanitizeSpecials(p.Specials),
	}
}

// NormalizeDelinquency applies a partial update over fallback. Non-finite
// inputs fall back to the current value before clamping.
func NormalizeDelinquency(u DelinquencyUpdate, fallback DelinquencyPolicy) DelinquencyPolicy {
	next := DelinquencyPolicy{
		BaseRate:          core.FiniteOr(fallback.BaseRate, 0),
		Rate:              core.FiniteOr(fallback.Rate, 0),
		AllowPaymentPlans: fallback.AllowPaymentPlans,
		EvictionDays:      core.FiniteOr(fallback.EvictionDays, 45),
	}
	if u.BaseRate != nil && core.IsFinite(*u.BaseRate) {
		next.BaseRate = *u.BaseRate
	}
	if u.Rate != nil && core.IsFinite(*u.Rate) {
		next.Rate = *u.Rate
	}
	if u.AllowPaymentPlans != nil {
		next.AllowPaymentPlans = *u.AllowPaymentPlans
	}
	if u.EvictionDays != nil && core.IsFinite(*u.EvictionDays) {
		next.EvictionDays = *u.EvictionDays
	}
	next.BaseRate = core.ClampF(next.BaseRate, 0, 0.3)
	next.Rate = core.ClampF(next.Rate, 0, 0.3)
	next.EvictionDays = core.ClampF(next.EvictionDays, 15, 180)
	return next
}

// SanitizeDelinquency clamps an existing policy.
func SanitizeDelinquency(p DelinquencyPolicy) DelinquencyPolicy {
	return NormalizeDelinquency(DelinquencyUpdate{}, p)
}

// TierAverageRate blends the standard and prime rates by the prime share.
func TierAverageRate(t PricingTier) float64 {
	t = SanitizeTier(t)
	return t.Standard*(1-t.PrimeShare) + t.Prime*t.PrimeShare
}

// FacilityAverageRent is the unit-count weighted average of the three tiers.
func FacilityAverageRent(mix UnitMix, p Pricing) float64 {
	total := mix.Total()
	if total <= 0 {
		return 0
	}
	weighted := float64(mix.ClimateControlled)*TierAverageRate(p.ClimateControlled) +
		float64(mix.DriveUp)*TierAverageRate(p.DriveUp) +
		float64(mix.Vault)*TierAverageRate(p.Vault)
	return weighted / float64(total)
}

// SpecialsDiscountFactor amortizes a one-month-free offer over a year.
func SpecialsDiscountFactor(p Pricing) float64 {
	s := SanitizeSpecials(p.Specials)
	if s.Offer != OfferOneMonthFree {
		return 0
	}
	return s.AdoptionRate / 12
}

// PaymentPlanCollectionRate is the share of delinquent rent still collected.
func PaymentPlanCollectionRate(p DelinquencyPolicy) float64 {
	if p.AllowPaymentPlans {
		return 0.55
	}
	return 0
}

// EvictionUrgencyFactor grows as the grace period shortens.
func EvictionUrgencyFactor(p DelinquencyPolicy) float64 {
	days := core.ClampF(core.FiniteOr(p.EvictionDays, 45), 15, 180)
	return core.ClampF(1-days/150, 0, 0.85)
}
