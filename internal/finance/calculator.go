package finance

import (
	"fmt"
	"math"

	"leaseflow-backend/internal/domain"
)

// Named fallback constants. These are owned here and must not be re-declared
// at call sites.
const (
	// DefaultCoefficient converts a monthly payment into a financed amount
	// when no leaser grid applies.
	DefaultCoefficient = 3.27

	// DefaultCommissionRate applies when a commission level is absent, empty
	// or resolves to an invalid amount. Percentage.
	DefaultCommissionRate = 5.0

	// MinimumAnnualInsurance floors the annual insurance, in currency units.
	MinimumAnnualInsurance = 110

	// insuranceRate is applied to monthly payment x contract months.
	insuranceRate = 0.035
)

// Round rounds to the nearest whole currency unit, half away from zero
// upward. All monetary outputs go through this one function so display and
// persisted values cannot drift.
func Round(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// FinancedAmount derives the principal from the total monthly payment and
// the leaser coefficient.
func FinancedAmount(totalMonthlyPayment int64, coefficient float64) int64 {
	return Round(float64(totalMonthlyPayment) * coefficient)
}

// Margin is financed amount minus the summed purchase cost of the equipment.
func Margin(financedAmount, totalPurchaseCost int64) int64 {
	return financedAmount - totalPurchaseCost
}

// DiscountResult carries the applied discount and whether clamping occurred.
type DiscountResult struct {
	Amount                  int64
	EffectiveMonthlyPayment int64
	Clamped                 bool
}

// ApplyDiscount resolves a discount against the pre-discount monthly
// payment. The discounted payment never goes negative; it is clamped to zero
// and flagged.
func ApplyDiscount(monthlyPayment int64, d *domain.Discount) DiscountResult {
	if d == nil {
		return DiscountResult{EffectiveMonthlyPayment: monthlyPayment}
	}
	var amount int64
	switch d.Type {
	case domain.DiscountTypePercentage:
		amount = Round(float64(monthlyPayment) * float64(d.Value) / 100)
	default:
		amount = d.Value
	}
	effective := monthlyPayment - amount
	clamped := false
	if effective < 0 {
		effective = 0
		clamped = true
	}
	return DiscountResult{Amount: amount, EffectiveMonthlyPayment: effective, Clamped: clamped}
}

// AnnualInsurance is monthly payment x contract months x 3.5%, floored at
// MinimumAnnualInsurance.
func AnnualInsurance(monthlyPayment int64, contractDurationMonths int32) int64 {
	insurance := Round(float64(monthlyPayment) * float64(contractDurationMonths) * insuranceRate)
	if insurance < MinimumAnnualInsurance {
		return MinimumAnnualInsurance
	}
	return insurance
}

// Snapshot is the full derived financial picture of an offer at one point in
// time.
type Snapshot struct {
	Coefficient     float64
	MonthlyPayment  int64
	FinancedAmount  int64
	Margin          int64
	AnnualInsurance int64
	Discount        DiscountResult
}

// Compute derives a complete snapshot from the offer's current equipment
// lines and the given coefficient. The offer's equipment must be non-empty.
func Compute(offer *domain.Offer, coefficient float64, contractDurationMonths int32) (Snapshot, error) {
	if len(offer.Equipment) == 0 {
		return Snapshot{}, fmt.Errorf("%w: offer has no equipment lines", domain.ErrInvalidInput)
	}
	monthly := offer.TotalMonthlyPayment()
	if monthly < 0 {
		return Snapshot{}, fmt.Errorf("%w: negative monthly payment", domain.ErrInvalidInput)
	}
	discount := ApplyDiscount(monthly, offer.Discount)
	financed := FinancedAmount(monthly, coefficient)
	return Snapshot{
		Coefficient:     coefficient,
		MonthlyPayment:  discount.EffectiveMonthlyPayment,
		FinancedAmount:  financed,
		Margin:          Margin(financed, offer.TotalPurchaseCost()),
		AnnualInsurance: AnnualInsurance(discount.EffectiveMonthlyPayment, contractDurationMonths),
		Discount:        discount,
	}, nil
}
