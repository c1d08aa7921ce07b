package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaseflow-backend/internal/domain"
)

func TestRound(t *testing.T) {
	assert.Equal(t, int64(0), Round(0))
	assert.Equal(t, int64(1), Round(0.5))
	assert.Equal(t, int64(326), Round(326.4))
	assert.Equal(t, int64(327), Round(326.5))
	assert.Equal(t, int64(327), Round(327.49))
}

func TestFinancedAmount(t *testing.T) {
	// Monthly payment 100 at the default coefficient yields 327.
	assert.Equal(t, int64(327), FinancedAmount(100, DefaultCoefficient))
	assert.Equal(t, int64(0), FinancedAmount(0, DefaultCoefficient))
	assert.Equal(t, int64(350), FinancedAmount(100, 3.5))
}

func TestMargin(t *testing.T) {
	assert.Equal(t, int64(27), Margin(327, 300))
	assert.Equal(t, int64(-50), Margin(250, 300))
}

func TestApplyDiscount(t *testing.T) {
	t.Run("NoDiscount", func(t *testing.T) {
		res := ApplyDiscount(200, nil)
		assert.Equal(t, int64(0), res.Amount)
		assert.Equal(t, int64(200), res.EffectiveMonthlyPayment)
		assert.False(t, res.Clamped)
	})

	t.Run("Percentage", func(t *testing.T) {
		res := ApplyDiscount(200, &domain.Discount{Type: domain.DiscountTypePercentage, Value: 10})
		assert.Equal(t, int64(20), res.Amount)
		assert.Equal(t, int64(180), res.EffectiveMonthlyPayment)
		assert.False(t, res.Clamped)
	})

	t.Run("Fixed", func(t *testing.T) {
		res := ApplyDiscount(200, &domain.Discount{Type: domain.DiscountTypeFixed, Value: 30})
		assert.Equal(t, int64(30), res.Amount)
		assert.Equal(t, int64(170), res.EffectiveMonthlyPayment)
	})

	t.Run("ClampedToZero", func(t *testing.T) {
		res := ApplyDiscount(100, &domain.Discount{Type: domain.DiscountTypeFixed, Value: 150})
		assert.Equal(t, int64(0), res.EffectiveMonthlyPayment)
		assert.True(t, res.Clamped)
	})
}

func TestAnnualInsurance(t *testing.T) {
	// 109 x 36 x 3.5% = 137.34 -> 137
	assert.Equal(t, int64(137), AnnualInsurance(109, 36))

	// Small payments floor at the minimum.
	assert.Equal(t, int64(MinimumAnnualInsurance), AnnualInsurance(50, 36))
	assert.Equal(t, int64(MinimumAnnualInsurance), AnnualInsurance(0, 36))
}

func TestCompute(t *testing.T) {
	offer := &domain.Offer{
		Equipment: []domain.EquipmentLine{
			{Title: "Laptop", PurchasePrice: 300, Quantity: 1, MonthlyPayment: 100},
		},
	}

	snap, err := Compute(offer, DefaultCoefficient, 36)
	require.NoError(t, err)

	assert.Equal(t, DefaultCoefficient, snap.Coefficient)
	assert.Equal(t, int64(100), snap.MonthlyPayment)
	assert.Equal(t, int64(327), snap.FinancedAmount)
	assert.Equal(t, int64(27), snap.Margin)
	assert.Equal(t, int64(126), snap.AnnualInsurance) // 100 x 36 x 3.5%
}

func TestCompute_MultipleLines(t *testing.T) {
	offer := &domain.Offer{
		Equipment: []domain.EquipmentLine{
			{Title: "Laptop", PurchasePrice: 300, Quantity: 2, MonthlyPayment: 60},
			{Title: "Dock", PurchasePrice: 100, Quantity: 1, MonthlyPayment: 40},
		},
	}

	snap, err := Compute(offer, DefaultCoefficient, 36)
	require.NoError(t, err)

	// Total monthly 100, total purchase 2x300 + 100 = 700.
	assert.Equal(t, int64(327), snap.FinancedAmount)
	assert.Equal(t, int64(-373), snap.Margin)
}

func TestCompute_WithDiscount(t *testing.T) {
	offer := &domain.Offer{
		Equipment: []domain.EquipmentLine{
			{Title: "Laptop", PurchasePrice: 300, Quantity: 1, MonthlyPayment: 100},
		},
		Discount: &domain.Discount{Type: domain.DiscountTypePercentage, Value: 10},
	}

	snap, err := Compute(offer, DefaultCoefficient, 36)
	require.NoError(t, err)

	// The financed amount derives from the pre-discount payment; the
	// effective monthly payment carries the reduction.
	assert.Equal(t, int64(327), snap.FinancedAmount)
	assert.Equal(t, int64(90), snap.MonthlyPayment)
	assert.Equal(t, int64(10), snap.Discount.Amount)
}

func TestCompute_NoEquipment(t *testing.T) {
	_, err := Compute(&domain.Offer{}, DefaultCoefficient, 36)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
