package finance

import (
	"fmt"

	"leaseflow-backend/internal/domain"
)

// Commission is a resolved rate (percentage) and amount (currency units).
type Commission struct {
	Rate   float64 `json:"rate"`
	Amount int64   `json:"amount"`
}

// ResolveCommission resolves the commission for a financed amount against a
// level's tier set.
//
// Policy: a nil level or a level with no rates yields the default 5%. An
// amount above every tier takes the tier with the highest rate. A resolved
// amount of zero (when a non-zero amount was computable) falls back to the
// default rather than persisting an invalid commission.
func ResolveCommission(financedAmount int64, level *domain.CommissionLevel) (Commission, error) {
	if financedAmount < 0 {
		return Commission{}, fmt.Errorf("%w: negative financed amount %d", domain.ErrInvalidInput, financedAmount)
	}

	if level == nil || len(level.Rates) == 0 {
		return defaultCommission(financedAmount), nil
	}

	table := NewRangeTable(ratesToBands(level.Rates))
	rate, ok := table.Lookup(financedAmount)
	if !ok {
		rate, _ = table.HighestValue()
	}

	amount := Round(float64(financedAmount) * rate / 100)
	if amount <= 0 {
		return defaultCommission(financedAmount), nil
	}
	return Commission{Rate: rate, Amount: amount}, nil
}

func defaultCommission(financedAmount int64) Commission {
	return Commission{
		Rate:   DefaultCommissionRate,
		Amount: Round(float64(financedAmount) * DefaultCommissionRate / 100),
	}
}

func ratesToBands(rates []domain.CommissionRate) []Band {
	bands := make([]Band, len(rates))
	for i, r := range rates {
		bands[i] = Band{Min: r.MinAmount, Max: r.MaxAmount, Value: r.Rate}
	}
	return bands
}

// ValidateRates rejects overlapping tiers and inverted bounds before a level
// is persisted. Adjacent tiers may share an endpoint, as in [0-300] and
// [300-1000]; lookup resolves the shared amount to the lower tier.
func ValidateRates(rates []domain.CommissionRate) error {
	table := NewRangeTable(ratesToBands(rates))
	for i := 1; i < len(table.bands); i++ {
		prev, cur := table.bands[i-1], table.bands[i]
		if prev.Max > cur.Min {
			return fmt.Errorf("%w: overlapping tiers [%d-%d] and [%d-%d]",
				domain.ErrInvalidInput, prev.Min, prev.Max, cur.Min, cur.Max)
		}
	}
	for _, b := range table.bands {
		if b.Min > b.Max || b.Min < 0 {
			return fmt.Errorf("%w: invalid tier bounds [%d-%d]", domain.ErrInvalidInput, b.Min, b.Max)
		}
	}
	return nil
}
