package finance

import (
	"fmt"

	"leaseflow-backend/internal/domain"
)

// CoefficientResolver picks the leasing coefficient for an offer save. The
// source system alternates between a fixed estimation constant and a
// range-table lookup keyed by financed amount, so the strategy is pluggable.
type CoefficientResolver interface {
	Resolve(leaser *domain.Leaser, totalMonthlyPayment int64) (float64, error)
}

// FixedCoefficient always returns the same coefficient, for estimation-style
// deployments.
type FixedCoefficient float64

func (c FixedCoefficient) Resolve(_ *domain.Leaser, _ int64) (float64, error) {
	return float64(c), nil
}

// TableCoefficient resolves against the leaser's range grid. The grid is
// keyed by financed amount, which itself depends on the coefficient, so the
// lookup iterates to a fixed point: seed with the default coefficient,
// recompute the financed amount, re-resolve, stop when the coefficient is
// stable.
type TableCoefficient struct {
	// Seed starts the iteration; DefaultCoefficient when zero.
	Seed float64
	// MaxRounds bounds the iteration; 8 when zero.
	MaxRounds int
}

func (c TableCoefficient) Resolve(leaser *domain.Leaser, totalMonthlyPayment int64) (float64, error) {
	if leaser == nil || len(leaser.Ranges) == 0 {
		return 0, fmt.Errorf("%w: leaser has no coefficient grid", domain.ErrCalculationFailure)
	}

	table := NewRangeTable(rangesToBands(leaser.Ranges))
	coeff := c.Seed
	if coeff == 0 {
		coeff = DefaultCoefficient
	}
	rounds := c.MaxRounds
	if rounds == 0 {
		rounds = 8
	}

	for i := 0; i < rounds; i++ {
		financed := FinancedAmount(totalMonthlyPayment, coeff)
		next, ok := table.Lookup(financed)
		if !ok {
			// Above or below every band: keep the closest defined value.
			next, _ = table.HighestValue()
		}
		if next == coeff {
			return coeff, nil
		}
		coeff = next
	}
	return coeff, nil
}

func rangesToBands(ranges []domain.Range) []Band {
	bands := make([]Band, len(ranges))
	for i, r := range ranges {
		bands[i] = Band{Min: r.Min, Max: r.Max, Value: r.Coefficient}
	}
	return bands
}
