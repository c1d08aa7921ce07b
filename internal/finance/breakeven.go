package finance

import (
	"fmt"
	"math"
	"time"

	"leaseflow-backend/internal/domain"
)

// BreakevenReport is re-derived from stored contract fields at display time;
// nothing here is persisted.
type BreakevenReport struct {
	BreakevenMonths              int64   `json:"breakeven_months"`
	MonthsElapsed                int64   `json:"months_elapsed"`
	IsProfitable                 bool    `json:"is_profitable"`
	MonthlyAmortization          float64 `json:"monthly_amortization"`
	MonthlyMarginAfterAmortization float64 `json:"monthly_margin_after_amortization"`
	NetProfitAfterBreakeven      int64   `json:"net_profit_after_breakeven"`
}

// Breakeven computes the profitability picture of a contract as of now.
// A non-positive monthly payment makes breakeven undefined; reporting is
// suppressed with an error instead of dividing by zero.
func Breakeven(contract *domain.Contract, now time.Time) (*BreakevenReport, error) {
	if contract.MonthlyPayment <= 0 {
		return nil, fmt.Errorf("%w: breakeven undefined for monthly payment %d",
			domain.ErrInvalidInput, contract.MonthlyPayment)
	}
	if contract.ContractDuration <= 0 {
		return nil, fmt.Errorf("%w: breakeven undefined for duration %d",
			domain.ErrInvalidInput, contract.ContractDuration)
	}

	breakevenMonths := int64(math.Ceil(float64(contract.EquipmentCost) / float64(contract.MonthlyPayment)))

	var elapsed int64
	if contract.ContractStartDate != nil {
		elapsed = MonthsBetween(*contract.ContractStartDate, now)
		if elapsed < 0 {
			elapsed = 0
		}
	}

	amortization := float64(contract.EquipmentCost) / float64(contract.ContractDuration)

	var netProfit int64
	if elapsed > breakevenMonths {
		netProfit = (elapsed - breakevenMonths) * contract.MonthlyPayment
	}

	return &BreakevenReport{
		BreakevenMonths:                breakevenMonths,
		MonthsElapsed:                  elapsed,
		IsProfitable:                   elapsed >= breakevenMonths,
		MonthlyAmortization:            amortization,
		MonthlyMarginAfterAmortization: float64(contract.MonthlyPayment) - amortization,
		NetProfitAfterBreakeven:        netProfit,
	}, nil
}

// MonthsBetween counts whole calendar months from start to end, clamped at
// zero when end precedes start.
func MonthsBetween(start, end time.Time) int64 {
	if end.Before(start) {
		return 0
	}
	months := int64(end.Year()-start.Year())*12 + int64(end.Month()-start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
