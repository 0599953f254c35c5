// Package budget computes the protected household budget: monthly income,
// essential expenses with their seasonal swings, the emergency cushion, and
// how much of a paycheck is safe to put toward debt.
package budget

import (
	"github.com/theirongolddev/lifeline/internal/model"
)

// MonthlyAmount converts amount at freq to its exact monthly equivalent.
// IRREGULAR amounts are taken as already monthly.
func MonthlyAmount(amount float64, freq model.Frequency) float64 {
	switch freq {
	case model.FrequencyWeekly:
		return amount * 52 / 12
	case model.FrequencyBiweekly:
		return amount * 26 / 12
	case model.FrequencyQuarterly:
		return amount / 3
	case model.FrequencyAnnually:
		return amount / 12
	default: // MONTHLY, IRREGULAR
		return amount
	}
}

// SourceIncome is one active source's contribution to monthly income.
type SourceIncome struct {
	Source model.IncomeSource
	// Monthly is the unweighted monthly equivalent of the source amount.
	Monthly float64
	// Weighted is Monthly scaled by the source's stability.
	Weighted float64
}

// IncomeSummary is the normalized income of a household.
type IncomeSummary struct {
	TotalMonthly float64
	Sources      []SourceIncome // active sources only, input order
	Stability    float64
}

// NormalizeIncome sums the stability-weighted monthly income of active
// sources. Stability is the income-weighted mean of the active sources'
// stability factors, zero when there is no income at all.
func NormalizeIncome(sources []model.IncomeSource) IncomeSummary {
	var sum IncomeSummary
	var unweighted float64

	for _, s := range sources {
		if !s.IsActive {
			continue
		}
		monthly := MonthlyAmount(s.Amount, s.Frequency)
		weighted := monthly * s.Stability
		sum.Sources = append(sum.Sources, SourceIncome{
			Source:   s,
			Monthly:  monthly,
			Weighted: weighted,
		})
		sum.TotalMonthly += weighted
		unweighted += monthly
	}

	if unweighted > 0 {
		sum.Stability = sum.TotalMonthly / unweighted
	}
	return sum
}
