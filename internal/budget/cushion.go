package budget

import "math"

// Cushion parameters.
const (
	CushionFloor          = 100.0
	CushionIncomeRate     = 0.05
	CushionPerDependent   = 50.0
	CushionVariableRate   = 0.10
	CushionSeasonalFactor = 1.2
	CushionCeiling        = 500.0
)

// EstimateCushion sizes the emergency buffer kept above essential expenses.
// The ceiling applies regardless of income.
func EstimateCushion(monthlyIncome float64, dependents int, expenses ExpenseSummary) float64 {
	cushion := math.Max(CushionFloor, CushionIncomeRate*monthlyIncome)
	cushion += float64(dependents) * CushionPerDependent

	for _, c := range expenses.Categories {
		if c.Variable {
			cushion += CushionVariableRate * c.Monthly
		}
	}

	if expenses.AnySeasonal() {
		cushion *= CushionSeasonalFactor
	}

	return math.Min(cushion, CushionCeiling)
}
