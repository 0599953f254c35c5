package budget

import (
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
)

// CriticalMonthMargin is the least a month may leave for debt, after
// expenses and cushion, before it is flagged critical.
const CriticalMonthMargin = 100.0

// Calculator produces a BudgetCalculation from income and essential expenses.
// It holds no state; the zero value is ready to use.
type Calculator struct{}

// NewCalculator returns a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate validates the inputs and computes the protected budget as of now.
func (c *Calculator) Calculate(income []model.IncomeSource, expenses model.EssentialExpenses, now time.Time) (model.BudgetCalculation, error) {
	if len(income) == 0 {
		return model.BudgetCalculation{}, fmt.Errorf("%w: no income sources", model.ErrInvalidInput)
	}
	for _, s := range income {
		if err := s.Validate(); err != nil {
			return model.BudgetCalculation{}, err
		}
	}
	if err := expenses.Validate(); err != nil {
		return model.BudgetCalculation{}, err
	}

	inc := NormalizeIncome(income)
	exp := AggregateExpenses(expenses)
	cushion := EstimateCushion(inc.TotalMonthly, expenses.Dependents, exp)
	protected := exp.TotalMonthly + cushion

	calc := model.BudgetCalculation{
		TotalMonthlyIncome:   inc.TotalMonthly,
		TotalMonthlyExpenses: exp.TotalMonthly,
		EmergencyCushion:     cushion,
		ProtectedAmount:      protected,
		AvailableForDebt:     math.Max(0, inc.TotalMonthly-protected),
		Protected:            paycheckProtection(protected, inc),
		MonthlyBreakdown:     exp.Months,
		IncomeStability:      inc.Stability,
		CriticalMonths:       criticalMonths(inc.TotalMonthly, cushion, exp.Months),
		CalculatedAt:         now,
	}
	return calc, nil
}

// paycheckProtection restates the monthly protected amount per pay period,
// and per active source according to how that source pays.
func paycheckProtection(protected float64, inc IncomeSummary) model.PaycheckProtection {
	pp := model.PaycheckProtection{
		Weekly:   protected * 12 / 52,
		Biweekly: protected * 12 / 26,
		Monthly:  protected,
	}

	for _, si := range inc.Sources {
		share := ratio(si.Weighted, inc.TotalMonthly)
		sp := model.SourceProtection{
			SourceID:      si.Source.ID,
			Name:          si.Source.Name,
			Frequency:     si.Source.Frequency,
			ShareOfIncome: share,
		}
		switch si.Source.Frequency {
		case model.FrequencyWeekly:
			sp.ProtectedAmount = pp.Weekly
		case model.FrequencyBiweekly:
			sp.ProtectedAmount = pp.Biweekly
		case model.FrequencyMonthly:
			sp.ProtectedAmount = protected * share
		default:
			// Lump sums: protect the same proportion of this one payment.
			sp.ProtectedAmount = si.Source.Amount * ratio(protected, inc.TotalMonthly)
		}
		pp.BySource = append(pp.BySource, sp)
	}
	return pp
}

func criticalMonths(income, cushion float64, months [12]model.MonthBreakdown) []time.Month {
	var out []time.Month
	for _, m := range months {
		if income-m.Total-cushion < CriticalMonthMargin {
			out = append(out, m.Month)
		}
	}
	return out
}

// ratio is num/den, or 0 when den is not positive.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
