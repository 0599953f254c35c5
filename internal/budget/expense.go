package budget

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
)

// significantSeasonalSwing is how far a factor must stray from 1 before a
// category counts as seasonal for the cushion.
const significantSeasonalSwing = 0.2

// CategoryExpense is one category's monthly base cost.
type CategoryExpense struct {
	Key      string
	Monthly  float64
	Variable bool
	Seasonal bool
}

// ExpenseSummary is the monthly essential cost base and its 12-month projection.
type ExpenseSummary struct {
	TotalMonthly float64
	Categories   []CategoryExpense // sorted by key
	Months       [12]model.MonthBreakdown
}

// AnySeasonal reports whether any category swings significantly by season.
func (s ExpenseSummary) AnySeasonal() bool {
	for _, c := range s.Categories {
		if c.Seasonal {
			return true
		}
	}
	return false
}

// AggregateExpenses converts every category to monthly and projects each
// calendar month. Every month starts at the flat total; each seasonal
// variation then adds base*(factor-1) to the months it names, stacking when
// several variations hit the same month.
func AggregateExpenses(expenses model.EssentialExpenses) ExpenseSummary {
	keys := make([]string, 0, len(expenses.Categories))
	for k := range expenses.Categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sum ExpenseSummary
	var monthAdjust [12]float64
	perMonth := make([][]model.CategoryAmount, 12)

	for _, key := range keys {
		c := expenses.Categories[key]
		base := MonthlyAmount(c.EffectiveAmount(), c.Frequency)

		ce := CategoryExpense{
			Key:      key,
			Monthly:  base,
			Variable: c.Flexibility == model.FlexibilityVariable,
		}

		var adjust [12]float64
		for _, v := range c.SeasonalVariation {
			if math.Abs(v.AdjustmentFactor-1) > significantSeasonalSwing {
				ce.Seasonal = true
			}
			for _, m := range v.AffectedMonths {
				adjust[m-1] += base * (v.AdjustmentFactor - 1)
			}
		}

		for i := range perMonth {
			perMonth[i] = append(perMonth[i], model.CategoryAmount{Key: key, Amount: base + adjust[i]})
			monthAdjust[i] += adjust[i]
		}

		sum.TotalMonthly += base
		sum.Categories = append(sum.Categories, ce)
	}

	for i := range sum.Months {
		sum.Months[i] = model.MonthBreakdown{
			Month:      time.Month(i + 1),
			Total:      sum.TotalMonthly + monthAdjust[i],
			Categories: perMonth[i],
		}
	}

	return sum
}
