package model

import (
	"testing"
	"time"
)

func TestBudgetCalculationMonth(t *testing.T) {
	var c BudgetCalculation
	for i := range c.MonthlyBreakdown {
		c.MonthlyBreakdown[i] = MonthBreakdown{Month: time.Month(i + 1), Total: float64(100 * (i + 1))}
	}
	for _, m := range []time.Month{time.January, time.June, time.December} {
		got := c.Month(m)
		if got.Month != m {
			t.Errorf("Month(%s).Month = %s, want %s", m, got.Month, m)
		}
		if want := float64(100 * int(m)); got.Total != want {
			t.Errorf("Month(%s).Total = %v, want %v", m, got.Total, want)
		}
	}
}
