package crisis

import (
	"fmt"
	"math"

	"github.com/theirongolddev/lifeline/internal/model"
)

// UnclearWeeks is the horizon past which a payoff estimate is not given.
const UnclearWeeks = 52

func milestone(bills []model.Bill, calc model.BudgetCalculation) model.Milestone {
	m := model.Milestone{TotalBills: len(bills), WeeksToStability: -1}

	criticalCurrent := true
	for _, b := range bills {
		if b.IsPaid() {
			m.BillsCurrent++
			continue
		}
		m.TotalOutstanding += b.CurrentBalance
		if b.Category == model.CategoryCritical {
			criticalCurrent = false
		}
	}

	switch {
	case m.BillsCurrent == m.TotalBills:
		m.Category = model.MilestoneAllCurrent
		m.Description = "All bills are current."
	case criticalCurrent:
		m.Category = model.MilestoneSurvivalSecured
		m.Description = "Critical bills are current. Survival needs are secured."
	default:
		m.Category = model.MilestoneInProgress
		m.Description = fmt.Sprintf("%d of %d bills are current.", m.BillsCurrent, m.TotalBills)
	}

	switch {
	case m.TotalOutstanding <= 0:
		m.WeeksToStability = 0
		m.Estimate = "Nothing left to pay off."
	case calc.AvailableForDebt <= 0:
		m.Estimate = "unclear"
	default:
		weeks := int(math.Ceil(m.TotalOutstanding / (calc.AvailableForDebt / 4)))
		if weeks >= UnclearWeeks {
			m.Estimate = "unclear"
			break
		}
		m.WeeksToStability = weeks
		if weeks == 1 {
			m.Estimate = "about 1 week"
		} else {
			m.Estimate = fmt.Sprintf("about %d weeks", weeks)
		}
	}
	return m
}
