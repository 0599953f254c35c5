// Package crisis rolls the budget, bills and any triage verdict up into a
// single dashboard assessment.
package crisis

import (
	"fmt"
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
)

// Status thresholds.
const (
	// UrgentWindowDays is how close a CRITICAL bill's due date must be to
	// make the household URGENT.
	UrgentWindowDays = 3
	// ThinMarginRatio and LimitedMarginRatio split the CAUTION band by the
	// share of income left for debt.
	ThinMarginRatio    = 0.2
	LimitedMarginRatio = 0.3
	// MaxDeadlines bounds UpcomingDeadlines.
	MaxDeadlines = 5
)

// Aggregator builds crisis assessments. It holds no state.
type Aggregator struct{}

// NewAggregator returns an Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Assess evaluates the household as of now. verdict may be nil.
func (a *Aggregator) Assess(bills []model.Bill, calc model.BudgetCalculation, verdict *model.TriageVerdict, now time.Time) (model.CrisisAssessment, error) {
	if err := model.ValidateBills(bills); err != nil {
		return model.CrisisAssessment{}, err
	}

	var active []model.Bill
	for _, b := range bills {
		if b.IsActive {
			active = append(active, b)
		}
	}

	status, reason := dashboardStatus(active, calc, verdict, now)
	out := model.CrisisAssessment{
		Status:            status,
		StatusReason:      reason,
		PrimaryNeeds:      []string{},
		Alerts:            alerts(active, calc),
		NextAction:        nextAction(active, calc, verdict, now),
		Milestone:         milestone(active, calc),
		UpcomingDeadlines: deadlines(active, now),
	}
	if verdict != nil && len(verdict.PrimaryNeeds) > 0 {
		out.PrimaryNeeds = append(out.PrimaryNeeds, verdict.PrimaryNeeds...)
	}
	return out, nil
}

func dashboardStatus(bills []model.Bill, calc model.BudgetCalculation, verdict *model.TriageVerdict, now time.Time) (model.DashboardStatus, string) {
	if shortfall := calc.TotalMonthlyExpenses - calc.TotalMonthlyIncome; shortfall > 0 {
		return model.StatusCrisis, fmt.Sprintf("Essential expenses are $%.2f more than income each month.", shortfall)
	}
	if verdict != nil && verdict.IsCrisis {
		return model.StatusCrisis, "Crisis triage flagged an emergency that needs action now."
	}

	for _, b := range bills {
		if b.Category != model.CategoryCritical || b.IsPaid() {
			continue
		}
		if days := b.DaysUntilDue(now); days <= UrgentWindowDays {
			if days < 0 {
				return model.StatusUrgent, fmt.Sprintf("%s is %d days overdue.", b.Name, -days)
			}
			return model.StatusUrgent, fmt.Sprintf("%s is due %s.", b.Name, dueIn(days))
		}
	}

	r := margin(calc)
	switch {
	case r < ThinMarginRatio:
		return model.StatusCaution, fmt.Sprintf("Only %.0f%% of income is left after essentials: a thin margin.", r*100)
	case r <= LimitedMarginRatio:
		return model.StatusCaution, fmt.Sprintf("%.0f%% of income is left after essentials: a limited margin.", r*100)
	}

	allPaid := true
	for _, b := range bills {
		if !b.IsPaid() {
			allPaid = false
			break
		}
	}
	if allPaid {
		return model.StatusComfortable, "Every bill is current with room to spare."
	}
	return model.StatusStable, "Essentials are covered and bills are on track."
}

// margin is the share of income left for debt; zero without income.
func margin(calc model.BudgetCalculation) float64 {
	if calc.TotalMonthlyIncome <= 0 {
		return 0
	}
	return calc.AvailableForDebt / calc.TotalMonthlyIncome
}

func dueIn(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", days)
}

func alerts(bills []model.Bill, calc model.BudgetCalculation) []model.Alert {
	out := []model.Alert{}
	if shortfall := calc.TotalMonthlyExpenses - calc.TotalMonthlyIncome; shortfall > 0 {
		out = append(out, model.Alert{
			Kind:    model.AlertBudgetCrisis,
			Message: fmt.Sprintf("Monthly shortfall of $%.2f: income does not cover essential expenses.", shortfall),
			Amount:  shortfall,
		})
	}
	for _, b := range bills {
		if b.IsPaid() {
			continue
		}
		if b.ShutoffRisk {
			out = append(out, model.Alert{
				Kind:    model.AlertShutoff,
				Message: fmt.Sprintf("%s is at risk of shutoff.", b.Name),
				Amount:  b.MinimumPayment,
			})
		}
		if b.RepossessionRisk {
			out = append(out, model.Alert{
				Kind:    model.AlertRepossession,
				Message: fmt.Sprintf("%s is at risk of repossession.", b.Name),
				Amount:  b.MinimumPayment,
			})
		}
	}
	return out
}
