// Package triage grades how urgently a household needs outside help.
//
// The verdict is narrower than the dashboard status: it only separates
// MODERATE, SEVERE and CRITICAL situations, and for CRITICAL ones names a
// single immediate action in the "<action> $<amount> - <consequence>" form
// the crisis aggregator reads.
package triage

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
)

// Assessor produces triage verdicts. It holds no state.
type Assessor struct{}

// NewAssessor returns an Assessor.
func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess grades the household as of now.
func (a *Assessor) Assess(bills []model.Bill, calc model.BudgetCalculation, now time.Time) (model.TriageVerdict, error) {
	if err := model.ValidateBills(bills); err != nil {
		return model.TriageVerdict{}, err
	}

	var atRisk []model.Bill
	var essentialMinimums float64
	essentialOverdue := false
	for _, b := range bills {
		if !b.IsActive || b.IsPaid() {
			continue
		}
		overdue := b.DaysOverdue(now) > 0
		if b.IsEssential {
			essentialMinimums += b.MinimumPayment
			if overdue {
				essentialOverdue = true
			}
		}
		if overdue && (b.ShutoffRisk || b.RepossessionRisk) {
			atRisk = append(atRisk, b)
		}
	}
	// Most overdue first; equal lateness keeps list order.
	sort.SliceStable(atRisk, func(i, j int) bool {
		return atRisk[i].DaysOverdue(now) > atRisk[j].DaysOverdue(now)
	})

	v := model.TriageVerdict{Severity: model.TriageModerate, PrimaryNeeds: needs(bills, now)}
	shortfall := calc.TotalMonthlyExpenses - calc.TotalMonthlyIncome

	switch {
	case shortfall > 0:
		v.Severity = model.TriageCritical
		v.IsCrisis = true
		v.ImmediateAction = fmt.Sprintf("Call 211 for emergency assistance covering $%.2f - essential needs go unpaid this month", shortfall)
	case len(atRisk) > 0:
		b := atRisk[0]
		v.Severity = model.TriageCritical
		v.IsCrisis = true
		v.ImmediateAction = fmt.Sprintf("Pay %s at least $%.2f - %s", b.Name, b.MinimumPayment, riskConsequence(b))
	case essentialOverdue, calc.AvailableForDebt < essentialMinimums:
		v.Severity = model.TriageSevere
	}
	return v, nil
}

func riskConsequence(b model.Bill) string {
	if b.RepossessionRisk {
		return "repossession is imminent"
	}
	return "service shutoff is imminent"
}

// needs lists the distinct types of unpaid essential bills that are overdue
// or carry a loss-of-service risk, in first-seen order.
func needs(bills []model.Bill, now time.Time) []string {
	seen := map[model.BillType]bool{}
	out := []string{}
	for _, b := range bills {
		if !b.IsActive || b.IsPaid() || !b.IsEssential {
			continue
		}
		if b.DaysUntilDue(now) >= 0 && !b.ShutoffRisk && !b.RepossessionRisk {
			continue
		}
		t := b.Type
		if t == "" {
			t = model.BillTypeOther
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, string(t))
	}
	return out
}
