// Package planner spreads the debt budget across scored bills.
package planner

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/lifeline/internal/budget"
	"github.com/theirongolddev/lifeline/internal/model"
)

// Allocation thresholds.
const (
	// EssentialFloor is the lowest score funded in the first pass.
	EssentialFloor = 90
	// ConsideredFloor is the lowest score the allocator looks at. Bills
	// below it never appear in a plan.
	ConsideredFloor = 70
	// PartialMinimum is the least leftover worth sending as a partial payment.
	PartialMinimum = 25.0
	// PartialBalanceLine is the balance a bill must exceed to take a partial payment.
	PartialBalanceLine = 100.0
	// counselingMultiple of the available budget in required minimums
	// triggers the debt-relief suggestion.
	counselingMultiple = 2.0
	dangerousRate      = 0.25
)

// Integrator builds payment plans. It holds no state.
type Integrator struct{}

// NewIntegrator returns an Integrator.
func NewIntegrator() *Integrator {
	return &Integrator{}
}

// Plan allocates calc.AvailableForDebt over bills. Bills must already be
// scored. Inactive bills are skipped and the input slice is not modified.
func (in *Integrator) Plan(bills []model.Bill, calc model.BudgetCalculation) (model.IntegratedPaymentPlan, error) {
	if err := model.ValidateBills(bills); err != nil {
		return model.IntegratedPaymentPlan{}, err
	}

	available := calc.AvailableForDebt
	plan := model.IntegratedPaymentPlan{
		AvailableBudget:   available,
		Recommendations:   []model.PaymentRecommendation{},
		UnaffordableBills: []model.UnaffordableBill{},
		EmergencyActions:  []string{},
		Suggestions:       []string{},
	}

	var essential, middle []model.Bill
	var requiredMinimums float64
	for _, b := range bills {
		if !b.IsActive || b.IsPaid() {
			continue
		}
		switch {
		case b.IsEssential && b.PriorityScore >= EssentialFloor:
			essential = append(essential, b)
		case b.PriorityScore >= ConsideredFloor && b.PriorityScore < EssentialFloor:
			middle = append(middle, b)
		default:
			continue
		}
		requiredMinimums += b.MinimumPayment
	}
	byPriority(essential)
	byPriority(middle)

	remaining := available
	cushion := calc.EmergencyCushion

	for _, b := range essential {
		if b.MinimumPayment <= remaining {
			remaining -= b.MinimumPayment
			plan.Recommendations = append(plan.Recommendations, recommend(b, b.MinimumPayment, false,
				budget.Classify(remaining, cushion), "Essential bill: pay the minimum to stay current."))
			continue
		}
		plan.UnaffordableBills = append(plan.UnaffordableBills, unaffordable(b,
			"Contact the creditor immediately to arrange a payment plan or extension."))
		plan.EmergencyActions = append(plan.EmergencyActions,
			fmt.Sprintf("Contact %s immediately: the $%.2f minimum does not fit the budget.", b.Name, b.MinimumPayment))
	}

	for _, b := range middle {
		switch {
		case b.MinimumPayment <= remaining:
			remaining -= b.MinimumPayment
			plan.Recommendations = append(plan.Recommendations, recommend(b, b.MinimumPayment, false,
				budget.Classify(remaining, cushion), "Pay the minimum to avoid fees and damage."))
		case remaining >= PartialMinimum && b.CurrentBalance > PartialBalanceLine:
			partial := remaining
			remaining = 0
			plan.Recommendations = append(plan.Recommendations, recommend(b, partial, true,
				model.SafetyTight, fmt.Sprintf("Partial payment: the rest of the budget goes here, $%.2f short of the minimum.", b.MinimumPayment-partial)))
		default:
			plan.UnaffordableBills = append(plan.UnaffordableBills, unaffordable(b,
				"Ask the creditor to defer this payment until the budget recovers."))
		}
	}

	for _, r := range plan.Recommendations {
		plan.TotalMonthlyPayment += r.RecommendedPayment
	}

	plan.IsViable = true
	for _, u := range plan.UnaffordableBills {
		if u.IsEssential {
			plan.IsViable = false
			break
		}
	}

	leftover := available - plan.TotalMonthlyPayment
	switch {
	case len(plan.UnaffordableBills) > 0:
		plan.SafetyLevel = model.SafetyCritical
	case leftover < cushion*dangerousRate:
		plan.SafetyLevel = model.SafetyDangerous
	case leftover < cushion:
		plan.SafetyLevel = model.SafetyModerate
	default:
		plan.SafetyLevel = model.SafetyComfortable
	}

	if requiredMinimums > counselingMultiple*available {
		plan.Suggestions = append(plan.Suggestions, fmt.Sprintf(
			"Minimum payments ($%.2f) are more than twice what the budget allows. Consider a nonprofit debt-relief or credit counseling service.",
			requiredMinimums))
	}
	if len(plan.UnaffordableBills) > 0 && plan.IsViable {
		plan.Suggestions = append(plan.Suggestions,
			"Every essential bill is covered. Revisit the deferred bills when income improves.")
	}

	return plan, nil
}

// byPriority sorts highest score first; equal scores keep list order.
func byPriority(bills []model.Bill) {
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].PriorityScore > bills[j].PriorityScore
	})
}

func recommend(b model.Bill, amount float64, partial bool, level model.SafetyLevel, reason string) model.PaymentRecommendation {
	return model.PaymentRecommendation{
		BillID:             b.ID,
		BillName:           b.Name,
		PriorityScore:      b.PriorityScore,
		PriorityLevel:      b.PriorityLevel,
		MinimumPayment:     b.MinimumPayment,
		RecommendedPayment: amount,
		IsPartial:          partial,
		SafetyLevel:        level,
		Reason:             reason,
	}
}

func unaffordable(b model.Bill, suggestion string) model.UnaffordableBill {
	return model.UnaffordableBill{
		BillID:         b.ID,
		BillName:       b.Name,
		PriorityScore:  b.PriorityScore,
		MinimumPayment: b.MinimumPayment,
		IsEssential:    b.IsEssential,
		Suggestion:     suggestion,
	}
}
