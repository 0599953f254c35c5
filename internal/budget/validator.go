package budget

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/lifeline/internal/model"
)

// Validator thresholds, as fractions of the available budget or the cushion.
const (
	MaxSafeShare      = 0.8
	ReducedShare      = 0.7
	MinimumBufferRate = 0.5
	dangerousRate     = 0.25
	tightRate         = 0.5
	lowBudgetLine     = 200.0
)

// Validator grades proposed debt payments against a BudgetCalculation.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate grades p. Only malformed proposals produce an error; an
// unaffordable payment is reported through the result.
func (v *Validator) Validate(p model.PaymentProposal, calc model.BudgetCalculation) (model.PaymentValidationResult, error) {
	if !model.ValidAmount(p.Amount) {
		return model.PaymentValidationResult{}, fmt.Errorf("%w: invalid payment %v", model.ErrInvalidInput, p.Amount)
	}
	if !p.Frequency.Valid() {
		return model.PaymentValidationResult{}, fmt.Errorf("%w: unknown payment frequency %q", model.ErrInvalidInput, p.Frequency)
	}

	monthly := MonthlyAmount(p.Amount, p.Frequency)
	available := calc.AvailableForDebt
	cushion := calc.EmergencyCushion
	remaining := available - monthly

	res := model.PaymentValidationResult{
		MonthlyPayment:        monthly,
		IsAffordable:          remaining >= 0,
		HasEmergencyBuffer:    remaining >= cushion*MinimumBufferRate,
		SafetyLevel:           Classify(remaining, cushion),
		MaxSafePayment:        available * MaxSafeShare,
		RemainingAfterPayment: remaining,
		Warnings:              []string{},
		Suggestions:           []string{},
	}

	reduced := available * ReducedShare

	switch res.SafetyLevel {
	case model.SafetyCritical:
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"This payment is $%.2f more than you have available for debt each month. This plan is not possible without cutting into essential needs.",
			-remaining))
		res.Suggestions = append(res.Suggestions,
			fmt.Sprintf("Lower the payment to $%.2f per month or less.", res.MaxSafePayment),
			"Call the creditor and ask for a hardship plan or a lower payment.",
			"Contact local assistance programs (dial 211) for help covering essentials.",
		)
	case model.SafetyDangerous:
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"This payment leaves less than a quarter of your $%.2f emergency cushion. Consider trimming it to about $%.2f per month.",
			cushion, reduced))
		res.Suggestions = append(res.Suggestions,
			fmt.Sprintf("Try paying $%.2f per month instead.", reduced),
			"Build a small emergency buffer before committing to larger payments.",
		)
	case model.SafetyTight:
		res.Warnings = append(res.Warnings,
			"This payment fits, but leaves a thin margin if something unexpected comes up.")
		res.Suggestions = append(res.Suggestions,
			"Start at this amount and raise it gradually as your buffer grows.")
	}

	if len(calc.CriticalMonths) > 0 {
		names := make([]string, len(calc.CriticalMonths))
		for i, m := range calc.CriticalMonths {
			names[i] = m.String()
		}
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Seasonal costs leave less than $%.0f for debt in: %s.",
			CriticalMonthMargin, strings.Join(names, ", ")))
	}

	if available < lowBudgetLine {
		res.Suggestions = append(res.Suggestions,
			"Review your expenses for anything that can be reduced, paused, or covered by assistance.")
	}

	return res, nil
}

// Classify maps what is left after a payment onto the safety ladder,
// relative to the emergency cushion. The first matching rung wins.
func Classify(remaining, cushion float64) model.SafetyLevel {
	switch {
	case remaining < 0:
		return model.SafetyCritical
	case remaining < cushion*dangerousRate:
		return model.SafetyDangerous
	case remaining < cushion*tightRate:
		return model.SafetyTight
	case remaining < cushion:
		return model.SafetyModerate
	default:
		return model.SafetyComfortable
	}
}
