package model

import "time"

// SourceProtection is the amount of one paycheck that must stay protected.
type SourceProtection struct {
	SourceID        string    `json:"source_id"`
	Name            string    `json:"name"`
	Frequency       Frequency `json:"frequency"`
	ProtectedAmount float64   `json:"protected_amount"`
	ShareOfIncome   float64   `json:"share_of_income"`
}

// PaycheckProtection restates the monthly protected amount per pay period.
type PaycheckProtection struct {
	Weekly   float64            `json:"weekly"`
	Biweekly float64            `json:"biweekly"`
	Monthly  float64            `json:"monthly"`
	BySource []SourceProtection `json:"by_source"`
}

// CategoryAmount is one category's projected cost in a month.
type CategoryAmount struct {
	Key    string  `json:"key"`
	Amount float64 `json:"amount"`
}

// MonthBreakdown is the projected essential cost of one calendar month.
type MonthBreakdown struct {
	Month      time.Month       `json:"month"`
	Total      float64          `json:"total"`
	Categories []CategoryAmount `json:"categories"` // sorted by key
}

// BudgetCalculation is the protected budget derived from income and expenses.
// ProtectedAmount is exactly TotalMonthlyExpenses + EmergencyCushion and
// AvailableForDebt is never negative.
type BudgetCalculation struct {
	TotalMonthlyIncome   float64            `json:"total_monthly_income"`
	TotalMonthlyExpenses float64            `json:"total_monthly_expenses"`
	EmergencyCushion     float64            `json:"emergency_cushion"`
	ProtectedAmount      float64            `json:"protected_amount"`
	AvailableForDebt     float64            `json:"available_for_debt"`
	Protected            PaycheckProtection `json:"protected"`
	MonthlyBreakdown     [12]MonthBreakdown `json:"monthly_breakdown"`
	IncomeStability      float64            `json:"income_stability"`
	CriticalMonths       []time.Month       `json:"critical_months"`
	CalculatedAt         time.Time          `json:"calculated_at"`
}

// Month returns the breakdown for m.
func (c BudgetCalculation) Month(m time.Month) MonthBreakdown {
	return c.MonthlyBreakdown[m-1]
}

// SafetyLevel grades how much slack remains after paying something.
type SafetyLevel string

// Safety levels, worst first.
const (
	SafetyCritical    SafetyLevel = "CRITICAL"
	SafetyDangerous   SafetyLevel = "DANGEROUS"
	SafetyTight       SafetyLevel = "TIGHT"
	SafetyModerate    SafetyLevel = "MODERATE"
	SafetyComfortable SafetyLevel = "COMFORTABLE"
)

// PaymentProposal is a payment the household is considering.
type PaymentProposal struct {
	Amount    float64   `json:"amount"`
	Frequency Frequency `json:"frequency"`
}

// PaymentValidationResult grades a PaymentProposal against a BudgetCalculation.
type PaymentValidationResult struct {
	MonthlyPayment        float64     `json:"monthly_payment"`
	IsAffordable          bool        `json:"is_affordable"`
	HasEmergencyBuffer    bool        `json:"has_emergency_buffer"`
	SafetyLevel           SafetyLevel `json:"safety_level"`
	MaxSafePayment        float64     `json:"max_safe_payment"`
	RemainingAfterPayment float64     `json:"remaining_after_payment"`
	Warnings              []string    `json:"warnings"`
	Suggestions           []string    `json:"suggestions"`
}
