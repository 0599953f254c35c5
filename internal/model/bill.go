package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultMinimumPaymentCap bounds the assumed minimum payment of a bill
// that does not state one.
const DefaultMinimumPaymentCap = 50.0

// DefaultMinimumPayment is min(balance, 50).
func DefaultMinimumPayment(balance float64) float64 {
	return math.Min(balance, DefaultMinimumPaymentCap)
}

// BillCategory is the caller-assigned urgency class of a bill.
type BillCategory string

// Bill categories, most urgent first.
const (
	CategoryCritical BillCategory = "CRITICAL"
	CategoryHigh     BillCategory = "HIGH"
	CategoryMedium   BillCategory = "MEDIUM"
	CategoryLow      BillCategory = "LOW"
)

// Rank orders categories for next-action selection; lower is more urgent.
func (c BillCategory) Rank() int {
	switch c {
	case CategoryCritical:
		return 0
	case CategoryHigh:
		return 1
	case CategoryMedium:
		return 2
	case CategoryLow:
		return 3
	}
	return 4
}

// ParseBillCategory accepts any casing.
func ParseBillCategory(s string) (BillCategory, error) {
	c := BillCategory(strings.ToUpper(strings.TrimSpace(s)))
	if c.Rank() > 3 {
		return "", fmt.Errorf("%w: unknown bill category %q", ErrInvalidInput, s)
	}
	return c, nil
}

// BillType is what the bill pays for; it selects the base priority score.
type BillType string

// Bill types.
const (
	BillTypeHousing        BillType = "housing"
	BillTypeUtilities      BillType = "utilities"
	BillTypeMedical        BillType = "medical"
	BillTypeInsurance      BillType = "insurance"
	BillTypeDebt           BillType = "debt"
	BillTypeTransportation BillType = "transportation"
	BillTypeChildcare      BillType = "childcare"
	BillTypePhone          BillType = "phone"
	BillTypeInternet       BillType = "internet"
	BillTypeOther          BillType = "other"
	BillTypeSubscription   BillType = "subscription"
	BillTypeEntertainment  BillType = "entertainment"
)

// BillTypes lists every type in descending base-score order.
var BillTypes = []BillType{
	BillTypeHousing, BillTypeUtilities, BillTypeMedical, BillTypeInsurance,
	BillTypeDebt, BillTypeTransportation, BillTypeChildcare, BillTypePhone,
	BillTypeInternet, BillTypeOther, BillTypeSubscription, BillTypeEntertainment,
}

// ParseBillType accepts any casing; empty means "other".
func ParseBillType(s string) (BillType, error) {
	t := BillType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return BillTypeOther, nil
	}
	for _, known := range BillTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown bill type %q", ErrInvalidInput, s)
}

// PriorityLevel is the label derived from a priority score.
type PriorityLevel string

// Priority labels.
const (
	PriorityCritical PriorityLevel = "Critical"
	PriorityHigh     PriorityLevel = "High"
	PriorityMedium   PriorityLevel = "Medium"
	PriorityLow      PriorityLevel = "Low"
	PriorityMinimal  PriorityLevel = "Minimal"
)

// Bill is an obligation the household owes.
type Bill struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	CurrentBalance   float64      `json:"current_balance"`
	MinimumPayment   float64      `json:"minimum_payment"`
	DueDate          time.Time    `json:"due_date"`
	Category         BillCategory `json:"category"`
	Type             BillType     `json:"type"`
	IsEssential      bool         `json:"is_essential"`
	IsActive         bool         `json:"is_active"`
	ShutoffRisk      bool         `json:"shutoff_risk,omitempty"`
	RepossessionRisk bool         `json:"repossession_risk,omitempty"`
	LateFeeAccruing  bool         `json:"late_fee_accruing,omitempty"`
	LateFee          float64      `json:"late_fee,omitempty"`
	InterestRate     float64      `json:"interest_rate,omitempty"` // annual percent

	// Set by the priority scorer.
	PriorityScore    int           `json:"priority_score"`
	RawPriorityScore int           `json:"raw_priority_score"`
	PriorityLevel    PriorityLevel `json:"priority_level,omitempty"`
}

// NewBill returns an active bill whose minimum payment is the default for its balance.
func NewBill(id, name string, balance float64, typ BillType, category BillCategory, due time.Time) Bill {
	return Bill{
		ID:             id,
		Name:           name,
		CurrentBalance: balance,
		MinimumPayment: DefaultMinimumPayment(balance),
		DueDate:        due,
		Category:       category,
		Type:           typ,
		IsActive:       true,
	}
}

// IsPaid reports whether nothing is owed.
func (b Bill) IsPaid() bool {
	return b.CurrentBalance <= 0
}

// DaysUntilDue counts calendar days from now's date to the due date in
// now's location. Negative means overdue.
func (b Bill) DaysUntilDue(now time.Time) int {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	d := b.DueDate.In(loc)
	due := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return int(math.Round(due.Sub(today).Hours() / 24))
}

// DaysOverdue is zero for bills not yet due.
func (b Bill) DaysOverdue(now time.Time) int {
	if n := b.DaysUntilDue(now); n < 0 {
		return -n
	}
	return 0
}

// Validate rejects negative or non-finite money fields and unknown enums.
func (b Bill) Validate() error {
	if !ValidAmount(b.CurrentBalance) {
		return fmt.Errorf("%w: bill %q has invalid balance %v", ErrInvalidInput, b.ID, b.CurrentBalance)
	}
	if !ValidAmount(b.MinimumPayment) {
		return fmt.Errorf("%w: bill %q has invalid minimum payment %v", ErrInvalidInput, b.ID, b.MinimumPayment)
	}
	if !ValidAmount(b.LateFee) || !ValidAmount(b.InterestRate) {
		return fmt.Errorf("%w: bill %q has invalid fee or interest", ErrInvalidInput, b.ID)
	}
	if b.Category.Rank() > 3 {
		return fmt.Errorf("%w: bill %q has unknown category %q", ErrInvalidInput, b.ID, b.Category)
	}
	if _, err := ParseBillType(string(b.Type)); err != nil {
		return fmt.Errorf("bill %q: %w", b.ID, err)
	}
	return nil
}

// ValidateBills validates every bill.
func ValidateBills(bills []Bill) error {
	for _, b := range bills {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}
