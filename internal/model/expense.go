package model

import (
	"fmt"
	"strings"
	"time"
)

// Flexibility describes whether an essential expense moves month to month.
type Flexibility string

// Flexibility values.
const (
	FlexibilityFixed    Flexibility = "FIXED"
	FlexibilityVariable Flexibility = "VARIABLE"
)

// ParseFlexibility accepts any casing; empty means FIXED.
func ParseFlexibility(s string) (Flexibility, error) {
	switch f := Flexibility(strings.ToUpper(strings.TrimSpace(s))); f {
	case "":
		return FlexibilityFixed, nil
	case FlexibilityFixed, FlexibilityVariable:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown flexibility %q", ErrInvalidInput, s)
}

// SeasonalVariation scales a category's base amount in the listed months.
type SeasonalVariation struct {
	AffectedMonths   []time.Month `json:"affected_months"`
	AdjustmentFactor float64      `json:"adjustment_factor"`
}

// ExpenseCategory is one essential, non-discretionary cost.
type ExpenseCategory struct {
	Key               string              `json:"key"`
	MinimumAmount     float64             `json:"minimum_amount"`
	ActualAmount      *float64            `json:"actual_amount,omitempty"`
	Frequency         Frequency           `json:"frequency"`
	Flexibility       Flexibility         `json:"flexibility"`
	SeasonalVariation []SeasonalVariation `json:"seasonal_variations,omitempty"`
}

// EffectiveAmount is the actual amount when known, else the minimum.
func (c ExpenseCategory) EffectiveAmount() float64 {
	if c.ActualAmount != nil {
		return *c.ActualAmount
	}
	return c.MinimumAmount
}

// Validate checks amounts, enums and seasonal month ranges.
func (c ExpenseCategory) Validate() error {
	if !ValidAmount(c.MinimumAmount) {
		return fmt.Errorf("%w: expense %q has invalid minimum %v", ErrInvalidInput, c.Key, c.MinimumAmount)
	}
	if c.ActualAmount != nil && !ValidAmount(*c.ActualAmount) {
		return fmt.Errorf("%w: expense %q has invalid actual amount %v", ErrInvalidInput, c.Key, *c.ActualAmount)
	}
	if !c.Frequency.Valid() {
		return fmt.Errorf("%w: expense %q has unknown frequency %q", ErrInvalidInput, c.Key, c.Frequency)
	}
	if c.Flexibility != FlexibilityFixed && c.Flexibility != FlexibilityVariable {
		return fmt.Errorf("%w: expense %q has unknown flexibility %q", ErrInvalidInput, c.Key, c.Flexibility)
	}
	for _, v := range c.SeasonalVariation {
		if v.AdjustmentFactor <= 0 || !ValidAmount(v.AdjustmentFactor) {
			return fmt.Errorf("%w: expense %q has invalid seasonal factor %v", ErrInvalidInput, c.Key, v.AdjustmentFactor)
		}
		for _, m := range v.AffectedMonths {
			if m < time.January || m > time.December {
				return fmt.Errorf("%w: expense %q names month %d", ErrInvalidInput, c.Key, int(m))
			}
		}
	}
	return nil
}

// EssentialExpenses is the household's protected cost base.
type EssentialExpenses struct {
	Categories map[string]ExpenseCategory `json:"categories"`
	Dependents int                        `json:"dependents"`
}

// Validate checks every category and the dependents count.
func (e EssentialExpenses) Validate() error {
	if e.Dependents < 0 {
		return fmt.Errorf("%w: negative dependents %d", ErrInvalidInput, e.Dependents)
	}
	for key, c := range e.Categories {
		if c.Key != "" && c.Key != key {
			return fmt.Errorf("%w: expense keyed %q declares key %q", ErrInvalidInput, key, c.Key)
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
