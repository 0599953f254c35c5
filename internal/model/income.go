package model

import "fmt"

// DefaultStability is assumed for income sources that do not state one.
const DefaultStability = 1.0

// IncomeSource is one stream of household income.
type IncomeSource struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Frequency Frequency `json:"frequency"`
	Stability float64   `json:"stability"` // 0..1, scales the monthly contribution
	IsActive  bool      `json:"is_active"`
}

// NewIncomeSource returns an active source with the default stability.
func NewIncomeSource(id, name string, amount float64, freq Frequency) IncomeSource {
	return IncomeSource{
		ID:        id,
		Name:      name,
		Amount:    amount,
		Frequency: freq,
		Stability: DefaultStability,
		IsActive:  true,
	}
}

// Validate rejects negative or non-finite amounts, unknown frequencies and
// out-of-range stability.
func (s IncomeSource) Validate() error {
	if !ValidAmount(s.Amount) {
		return fmt.Errorf("%w: income source %q has invalid amount %v", ErrInvalidInput, s.ID, s.Amount)
	}
	if !s.Frequency.Valid() {
		return fmt.Errorf("%w: income source %q has unknown frequency %q", ErrInvalidInput, s.ID, s.Frequency)
	}
	if !(s.Stability >= 0 && s.Stability <= 1) {
		return fmt.Errorf("%w: income source %q stability %v outside [0,1]", ErrInvalidInput, s.ID, s.Stability)
	}
	return nil
}
