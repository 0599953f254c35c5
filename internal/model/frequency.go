// Package model defines the value records exchanged between the lifeline
// engines: income, essential expenses, bills and the recommendations
// computed from them.
package model

import (
	"fmt"
	"strings"
)

// Frequency is how often an amount recurs.
type Frequency string

// Supported frequencies.
const (
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyBiweekly  Frequency = "BIWEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyAnnually  Frequency = "ANNUALLY"
	FrequencyIrregular Frequency = "IRREGULAR"
)

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencyAnnually, FrequencyIrregular:
		return true
	}
	return false
}

// ParseFrequency accepts any casing ("biweekly", "Biweekly").
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, s)
	}
	return f, nil
}
