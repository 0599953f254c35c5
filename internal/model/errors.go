package model

import (
	"errors"
	"math"
)

// ErrInvalidInput is wrapped by every rejection of malformed caller data
// (negative amounts, unknown enums, empty income list). Business outcomes
// such as an unaffordable bill are never reported through errors.
var ErrInvalidInput = errors.New("invalid input")

// ValidAmount reports whether x is a finite, non-negative money amount.
// NaN and infinities fail.
func ValidAmount(x float64) bool {
	return x >= 0 && !math.IsInf(x, 1)
}
