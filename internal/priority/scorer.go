// Package priority scores how urgently each bill needs money.
package priority

import (
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
)

// MaxScore is the ceiling applied to the additive score. The unclamped sum is
// kept in Bill.RawPriorityScore.
const MaxScore = 99

// baseScores is the starting score per bill type.
var baseScores = map[model.BillType]int{
	model.BillTypeHousing:        95,
	model.BillTypeUtilities:      90,
	model.BillTypeMedical:        88,
	model.BillTypeInsurance:      86,
	model.BillTypeDebt:           85,
	model.BillTypeTransportation: 82,
	model.BillTypeChildcare:      80,
	model.BillTypePhone:          75,
	model.BillTypeInternet:       70,
	model.BillTypeOther:          60,
	model.BillTypeSubscription:   55,
	model.BillTypeEntertainment:  50,
}

const essentialBonus = 10

// levelFloors is scanned top-down; the first floor the score meets wins.
var levelFloors = []struct {
	min   int
	level model.PriorityLevel
}{
	{90, model.PriorityCritical},
	{80, model.PriorityHigh},
	{70, model.PriorityMedium},
	{60, model.PriorityLow},
}

// BaseScore returns the starting score for a bill type. Unknown and empty
// types score as "other".
func BaseScore(t model.BillType) int {
	if s, ok := baseScores[t]; ok {
		return s
	}
	return baseScores[model.BillTypeOther]
}

// DueDateModifier rewards bills that are overdue or due soon.
func DueDateModifier(daysUntilDue int) int {
	switch {
	case daysUntilDue < 0:
		return 15
	case daysUntilDue == 0:
		return 12
	case daysUntilDue == 1:
		return 10
	case daysUntilDue <= 7:
		return 8
	case daysUntilDue <= 14:
		return 5
	case daysUntilDue <= 30:
		return 3
	case daysUntilDue <= 60:
		return 1
	}
	return 0
}

// LateFeeModifier rewards bills whose late fee hurts.
func LateFeeModifier(fee float64) int {
	switch {
	case fee > 50:
		return 8
	case fee >= 20:
		return 5
	case fee >= 5:
		return 2
	}
	return 0
}

// InterestModifier rewards bills with expensive interest (annual percent).
func InterestModifier(rate float64) int {
	switch {
	case rate > 20:
		return 6
	case rate >= 10:
		return 4
	case rate >= 5:
		return 2
	}
	return 0
}

// Level maps a score onto its label.
func Level(score int) model.PriorityLevel {
	for _, f := range levelFloors {
		if score >= f.min {
			return f.level
		}
	}
	return model.PriorityMinimal
}

// Scorer assigns priority scores. It holds no state.
type Scorer struct{}

// NewScorer returns a Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// RawScore is the unclamped additive score of b as of now.
func (s *Scorer) RawScore(b model.Bill, now time.Time) int {
	score := BaseScore(b.Type)
	score += DueDateModifier(b.DaysUntilDue(now))
	if b.IsEssential {
		score += essentialBonus
	}
	score += LateFeeModifier(b.LateFee)
	score += InterestModifier(b.InterestRate)
	return score
}

// Score returns a copy of b with its priority fields filled in.
func (s *Scorer) Score(b model.Bill, now time.Time) model.Bill {
	raw := s.RawScore(b, now)
	score := raw
	if score > MaxScore {
		score = MaxScore
	}
	if score < 0 {
		score = 0
	}
	b.RawPriorityScore = raw
	b.PriorityScore = score
	b.PriorityLevel = Level(score)
	return b
}

// ScoreAll scores every bill, preserving input order. The input slice is
// not modified.
func (s *Scorer) ScoreAll(bills []model.Bill, now time.Time) ([]model.Bill, error) {
	if err := model.ValidateBills(bills); err != nil {
		return nil, err
	}
	out := make([]model.Bill, len(bills))
	for i, b := range bills {
		out[i] = s.Score(b, now)
	}
	return out, nil
}
