package crisis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
)

// Default nudge when nothing more pressing applies.
const (
	DefaultAction       = "Start an emergency fund"
	DefaultAmount       = 50.0
	DefaultDeadlineDays = 30
	defaultConsequence  = "one surprise expense could put you behind again"
)

var (
	amountRe = regexp.MustCompile(`\$([0-9,]+(?:\.[0-9]{1,2})?)`)

	// Checked in order; the first match names the consequence.
	consequences = []struct {
		re   *regexp.Regexp
		text string
	}{
		{regexp.MustCompile(`(?i)\belectric`), "power shutoff"},
		{regexp.MustCompile(`(?i)\bgas`), "gas disconnection"},
		{regexp.MustCompile(`(?i)\bwater`), "water shutoff"},
		{regexp.MustCompile(`(?i)\brent`), "eviction process"},
		{regexp.MustCompile(`(?i)\bcar\b`), "vehicle repossession"},
	}
)

const genericConsequence = "service disruption"

// Consequence maps a bill name to what happens if it goes unpaid.
func Consequence(name string) string {
	for _, c := range consequences {
		if c.re.MatchString(name) {
			return c.text
		}
	}
	return genericConsequence
}

// ParseAction splits a triage action of the form
// "<action> $<amount> - <consequence>". Missing parts come back empty or zero.
func ParseAction(s string) (action string, amount float64, consequence string) {
	s = strings.TrimSpace(s)
	action = s
	for _, sep := range []string{" - ", " \u2014 "} {
		if i := strings.Index(s, sep); i >= 0 {
			action = strings.TrimSpace(s[:i])
			consequence = strings.TrimSpace(s[i+len(sep):])
			break
		}
	}
	if m := amountRe.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			amount = v
		}
	}
	return action, amount, consequence
}

func nextAction(bills []model.Bill, calc model.BudgetCalculation, verdict *model.TriageVerdict, now time.Time) model.NextAction {
	if verdict != nil && strings.TrimSpace(verdict.ImmediateAction) != "" {
		action, amount, consequence := ParseAction(verdict.ImmediateAction)
		return model.NextAction{
			Action:      action,
			Amount:      amount,
			Consequence: consequence,
			Source:      model.ActionFromTriage,
		}
	}

	var candidates []model.Bill
	for _, b := range bills {
		if !b.IsPaid() && b.CurrentBalance <= calc.AvailableForDebt {
			candidates = append(candidates, b)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Category.Rank() < candidates[j].Category.Rank()
	})
	if len(candidates) > 0 {
		b := candidates[0]
		days := b.DaysUntilDue(now)
		if days < 0 {
			days = 0
		}
		return model.NextAction{
			Action:       "Pay off " + b.Name,
			Amount:       b.CurrentBalance,
			Consequence:  Consequence(b.Name),
			DeadlineDays: days,
			BillID:       b.ID,
			Source:       model.ActionFromBill,
		}
	}

	return model.NextAction{
		Action:       DefaultAction,
		Amount:       DefaultAmount,
		Consequence:  defaultConsequence,
		DeadlineDays: DefaultDeadlineDays,
		Source:       model.ActionFromDefault,
	}
}

func deadlines(bills []model.Bill, now time.Time) []model.Deadline {
	out := []model.Deadline{}
	for _, b := range bills {
		if b.IsPaid() {
			continue
		}
		out = append(out, model.Deadline{
			BillID:       b.ID,
			BillName:     b.Name,
			DaysUntilDue: b.DaysUntilDue(now),
			Amount:       b.MinimumPayment,
			Consequence:  Consequence(b.Name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntilDue < out[j].DaysUntilDue
	})
	if len(out) > MaxDeadlines {
		out = out[:MaxDeadlines]
	}
	return out
}
