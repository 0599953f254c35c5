// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// FormatMoney formats a dollar amount rounded half-up to cents with
// thousands separators, e.g. 1234.5 -> "$1,234.50". Non-finite values
// render as "n/a".
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(whole.IntPart()), cents)
}

// FormatMoneyShort drops cents above $100, e.g. 1234.5 -> "$1,235".
func FormatMoneyShort(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	if v >= 100 || v <= -100 {
		d := decimal.NewFromFloat(v).Round(0)
		if d.IsNegative() {
			return "-$" + humanize.Comma(d.Abs().IntPart())
		}
		return "$" + humanize.Comma(d.IntPart())
	}
	return FormatMoney(v)
}

// FormatDelta formats a money change with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return "-" + FormatMoney(-delta)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDue describes a days-until-due count.
func FormatDue(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("%d days overdue", -days)
	case days == -1:
		return "1 day overdue"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", days)
}

// FormatMonths joins month names, e.g. "Jan, Jul".
func FormatMonths(months []time.Month) string {
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = m.String()[:3]
	}
	return strings.Join(names, ", ")
}

// FormatKey turns a snake_case key into a title, e.g. "car_insurance" -> "Car Insurance".
func FormatKey(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// FormatTime formats a timestamp relative to now for listings,
// e.g. "3 hours ago (2026-10-18 09:00)".
func FormatTime(t, now time.Time) string {
	return fmt.Sprintf("%s (%s)", humanize.RelTime(t, now, "ago", "from now"), t.Local().Format("2006-01-02 15:04"))
}
