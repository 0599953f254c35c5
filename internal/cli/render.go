package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/lifeline/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	moneyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dangerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// SetColor turns styled output on or off for the whole process.
func SetColor(enabled bool) {
	if !enabled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned and the rest right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := valueStyle
			if row == table.HeaderRow {
				s = headerStyle
			}
			s = s.Padding(0, 1)
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar renders a static progress bar with a count label.
func RenderProgressBar(current, total int, width int) string {
	if total <= 0 {
		return ""
	}

	pct := float64(current) / float64(total)
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(ColorGreen)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	return fmt.Sprintf("%s %s/%s",
		bar.ViewAs(pct),
		FormatNumber(int64(current)),
		FormatNumber(int64(total)),
	)
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders a labelled horizontal bar chart entry.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return fmt.Sprintf("  %s", label)
	}
	barLen := int(value / maxValue * float64(maxWidth))
	barLen = max(0, min(barLen, maxWidth))
	bar := strings.Repeat("█", barLen)
	return fmt.Sprintf("  %-14s %s %s", label, moneyStyle.Render(bar), mutedStyle.Render(FormatMoneyShort(value)))
}

// RenderTree renders a root label with one level of children.
func RenderTree(root string, children ...string) string {
	t := tree.New().Root(headerStyle.Render(root)).EnumeratorStyle(dimStyle)
	for _, c := range children {
		t.Child(valueStyle.Render(c))
	}
	return t.String()
}

// StatusStyle colours a dashboard status by severity.
func StatusStyle(s model.DashboardStatus) lipgloss.Style {
	switch s {
	case model.StatusCrisis:
		return dangerStyle
	case model.StatusUrgent:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorOrange)
	case model.StatusCaution:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case model.StatusComfortable:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	}
	return lipgloss.NewStyle().Foreground(ColorBlue)
}

// SafetyStyle colours a safety level by severity.
func SafetyStyle(l model.SafetyLevel) lipgloss.Style {
	switch l {
	case model.SafetyCritical:
		return dangerStyle
	case model.SafetyDangerous:
		return warnStyle
	case model.SafetyTight:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case model.SafetyComfortable:
		return moneyStyle
	}
	return valueStyle
}

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Warn renders a warning line.
func Warn(s string) string { return warnStyle.Render(s) }

// Money renders an amount in the money colour.
func Money(v float64) string { return moneyStyle.Render(FormatMoney(v)) }

// Header renders a section heading.
func Header(s string) string { return headerStyle.Render(s) }
