package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRenderTable_ContainsCells(t *testing.T) {
	SetColor(false)
	out := RenderTable(Table{
		Title:   "Bills",
		Headers: []string{"Bill", "Minimum"},
		Rows:    [][]string{{"Rent", "$50.00"}, {"Power", "$42.10"}},
	})
	for _, want := range []string{"Bills", "Bill", "Minimum", "Rent", "$42.10"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{100, 100, 200})
	if utf8.RuneCountInString(got) != 3 {
		t.Fatalf("sparkline %q has %d runes, want 3", got, utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "█") || !strings.HasPrefix(got, "▁") {
		t.Errorf("sparkline = %q, want lowest then highest block", got)
	}
	if flat := RenderSparkline([]float64{5, 5}); flat != "▁▁" {
		t.Errorf("flat sparkline = %q", flat)
	}
}

func TestRenderProgressBar(t *testing.T) {
	SetColor(false)
	out := RenderProgressBar(3, 4, 20)
	if !strings.HasSuffix(out, "3/4") {
		t.Errorf("progress = %q, want a 3/4 label", out)
	}
	if RenderProgressBar(1, 0, 20) != "" {
		t.Error("zero total should render nothing")
	}
}
