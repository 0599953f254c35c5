package crisis

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
	"github.com/theirongolddev/lifeline/internal/triage"
)

var now = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

func calc(income, expenses, available float64) model.BudgetCalculation {
	return model.BudgetCalculation{
		TotalMonthlyIncome:   income,
		TotalMonthlyExpenses: expenses,
		AvailableForDebt:     available,
	}
}

func bill(id, name string, balance float64, cat model.BillCategory, dueInDays int) model.Bill {
	return model.NewBill(id, name, balance, model.BillTypeOther, cat, now.AddDate(0, 0, dueInDays))
}

// Income 2800 against 2100 of essentials leaves 700, a quarter of income.
func TestAssess_LimitedMarginIsCaution(t *testing.T) {
	bills := []model.Bill{bill("card", "Credit card", 900, model.CategoryMedium, 20)}
	got, err := NewAggregator().Assess(bills, calc(2800, 2100, 700), nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusCaution {
		t.Fatalf("Status = %s, want CAUTION", got.Status)
	}
	if !strings.Contains(got.StatusReason, "limited margin") {
		t.Errorf("StatusReason = %q, want a limited-margin reason", got.StatusReason)
	}
	if len(got.Alerts) != 0 {
		t.Errorf("Alerts = %v, want none", got.Alerts)
	}
}

// Income 1800 against 2100 of essentials: a $300 hole.
func TestAssess_ShortfallIsCrisis(t *testing.T) {
	c := calc(1800, 2100, 0)
	verdict, err := triage.NewAssessor().Assess(nil, c, now)
	if err != nil {
		t.Fatal(err)
	}

	got, err := NewAggregator().Assess(nil, c, &verdict, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusCrisis {
		t.Fatalf("Status = %s, want CRISIS", got.Status)
	}
	if got.NextAction.Source != model.ActionFromTriage {
		t.Fatalf("NextAction.Source = %s, want triage", got.NextAction.Source)
	}
	if got.NextAction.Amount != 300 {
		t.Errorf("NextAction.Amount = %.2f, want 300", got.NextAction.Amount)
	}
	if len(got.Alerts) != 1 || got.Alerts[0].Kind != model.AlertBudgetCrisis {
		t.Fatalf("Alerts = %+v, want one BUDGET_CRISIS", got.Alerts)
	}
	if got.Alerts[0].Amount != 300 || !strings.Contains(got.Alerts[0].Message, "$300.00") {
		t.Errorf("alert = %+v, want the $300 shortfall named", got.Alerts[0])
	}
}

func TestAssess_StatusOrder(t *testing.T) {
	rentDue := bill("rent", "Rent", 900, model.CategoryCritical, 2)
	rentLater := bill("rent", "Rent", 900, model.CategoryCritical, 12)
	paid := bill("rent", "Rent", 0, model.CategoryCritical, 1)
	overdue := bill("rent", "Rent", 900, model.CategoryCritical, -4)

	cases := []struct {
		name    string
		bills   []model.Bill
		calc    model.BudgetCalculation
		verdict *model.TriageVerdict
		want    model.DashboardStatus
	}{
		{"verdict crisis", []model.Bill{rentLater}, calc(4000, 2000, 1500), &model.TriageVerdict{IsCrisis: true}, model.StatusCrisis},
		{"critical due soon", []model.Bill{rentDue}, calc(4000, 2000, 1500), nil, model.StatusUrgent},
		{"critical overdue", []model.Bill{overdue}, calc(4000, 2000, 1500), nil, model.StatusUrgent},
		{"thin margin", []model.Bill{rentLater}, calc(4000, 3500, 300), nil, model.StatusCaution},
		{"no income", nil, calc(0, 0, 0), nil, model.StatusCaution},
		{"all paid", []model.Bill{paid}, calc(4000, 2000, 1500), nil, model.StatusComfortable},
		{"no bills", nil, calc(4000, 2000, 1500), nil, model.StatusComfortable},
		{"balances left", []model.Bill{rentLater}, calc(4000, 2000, 1500), nil, model.StatusStable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewAggregator().Assess(tc.bills, tc.calc, tc.verdict, now)
			if err != nil {
				t.Fatal(err)
			}
			if got.Status != tc.want {
				t.Errorf("Status = %s (%s), want %s", got.Status, got.StatusReason, tc.want)
			}
		})
	}
}

func TestAssess_NextActionPrefersCategoryThenListOrder(t *testing.T) {
	bills := []model.Bill{
		bill("big", "Rent", 2000, model.CategoryCritical, 5),
		bill("phone", "Phone", 60, model.CategoryHigh, 9),
		bill("power", "Electric co-op", 80, model.CategoryHigh, 3),
		bill("gym", "Gym", 20, model.CategoryLow, 1),
	}
	got, err := NewAggregator().Assess(bills, calc(3000, 1500, 400), nil, now)
	if err != nil {
		t.Fatal(err)
	}
	want := model.NextAction{
		Action:       "Pay off Phone",
		Amount:       60,
		Consequence:  "service disruption",
		DeadlineDays: 9,
		BillID:       "phone",
		Source:       model.ActionFromBill,
	}
	if got.NextAction != want {
		t.Errorf("NextAction = %+v, want %+v", got.NextAction, want)
	}
}

func TestAssess_DefaultAction(t *testing.T) {
	bills := []model.Bill{bill("big", "Rent", 2000, model.CategoryCritical, 20)}
	got, err := NewAggregator().Assess(bills, calc(3000, 1500, 400), nil, now)
	if err != nil {
		t.Fatal(err)
	}
	a := got.NextAction
	if a.Source != model.ActionFromDefault || a.Amount != 50 || a.DeadlineDays != 30 {
		t.Errorf("NextAction = %+v, want the $50 / 30-day default", a)
	}
}

func TestParseAction(t *testing.T) {
	cases := []struct {
		in          string
		action      string
		amount      float64
		consequence string
	}{
		{"Pay Rent $1,250.50 - eviction process", "Pay Rent $1,250.50", 1250.50, "eviction process"},
		{"Call 211 for $300 \u2014 food runs out", "Call 211 for $300", 300, "food runs out"},
		{"Visit the food bank", "Visit the food bank", 0, ""},
	}
	for _, tc := range cases {
		action, amount, consequence := ParseAction(tc.in)
		if action != tc.action || amount != tc.amount || consequence != tc.consequence {
			t.Errorf("ParseAction(%q) = %q, %v, %q; want %q, %v, %q",
				tc.in, action, amount, consequence, tc.action, tc.amount, tc.consequence)
		}
	}
}

func TestConsequence(t *testing.T) {
	cases := map[string]string{
		"City Electric": "power shutoff",
		"Gas & Heat":    "gas disconnection",
		"Water utility": "water shutoff",
		"Rent":          "eviction process",
		"Car payment":   "vehicle repossession",
		"Credit card":   "service disruption",
		"Current phone": "service disruption",
		"Parent club":   "service disruption",
	}
	for name, want := range cases {
		if got := Consequence(name); got != want {
			t.Errorf("Consequence(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestAssess_Milestone(t *testing.T) {
	bills := []model.Bill{
		bill("rent", "Rent", 0, model.CategoryCritical, 5),
		bill("card", "Card", 500, model.CategoryMedium, 5),
		bill("loan", "Loan", 300, model.CategoryLow, 5),
	}
	got, err := NewAggregator().Assess(bills, calc(3000, 1500, 400), nil, now)
	if err != nil {
		t.Fatal(err)
	}
	m := got.Milestone
	if m.BillsCurrent != 1 || m.TotalBills != 3 || m.Category != model.MilestoneSurvivalSecured {
		t.Fatalf("Milestone = %+v, want 1/3 SURVIVAL_SECURED", m)
	}
	// 800 outstanding at 100 a week.
	if m.TotalOutstanding != 800 || m.WeeksToStability != 8 {
		t.Errorf("outstanding %.2f weeks %d, want 800 and 8", m.TotalOutstanding, m.WeeksToStability)
	}

	got, err = NewAggregator().Assess(bills, calc(3000, 1500, 40), nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Milestone.WeeksToStability != -1 || got.Milestone.Estimate != "unclear" {
		t.Errorf("80 weeks should be unclear, got %+v", got.Milestone)
	}
}

func TestAssess_DeadlinesSortedAndTruncated(t *testing.T) {
	var bills []model.Bill
	for i, days := range []int{9, -2, 30, 4, 0, 15, 2} {
		bills = append(bills, bill(string(rune('a'+i)), "Bill", 100, model.CategoryMedium, days))
	}
	bills = append(bills, bill("paid", "Paid", 0, model.CategoryMedium, -10))

	got, err := NewAggregator().Assess(bills, calc(3000, 1500, 400), nil, now)
	if err != nil {
		t.Fatal(err)
	}
	var days []int
	for _, d := range got.UpcomingDeadlines {
		days = append(days, d.DaysUntilDue)
	}
	if want := []int{-2, 0, 2, 4, 9}; !reflect.DeepEqual(days, want) {
		t.Errorf("deadline days = %v, want %v", days, want)
	}
}

func TestAssess_RiskAlerts(t *testing.T) {
	water := bill("water", "Water", 140, model.CategoryHigh, 6)
	water.ShutoffRisk = true
	car := bill("car", "Car", 400, model.CategoryHigh, 6)
	car.RepossessionRisk = true

	got, err := NewAggregator().Assess([]model.Bill{water, car}, calc(3000, 1500, 400), nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Alerts) != 2 || got.Alerts[0].Kind != model.AlertShutoff || got.Alerts[1].Kind != model.AlertRepossession {
		t.Errorf("Alerts = %+v, want shutoff then repossession", got.Alerts)
	}
}

func TestAssess_Deterministic(t *testing.T) {
	bills := []model.Bill{
		bill("a", "Electric", 120, model.CategoryHigh, 3),
		bill("b", "Rent", 900, model.CategoryCritical, 10),
		bill("c", "Card", 60, model.CategoryLow, -1),
	}
	verdict := &model.TriageVerdict{PrimaryNeeds: []string{"housing"}}
	first, err := NewAggregator().Assess(bills, calc(2600, 1900, 500), verdict, now)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := NewAggregator().Assess(bills, calc(2600, 1900, 500), verdict, now)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%+v\n%+v", i, first, again)
		}
	}
}
