package pipeline

import (
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/lifeline/internal/logging"
	"github.com/theirongolddev/lifeline/internal/model"
	"github.com/theirongolddev/lifeline/internal/source"
)

var testNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func newTestRunner() *Runner {
	return NewRunner(logging.Discard(), FixedClock{T: testNow})
}

func household(income, rent float64, bills ...model.Bill) source.Snapshot {
	return source.Snapshot{
		Household: "test",
		Income:    []model.IncomeSource{model.NewIncomeSource("job", "Job", income, model.FrequencyMonthly)},
		Expenses: model.EssentialExpenses{Categories: map[string]model.ExpenseCategory{
			"rent": {Key: "rent", MinimumAmount: rent, Frequency: model.FrequencyMonthly, Flexibility: model.FlexibilityFixed},
		}},
		Bills: bills,
	}
}

func TestEvaluate_ThinMarginHousehold(t *testing.T) {
	rep, err := newTestRunner().Evaluate(household(2800, 2100))
	if err != nil {
		t.Fatal(err)
	}
	// cushion max(100, 140) = 140 leaves 560, a fifth of income.
	if rep.Budget.AvailableForDebt != 560 {
		t.Errorf("AvailableForDebt = %.2f, want 560", rep.Budget.AvailableForDebt)
	}
	if rep.Assessment.Status != model.StatusCaution {
		t.Errorf("Status = %s, want CAUTION", rep.Assessment.Status)
	}
	if rep.Triage.Severity != model.TriageModerate || rep.ExternalTriage {
		t.Errorf("Triage = %+v external=%v, want computed MODERATE", rep.Triage, rep.ExternalTriage)
	}
}

func TestEvaluate_ShortfallRoutesTriageAction(t *testing.T) {
	rep, err := newTestRunner().Evaluate(household(1800, 2100))
	if err != nil {
		t.Fatal(err)
	}
	a := rep.Assessment
	if a.Status != model.StatusCrisis {
		t.Fatalf("Status = %s, want CRISIS", a.Status)
	}
	if a.NextAction.Source != model.ActionFromTriage || a.NextAction.Amount != 300 {
		t.Errorf("NextAction = %+v, want the $300 triage action", a.NextAction)
	}
	found := false
	for _, al := range a.Alerts {
		if al.Kind == model.AlertBudgetCrisis && al.Amount == 300 {
			found = true
		}
	}
	if !found {
		t.Errorf("Alerts = %+v, want a $300 BUDGET_CRISIS alert", a.Alerts)
	}
	if rep.Budget.AvailableForDebt != 0 {
		t.Errorf("AvailableForDebt = %.2f, want 0", rep.Budget.AvailableForDebt)
	}
}

func TestEvaluate_ExternalTriageWins(t *testing.T) {
	snap := household(4000, 1500)
	snap.Triage = &model.TriageVerdict{
		Severity:        model.TriageCritical,
		IsCrisis:        true,
		ImmediateAction: "Call the shelter hotline for $0 - family needs housing tonight",
	}
	rep, err := newTestRunner().Evaluate(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.ExternalTriage || rep.Assessment.Status != model.StatusCrisis {
		t.Errorf("external=%v status=%s, want true CRISIS", rep.ExternalTriage, rep.Assessment.Status)
	}
	if rep.Assessment.NextAction.Consequence != "family needs housing tonight" {
		t.Errorf("Consequence = %q", rep.Assessment.NextAction.Consequence)
	}
}

func TestEvaluate_ScoresPlansAndValidates(t *testing.T) {
	rent := model.NewBill("rent", "Rent", 1200, model.BillTypeHousing, model.CategoryCritical, testNow)
	rent.IsEssential = true
	snap := household(3000, 1200, rent)
	snap.Proposal = &model.PaymentProposal{Amount: 100, Frequency: model.FrequencyMonthly}

	rep, err := newTestRunner().Evaluate(snap)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Bills[0].PriorityScore != 99 || rep.Bills[0].RawPriorityScore != 117 {
		t.Errorf("rent scored %d (raw %d), want 99 (117)", rep.Bills[0].PriorityScore, rep.Bills[0].RawPriorityScore)
	}
	if len(rep.Plan.Recommendations) != 1 || rep.Plan.Recommendations[0].RecommendedPayment != 50 {
		t.Errorf("Plan = %+v, want the $50 minimum on rent", rep.Plan)
	}
	if rep.Validation == nil || !rep.Validation.IsAffordable {
		t.Errorf("Validation = %+v, want an affordable proposal", rep.Validation)
	}
	if rep.Assessment.Status != model.StatusUrgent {
		t.Errorf("Status = %s, want URGENT (critical bill due today)", rep.Assessment.Status)
	}
}

func TestEvaluate_InvalidInput(t *testing.T) {
	snap := household(3000, 1200)
	snap.Income = nil
	if _, err := newTestRunner().Evaluate(snap); err == nil {
		t.Fatal("expected an error for an empty income list")
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	bills := []model.Bill{
		model.NewBill("a", "City Electric", 130, model.BillTypeUtilities, model.CategoryHigh, testNow.AddDate(0, 0, 2)),
		model.NewBill("b", "Car loan", 5000, model.BillTypeTransportation, model.CategoryMedium, testNow.AddDate(0, 0, -3)),
	}
	r := newTestRunner()
	first, err := r.Evaluate(household(2600, 1800, bills...))
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Evaluate(household(2600, 1800, bills...))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different reports")
	}
}

func TestEvaluateAll(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"calm.toml":   "[[income]]\namount = 5000\n[expenses.rent]\nminimum = 1000\n",
		"broke.json":  `{"income": [{"amount": 1000}], "expenses": {"rent": {"minimum": 1500}}}`,
		"broken.yaml": "income: [",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	found, err := source.ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int64
	batch := newTestRunner().EvaluateAll(found, func(current, total int) { calls.Add(1) })
	if batch.TotalFiles != 3 || batch.Evaluated != 2 || batch.Failed != 1 {
		t.Fatalf("batch = %d/%d/%d, want 3 total 2 evaluated 1 failed", batch.TotalFiles, batch.Evaluated, batch.Failed)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("progress calls = %d, want 3", n)
	}
	reps := batch.Reports()
	if len(reps) != 2 {
		t.Fatalf("Reports = %d, want 2", len(reps))
	}
	if reps[0].Household != "broke" || reps[1].Household != "calm" {
		t.Errorf("Reports order = %s, %s; want broke, calm", reps[0].Household, reps[1].Household)
	}
}
