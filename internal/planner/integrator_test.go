package planner

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
	"github.com/theirongolddev/lifeline/internal/priority"
)

var now = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func calcWith(available, cushion float64) model.BudgetCalculation {
	return model.BudgetCalculation{AvailableForDebt: available, EmergencyCushion: cushion}
}

func scored(t *testing.T, bills ...model.Bill) []model.Bill {
	t.Helper()
	out, err := priority.NewScorer().ScoreAll(bills, now)
	if err != nil {
		t.Fatalf("ScoreAll: %v", err)
	}
	return out
}

func essentialBill(id string, balance float64, typ model.BillType) model.Bill {
	b := model.NewBill(id, id, balance, typ, model.CategoryCritical, now.AddDate(0, 0, 5))
	b.IsEssential = true
	return b
}

// Two essential critical bills needing $50 each against $40 of budget.
func TestPlan_NothingFitsIsNotViable(t *testing.T) {
	bills := scored(t,
		essentialBill("rent", 900, model.BillTypeHousing),
		essentialBill("power", 200, model.BillTypeUtilities),
	)

	plan, err := NewIntegrator().Plan(bills, calcWith(40, 150))
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.UnaffordableBills) != 2 {
		t.Fatalf("unaffordable = %d, want 2", len(plan.UnaffordableBills))
	}
	if plan.IsViable {
		t.Error("IsViable = true, want false")
	}
	if plan.SafetyLevel != model.SafetyCritical {
		t.Errorf("SafetyLevel = %s, want CRITICAL", plan.SafetyLevel)
	}
	if len(plan.EmergencyActions) != 2 {
		t.Errorf("EmergencyActions = %d, want 2", len(plan.EmergencyActions))
	}
	if plan.TotalMonthlyPayment != 0 {
		t.Errorf("TotalMonthlyPayment = %.2f, want 0", plan.TotalMonthlyPayment)
	}
}

func TestPlan_EssentialsFirstThenMiddle(t *testing.T) {
	phone := model.NewBill("phone", "Phone", 80, model.BillTypePhone, model.CategoryMedium, now.AddDate(0, 0, 20))
	rent := essentialBill("rent", 900, model.BillTypeHousing)
	power := essentialBill("power", 120, model.BillTypeUtilities)
	bills := scored(t, phone, power, rent)

	plan, err := NewIntegrator().Plan(bills, calcWith(500, 200))
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]string, len(plan.Recommendations))
	for i, r := range plan.Recommendations {
		ids[i] = r.BillID
	}
	if got := strings.Join(ids, ","); got != "power,rent,phone" {
		t.Fatalf("order = %s, want power,rent,phone (ties keep list order)", got)
	}
	if plan.TotalMonthlyPayment != 150 {
		t.Errorf("TotalMonthlyPayment = %.2f, want 150", plan.TotalMonthlyPayment)
	}
	if !plan.IsViable || plan.SafetyLevel != model.SafetyComfortable {
		t.Errorf("viable=%v level=%s, want true COMFORTABLE", plan.IsViable, plan.SafetyLevel)
	}
}

func TestPlan_PartialPaymentTakesTheRest(t *testing.T) {
	card := model.NewBill("card", "Card", 2000, model.BillTypeDebt, model.CategoryHigh, now.AddDate(0, 0, 20))
	card.MinimumPayment = 75
	bills := scored(t, card)

	plan, err := NewIntegrator().Plan(bills, calcWith(40, 200))
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Recommendations) != 1 {
		t.Fatalf("recommendations = %d, want 1", len(plan.Recommendations))
	}
	r := plan.Recommendations[0]
	if !r.IsPartial || r.RecommendedPayment != 40 || r.SafetyLevel != model.SafetyTight {
		t.Fatalf("got partial=%v amount=%.2f level=%s, want true 40 TIGHT", r.IsPartial, r.RecommendedPayment, r.SafetyLevel)
	}
	if plan.SafetyLevel != model.SafetyDangerous {
		t.Errorf("plan SafetyLevel = %s, want DANGEROUS (nothing left over)", plan.SafetyLevel)
	}
}

func TestPlan_SmallBalanceDeferredNotPartial(t *testing.T) {
	internet := model.NewBill("net", "Internet", 90, model.BillTypeInternet, model.CategoryMedium, now.AddDate(0, 0, 40))
	internet.MinimumPayment = 60
	bills := scored(t, internet)

	plan, err := NewIntegrator().Plan(bills, calcWith(30, 200))
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.UnaffordableBills) != 1 || plan.UnaffordableBills[0].IsEssential {
		t.Fatalf("unaffordable = %+v, want the internet bill", plan.UnaffordableBills)
	}
	if !plan.IsViable {
		t.Error("deferring a non-essential bill should keep the plan viable")
	}
	if plan.SafetyLevel != model.SafetyCritical {
		t.Errorf("SafetyLevel = %s, want CRITICAL", plan.SafetyLevel)
	}
}

func TestPlan_LowPriorityBillsIgnored(t *testing.T) {
	fun := model.NewBill("stream", "Streaming", 15, model.BillTypeEntertainment, model.CategoryLow, now.AddDate(0, 0, 90))
	gone := essentialBill("old", 500, model.BillTypeHousing)
	gone.IsActive = false
	bills := scored(t, fun, gone)

	plan, err := NewIntegrator().Plan(bills, calcWith(1000, 200))
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Recommendations) != 0 || len(plan.UnaffordableBills) != 0 {
		t.Fatalf("plan touched ignored bills: %+v", plan)
	}
}

func TestPlan_PaidBillsSkipped(t *testing.T) {
	paid := essentialBill("rent", 0, model.BillTypeHousing)
	phone := model.NewBill("phone", "phone", 0, model.BillTypePhone, model.CategoryHigh, now.AddDate(0, 0, 2))
	bills := scored(t, paid, phone, essentialBill("power", 200, model.BillTypeUtilities))

	plan, err := NewIntegrator().Plan(bills, calcWith(500, 150))
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Recommendations) != 1 || plan.Recommendations[0].BillID != "power" {
		t.Fatalf("recommendations = %+v, want only power", plan.Recommendations)
	}
	for _, r := range plan.Recommendations {
		if r.RecommendedPayment == 0 {
			t.Errorf("%s recommended a $0 payment", r.BillID)
		}
	}
	if len(plan.UnaffordableBills) != 0 {
		t.Errorf("unaffordable = %d, want 0", len(plan.UnaffordableBills))
	}
}

func TestPlan_CounselingSuggestion(t *testing.T) {
	a := essentialBill("a", 300, model.BillTypeHousing)
	b := essentialBill("b", 300, model.BillTypeUtilities)
	bills := scored(t, a, b)

	plan, err := NewIntegrator().Plan(bills, calcWith(45, 100))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, s := range plan.Suggestions {
		if strings.Contains(s, "counseling") {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggestions = %v, want a counseling suggestion", plan.Suggestions)
	}
}

func TestPlan_NeverExceedsBudget(t *testing.T) {
	var bills []model.Bill
	types := []model.BillType{model.BillTypeHousing, model.BillTypeDebt, model.BillTypePhone, model.BillTypeUtilities, model.BillTypeTransportation}
	for i := 0; i < 25; i++ {
		b := model.NewBill(string(rune('a'+i)), "bill", float64(40+i*37), types[i%len(types)], model.CategoryHigh, now.AddDate(0, 0, i-3))
		b.IsEssential = i%2 == 0
		bills = append(bills, b)
	}
	bills = scored(t, bills...)

	for _, available := range []float64{0, 10, 24.99, 25, 99.5, 180, 333.33, 1000} {
		plan, err := NewIntegrator().Plan(bills, calcWith(available, 200))
		if err != nil {
			t.Fatal(err)
		}
		var sum float64
		for _, r := range plan.Recommendations {
			sum += r.RecommendedPayment
		}
		if sum > available+1e-9 {
			t.Errorf("available %.2f: allocated %.2f", available, sum)
		}
		if math.Abs(sum-plan.TotalMonthlyPayment) > 1e-9 {
			t.Errorf("TotalMonthlyPayment %.2f != sum %.2f", plan.TotalMonthlyPayment, sum)
		}
	}
}

func TestPlan_DoesNotReorderInput(t *testing.T) {
	bills := scored(t,
		model.NewBill("low", "Low", 100, model.BillTypePhone, model.CategoryLow, now.AddDate(0, 0, 50)),
		essentialBill("rent", 900, model.BillTypeHousing),
	)
	if _, err := NewIntegrator().Plan(bills, calcWith(500, 100)); err != nil {
		t.Fatal(err)
	}
	if bills[0].ID != "low" {
		t.Error("Plan reordered its input")
	}
}
