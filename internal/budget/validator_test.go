package budget

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
)

func testCalc(available, cushion float64) model.BudgetCalculation {
	return model.BudgetCalculation{
		TotalMonthlyIncome:   3000,
		TotalMonthlyExpenses: 3000 - available - cushion,
		EmergencyCushion:     cushion,
		ProtectedAmount:      3000 - available,
		AvailableForDebt:     available,
	}
}

func monthly(amount float64) model.PaymentProposal {
	return model.PaymentProposal{Amount: amount, Frequency: model.FrequencyMonthly}
}

func containsText(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestValidate_Ladder(t *testing.T) {
	calc := testCalc(500, 200)
	cases := []struct {
		payment    float64
		want       model.SafetyLevel
		affordable bool
		buffer     bool
	}{
		{600, model.SafetyCritical, false, false},
		{460, model.SafetyDangerous, true, false},
		{420, model.SafetyTight, true, false},
		{350, model.SafetyModerate, true, true},
		{100, model.SafetyComfortable, true, true},
	}
	for _, tc := range cases {
		res, err := NewValidator().Validate(monthly(tc.payment), calc)
		if err != nil {
			t.Fatalf("Validate(%.0f): %v", tc.payment, err)
		}
		if res.SafetyLevel != tc.want {
			t.Errorf("payment %.0f: SafetyLevel = %s, want %s", tc.payment, res.SafetyLevel, tc.want)
		}
		if res.IsAffordable != tc.affordable {
			t.Errorf("payment %.0f: IsAffordable = %v, want %v", tc.payment, res.IsAffordable, tc.affordable)
		}
		if res.HasEmergencyBuffer != tc.buffer {
			t.Errorf("payment %.0f: HasEmergencyBuffer = %v, want %v", tc.payment, res.HasEmergencyBuffer, tc.buffer)
		}
		approx(t, "MaxSafePayment", res.MaxSafePayment, 400)
		approx(t, "RemainingAfterPayment", res.RemainingAfterPayment, 500-tc.payment)
	}
}

func TestValidate_NegativeRemainingAlwaysCritical(t *testing.T) {
	for _, cushion := range []float64{0, 100, 500} {
		for _, over := range []float64{0.01, 1, 250} {
			res, err := NewValidator().Validate(monthly(300+over), testCalc(300, cushion))
			if err != nil {
				t.Fatal(err)
			}
			if res.SafetyLevel != model.SafetyCritical || res.IsAffordable {
				t.Fatalf("cushion %.0f over %.2f: level %s affordable %v, want CRITICAL and false",
					cushion, over, res.SafetyLevel, res.IsAffordable)
			}
		}
	}
}

func TestValidate_CriticalMessages(t *testing.T) {
	res, err := NewValidator().Validate(monthly(600), testCalc(500, 200))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "$100.00") || !strings.Contains(res.Warnings[0], "not possible") {
		t.Fatalf("Warnings = %q, want shortfall of $100.00 declared impossible", res.Warnings)
	}
	if !containsText(res.Suggestions, "$400.00") {
		t.Errorf("Suggestions = %q, want max safe payment $400.00", res.Suggestions)
	}
	if !containsText(res.Suggestions, "creditor") || !containsText(res.Suggestions, "211") {
		t.Errorf("Suggestions = %q, want creditor negotiation and local assistance", res.Suggestions)
	}
}

func TestValidate_DangerousSuggestsSeventyPercent(t *testing.T) {
	res, err := NewValidator().Validate(monthly(460), testCalc(500, 200))
	if err != nil {
		t.Fatal(err)
	}
	if !containsText(res.Warnings, "$350.00") || !containsText(res.Suggestions, "$350.00") {
		t.Fatalf("warnings %q suggestions %q, want 70%% of available ($350.00)", res.Warnings, res.Suggestions)
	}
	if !containsText(res.Suggestions, "buffer") {
		t.Errorf("Suggestions = %q, want buffer-first advice", res.Suggestions)
	}
}

func TestValidate_WeeklyProposal(t *testing.T) {
	res, err := NewValidator().Validate(model.PaymentProposal{Amount: 50, Frequency: model.FrequencyWeekly}, testCalc(500, 200))
	if err != nil {
		t.Fatal(err)
	}
	approx(t, "MonthlyPayment", res.MonthlyPayment, 50.0*52/12)
	if res.SafetyLevel != model.SafetyComfortable {
		t.Errorf("SafetyLevel = %s, want COMFORTABLE", res.SafetyLevel)
	}
}

func TestValidate_CriticalMonthsWarning(t *testing.T) {
	calc := testCalc(500, 200)
	calc.CriticalMonths = []time.Month{time.January, time.July}

	res, err := NewValidator().Validate(monthly(50), calc)
	if err != nil {
		t.Fatal(err)
	}
	if !containsText(res.Warnings, "January, July") {
		t.Fatalf("Warnings = %q, want critical months named", res.Warnings)
	}
}

func TestValidate_LowBudgetAlwaysReviewsExpenses(t *testing.T) {
	for _, payment := range []float64{0, 100, 500} {
		res, err := NewValidator().Validate(monthly(payment), testCalc(150, 100))
		if err != nil {
			t.Fatal(err)
		}
		if !containsText(res.Suggestions, "Review your expenses") {
			t.Errorf("payment %.0f: Suggestions = %q, want expense review", payment, res.Suggestions)
		}
	}

	res, _ := NewValidator().Validate(monthly(0), testCalc(500, 100))
	if containsText(res.Suggestions, "Review your expenses") {
		t.Errorf("Suggestions = %q, want no expense review with $500 available", res.Suggestions)
	}
}

func TestValidate_InvalidProposal(t *testing.T) {
	calc := testCalc(500, 200)
	if _, err := NewValidator().Validate(monthly(-1), calc); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("negative amount: err = %v, want ErrInvalidInput", err)
	}
	if _, err := NewValidator().Validate(model.PaymentProposal{Amount: 10, Frequency: "HOURLY"}, calc); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("bad frequency: err = %v, want ErrInvalidInput", err)
	}
	if _, err := NewValidator().Validate(monthly(math.NaN()), calc); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("NaN amount: err = %v, want ErrInvalidInput", err)
	}
	if _, err := NewValidator().Validate(monthly(math.Inf(1)), calc); !errors.Is(err, model.ErrInvalidInput) {
		t.Errorf("infinite amount: err = %v, want ErrInvalidInput", err)
	}
}
