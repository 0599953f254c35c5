package model

// PaymentRecommendation is the allocation for one bill.
type PaymentRecommendation struct {
	BillID             string        `json:"bill_id"`
	BillName           string        `json:"bill_name"`
	PriorityScore      int           `json:"priority_score"`
	PriorityLevel      PriorityLevel `json:"priority_level"`
	MinimumPayment     float64       `json:"minimum_payment"`
	RecommendedPayment float64       `json:"recommended_payment"`
	IsPartial          bool          `json:"is_partial"`
	SafetyLevel        SafetyLevel   `json:"safety_level"`
	Reason             string        `json:"reason"`
}

// UnaffordableBill is a bill the budget could not fund.
type UnaffordableBill struct {
	BillID         string  `json:"bill_id"`
	BillName       string  `json:"bill_name"`
	PriorityScore  int     `json:"priority_score"`
	MinimumPayment float64 `json:"minimum_payment"`
	IsEssential    bool    `json:"is_essential"`
	Suggestion     string  `json:"suggestion"`
}

// IntegratedPaymentPlan spreads the available budget across prioritized bills.
type IntegratedPaymentPlan struct {
	TotalMonthlyPayment float64                 `json:"total_monthly_payment"`
	AvailableBudget     float64                 `json:"available_budget"`
	SafetyLevel         SafetyLevel             `json:"safety_level"`
	Recommendations     []PaymentRecommendation `json:"recommendations"`
	UnaffordableBills   []UnaffordableBill      `json:"unaffordable_bills"`
	EmergencyActions    []string                `json:"emergency_actions"`
	Suggestions         []string                `json:"suggestions"`
	IsViable            bool                    `json:"is_viable"`
}
