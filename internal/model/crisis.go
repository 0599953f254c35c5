package model

// DashboardStatus is the household's overall situation.
type DashboardStatus string

// Dashboard statuses, most severe first.
const (
	StatusCrisis      DashboardStatus = "CRISIS"
	StatusUrgent      DashboardStatus = "URGENT"
	StatusCaution     DashboardStatus = "CAUTION"
	StatusStable      DashboardStatus = "STABLE"
	StatusComfortable DashboardStatus = "COMFORTABLE"
)

// Severity orders statuses; CRISIS is 4, COMFORTABLE 0, unknown -1.
func (s DashboardStatus) Severity() int {
	switch s {
	case StatusCrisis:
		return 4
	case StatusUrgent:
		return 3
	case StatusCaution:
		return 2
	case StatusStable:
		return 1
	case StatusComfortable:
		return 0
	}
	return -1
}

// TriageSeverity is the narrower grading used to pick assistance resources.
type TriageSeverity string

// Triage severities.
const (
	TriageModerate TriageSeverity = "MODERATE"
	TriageSevere   TriageSeverity = "SEVERE"
	TriageCritical TriageSeverity = "CRITICAL"
)

// TriageVerdict is a crisis-triage opinion supplied alongside the bills.
// ImmediateAction, when set, reads like "Call 211 for $300 - rent goes unpaid".
type TriageVerdict struct {
	Severity        TriageSeverity `json:"severity"`
	IsCrisis        bool           `json:"is_crisis"`
	PrimaryNeeds    []string       `json:"primary_needs,omitempty"`
	ImmediateAction string         `json:"immediate_action,omitempty"`
}

// ActionSource records where the next action came from.
type ActionSource string

// Action sources.
const (
	ActionFromTriage  ActionSource = "triage"
	ActionFromBill    ActionSource = "bill"
	ActionFromDefault ActionSource = "default"
)

// NextAction is the one concrete thing to do next.
type NextAction struct {
	Action       string       `json:"action"`
	Amount       float64      `json:"amount"`
	Consequence  string       `json:"consequence"`
	DeadlineDays int          `json:"deadline_days"`
	BillID       string       `json:"bill_id,omitempty"`
	Source       ActionSource `json:"source"`
}

// MilestoneCategory summarises repayment progress.
type MilestoneCategory string

// Milestone categories.
const (
	MilestoneAllCurrent      MilestoneCategory = "ALL_CURRENT"
	MilestoneSurvivalSecured MilestoneCategory = "SURVIVAL_SECURED"
	MilestoneInProgress      MilestoneCategory = "IN_PROGRESS"
)

// Milestone reports how far the household is from having every bill current.
type Milestone struct {
	BillsCurrent     int               `json:"bills_current"`
	TotalBills       int               `json:"total_bills"`
	Category         MilestoneCategory `json:"category"`
	Description      string            `json:"description"`
	TotalOutstanding float64           `json:"total_outstanding"`
	WeeksToStability int               `json:"weeks_to_stability"` // -1 when unclear
	Estimate         string            `json:"estimate"`
}

// Deadline is an upcoming due date and what happens if it is missed.
type Deadline struct {
	BillID       string  `json:"bill_id"`
	BillName     string  `json:"bill_name"`
	DaysUntilDue int     `json:"days_until_due"`
	Amount       float64 `json:"amount"`
	Consequence  string  `json:"consequence"`
}

// AlertKind classifies an alert.
type AlertKind string

// Alert kinds.
const (
	AlertBudgetCrisis AlertKind = "BUDGET_CRISIS"
	AlertShutoff      AlertKind = "SHUTOFF_RISK"
	AlertRepossession AlertKind = "REPOSSESSION_RISK"
)

// Alert is a standalone warning shown with the assessment.
type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
	Amount  float64   `json:"amount,omitempty"`
}

// CrisisAssessment is the dashboard-level recommendation.
type CrisisAssessment struct {
	Status            DashboardStatus `json:"status"`
	StatusReason      string          `json:"status_reason"`
	PrimaryNeeds      []string        `json:"primary_needs"`
	Alerts            []Alert         `json:"alerts"`
	NextAction        NextAction      `json:"next_action"`
	Milestone         Milestone       `json:"milestone"`
	UpcomingDeadlines []Deadline      `json:"upcoming_deadlines"`
}
