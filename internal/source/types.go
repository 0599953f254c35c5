package source

import "github.com/theirongolddev/lifeline/internal/model"

// RawSnapshot is a household snapshot file as written by hand. Optional
// values are pointers so defaults are applied in one place.
type RawSnapshot struct {
	Household  string                `toml:"household" json:"household" yaml:"household"`
	Dependents int                   `toml:"dependents" json:"dependents" yaml:"dependents"`
	Income     []RawIncome           `toml:"income" json:"income" yaml:"income"`
	Expenses   map[string]RawExpense `toml:"expenses" json:"expenses" yaml:"expenses"`
	Bills      []RawBill             `toml:"bills" json:"bills" yaml:"bills"`
	Proposal   *RawProposal          `toml:"proposal" json:"proposal,omitempty" yaml:"proposal,omitempty"`
	Triage     *RawTriage            `toml:"triage" json:"triage,omitempty" yaml:"triage,omitempty"`
}

// RawIncome is one income source entry.
type RawIncome struct {
	ID        string   `toml:"id" json:"id" yaml:"id"`
	Name      string   `toml:"name" json:"name" yaml:"name"`
	Amount    float64  `toml:"amount" json:"amount" yaml:"amount"`
	Frequency string   `toml:"frequency" json:"frequency" yaml:"frequency"`
	Stability *float64 `toml:"stability" json:"stability,omitempty" yaml:"stability,omitempty"`
	Active    *bool    `toml:"active" json:"active,omitempty" yaml:"active,omitempty"`
}

// RawExpense is one essential expense category, keyed by name in the file.
type RawExpense struct {
	Minimum     float64       `toml:"minimum" json:"minimum" yaml:"minimum"`
	Actual      *float64      `toml:"actual" json:"actual,omitempty" yaml:"actual,omitempty"`
	Frequency   string        `toml:"frequency" json:"frequency" yaml:"frequency"`
	Flexibility string        `toml:"flexibility" json:"flexibility" yaml:"flexibility"`
	Seasonal    []RawSeasonal `toml:"seasonal" json:"seasonal,omitempty" yaml:"seasonal,omitempty"`
}

// RawSeasonal scales an expense in the listed months (1-12).
type RawSeasonal struct {
	Months []int   `toml:"months" json:"months" yaml:"months"`
	Factor float64 `toml:"factor" json:"factor" yaml:"factor"`
}

// RawBill is one bill entry. DueDate is YYYY-MM-DD or RFC 3339.
type RawBill struct {
	ID               string   `toml:"id" json:"id" yaml:"id"`
	Name             string   `toml:"name" json:"name" yaml:"name"`
	Balance          float64  `toml:"balance" json:"balance" yaml:"balance"`
	MinimumPayment   *float64 `toml:"minimum_payment" json:"minimum_payment,omitempty" yaml:"minimum_payment,omitempty"`
	DueDate          string   `toml:"due_date" json:"due_date" yaml:"due_date"`
	Category         string   `toml:"category" json:"category" yaml:"category"`
	Type             string   `toml:"type" json:"type" yaml:"type"`
	Essential        bool     `toml:"essential" json:"essential" yaml:"essential"`
	Active           *bool    `toml:"active" json:"active,omitempty" yaml:"active,omitempty"`
	ShutoffRisk      bool     `toml:"shutoff_risk" json:"shutoff_risk" yaml:"shutoff_risk"`
	RepossessionRisk bool     `toml:"repossession_risk" json:"repossession_risk" yaml:"repossession_risk"`
	LateFeeAccruing  bool     `toml:"late_fee_accruing" json:"late_fee_accruing" yaml:"late_fee_accruing"`
	LateFee          float64  `toml:"late_fee" json:"late_fee" yaml:"late_fee"`
	InterestRate     float64  `toml:"interest_rate" json:"interest_rate" yaml:"interest_rate"`
}

// RawProposal is a payment the household is considering.
type RawProposal struct {
	Amount    float64 `toml:"amount" json:"amount" yaml:"amount"`
	Frequency string  `toml:"frequency" json:"frequency" yaml:"frequency"`
}

// RawTriage is a verdict from an outside crisis-triage service.
type RawTriage struct {
	Severity        string   `toml:"severity" json:"severity" yaml:"severity"`
	IsCrisis        bool     `toml:"is_crisis" json:"is_crisis" yaml:"is_crisis"`
	PrimaryNeeds    []string `toml:"primary_needs" json:"primary_needs" yaml:"primary_needs"`
	ImmediateAction string   `toml:"immediate_action" json:"immediate_action" yaml:"immediate_action"`
}

// Snapshot is a validated household snapshot ready for the engine.
type Snapshot struct {
	Path      string
	Household string
	Income    []model.IncomeSource
	Expenses  model.EssentialExpenses
	Bills     []model.Bill
	Proposal  *model.PaymentProposal
	Triage    *model.TriageVerdict
}

// DiscoveredFile is a snapshot file found by ScanDir.
type DiscoveredFile struct {
	Path      string
	Household string // file name without extension
	Format    Format
}
