// Package store provides a SQLite-backed history of household assessments.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/lifeline/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Entry is one recorded assessment. Bills, income and expenses themselves
// are not stored.
type Entry struct {
	ID             string
	Household      string
	SnapshotPath   string
	ComputedAt     time.Time
	RecordedAt     time.Time
	Status         model.DashboardStatus
	TriageSeverity model.TriageSeverity
	Income         float64
	Expenses       float64
	Cushion        float64
	Available      float64
	Outstanding    float64
	BillsCurrent   int
	TotalBills     int
	PlanViable     bool
	NextAction     string
	NextAmount     float64
	Alerts         []model.Alert
}

// NewEntry summarises one evaluation for storage.
func NewEntry(household, path string, computedAt time.Time, calc model.BudgetCalculation,
	plan model.IntegratedPaymentPlan, verdict model.TriageVerdict, a model.CrisisAssessment) Entry {
	return Entry{
		Household:      household,
		SnapshotPath:   path,
		ComputedAt:     computedAt,
		Status:         a.Status,
		TriageSeverity: verdict.Severity,
		Income:         calc.TotalMonthlyIncome,
		Expenses:       calc.TotalMonthlyExpenses,
		Cushion:        calc.EmergencyCushion,
		Available:      calc.AvailableForDebt,
		Outstanding:    a.Milestone.TotalOutstanding,
		BillsCurrent:   a.Milestone.BillsCurrent,
		TotalBills:     a.Milestone.TotalBills,
		PlanViable:     plan.IsViable,
		NextAction:     a.NextAction.Action,
		NextAmount:     a.NextAction.Amount,
		Alerts:         a.Alerts,
	}
}

// History provides SQLite-backed assessment history.
type History struct {
	db  *sql.DB
	log *logrus.Logger
	now func() time.Time
}

// Open opens or creates the history database at the given path.
func Open(dbPath string, log *logrus.Logger) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db, log: log, now: time.Now}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record stores e under a new UUID and returns it.
func (h *History) Record(e Entry) (string, error) {
	tx, err := h.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	viable := 0
	if e.PlanViable {
		viable = 1
	}

	_, err = tx.Exec(`INSERT INTO assessments
		(assessment_id, household, snapshot_path, computed_at, recorded_at, status,
		 triage_severity, monthly_income, monthly_expenses, emergency_cushion,
		 available_for_debt, total_outstanding, bills_current, total_bills,
		 plan_viable, next_action, next_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, e.Household, e.SnapshotPath, formatTime(e.ComputedAt),
		formatTime(h.now()), string(e.Status),
		string(e.TriageSeverity), e.Income, e.Expenses, e.Cushion,
		e.Available, e.Outstanding, e.BillsCurrent, e.TotalBills,
		viable, e.NextAction, e.NextAmount,
	)
	if err != nil {
		return "", fmt.Errorf("inserting assessment: %w", err)
	}

	for i, a := range e.Alerts {
		_, err = tx.Exec(`INSERT INTO assessment_alerts
			(assessment_id, seq, kind, message, amount)
			VALUES (?, ?, ?, ?, ?)`,
			id, i, string(a.Kind), a.Message, a.Amount,
		)
		if err != nil {
			return "", fmt.Errorf("inserting alert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	h.log.WithFields(logrus.Fields{"id": id, "household": e.Household, "status": e.Status}).Debug("recorded assessment")
	return id, nil
}

// Prune keeps the newest keep assessments and deletes the rest. keep <= 0
// keeps everything.
func (h *History) Prune(keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := h.db.Exec(`DELETE FROM assessments WHERE assessment_id NOT IN (
		SELECT assessment_id FROM assessments
		ORDER BY computed_at DESC, rowid DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		h.log.WithField("deleted", n).Debug("pruned history")
	}
	return n, nil
}

// Count returns the number of stored assessments.
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM assessments").Scan(&count)
	return count, err
}
