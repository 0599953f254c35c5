package store

import (
	"cmp"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/lifeline/internal/model"
)

// SortField names a column history listings can be ordered by.
type SortField string

// Sort fields.
const (
	SortComputed    SortField = "computed"
	SortHousehold   SortField = "household"
	SortStatus      SortField = "status"
	SortAvailable   SortField = "available"
	SortOutstanding SortField = "outstanding"
)

// fieldKind decides how a field compares.
type fieldKind int

const (
	kindTime fieldKind = iota
	kindText
	kindSeverity
	kindMoney
)

var sortFields = map[SortField]fieldKind{
	SortComputed:    kindTime,
	SortHousehold:   kindText,
	SortStatus:      kindSeverity,
	SortAvailable:   kindMoney,
	SortOutstanding: kindMoney,
}

// comparators holds one comparison per field kind; each returns <0, 0 or >0.
var comparators = map[fieldKind]func(a, b Entry, f SortField) int{
	kindTime: func(a, b Entry, _ SortField) int {
		return a.ComputedAt.Compare(b.ComputedAt)
	},
	kindText: func(a, b Entry, _ SortField) int {
		return strings.Compare(strings.ToLower(a.Household), strings.ToLower(b.Household))
	},
	kindSeverity: func(a, b Entry, _ SortField) int {
		return cmp.Compare(a.Status.Severity(), b.Status.Severity())
	},
	kindMoney: func(a, b Entry, f SortField) int {
		if f == SortOutstanding {
			return cmp.Compare(a.Outstanding, b.Outstanding)
		}
		return cmp.Compare(a.Available, b.Available)
	},
}

// ParseSortField accepts any casing.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return SortComputed, nil
	}
	if _, ok := sortFields[f]; !ok {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

// ListOptions filters and orders a history listing.
type ListOptions struct {
	Household string // empty means all
	Since     time.Time
	Limit     int // <= 0 means no limit
	SortBy    SortField
	Ascending bool
}

// List returns stored assessments with their alerts. The default order is
// newest first.
func (h *History) List(opts ListOptions) ([]Entry, error) {
	query := `SELECT
		assessment_id, household, snapshot_path, computed_at, recorded_at, status,
		triage_severity, monthly_income, monthly_expenses, emergency_cushion,
		available_for_debt, total_outstanding, bills_current, total_bills,
		plan_viable, next_action, next_amount
		FROM assessments WHERE 1=1`
	var args []any
	if opts.Household != "" {
		query += " AND household = ?"
		args = append(args, opts.Household)
	}
	if !opts.Since.IsZero() {
		query += " AND computed_at >= ?"
		args = append(args, formatTime(opts.Since))
	}
	query += " ORDER BY computed_at DESC, rowid DESC"

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var path, severity, next sql.NullString
		var computed, recorded, status string
		var viable int

		err := rows.Scan(
			&e.ID, &e.Household, &path, &computed, &recorded, &status,
			&severity, &e.Income, &e.Expenses, &e.Cushion,
			&e.Available, &e.Outstanding, &e.BillsCurrent, &e.TotalBills,
			&viable, &next, &e.NextAmount,
		)
		if err != nil {
			return nil, err
		}
		e.SnapshotPath = path.String
		e.TriageSeverity = model.TriageSeverity(severity.String)
		e.NextAction = next.String
		e.Status = model.DashboardStatus(status)
		e.PlanViable = viable != 0
		e.ComputedAt, _ = time.Parse(time.RFC3339Nano, computed)
		e.RecordedAt, _ = time.Parse(time.RFC3339Nano, recorded)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := h.loadAlerts(entries); err != nil {
		return nil, err
	}

	field := opts.SortBy
	if field == "" {
		field = SortComputed
	}
	kind, ok := sortFields[field]
	if !ok {
		return nil, fmt.Errorf("unknown sort field %q", field)
	}
	compare := comparators[kind]
	sort.SliceStable(entries, func(i, j int) bool {
		c := compare(entries[i], entries[j], field)
		if opts.Ascending {
			return c < 0
		}
		return c > 0
	})

	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries, nil
}

func (h *History) loadAlerts(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		idx[e.ID] = i
	}

	rows, err := h.db.Query(`SELECT assessment_id, kind, message, amount
		FROM assessment_alerts ORDER BY assessment_id, seq`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id string
		var a model.Alert
		var kind string
		if err := rows.Scan(&id, &kind, &a.Message, &a.Amount); err != nil {
			return err
		}
		a.Kind = model.AlertKind(kind)
		if i, ok := idx[id]; ok {
			entries[i].Alerts = append(entries[i].Alerts, a)
		}
	}
	return rows.Err()
}
