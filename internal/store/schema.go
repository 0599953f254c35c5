package store

import "time"

// timeLayout is fixed-width so stored timestamps sort correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS assessments (
    assessment_id        TEXT PRIMARY KEY,
    household            TEXT NOT NULL,
    snapshot_path        TEXT,
    computed_at          TEXT NOT NULL,
    recorded_at          TEXT NOT NULL,
    status               TEXT NOT NULL,
    triage_severity      TEXT,
    monthly_income       REAL,
    monthly_expenses     REAL,
    emergency_cushion    REAL,
    available_for_debt   REAL,
    total_outstanding    REAL,
    bills_current        INTEGER,
    total_bills          INTEGER,
    plan_viable          INTEGER NOT NULL DEFAULT 0,
    next_action          TEXT,
    next_amount          REAL
);

CREATE TABLE IF NOT EXISTS assessment_alerts (
    assessment_id        TEXT NOT NULL REFERENCES assessments(assessment_id) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    kind                 TEXT NOT NULL,
    message              TEXT NOT NULL,
    amount               REAL,
    PRIMARY KEY (assessment_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_assessments_computed ON assessments(computed_at);
CREATE INDEX IF NOT EXISTS idx_assessments_household ON assessments(household);
`
