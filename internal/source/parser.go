// Package source discovers and parses household snapshot files.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/lifeline/internal/model"
)

// Format is a snapshot file encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported snapshot extension %q", filepath.Ext(path))
}

// ParseFile reads and validates a snapshot. Date-only due dates are read as
// midnight in loc; a nil loc means time.Local.
func ParseFile(path string, loc *time.Location) (Snapshot, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Snapshot{}, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-supplied on purpose
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	snap, err := Parse(data, format, loc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	snap.Path = path
	if snap.Household == "" {
		snap.Household = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return snap, nil
}

// Parse decodes a snapshot in the given format and converts it to model records.
func Parse(data []byte, format Format, loc *time.Location) (Snapshot, error) {
	var raw RawSnapshot
	if err := Decode(data, format, &raw); err != nil {
		return Snapshot{}, err
	}
	return raw.Snapshot(loc)
}

// Decode unmarshals data into v.
func Decode(data []byte, format Format, v any) error {
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), v)
	case FormatJSON:
		err = json.Unmarshal(data, v)
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unknown snapshot format %q", format)
	}
	if err != nil {
		return fmt.Errorf("decoding %s snapshot: %w", format, err)
	}
	return nil
}

// Snapshot applies defaults and validates every record.
func (r RawSnapshot) Snapshot(loc *time.Location) (Snapshot, error) {
	if loc == nil {
		loc = time.Local
	}
	snap := Snapshot{
		Household: r.Household,
		Expenses: model.EssentialExpenses{
			Categories: make(map[string]model.ExpenseCategory, len(r.Expenses)),
			Dependents: r.Dependents,
		},
	}

	for i, ri := range r.Income {
		src, err := ri.income(i)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Income = append(snap.Income, src)
	}

	keys := make([]string, 0, len(r.Expenses))
	for key := range r.Expenses {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cat, err := r.Expenses[key].category(key)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Expenses.Categories[key] = cat
	}
	if err := snap.Expenses.Validate(); err != nil {
		return Snapshot{}, err
	}

	for i, rb := range r.Bills {
		b, err := rb.bill(i, loc)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Bills = append(snap.Bills, b)
	}

	if r.Proposal != nil {
		freq, err := parseFrequency(r.Proposal.Frequency)
		if err != nil {
			return Snapshot{}, fmt.Errorf("proposal: %w", err)
		}
		if !model.ValidAmount(r.Proposal.Amount) {
			return Snapshot{}, fmt.Errorf("%w: proposal amount %v is invalid", model.ErrInvalidInput, r.Proposal.Amount)
		}
		snap.Proposal = &model.PaymentProposal{Amount: r.Proposal.Amount, Frequency: freq}
	}

	if r.Triage != nil {
		v, err := r.Triage.verdict()
		if err != nil {
			return Snapshot{}, err
		}
		snap.Triage = &v
	}
	return snap, nil
}

func (ri RawIncome) income(i int) (model.IncomeSource, error) {
	freq, err := parseFrequency(ri.Frequency)
	if err != nil {
		return model.IncomeSource{}, fmt.Errorf("income %d: %w", i, err)
	}
	id := ri.ID
	if id == "" {
		id = fmt.Sprintf("income-%d", i+1)
	}
	src := model.NewIncomeSource(id, ri.Name, ri.Amount, freq)
	if ri.Stability != nil {
		src.Stability = *ri.Stability
	}
	if ri.Active != nil {
		src.IsActive = *ri.Active
	}
	if err := src.Validate(); err != nil {
		return model.IncomeSource{}, err
	}
	return src, nil
}

func (re RawExpense) category(key string) (model.ExpenseCategory, error) {
	freq, err := parseFrequency(re.Frequency)
	if err != nil {
		return model.ExpenseCategory{}, fmt.Errorf("expense %q: %w", key, err)
	}
	flex, err := model.ParseFlexibility(re.Flexibility)
	if err != nil {
		return model.ExpenseCategory{}, fmt.Errorf("expense %q: %w", key, err)
	}
	cat := model.ExpenseCategory{
		Key:           key,
		MinimumAmount: re.Minimum,
		ActualAmount:  re.Actual,
		Frequency:     freq,
		Flexibility:   flex,
	}
	for _, rs := range re.Seasonal {
		sv := model.SeasonalVariation{AdjustmentFactor: rs.Factor}
		for _, m := range rs.Months {
			sv.AffectedMonths = append(sv.AffectedMonths, time.Month(m))
		}
		cat.SeasonalVariation = append(cat.SeasonalVariation, sv)
	}
	if err := cat.Validate(); err != nil {
		return model.ExpenseCategory{}, err
	}
	return cat, nil
}

func (rb RawBill) bill(i int, loc *time.Location) (model.Bill, error) {
	id := rb.ID
	if id == "" {
		id = fmt.Sprintf("bill-%d", i+1)
	}
	typ, err := model.ParseBillType(rb.Type)
	if err != nil {
		return model.Bill{}, fmt.Errorf("bill %q: %w", id, err)
	}
	cat := model.CategoryMedium
	if rb.Category != "" {
		if cat, err = model.ParseBillCategory(rb.Category); err != nil {
			return model.Bill{}, fmt.Errorf("bill %q: %w", id, err)
		}
	}
	due, err := ParseDate(rb.DueDate, loc)
	if err != nil {
		return model.Bill{}, fmt.Errorf("bill %q: %w", id, err)
	}

	b := model.NewBill(id, rb.Name, rb.Balance, typ, cat, due)
	if rb.MinimumPayment != nil {
		b.MinimumPayment = *rb.MinimumPayment
	}
	if rb.Active != nil {
		b.IsActive = *rb.Active
	}
	b.IsEssential = rb.Essential
	b.ShutoffRisk = rb.ShutoffRisk
	b.RepossessionRisk = rb.RepossessionRisk
	b.LateFeeAccruing = rb.LateFeeAccruing
	b.LateFee = rb.LateFee
	b.InterestRate = rb.InterestRate
	if err := b.Validate(); err != nil {
		return model.Bill{}, err
	}
	return b, nil
}

func (rt RawTriage) verdict() (model.TriageVerdict, error) {
	sev := model.TriageSeverity(strings.ToUpper(strings.TrimSpace(rt.Severity)))
	switch sev {
	case "":
		sev = model.TriageModerate
	case model.TriageModerate, model.TriageSevere, model.TriageCritical:
	default:
		return model.TriageVerdict{}, fmt.Errorf("%w: unknown triage severity %q", model.ErrInvalidInput, rt.Severity)
	}
	return model.TriageVerdict{
		Severity:        sev,
		IsCrisis:        rt.IsCrisis,
		PrimaryNeeds:    rt.PrimaryNeeds,
		ImmediateAction: rt.ImmediateAction,
	}, nil
}

// parseFrequency defaults an empty value to MONTHLY.
func parseFrequency(s string) (model.Frequency, error) {
	if strings.TrimSpace(s) == "" {
		return model.FrequencyMonthly, nil
	}
	return model.ParseFrequency(s)
}

// ParseDate accepts YYYY-MM-DD (midnight in loc) or RFC 3339.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing date", model.ErrInvalidInput)
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD or RFC 3339", model.ErrInvalidInput, s)
	}
	return t, nil
}
