// Package pipeline runs a household snapshot through every engine and
// collects the results into a Report.
package pipeline

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/lifeline/internal/budget"
	"github.com/theirongolddev/lifeline/internal/crisis"
	"github.com/theirongolddev/lifeline/internal/model"
	"github.com/theirongolddev/lifeline/internal/planner"
	"github.com/theirongolddev/lifeline/internal/priority"
	"github.com/theirongolddev/lifeline/internal/source"
	"github.com/theirongolddev/lifeline/internal/triage"
)

// Report is everything computed for one snapshot at one instant.
type Report struct {
	Household      string                         `json:"household"`
	Path           string                         `json:"path,omitempty"`
	Now            time.Time                      `json:"now"`
	Budget         model.BudgetCalculation        `json:"budget"`
	Bills          []model.Bill                   `json:"bills"`
	Plan           model.IntegratedPaymentPlan    `json:"plan"`
	Validation     *model.PaymentValidationResult `json:"validation,omitempty"`
	Triage         model.TriageVerdict            `json:"triage"`
	ExternalTriage bool                           `json:"external_triage"`
	Assessment     model.CrisisAssessment         `json:"assessment"`
}

// Runner wires the engines together. It is safe for concurrent use.
type Runner struct {
	log        *logrus.Logger
	clock      Clock
	calculator *budget.Calculator
	validator  *budget.Validator
	scorer     *priority.Scorer
	integrator *planner.Integrator
	assessor   *triage.Assessor
	aggregator *crisis.Aggregator
}

// NewRunner returns a Runner reading "now" from clock.
func NewRunner(log *logrus.Logger, clock Clock) *Runner {
	return &Runner{
		log:        log,
		clock:      clock,
		calculator: budget.NewCalculator(),
		validator:  budget.NewValidator(),
		scorer:     priority.NewScorer(),
		integrator: planner.NewIntegrator(),
		assessor:   triage.NewAssessor(),
		aggregator: crisis.NewAggregator(),
	}
}

// EvaluateFile parses a snapshot file and evaluates it.
func (r *Runner) EvaluateFile(path string) (*Report, error) {
	now := r.clock.Now()
	snap, err := source.ParseFile(path, now.Location())
	if err != nil {
		return nil, err
	}
	return r.evaluate(snap, now)
}

// Evaluate runs snap through every engine.
func (r *Runner) Evaluate(snap source.Snapshot) (*Report, error) {
	return r.evaluate(snap, r.clock.Now())
}

func (r *Runner) evaluate(snap source.Snapshot, now time.Time) (*Report, error) {
	entry := r.log.WithField("household", snap.Household)

	calc, err := r.calculator.Calculate(snap.Income, snap.Expenses, now)
	if err != nil {
		return nil, fmt.Errorf("calculating budget: %w", err)
	}

	bills, err := r.scorer.ScoreAll(snap.Bills, now)
	if err != nil {
		return nil, fmt.Errorf("scoring bills: %w", err)
	}

	plan, err := r.integrator.Plan(bills, calc)
	if err != nil {
		return nil, fmt.Errorf("planning payments: %w", err)
	}

	rep := &Report{
		Household: snap.Household,
		Path:      snap.Path,
		Now:       now,
		Budget:    calc,
		Bills:     bills,
		Plan:      plan,
	}

	if snap.Proposal != nil {
		v, err := r.validator.Validate(*snap.Proposal, calc)
		if err != nil {
			return nil, fmt.Errorf("validating proposal: %w", err)
		}
		rep.Validation = &v
	}

	if snap.Triage != nil {
		rep.Triage = *snap.Triage
		rep.ExternalTriage = true
	} else {
		v, err := r.assessor.Assess(bills, calc, now)
		if err != nil {
			return nil, fmt.Errorf("triaging: %w", err)
		}
		rep.Triage = v
	}

	assessment, err := r.aggregator.Assess(bills, calc, &rep.Triage, now)
	if err != nil {
		return nil, fmt.Errorf("assessing crisis: %w", err)
	}
	rep.Assessment = assessment

	entry.WithFields(logrus.Fields{
		"status":    assessment.Status,
		"available": calc.AvailableForDebt,
		"viable":    plan.IsViable,
	}).Debug("evaluated snapshot")
	return rep, nil
}
