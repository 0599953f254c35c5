// Package watch re-evaluates a household snapshot on a schedule and serves
// the latest assessment over HTTP.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/lifeline/internal/model"
	"github.com/theirongolddev/lifeline/internal/pipeline"
	"github.com/theirongolddev/lifeline/internal/store"
)

// Evaluator turns a snapshot file into a report.
type Evaluator interface {
	EvaluateFile(path string) (*pipeline.Report, error)
}

// Recorder stores assessments; *store.History satisfies it.
type Recorder interface {
	Record(e store.Entry) (string, error)
	Prune(keep int) (int64, error)
}

// Config controls the watcher runtime behavior.
type Config struct {
	SnapshotPath string
	Schedule     string // cron expression, e.g. "@every 1m"
	Addr         string
	EventsBuffer int
	HistoryKeep  int
}

// Summary is a compact assessment state for status/event payloads.
type Summary struct {
	At           time.Time             `json:"at"`
	Household    string                `json:"household"`
	Status       model.DashboardStatus `json:"status"`
	StatusReason string                `json:"status_reason"`
	Income       float64               `json:"monthly_income"`
	Available    float64               `json:"available_for_debt"`
	Outstanding  float64               `json:"total_outstanding"`
	BillsCurrent int                   `json:"bills_current"`
	TotalBills   int                   `json:"total_bills"`
	PlanViable   bool                  `json:"plan_viable"`
	NextAction   string                `json:"next_action"`
	NextAmount   float64               `json:"next_amount"`
	Alerts       int                   `json:"alerts"`
}

// Delta captures what changed between polls.
type Delta struct {
	PreviousStatus    model.DashboardStatus `json:"previous_status,omitempty"`
	StatusChanged     bool                  `json:"status_changed"`
	Available         float64               `json:"available_for_debt"`
	Outstanding       float64               `json:"total_outstanding"`
	BillsCurrent      int                   `json:"bills_current"`
	NextActionChanged bool                  `json:"next_action_changed"`
}

func (d Delta) isZero() bool {
	return !d.StatusChanged &&
		!d.NextActionChanged &&
		d.Available == 0 &&
		d.Outstanding == 0 &&
		d.BillsCurrent == 0
}

// Event types.
const (
	EventSnapshot     = "snapshot"
	EventStatusChange = "status_change"
	EventDelta        = "assessment_delta"
)

// Event is emitted whenever the assessment changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Summary   Summary   `json:"summary"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	Schedule        string    `json:"schedule"`
	PollCount       int64     `json:"poll_count"`
	SnapshotPath    string    `json:"snapshot_path"`
	Summary         Summary   `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the watcher runtime and HTTP API.
type Service struct {
	cfg      Config
	eval     Evaluator
	recorder Recorder
	log      *logrus.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSummary  bool
	summary     Summary
	report      *pipeline.Report
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a watcher. recorder may be nil to skip history.
func New(cfg Config, eval Evaluator, recorder Recorder, log *logrus.Logger) *Service {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 1m"
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	return &Service{
		cfg:       cfg,
		eval:      eval,
		recorder:  recorder,
		log:       log,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP routes.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	api.HandleFunc("/stream", s.handleStream).Methods(http.MethodGet)
	api.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	return r
}

// Run starts HTTP endpoints and scheduled polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(s.cfg.Schedule, s.PollOnce); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", s.cfg.Schedule, err)
	}

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed the first assessment so status is useful immediately.
	s.PollOnce()
	scheduler.Start()
	s.log.WithFields(logrus.Fields{"addr": s.cfg.Addr, "schedule": s.cfg.Schedule}).Info("watching snapshot")

	select {
	case <-ctx.Done():
		<-scheduler.Stop().Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		<-scheduler.Stop().Done()
		return fmt.Errorf("watch http server: %w", err)
	}
}

// PollOnce evaluates the snapshot and publishes an event if anything changed.
func (s *Service) PollOnce() {
	rep, err := s.eval.EvaluateFile(s.cfg.SnapshotPath)
	now := time.Now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.WithError(err).WithField("path", s.cfg.SnapshotPath).Warn("watch poll failed")
		return
	}

	sum := summaryFromReport(rep)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.summary
	prevExists := s.hasSummary

	s.hasSummary = true
	s.summary = sum
	s.report = rep
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventSnapshot, Timestamp: now, Summary: sum}
		publish = true
	} else if delta := diffSummaries(prev, sum); !delta.isZero() {
		s.nextEventID++
		typ := EventDelta
		if delta.StatusChanged {
			typ = EventStatusChange
		}
		ev = Event{ID: s.nextEventID, Type: typ, Timestamp: now, Summary: sum, Delta: delta}
		publish = true
	}
	if publish {
		s.appendEventLocked(ev)
	}
	s.mu.Unlock()

	if !publish {
		return
	}
	s.log.WithFields(logrus.Fields{"event": ev.Type, "status": sum.Status}).Info("assessment changed")
	s.record(rep)
}

func (s *Service) record(rep *pipeline.Report) {
	if s.recorder == nil {
		return
	}
	entry := store.NewEntry(rep.Household, rep.Path, rep.Now, rep.Budget, rep.Plan, rep.Triage, rep.Assessment)
	if _, err := s.recorder.Record(entry); err != nil {
		s.log.WithError(err).Warn("recording assessment")
		return
	}
	if _, err := s.recorder.Prune(s.cfg.HistoryKeep); err != nil {
		s.log.WithError(err).Warn("pruning history")
	}
}

func summaryFromReport(rep *pipeline.Report) Summary {
	a := rep.Assessment
	return Summary{
		At:           rep.Now,
		Household:    rep.Household,
		Status:       a.Status,
		StatusReason: a.StatusReason,
		Income:       rep.Budget.TotalMonthlyIncome,
		Available:    rep.Budget.AvailableForDebt,
		Outstanding:  a.Milestone.TotalOutstanding,
		BillsCurrent: a.Milestone.BillsCurrent,
		TotalBills:   a.Milestone.TotalBills,
		PlanViable:   rep.Plan.IsViable,
		NextAction:   a.NextAction.Action,
		NextAmount:   a.NextAction.Amount,
		Alerts:       len(a.Alerts),
	}
}

func diffSummaries(prev, curr Summary) Delta {
	d := Delta{
		Available:         curr.Available - prev.Available,
		Outstanding:       curr.Outstanding - prev.Outstanding,
		BillsCurrent:      curr.BillsCurrent - prev.BillsCurrent,
		NextActionChanged: curr.NextAction != prev.NextAction || curr.NextAmount != prev.NextAmount,
	}
	if curr.Status != prev.Status {
		d.StatusChanged = true
		d.PreviousStatus = prev.Status
	}
	return d
}

// appendEventLocked buffers ev and fans it out; s.mu must be held so IDs
// stay in order.
func (s *Service) appendEventLocked(ev Event) {
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Service) currentStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		Schedule:        s.cfg.Schedule,
		PollCount:       s.pollCount,
		SnapshotPath:    s.cfg.SnapshotPath,
		Summary:         s.summary,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.currentStatus())
}

func (s *Service) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	rep := s.report
	s.mu.RUnlock()

	if rep == nil {
		http.Error(w, "no assessment yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rep)
}

func (s *Service) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	s.PollOnce()
	s.handleStatus(w, nil)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send the current summary immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Summary:   s.currentStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
