// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/ledgerweek/internal/adapters/repository"
	"github.com/okian/ledgerweek/internal/domain/dates"
	"github.com/okian/ledgerweek/internal/domain/model"
	"github.com/okian/ledgerweek/internal/domain/scoring"
	"github.com/okian/ledgerweek/internal/domain/snapshot"
	"github.com/okian/ledgerweek/pkg/logger"
	"github.com/okian/ledgerweek/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultStorePath = "data/ledger.json"

	// resetTouchValueHint is the value hint stamped on touches synthesized
	// by the weekly reset.
	resetTouchValueHint = 1000
)

// Service implements the API dependencies for the ledgerweek system.
// It embeds the ledger store, so all CRUD operations pass straight
// through, and layers the scoring engine and the weekly workflows on top.
type Service struct {
	repository.Store

	mu sync.Mutex

	engine *scoring.Engine

	// Configuration
	storePath      string
	historyLimit   int
	flushQueueSize int
	scoringOpts    []scoring.Option
	seedProfile    model.Profile

	// today returns the reference date; injectable for deterministic tests.
	today func() string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStorePath sets the ledger snapshot file location.
func WithStorePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.storePath = path
		}
	}
}

// WithHistoryLimit caps the week card history (0 = unlimited).
func WithHistoryLimit(limit int) Option {
	return func(s *Service) {
		s.historyLimit = limit
	}
}

// WithFlushQueueSize bounds the store's snapshot flush channel.
func WithFlushQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.flushQueueSize = size
		}
	}
}

// WithScoring forwards options to the score engine.
func WithScoring(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, opts...)
	}
}

// WithSeedProfile sets the profile used by the demo seed and as the
// fallback when a weekly workflow runs before onboarding.
func WithSeedProfile(p model.Profile) Option {
	return func(s *Service) {
		s.seedProfile = p
	}
}

// WithClock injects the reference-date source (an ISO date function).
func WithClock(today func() string) Option {
	return func(s *Service) {
		if today != nil {
			s.today = today
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storePath:      defaultStorePath,
		flushQueueSize: 0, // store default applies
		seedProfile:    defaultSeedProfile(),
		today:          dates.Today,
		logger:         nil, // resolved on Start
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultSeedProfile() model.Profile {
	return model.Profile{
		BusinessName:               "Studio",
		Role:                       "photographer",
		WeeklyBillableTargetHours:  10,
		WeeklyPipelineTarget:       3,
		InvoiceGraceDays:           7,
		WeeklyBillableHoursPlanned: 8,
	}
}

// Start opens the ledger store and builds the score engine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting ledgerweek service...")

	storeOpts := []repository.Option{repository.WithHistoryLimit(s.historyLimit)}
	if s.flushQueueSize > 0 {
		storeOpts = append(storeOpts, repository.WithFlushQueueSize(s.flushQueueSize))
	}
	store, err := repository.Open(s.storePath, storeOpts...)
	if err != nil {
		return fmt.Errorf("open ledger store: %w", err)
	}
	s.Store = store
	s.engine = scoring.NewEngine(s.scoringOpts...)

	s.started = true
	s.logger.Info(ctx, "ledgerweek service started",
		logger.String("storePath", s.storePath),
		logger.Int("historyLimit", s.historyLimit),
	)
	return nil
}

// Stop closes the ledger store, draining pending snapshot flushes.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.Store.Close(); err != nil {
		s.logger.Error(context.Background(), "store close failed", logger.Error(err))
	}
	s.started = false
}

// ComputeScore runs the score engine over caller-supplied records. This is
// the stateless pass-through behind POST /score; nothing is read from or
// written to the store.
func (s *Service) ComputeScore(_ context.Context, in scoring.Input) model.ScoreBreakdown {
	res := s.engine.Compute(in)
	metrics.RecordScoreComputation(res.Score)
	return res
}

// CurrentScore scores the ledger as stored. Returns the store's
// ErrNoProfile until onboarding has run.
func (s *Service) CurrentScore(ctx context.Context) (model.ScoreBreakdown, error) {
	profile, err := s.Store.Profile(ctx)
	if err != nil {
		return model.ScoreBreakdown{}, err
	}
	res := s.engine.Compute(scoring.Input{
		Profile:       profile,
		Clients:       s.Store.Clients(ctx),
		Deliverables:  s.Store.Deliverables(ctx),
		Invoices:      s.Store.Invoices(ctx),
		Touches:       s.Store.Touches(ctx),
		ReferenceDate: s.today(),
	})
	metrics.RecordScoreComputation(res.Score)
	return res, nil
}

// profileOrSeed returns the stored profile, falling back to the seed
// profile (and persisting it) when onboarding has not run yet.
func (s *Service) profileOrSeed(ctx context.Context) (model.Profile, error) {
	profile, err := s.Store.Profile(ctx)
	if err == nil {
		return profile, nil
	}
	profile = s.seedProfile
	if err := s.Store.SetProfile(ctx, profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// WeeklyReset runs the weekly reset workflow: log today's pipeline
// touches, overwrite the planned billable hours, snapshot the week and
// upsert it into history. Running it twice in one week replaces the
// week's card rather than duplicating it.
func (s *Service) WeeklyReset(ctx context.Context, plannedHours float64, touchesLogged int, notes string) (model.WeekCard, error) {
	profile, err := s.profileOrSeed(ctx)
	if err != nil {
		return model.WeekCard{}, err
	}

	today := s.today()
	for i := 0; i < touchesLogged; i++ {
		touchNotes := "Follow-up"
		if i == 0 {
			touchNotes = "Weekly reset touch"
		}
		if _, err := s.Store.AddTouch(ctx, model.PipelineTouch{
			Date:      today,
			Type:      model.TouchFollowUp,
			Who:       "Prospect",
			ValueHint: resetTouchValueHint,
			Notes:     touchNotes,
		}); err != nil {
			return model.WeekCard{}, err
		}
	}

	profile.WeeklyBillableHoursPlanned = plannedHours
	if err := s.Store.SetProfile(ctx, profile); err != nil {
		return model.WeekCard{}, err
	}

	card := s.buildCard(ctx, profile, today)
	touchesLine := "No pipeline touches logged"
	if touchesLogged > 0 {
		touchesLine = fmt.Sprintf("Logged %d pipeline touch(es)", touchesLogged)
	}
	card.Actions = []string{
		"Weekly Reset completed",
		touchesLine,
		fmt.Sprintf("Planned %g billable hour(s)", plannedHours),
	}
	card.Notes = notes

	if err := s.Store.UpsertWeekCard(ctx, card); err != nil {
		return model.WeekCard{}, err
	}
	s.logger.Info(ctx, "weekly reset completed",
		logger.String("weekStart", card.WeekStartISO),
		logger.Int("score", card.Score),
	)
	return card, nil
}

// Recovery runs the recovery-mode workflow after a missed week: overwrite
// planned hours and snapshot the week with rescue-plan actions.
func (s *Service) Recovery(ctx context.Context, plannedHours float64, notes string) (model.WeekCard, error) {
	profile, err := s.profileOrSeed(ctx)
	if err != nil {
		return model.WeekCard{}, err
	}

	profile.WeeklyBillableHoursPlanned = plannedHours
	if err := s.Store.SetProfile(ctx, profile); err != nil {
		return model.WeekCard{}, err
	}

	card := s.buildCard(ctx, profile, s.today())
	card.Actions = []string{
		"Recovery Mode used",
		fmt.Sprintf("Planned %g billable hour(s)", plannedHours),
		"Rescued next 48 hours",
	}
	card.Notes = notes

	if err := s.Store.UpsertWeekCard(ctx, card); err != nil {
		return model.WeekCard{}, err
	}
	s.logger.Info(ctx, "recovery mode completed",
		logger.String("weekStart", card.WeekStartISO),
		logger.Int("score", card.Score),
	)
	return card, nil
}

// buildCard snapshots the current ledger for the week containing today.
func (s *Service) buildCard(ctx context.Context, profile model.Profile, today string) model.WeekCard {
	card := snapshot.Build(s.engine, scoring.Input{
		Profile:       profile,
		Clients:       s.Store.Clients(ctx),
		Deliverables:  s.Store.Deliverables(ctx),
		Invoices:      s.Store.Invoices(ctx),
		Touches:       s.Store.Touches(ctx),
		ReferenceDate: today,
	}, "")
	metrics.RecordScoreComputation(card.Score)
	return card
}

// SeedDemo loads a small demo ledger: two clients mid-delivery, two
// lagging deliverables, one overdue invoice, two touches this week, and a
// week card for the current week.
func (s *Service) SeedDemo(ctx context.Context) error {
	today := s.today()

	if err := s.Store.SetProfile(ctx, s.seedProfile); err != nil {
		return err
	}

	if _, err := s.Store.AddClient(ctx, model.Client{
		Name:          "Jessica + Ryan",
		Status:        model.StatusBooked,
		EventDateISO:  dates.AddDays(today, 45),
		ContractValue: 4700,
		Notes:         "May wedding. Strong referral potential.",
	}); err != nil {
		return err
	}
	delivering, err := s.Store.AddClient(ctx, model.Client{
		Name:          "Smith Wedding",
		Status:        model.StatusDelivering,
		EventDateISO:  dates.AddDays(today, 6),
		ContractValue: 3600,
		Notes:         "Final edits due soon.",
	})
	if err != nil {
		return err
	}

	deliverables := []model.Deliverable{
		{ClientID: delivering.ID, Title: "Highlight Reel", DueDate: dates.AddDays(today, 12), CompletionPercent: 10, EstimatedHours: 10},
		{ClientID: delivering.ID, Title: "Gallery Delivery", DueDate: dates.AddDays(today, 9), CompletionPercent: 35, EstimatedHours: 6},
	}
	for _, d := range deliverables {
		if _, err := s.Store.AddDeliverable(ctx, d); err != nil {
			return err
		}
	}

	if _, err := s.Store.AddInvoice(ctx, model.Invoice{
		ClientID: delivering.ID,
		Title:    "Final Payment",
		Amount:   1800,
		DueDate:  dates.AddDays(today, -10),
		Paid:     false,
		PaidDate: nil,
	}); err != nil {
		return err
	}

	touches := []model.PipelineTouch{
		{Date: today, Type: model.TouchFollowUp, Who: "Venue Lead", ValueHint: 2500, Notes: "Sent follow-up"},
		{Date: today, Type: model.TouchInquiry, Who: "Hernandez Engagement", ValueHint: 950, Notes: "Inbound inquiry"},
	}
	for _, t := range touches {
		if _, err := s.Store.AddTouch(ctx, t); err != nil {
			return err
		}
	}

	card := s.buildCard(ctx, s.seedProfile, today)
	card.Notes = "Demo data seeded."
	card.Actions = []string{"Demo seed"}
	if err := s.Store.UpsertWeekCard(ctx, card); err != nil {
		return err
	}

	s.logger.Info(ctx, "demo ledger seeded", logger.String("weekStart", card.WeekStartISO))
	return nil
}

// GetStats returns current service statistics.
func (s *Service) GetStats() map[string]interface{} {
	counts := s.Store.Counts(context.Background())
	stats := map[string]interface{}{
		"started":      s.started,
		"storePath":    s.storePath,
		"historyLimit": s.historyLimit,
	}
	for entity, n := range counts {
		stats[entity] = n
	}
	return stats
}
