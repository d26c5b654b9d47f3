// Package tracker handles one user interaction at a time: it reloads the
// table from the store, makes sure today's record exists, applies the
// requested change, persists it and derives the dashboard values.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/growthbot/internal/analytics"
	"github.com/example/growthbot/internal/content"
	"github.com/example/growthbot/internal/progress"
	"github.com/example/growthbot/pkg/models"
)

// Snapshot is everything a presentation layer renders for one interaction
type Snapshot struct {
	Date      string        `json:"date"`
	Challenge string        `json:"challenge"`
	Status    models.Status `json:"status"`
	Quote     string        `json:"quote"`
	analytics.Summary
	Table models.ProgressTable `json:"-"`
}

// ImportResult reports how an import merged into the stored history
type ImportResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Service is the request handler over the progress store. Interactions are
// serialized: each one holds mu from load to save.
type Service struct {
	mu       sync.Mutex
	store    progress.Store
	content  *content.Provider
	engine   *analytics.Engine
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// Option customizes a Service
type Option func(*Service)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone that decides the current date
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

// WithLogger attaches a logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a new tracker service
func NewService(store progress.Store, provider *content.Provider, engine *analytics.Engine, opts ...Option) *Service {
	s := &Service{
		store:    store,
		content:  provider,
		engine:   engine,
		location: time.Local,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current date key
func (s *Service) Today() string {
	return s.now().In(s.location).Format(models.DateLayout)
}

// Snapshot loads the table, creates today's record if needed and derives
// all dashboard values.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, today, err := s.loadWithToday(ctx)
	if err != nil {
		return nil, err
	}
	return s.snapshot(table, today)
}

// SetStatus changes today's status and persists the table
func (s *Service) SetStatus(ctx context.Context, status models.Status) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, today, err := s.loadWithToday(ctx)
	if err != nil {
		return nil, err
	}

	table, matched, err := progress.UpdateStatus(table, today, status)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	s.logger.Info("status updated",
		zap.String("date", today),
		zap.String("status", string(status)),
		zap.Int("records", matched),
	)
	return s.snapshot(table, today)
}

// Table returns the stored history without creating today's record
func (s *Service) Table(ctx context.Context) (models.ProgressTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *Service) load(ctx context.Context) (models.ProgressTable, error) {
	table, err := s.store.Load(ctx)
	if err != nil {
		return models.ProgressTable{}, fmt.Errorf("failed to load progress: %w", err)
	}
	return table, nil
}

// Import appends records whose date is not yet in the stored history
func (s *Service) Import(ctx context.Context, records []models.ProgressRecord) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, rec := range records {
		if table.Has(rec.Date) {
			result.Skipped++
			continue
		}
		table.Records = append(table.Records, rec)
		result.Added++
	}

	if result.Added > 0 {
		if err := s.store.Save(ctx, table); err != nil {
			return nil, fmt.Errorf("failed to save progress: %w", err)
		}
	}

	s.logger.Info("history imported", zap.Int("added", result.Added), zap.Int("skipped", result.Skipped))
	return result, nil
}

// Quote returns a fresh motivational quote
func (s *Service) Quote() (string, error) {
	return s.content.PickQuote()
}

// Badges returns the full badge list in declared order
func (s *Service) Badges() []models.Badge {
	return s.engine.Badges()
}

func (s *Service) loadWithToday(ctx context.Context) (models.ProgressTable, string, error) {
	table, err := s.load(ctx)
	if err != nil {
		return models.ProgressTable{}, "", err
	}

	today := s.Today()
	table, challenge, created, err := progress.EnsureToday(table, today, s.content.PickChallenge)
	if err != nil {
		return models.ProgressTable{}, "", err
	}
	if created {
		if err := s.store.Save(ctx, table); err != nil {
			return models.ProgressTable{}, "", fmt.Errorf("failed to save progress: %w", err)
		}
		s.logger.Info("new daily challenge", zap.String("date", today), zap.String("challenge", challenge))
	}
	return table, today, nil
}

func (s *Service) snapshot(table models.ProgressTable, today string) (*Snapshot, error) {
	quote, err := s.content.PickQuote()
	if err != nil {
		return nil, err
	}

	record, _ := table.Find(today)
	return &Snapshot{
		Date:      today,
		Challenge: record.Challenge,
		Status:    record.Status,
		Quote:     quote,
		Summary:   s.engine.Summarize(table),
		Table:     table,
	}, nil
}
