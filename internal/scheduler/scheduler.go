package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/growthbot/internal/tracker"
	"github.com/example/growthbot/pkg/models"
)

// Scheduler runs the daily rollover and reminder
type Scheduler struct {
	scheduler    *gocron.Scheduler
	tracker      SnapshotSource
	notifier     Notifier
	reminderTime string
	logger       *zap.Logger
}

// SnapshotSource loads today's state, creating today's record when missing
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*tracker.Snapshot, error)
}

// Notifier interface for sending notifications
type Notifier interface {
	SendReminder(ctx context.Context, snap *tracker.Snapshot) error
}

// New creates a new scheduler instance. reminderTime is "HH:MM" in loc.
func New(source SnapshotSource, notifier Notifier, reminderTime string, loc *time.Location, logger *zap.Logger) *Scheduler {
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler:    s,
		tracker:      source,
		notifier:     notifier,
		reminderTime: reminderTime,
		logger:       logger,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	// Create the new day's record shortly after midnight
	if _, err := s.scheduler.Every(1).Day().At("00:01").Do(s.rollover); err != nil {
		return fmt.Errorf("failed to schedule rollover: %w", err)
	}

	if _, err := s.scheduler.Every(1).Day().At(s.reminderTime).Do(s.remind); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", zap.String("reminder_time", s.reminderTime))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Jobs returns the number of scheduled jobs
func (s *Scheduler) Jobs() int {
	return s.scheduler.Len()
}

func (s *Scheduler) rollover() {
	if _, err := s.tracker.Snapshot(context.Background()); err != nil {
		s.logger.Error("daily rollover failed", zap.Error(err))
	}
}

func (s *Scheduler) remind() {
	if err := s.RunManualCheck(context.Background()); err != nil {
		s.logger.Error("reminder failed", zap.Error(err))
	}
}

// RunManualCheck sends a reminder now if today's challenge is still pending
func (s *Scheduler) RunManualCheck(ctx context.Context) error {
	snap, err := s.tracker.Snapshot(ctx)
	if err != nil {
		return err
	}

	if snap.Status == models.StatusCompleted {
		s.logger.Debug("challenge already completed, skipping reminder", zap.String("date", snap.Date))
		return nil
	}

	return s.notifier.SendReminder(ctx, snap)
}
