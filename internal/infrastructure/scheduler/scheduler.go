package scheduler

import (
	"context"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/progress"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"go.uber.org/zap"
)

// Scheduler runs the nightly progress rollup. Snapshots are written at
// midnight so weekly trends have one data point per day even when the user
// never opened the app.
type Scheduler struct {
	progressService progress.Service
	logger          *logger.Logger
	cancel          context.CancelFunc
}

func NewScheduler(progressService progress.Service, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		progressService: progressService,
		logger:          logger,
	}
}

func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// Run immediately at startup to cover a restart that missed midnight.
	// Recording is idempotent per user per day.
	s.runSnapshotRollup(ctx)

	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Progress scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", timeUntilMidnight),
	)

	go func() {
		timer := time.NewTimer(timeUntilMidnight)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		s.runSnapshotRollup(ctx)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runSnapshotRollup(ctx)
			}
		}
	}()
}

// Stop cancels the scheduled rollups.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Scheduler) runSnapshotRollup(ctx context.Context) {
	startTime := time.Now()

	s.logger.Info("Starting daily progress rollup", zap.Time("start_time", startTime))

	if err := s.progressService.RecordDailySnapshots(ctx); err != nil {
		s.logger.Error("Failed to record daily snapshots", zap.Error(err))
	}

	s.logger.Info("Completed daily progress rollup",
		zap.Time("end_time", time.Now()),
		zap.Duration("duration", time.Since(startTime)),
	)
}
