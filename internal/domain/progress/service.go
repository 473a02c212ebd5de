package progress

import (
	"context"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/events"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/task"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher pushes analytics events when snapshots are recorded.
type EventPublisher interface {
	PublishAnalyticsEvent(ctx context.Context, event events.AnalyticsEvent) error
}

type Service interface {
	// RecordDailySnapshots captures today's task counts for every user with
	// tasks. The scheduler calls this at midnight.
	RecordDailySnapshots(ctx context.Context) error
	GetHistory(ctx context.Context, userID uuid.UUID, limit int) ([]Snapshot, error)
	GetSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Snapshot, error)
}

type service struct {
	repo      Repository
	taskRepo  task.Repository
	publisher EventPublisher
	log       *logger.Logger
}

func NewService(repo Repository, taskRepo task.Repository, publisher EventPublisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		taskRepo:  taskRepo,
		publisher: publisher,
		log:       log,
	}
}

func (s *service) RecordDailySnapshots(ctx context.Context) error {
	userIDs, err := s.taskRepo.DistinctUserIDs()
	if err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	recorded := 0

	for _, userID := range userIDs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		tasks, _, err := s.taskRepo.FindAll(task.Filter{UserID: userID})
		if err != nil {
			s.log.Error("failed to load tasks for snapshot",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			continue
		}

		var completed, focusMinutes int64
		for _, t := range tasks {
			if t.Status == task.StatusComplete {
				completed++
				// Focus time counts only work finished on the snapshot day.
				if t.CompletedAt != nil && t.CompletedAt.UTC().Truncate(24*time.Hour).Equal(today) {
					focusMinutes += int64(t.Duration)
				}
			}
		}

		snapshot := &Snapshot{
			UserID:         userID,
			Date:           today,
			TotalTasks:     int64(len(tasks)),
			CompletedTasks: completed,
			FocusMinutes:   focusMinutes,
		}

		if err := s.repo.Create(snapshot); err != nil {
			if err == ErrSnapshotExists {
				continue
			}
			s.log.Error("failed to record snapshot",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			continue
		}

		recorded++

		if s.publisher != nil {
			event := events.AnalyticsEvent{
				EventType: events.EventTypeSnapshotRecorded,
				UserID:    userID,
				EntityID:  snapshot.ID,
				Timestamp: time.Now().UTC(),
			}
			if err := s.publisher.PublishAnalyticsEvent(ctx, event); err != nil {
				s.log.Warn("failed to publish snapshot event", zap.Error(err))
			}
		}
	}

	s.log.Info("daily snapshots recorded",
		zap.Int("users", len(userIDs)),
		zap.Int("recorded", recorded),
	)

	return nil
}

func (s *service) GetHistory(ctx context.Context, userID uuid.UUID, limit int) ([]Snapshot, error) {
	if limit <= 0 || limit > 365 {
		limit = 90
	}
	return s.repo.FindByUser(userID, limit)
}

func (s *service) GetSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Snapshot, error) {
	return s.repo.FindSince(userID, since)
}
