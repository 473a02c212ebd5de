package consistency

import (
	"context"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/events"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher pushes analytics events after consistency mutations.
type EventPublisher interface {
	PublishAnalyticsEvent(ctx context.Context, event events.AnalyticsEvent) error
}

// LogInput is one day's consistency submission.
type LogInput struct {
	Date    string
	Metrics Metrics
	Notes   string
}

type Service interface {
	LogDay(ctx context.Context, userID uuid.UUID, input LogInput) (*DailyRecord, error)
	GetDay(ctx context.Context, userID uuid.UUID, date string) (*DailyRecord, error)
	GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]DailyRecord, error)
	GetSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]DailyRecord, error)
	DeleteDay(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	repo      Repository
	publisher EventPublisher
	log       *logger.Logger
}

func NewService(repo Repository, publisher EventPublisher, log *logger.Logger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ParseDate normalizes a YYYY-MM-DD string to midnight UTC.
func ParseDate(date string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// LogDay upserts one day's metrics. An existing record is merged, not
// replaced: categories absent from the submission keep their stored status,
// so resubmitting the same log is idempotent.
func (s *service) LogDay(ctx context.Context, userID uuid.UUID, input LogInput) (*DailyRecord, error) {
	date, err := ParseDate(input.Date)
	if err != nil {
		return nil, err
	}

	for category, status := range input.Metrics {
		if !category.Valid() {
			return nil, ErrInvalidCategory
		}
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	record, err := s.repo.FindByUserDate(userID, date)
	switch err {
	case nil:
		record.Metrics = record.Metrics.Merge(input.Metrics)
		if input.Notes != "" {
			record.Notes = input.Notes
		}
		if err := s.repo.Update(record); err != nil {
			return nil, err
		}
	case ErrRecordNotFound:
		record = &DailyRecord{
			UserID:  userID,
			Date:    date,
			Metrics: input.Metrics,
			Notes:   input.Notes,
		}
		if record.Metrics == nil {
			record.Metrics = Metrics{}
		}
		if err := s.repo.Create(record); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.publish(ctx, userID, record.ID, input.Date)

	return record, nil
}

func (s *service) GetDay(ctx context.Context, userID uuid.UUID, date string) (*DailyRecord, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByUserDate(userID, parsed)
}

func (s *service) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]DailyRecord, error) {
	if limit <= 0 || limit > 365 {
		limit = 30
	}
	return s.repo.FindRecent(userID, limit)
}

func (s *service) GetSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]DailyRecord, error) {
	return s.repo.FindSince(userID, since)
}

func (s *service) DeleteDay(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.Delete(id, userID)
}

func (s *service) publish(ctx context.Context, userID, recordID uuid.UUID, date string) {
	if s.publisher == nil {
		return
	}
	event := events.AnalyticsEvent{
		EventType: events.EventTypeConsistencyUpdate,
		UserID:    userID,
		EntityID:  recordID,
		Timestamp: time.Now().UTC(),
		Details:   map[string]interface{}{"date": date},
	}
	if err := s.publisher.PublishAnalyticsEvent(ctx, event); err != nil {
		s.log.Warn("failed to publish analytics event", zap.Error(err))
	}
}
