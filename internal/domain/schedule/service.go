package schedule

import (
	"context"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/events"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher pushes analytics events after schedule mutations.
type EventPublisher interface {
	PublishAnalyticsEvent(ctx context.Context, event events.AnalyticsEvent) error
}

type CreateInput struct {
	TaskID    *uuid.UUID
	Title     string
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
	Color     string
	Note      string
}

// UpdateInput carries the mutable block fields. Nil means unchanged.
type UpdateInput struct {
	Title     *string
	Date      *time.Time
	StartTime *time.Time
	EndTime   *time.Time
	Color     *string
	Note      *string
	TaskID    *uuid.UUID
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*ScheduleBlock, error)
	GetDay(ctx context.Context, userID uuid.UUID, date time.Time) ([]ScheduleBlock, error)
	GetRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]ScheduleBlock, error)
	Update(ctx context.Context, id, userID uuid.UUID, input UpdateInput) (*ScheduleBlock, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
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

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*ScheduleBlock, error) {
	block := &ScheduleBlock{
		UserID:    userID,
		TaskID:    input.TaskID,
		Title:     input.Title,
		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Color:     input.Color,
		Note:      input.Note,
	}

	if err := block.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(block); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, block.ID)

	return block, nil
}

func (s *service) GetDay(ctx context.Context, userID uuid.UUID, date time.Time) ([]ScheduleBlock, error) {
	return s.repo.FindByUserDate(userID, date)
}

func (s *service) GetRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]ScheduleBlock, error) {
	return s.repo.FindByUserRange(userID, from, to)
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, input UpdateInput) (*ScheduleBlock, error) {
	block, err := s.repo.FindByID(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		block.Title = *input.Title
	}
	if input.Date != nil {
		block.Date = *input.Date
	}
	if input.StartTime != nil {
		block.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		block.EndTime = *input.EndTime
	}
	if input.Color != nil {
		block.Color = *input.Color
	}
	if input.Note != nil {
		block.Note = *input.Note
	}
	if input.TaskID != nil {
		block.TaskID = input.TaskID
	}

	if err := block.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(block); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, block.ID)

	return block, nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(id, userID); err != nil {
		return err
	}
	s.publish(ctx, userID, id)
	return nil
}

func (s *service) publish(ctx context.Context, userID, blockID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	event := events.AnalyticsEvent{
		EventType: events.EventTypeScheduleUpdate,
		UserID:    userID,
		EntityID:  blockID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishAnalyticsEvent(ctx, event); err != nil {
		s.log.Warn("failed to publish analytics event", zap.Error(err))
	}
}
