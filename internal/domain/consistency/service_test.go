package consistency

import (
	"context"
	"testing"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	records map[uuid.UUID]*DailyRecord
}

func newMockRepository() *mockRepository {
	return &mockRepository{records: make(map[uuid.UUID]*DailyRecord)}
}

func (m *mockRepository) Create(record *DailyRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	copied := *record
	m.records[record.ID] = &copied
	return nil
}

func (m *mockRepository) Update(record *DailyRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return ErrRecordNotFound
	}
	copied := *record
	m.records[record.ID] = &copied
	return nil
}

func (m *mockRepository) FindByUserDate(userID uuid.UUID, date time.Time) (*DailyRecord, error) {
	for _, r := range m.records {
		if r.UserID == userID && r.Date.Equal(date) {
			copied := *r
			return &copied, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (m *mockRepository) FindRecent(userID uuid.UUID, limit int) ([]DailyRecord, error) {
	var out []DailyRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRepository) FindSince(userID uuid.UUID, since time.Time) ([]DailyRecord, error) {
	var out []DailyRecord
	for _, r := range m.records {
		if r.UserID == userID && !r.Date.Before(since) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockRepository) Delete(id, userID uuid.UUID) error {
	record, ok := m.records[id]
	if !ok || record.UserID != userID {
		return ErrRecordNotFound
	}
	delete(m.records, id)
	return nil
}

func TestLogDayCreatesRecord(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, logger.NewLogger())
	userID := uuid.New()

	record, err := svc.LogDay(context.Background(), userID, LogInput{
		Date: "2026-08-30",
		Metrics: Metrics{
			CategoryDevelopment: StatusComplete,
			CategoryDSA:         StatusPartial,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), record.Date)
	assert.Equal(t, StatusComplete, record.Metrics[CategoryDevelopment])
	assert.Equal(t, StatusPartial, record.Metrics[CategoryDSA])
	assert.Len(t, record.Metrics, 2)
}

func TestLogDayMergesExistingMetrics(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, logger.NewLogger())
	userID := uuid.New()

	_, err := svc.LogDay(context.Background(), userID, LogInput{
		Date:    "2026-08-30",
		Metrics: Metrics{CategoryDevelopment: StatusComplete},
	})
	require.NoError(t, err)

	// A second submission for the same day adds categories and overwrites
	// overlapping ones without dropping what was already logged.
	record, err := svc.LogDay(context.Background(), userID, LogInput{
		Date: "2026-08-30",
		Metrics: Metrics{
			CategoryDevelopment: StatusPartial,
			CategoryMindset:     StatusComplete,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, record.Metrics[CategoryDevelopment])
	assert.Equal(t, StatusComplete, record.Metrics[CategoryMindset])
	assert.Len(t, record.Metrics, 2)
	assert.Len(t, repo.records, 1)
}

func TestLogDayIdempotent(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, logger.NewLogger())
	userID := uuid.New()

	input := LogInput{
		Date: "2026-08-30",
		Metrics: Metrics{
			CategoryCareer: StatusMissed,
			CategoryAIML:   StatusComplete,
		},
	}

	first, err := svc.LogDay(context.Background(), userID, input)
	require.NoError(t, err)

	second, err := svc.LogDay(context.Background(), userID, input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Len(t, repo.records, 1)
}

func TestLogDayValidation(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, logger.NewLogger())
	userID := uuid.New()

	tests := []struct {
		name    string
		input   LogInput
		wantErr error
	}{
		{
			name:    "malformed date",
			input:   LogInput{Date: "30-08-2026", Metrics: Metrics{CategoryDSA: StatusComplete}},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "unknown category",
			input:   LogInput{Date: "2026-08-30", Metrics: Metrics{"Gym": StatusComplete}},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "unknown status",
			input:   LogInput{Date: "2026-08-30", Metrics: Metrics{CategoryDSA: "Done"}},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.LogDay(context.Background(), userID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetDayUnknownDate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, logger.NewLogger())

	_, err := svc.GetDay(context.Background(), uuid.New(), "2026-01-01")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
