package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/consistency"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/progress"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/task"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaskRepo struct {
	tasks []task.Task
}

func (m *stubTaskRepo) Create(t *task.Task) error { return nil }

func (m *stubTaskRepo) FindByID(id, userID uuid.UUID) (*task.Task, error) {
	return nil, task.ErrTaskNotFound
}

func (m *stubTaskRepo) FindAll(filter task.Filter) ([]task.Task, int64, error) {
	var out []task.Task
	for _, t := range m.tasks {
		if t.UserID == filter.UserID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (m *stubTaskRepo) Update(t *task.Task) error { return nil }

func (m *stubTaskRepo) Delete(id, userID uuid.UUID) error { return nil }

func (m *stubTaskRepo) CountByStatus(userID uuid.UUID, status task.Status) (int64, error) {
	return 0, nil
}

func (m *stubTaskRepo) DistinctUserIDs() ([]uuid.UUID, error) { return nil, nil }

type stubConsistencyRepo struct {
	records []consistency.DailyRecord
}

func (m *stubConsistencyRepo) Create(record *consistency.DailyRecord) error { return nil }

func (m *stubConsistencyRepo) Update(record *consistency.DailyRecord) error { return nil }

func (m *stubConsistencyRepo) FindByUserDate(userID uuid.UUID, date time.Time) (*consistency.DailyRecord, error) {
	return nil, consistency.ErrRecordNotFound
}

func (m *stubConsistencyRepo) FindRecent(userID uuid.UUID, limit int) ([]consistency.DailyRecord, error) {
	return nil, nil
}

func (m *stubConsistencyRepo) FindSince(userID uuid.UUID, since time.Time) ([]consistency.DailyRecord, error) {
	var out []consistency.DailyRecord
	for _, r := range m.records {
		if r.UserID == userID && !r.Date.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *stubConsistencyRepo) Delete(id, userID uuid.UUID) error { return nil }

type stubProgressRepo struct {
	snapshots []progress.Snapshot
	lastLimit int
	lastSince time.Time
}

func (m *stubProgressRepo) Create(snapshot *progress.Snapshot) error { return nil }

func (m *stubProgressRepo) FindByUser(userID uuid.UUID, limit int) ([]progress.Snapshot, error) {
	m.lastLimit = limit
	return m.snapshots, nil
}

func (m *stubProgressRepo) FindSince(userID uuid.UUID, since time.Time) ([]progress.Snapshot, error) {
	m.lastSince = since
	return m.snapshots, nil
}

func (m *stubProgressRepo) Latest(userID uuid.UUID) (*progress.Snapshot, error) { return nil, nil }

func TestGetKPIsAssemblesReport(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1).Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)
	lastMonth := now.AddDate(0, 0, -20)
	doneAt := now.AddDate(0, 0, -2)

	taskRepo := &stubTaskRepo{tasks: []task.Task{
		{ID: uuid.New(), UserID: userID, Status: task.StatusComplete, Category: task.CategoryHabit, Priority: task.PriorityHigh, CreatedAt: now.AddDate(0, 0, -2), CompletedAt: &doneAt},
		{ID: uuid.New(), UserID: userID, Status: task.StatusPending, Category: task.CategoryHabit, Priority: task.PriorityLow, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: uuid.New(), UserID: userID, Status: task.StatusPending, Category: task.CategoryOneOff, Priority: task.PriorityLow, CreatedAt: lastMonth},
	}}
	consistencyRepo := &stubConsistencyRepo{records: []consistency.DailyRecord{
		{ID: uuid.New(), UserID: userID, Date: yesterday, Metrics: consistency.Metrics{
			consistency.CategoryDSA: consistency.StatusComplete,
		}},
		{ID: uuid.New(), UserID: userID, Date: today, Metrics: consistency.Metrics{
			consistency.CategoryDSA: consistency.StatusComplete,
		}},
	}}
	svc := NewService(taskRepo, consistencyRepo, &stubProgressRepo{}, logger.NewLogger())

	report, err := svc.GetKPIs(context.Background(), userID, PeriodWeekly)
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.TotalTasks)
	assert.Equal(t, int64(1), report.CompletedTasks)
	assert.Equal(t, 33, report.CompletionRate)

	// Two of three tasks were created inside the last 7 days; one
	// completion happened inside it.
	assert.Equal(t, 2, report.WeekTasks)
	assert.Equal(t, 1, report.WeekCompleted)
	assert.Equal(t, 50, report.WeeklyRate)

	assert.Equal(t, 2, report.Streak, "today and yesterday were both active")
	assert.True(t, report.BestDay.Found)
	assert.Len(t, report.VelocitySeries, 14)

	// Priority breakdown counts open tasks only; the completed high-priority
	// task is excluded.
	for _, entry := range report.PriorityBreakdown {
		assert.NotEqual(t, string(task.PriorityHigh), entry.Key)
	}
}

func TestGetKPIsWeekCompletedCountsByCompletionDate(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()
	doneYesterday := now.AddDate(0, 0, -1)

	// An old task finished this week counts toward WeekCompleted even
	// though it contributes nothing to WeekTasks.
	taskRepo := &stubTaskRepo{tasks: []task.Task{
		{ID: uuid.New(), UserID: userID, Status: task.StatusComplete, Category: task.CategoryOneOff, Priority: task.PriorityMedium, CreatedAt: now.AddDate(0, 0, -20), CompletedAt: &doneYesterday},
	}}
	svc := NewService(taskRepo, &stubConsistencyRepo{}, &stubProgressRepo{}, logger.NewLogger())

	report, err := svc.GetKPIs(context.Background(), userID, PeriodWeekly)
	require.NoError(t, err)

	assert.Equal(t, 0, report.WeekTasks)
	assert.Equal(t, 1, report.WeekCompleted)
	assert.Equal(t, 0, report.WeeklyRate, "rate stays 0 with no tasks created this week")
}

func TestGetKPIsEmptyUser(t *testing.T) {
	svc := NewService(&stubTaskRepo{}, &stubConsistencyRepo{}, &stubProgressRepo{}, logger.NewLogger())

	report, err := svc.GetKPIs(context.Background(), uuid.New(), PeriodWeekly)
	require.NoError(t, err)

	assert.Zero(t, report.TotalTasks)
	assert.Zero(t, report.CompletionRate)
	assert.Zero(t, report.Streak)
	assert.False(t, report.BestDay.Found)
	assert.Len(t, report.VelocitySeries, 14, "series stays dense with no data")
}

func TestGetKPIsMonthlyWindows(t *testing.T) {
	svc := NewService(&stubTaskRepo{}, &stubConsistencyRepo{}, &stubProgressRepo{}, logger.NewLogger())

	report, err := svc.GetKPIs(context.Background(), uuid.New(), PeriodMonthly)
	require.NoError(t, err)

	assert.Len(t, report.VelocitySeries, 30)
}

func TestGetWeeklyTrendBucketCount(t *testing.T) {
	userID := uuid.New()
	svc := NewService(&stubTaskRepo{}, &stubConsistencyRepo{}, &stubProgressRepo{}, logger.NewLogger())

	buckets, err := svc.GetWeeklyTrend(context.Background(), userID, PeriodWeekly)
	require.NoError(t, err)
	assert.Len(t, buckets, 8)

	buckets, err = svc.GetWeeklyTrend(context.Background(), userID, PeriodMonthly)
	require.NoError(t, err)
	assert.Len(t, buckets, 12)
}

func TestGetProgressHistoryLimit(t *testing.T) {
	repo := &stubProgressRepo{}
	svc := NewService(&stubTaskRepo{}, &stubConsistencyRepo{}, repo, logger.NewLogger())

	_, err := svc.GetProgressHistory(context.Background(), uuid.New(), 0)
	require.NoError(t, err)
	assert.Equal(t, 90, repo.lastLimit)

	_, err = svc.GetProgressHistory(context.Background(), uuid.New(), 500)
	require.NoError(t, err)
	assert.Equal(t, 90, repo.lastLimit, "out-of-range limits fall back to the default")
}

func TestGetProgressSinceWindow(t *testing.T) {
	repo := &stubProgressRepo{}
	svc := NewService(&stubTaskRepo{}, &stubConsistencyRepo{}, repo, logger.NewLogger())

	_, err := svc.GetProgressSince(context.Background(), uuid.New(), PeriodWeekly)
	require.NoError(t, err)
	weeklySince := repo.lastSince
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -7), weeklySince, time.Minute)

	_, err = svc.GetProgressSince(context.Background(), uuid.New(), PeriodMonthly)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -30), repo.lastSince, time.Minute)
	assert.True(t, repo.lastSince.Before(weeklySince), "monthly window reaches further back")
}
