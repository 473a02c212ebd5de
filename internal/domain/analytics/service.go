package analytics

import (
	"context"
	"math"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/consistency"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/progress"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/task"
	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/google/uuid"
)

// Period selects the analytics window.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Window parameters per period.
const (
	weeklyRollingDays  = 7
	weeklyVelocityDays = 14
	weeklyTrendWeeks   = 8

	monthlyRollingDays  = 30
	monthlyVelocityDays = 30
	monthlyTrendWeeks   = 12
)

// KPIReport bundles every dashboard number for one user.
type KPIReport struct {
	TotalTasks        int64
	CompletedTasks    int64
	CompletionRate    int
	WeeklyRate        int
	WeekTasks         int
	WeekCompleted     int
	CategoryBreakdown []BreakdownEntry
	PriorityBreakdown []BreakdownEntry
	Streak            int
	BestDay           BestDay
	RollingAvg        int
	VelocitySeries    []DayPoint
}

type Service interface {
	GetKPIs(ctx context.Context, userID uuid.UUID, period Period) (*KPIReport, error)
	GetWeeklyTrend(ctx context.Context, userID uuid.UUID, period Period) ([]TrendBucket, error)
	GetProgressHistory(ctx context.Context, userID uuid.UUID, limit int) ([]progress.Snapshot, error)
	GetProgressSince(ctx context.Context, userID uuid.UUID, period Period) ([]progress.Snapshot, error)
}

type service struct {
	taskRepo        task.Repository
	consistencyRepo consistency.Repository
	progressRepo    progress.Repository
	log             *logger.Logger
}

func NewService(taskRepo task.Repository, consistencyRepo consistency.Repository, progressRepo progress.Repository, log *logger.Logger) Service {
	return &service{
		taskRepo:        taskRepo,
		consistencyRepo: consistencyRepo,
		progressRepo:    progressRepo,
		log:             log,
	}
}

func windowsFor(period Period) (rollingDays, velocityDays, trendWeeks int) {
	if period == PeriodMonthly {
		return monthlyRollingDays, monthlyVelocityDays, monthlyTrendWeeks
	}
	return weeklyRollingDays, weeklyVelocityDays, weeklyTrendWeeks
}

// GetKPIs fetches the user's records once, then runs the pure aggregations
// over that snapshot. Nothing is cached: a task completed a second ago is
// already reflected in the response.
func (s *service) GetKPIs(ctx context.Context, userID uuid.UUID, period Period) (*KPIReport, error) {
	rollingDays, velocityDays, _ := windowsFor(period)
	now := time.Now().UTC()

	tasks, _, err := s.taskRepo.FindAll(task.Filter{UserID: userID})
	if err != nil {
		return nil, err
	}

	// Fetch enough history to cover the largest window plus slack for the
	// streak walk.
	lookback := now.AddDate(0, 0, -(monthlyRollingDays * 3))
	records, err := s.consistencyRepo.FindSince(userID, lookback)
	if err != nil {
		return nil, err
	}

	report := &KPIReport{
		TotalTasks:        int64(len(tasks)),
		CategoryBreakdown: CategoryBreakdown(tasks),
		PriorityBreakdown: PriorityBreakdown(tasks),
		Streak:            Streak(records, now),
		BestDay:           ComputeBestDay(records),
		RollingAvg:        RollingAverage(records, rollingDays, now),
		VelocitySeries:    VelocitySeries(records, velocityDays, now),
	}

	// WeekTasks counts by creation date, WeekCompleted by completion date.
	// The filters are independent, like the trend buckets: an old task
	// finished this week counts, so WeekCompleted can exceed WeekTasks.
	weekStart := now.AddDate(0, 0, -7)
	for _, tk := range tasks {
		if tk.Status == task.StatusComplete {
			report.CompletedTasks++
		}
		if tk.CreatedAt.After(weekStart) {
			report.WeekTasks++
		}
		if tk.CompletedAt != nil && tk.CompletedAt.After(weekStart) {
			report.WeekCompleted++
		}
	}

	if report.TotalTasks > 0 {
		report.CompletionRate = int(math.Round(float64(report.CompletedTasks) / float64(report.TotalTasks) * 100))
	}
	if report.WeekTasks > 0 {
		report.WeeklyRate = int(math.Round(float64(report.WeekCompleted) / float64(report.WeekTasks) * 100))
	}

	return report, nil
}

func (s *service) GetWeeklyTrend(ctx context.Context, userID uuid.UUID, period Period) ([]TrendBucket, error) {
	_, _, trendWeeks := windowsFor(period)
	now := time.Now().UTC()

	// Tasks created before the trend window can still complete inside it,
	// so the full set is fetched and the bucketing filters by date.
	tasks, _, err := s.taskRepo.FindAll(task.Filter{UserID: userID})
	if err != nil {
		return nil, err
	}

	return WeeklyTrend(tasks, trendWeeks, now), nil
}

func (s *service) GetProgressHistory(ctx context.Context, userID uuid.UUID, limit int) ([]progress.Snapshot, error) {
	if limit <= 0 || limit > 365 {
		limit = 90
	}
	return s.progressRepo.FindByUser(userID, limit)
}

// GetProgressSince returns snapshots from the start of the period's rolling
// window, oldest first.
func (s *service) GetProgressSince(ctx context.Context, userID uuid.UUID, period Period) ([]progress.Snapshot, error) {
	rollingDays, _, _ := windowsFor(period)
	since := time.Now().UTC().AddDate(0, 0, -rollingDays)
	return s.progressRepo.FindSince(userID, since)
}
