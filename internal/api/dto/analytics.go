package dto

import (
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/analytics"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/progress"
)

// AnalyticsQuery selects the analytics window.
type AnalyticsQuery struct {
	Period string `form:"period" validate:"omitempty,oneof=weekly monthly"`
}

// BreakdownEntryBody is one group of a breakdown.
type BreakdownEntryBody struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// BestDayBody is the highest-scoring day, or null when no data exists.
type BestDayBody struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// DayPointBody is one velocity series entry.
type DayPointBody struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// KPIResponse is the dashboard read model.
type KPIResponse struct {
	TotalTasks        int64                `json:"totalTasks"`
	CompletedTasks    int64                `json:"completedTasks"`
	CompletionRate    int                  `json:"completionRate"`
	WeeklyRate        int                  `json:"weeklyRate"`
	WeekTasks         int                  `json:"weekTasks"`
	WeekCompleted     int                  `json:"weekCompleted"`
	CategoryBreakdown []BreakdownEntryBody `json:"categoryBreakdown"`
	PriorityBreakdown []BreakdownEntryBody `json:"priorityBreakdown"`
	Streak            int                  `json:"streak"`
	BestDay           *BestDayBody         `json:"bestDay"`
	Avg7Day           int                  `json:"avg7Day"`
	VelocitySeries    []DayPointBody       `json:"velocitySeries"`
}

// TrendBucketBody is one weekly trend window.
type TrendBucketBody struct {
	WeekStart string `json:"weekStart"`
	WeekEnd   string `json:"weekEnd"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Rate      int    `json:"rate"`
}

// ProgressSnapshotBody is one recorded rollup.
type ProgressSnapshotBody struct {
	Date           string  `json:"date"`
	TotalTasks     int64   `json:"totalTasks"`
	CompletedTasks int64   `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
	FocusMinutes   int64   `json:"focusMinutes"`
}

const dateLayout = "2006-01-02"

func ToKPIResponse(report *analytics.KPIReport) KPIResponse {
	resp := KPIResponse{
		TotalTasks:        report.TotalTasks,
		CompletedTasks:    report.CompletedTasks,
		CompletionRate:    report.CompletionRate,
		WeeklyRate:        report.WeeklyRate,
		WeekTasks:         report.WeekTasks,
		WeekCompleted:     report.WeekCompleted,
		CategoryBreakdown: toBreakdownBodies(report.CategoryBreakdown),
		PriorityBreakdown: toBreakdownBodies(report.PriorityBreakdown),
		Streak:            report.Streak,
		Avg7Day:           report.RollingAvg,
		VelocitySeries:    toDayPointBodies(report.VelocitySeries),
	}

	if report.BestDay.Found {
		resp.BestDay = &BestDayBody{
			Date:  report.BestDay.Date.Format(dateLayout),
			Score: report.BestDay.Score,
		}
	}

	return resp
}

func toBreakdownBodies(entries []analytics.BreakdownEntry) []BreakdownEntryBody {
	out := make([]BreakdownEntryBody, 0, len(entries))
	for _, e := range entries {
		out = append(out, BreakdownEntryBody{Key: e.Key, Count: e.Count})
	}
	return out
}

func toDayPointBodies(points []analytics.DayPoint) []DayPointBody {
	out := make([]DayPointBody, 0, len(points))
	for _, p := range points {
		out = append(out, DayPointBody{Date: p.Date.Format(dateLayout), Score: p.Score})
	}
	return out
}

func ToTrendBucketBodies(buckets []analytics.TrendBucket) []TrendBucketBody {
	out := make([]TrendBucketBody, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TrendBucketBody{
			WeekStart: b.WeekStart.Format(dateLayout),
			WeekEnd:   b.WeekEnd.Format(dateLayout),
			Total:     b.Total,
			Completed: b.Completed,
			Rate:      b.Rate,
		})
	}
	return out
}

func ToProgressSnapshotBodies(snapshots []progress.Snapshot) []ProgressSnapshotBody {
	out := make([]ProgressSnapshotBody, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, ProgressSnapshotBody{
			Date:           s.Date.Format(dateLayout),
			TotalTasks:     s.TotalTasks,
			CompletedTasks: s.CompletedTasks,
			CompletionRate: s.CompletionRate(),
			FocusMinutes:   s.FocusMinutes,
		})
	}
	return out
}
