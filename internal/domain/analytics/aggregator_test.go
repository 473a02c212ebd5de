package analytics

import (
	"testing"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/consistency"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return today.AddDate(0, 0, offset)
}

func record(offset int, metrics consistency.Metrics) consistency.DailyRecord {
	return consistency.DailyRecord{Date: day(offset), Metrics: metrics}
}

func fullComplete() consistency.Metrics {
	return consistency.Metrics{
		consistency.CategoryDevelopment: consistency.StatusComplete,
		consistency.CategoryDSA:         consistency.StatusComplete,
	}
}

func allMissed() consistency.Metrics {
	return consistency.Metrics{
		consistency.CategoryDevelopment: consistency.StatusMissed,
		consistency.CategoryDSA:         consistency.StatusMissed,
	}
}

func TestDayScore(t *testing.T) {
	tests := []struct {
		name    string
		metrics consistency.Metrics
		want    float64
	}{
		{
			name: "two complete one partial two missed",
			metrics: consistency.Metrics{
				consistency.CategoryDevelopment: consistency.StatusComplete,
				consistency.CategoryCareer:      consistency.StatusComplete,
				consistency.CategoryAIML:        consistency.StatusPartial,
				consistency.CategoryMindset:     consistency.StatusMissed,
				consistency.CategoryDSA:         consistency.StatusMissed,
			},
			want: 50.0,
		},
		{
			name:    "all complete",
			metrics: fullComplete(),
			want:    100.0,
		},
		{
			name: "no tasks counts as zero",
			metrics: consistency.Metrics{
				consistency.CategoryDevelopment: consistency.StatusNoTasks,
				consistency.CategoryDSA:         consistency.StatusComplete,
			},
			want: 50.0,
		},
		{
			name:    "empty metrics",
			metrics: consistency.Metrics{},
			want:    0,
		},
		{
			name: "single partial",
			metrics: consistency.Metrics{
				consistency.CategoryMindset: consistency.StatusPartial,
			},
			want: 50.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DayScore(consistency.DailyRecord{Metrics: tt.metrics}), 0.001)
		})
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		records []consistency.DailyRecord
		want    int
	}{
		{
			name:    "empty input",
			records: nil,
			want:    0,
		},
		{
			name: "today and yesterday complete",
			records: []consistency.DailyRecord{
				record(0, fullComplete()),
				record(-1, fullComplete()),
			},
			want: 2,
		},
		{
			name: "gap after anchor stops the count",
			records: []consistency.DailyRecord{
				record(0, fullComplete()),
				record(-3, fullComplete()),
			},
			want: 1,
		},
		{
			name: "no record for today or yesterday",
			records: []consistency.DailyRecord{
				record(-2, fullComplete()),
				record(-3, fullComplete()),
				record(-4, fullComplete()),
			},
			want: 0,
		},
		{
			name: "anchored on yesterday",
			records: []consistency.DailyRecord{
				record(-1, fullComplete()),
				record(-2, fullComplete()),
			},
			want: 2,
		},
		{
			name: "inactive day breaks the chain",
			records: []consistency.DailyRecord{
				record(0, fullComplete()),
				record(-1, allMissed()),
				record(-2, fullComplete()),
			},
			want: 1,
		},
		{
			name: "most recent day inactive",
			records: []consistency.DailyRecord{
				record(0, allMissed()),
				record(-1, fullComplete()),
			},
			want: 0,
		},
		{
			name: "partial counts as active",
			records: []consistency.DailyRecord{
				record(0, consistency.Metrics{consistency.CategoryDSA: consistency.StatusPartial}),
				record(-1, fullComplete()),
			},
			want: 2,
		},
		{
			name: "unsorted input",
			records: []consistency.DailyRecord{
				record(-2, fullComplete()),
				record(0, fullComplete()),
				record(-1, fullComplete()),
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.records, today))
		})
	}
}

func TestComputeBestDay(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		best := ComputeBestDay(nil)
		assert.False(t, best.Found)
	})

	t.Run("picks highest score", func(t *testing.T) {
		records := []consistency.DailyRecord{
			record(-2, consistency.Metrics{consistency.CategoryDSA: consistency.StatusPartial}),
			record(-1, fullComplete()),
			record(0, allMissed()),
		}
		best := ComputeBestDay(records)
		require.True(t, best.Found)
		assert.Equal(t, day(-1), best.Date)
		assert.Equal(t, 100.0, best.Score)
	})

	t.Run("ties resolve to earliest date", func(t *testing.T) {
		records := []consistency.DailyRecord{
			record(0, fullComplete()),
			record(-5, fullComplete()),
			record(-2, fullComplete()),
		}
		best := ComputeBestDay(records)
		require.True(t, best.Found)
		assert.Equal(t, day(-5), best.Date)
	})

	t.Run("tie break independent of input order", func(t *testing.T) {
		a := []consistency.DailyRecord{record(-5, fullComplete()), record(0, fullComplete())}
		b := []consistency.DailyRecord{record(0, fullComplete()), record(-5, fullComplete())}
		assert.Equal(t, ComputeBestDay(a), ComputeBestDay(b))
	})
}

func TestRollingAverage(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, 0, RollingAverage(nil, 7, today))
	})

	t.Run("averages scores inside the window", func(t *testing.T) {
		records := []consistency.DailyRecord{
			record(0, fullComplete()), // 100
			record(-1, consistency.Metrics{consistency.CategoryDSA: consistency.StatusPartial}), // 50
		}
		assert.Equal(t, 75, RollingAverage(records, 7, today))
	})

	t.Run("ignores records outside the window", func(t *testing.T) {
		records := []consistency.DailyRecord{
			record(0, fullComplete()),
			record(-10, allMissed()),
		}
		assert.Equal(t, 100, RollingAverage(records, 7, today))
	})

	t.Run("window boundary is inclusive", func(t *testing.T) {
		records := []consistency.DailyRecord{
			record(-7, fullComplete()),
		}
		assert.Equal(t, 100, RollingAverage(records, 7, today))
		assert.Equal(t, 0, RollingAverage(records, 6, today))
	})
}

func TestVelocitySeries(t *testing.T) {
	t.Run("empty records give dense zero series", func(t *testing.T) {
		series := VelocitySeries(nil, 14, today)
		require.Len(t, series, 14)
		for i, point := range series {
			assert.Equal(t, day(-13+i), point.Date)
			assert.Zero(t, point.Score)
		}
	})

	t.Run("sparse records are gap filled", func(t *testing.T) {
		records := []consistency.DailyRecord{
			record(0, fullComplete()),
			record(-3, consistency.Metrics{consistency.CategoryDSA: consistency.StatusPartial}),
		}
		series := VelocitySeries(records, 7, today)
		require.Len(t, series, 7)

		assert.Equal(t, 100.0, series[6].Score)
		assert.Equal(t, 50.0, series[3].Score)
		for _, i := range []int{0, 1, 2, 4, 5} {
			assert.Zero(t, series[i].Score)
		}
	})

	t.Run("ascending date order", func(t *testing.T) {
		series := VelocitySeries(nil, 5, today)
		for i := 1; i < len(series); i++ {
			assert.True(t, series[i].Date.After(series[i-1].Date))
		}
	})

	t.Run("repeated calls are identical", func(t *testing.T) {
		records := []consistency.DailyRecord{record(0, fullComplete())}
		assert.Equal(t, VelocitySeries(records, 14, today), VelocitySeries(records, 14, today))
	})
}

func TestWeeklyTrend(t *testing.T) {
	makeTask := func(createdOffset int, completedOffset *int) task.Task {
		tk := task.Task{CreatedAt: day(createdOffset), Status: task.StatusPending}
		if completedOffset != nil {
			completed := day(*completedOffset)
			tk.CompletedAt = &completed
			tk.Status = task.StatusComplete
		}
		return tk
	}
	intPtr := func(i int) *int { return &i }

	t.Run("empty input gives empty buckets", func(t *testing.T) {
		buckets := WeeklyTrend(nil, 8, today)
		require.Len(t, buckets, 8)
		for _, b := range buckets {
			assert.Zero(t, b.Total)
			assert.Zero(t, b.Completed)
			assert.Zero(t, b.Rate)
		}
	})

	t.Run("buckets are consecutive and oldest first", func(t *testing.T) {
		buckets := WeeklyTrend(nil, 4, today)
		require.Len(t, buckets, 4)
		assert.Equal(t, today, buckets[3].WeekEnd)
		for i := 1; i < len(buckets); i++ {
			assert.Equal(t, buckets[i-1].WeekEnd.AddDate(0, 0, 1), buckets[i].WeekStart)
		}
	})

	t.Run("creation and completion windows are independent", func(t *testing.T) {
		// Created in the first bucket, completed two buckets later.
		tk := makeTask(-15, intPtr(-1))
		buckets := WeeklyTrend([]task.Task{tk}, 3, today)
		require.Len(t, buckets, 3)

		assert.Equal(t, 1, buckets[0].Total)
		assert.Zero(t, buckets[0].Completed)
		assert.Zero(t, buckets[2].Total)
		assert.Equal(t, 1, buckets[2].Completed)
	})

	t.Run("completed can exceed total in a bucket", func(t *testing.T) {
		tasks := []task.Task{
			makeTask(-20, intPtr(0)),
			makeTask(-21, intPtr(-1)),
		}
		buckets := WeeklyTrend(tasks, 2, today)
		require.Len(t, buckets, 2)
		assert.Zero(t, buckets[1].Total)
		assert.Equal(t, 2, buckets[1].Completed)
	})

	t.Run("rate computed per bucket", func(t *testing.T) {
		tasks := []task.Task{
			makeTask(-2, intPtr(-1)),
			makeTask(-3, nil),
		}
		buckets := WeeklyTrend(tasks, 1, today)
		require.Len(t, buckets, 1)
		assert.Equal(t, 2, buckets[0].Total)
		assert.Equal(t, 1, buckets[0].Completed)
		assert.Equal(t, 50, buckets[0].Rate)
	})
}

func TestCategoryBreakdown(t *testing.T) {
	tasks := []task.Task{
		{Category: task.CategoryHabit},
		{Category: task.CategoryHabit},
		{Category: task.CategoryOneOff},
		{Category: ""},
	}

	entries := CategoryBreakdown(tasks)
	require.Len(t, entries, 3)
	assert.Equal(t, BreakdownEntry{Key: "habit", Count: 2}, entries[0])

	found := map[string]int{}
	for _, e := range entries {
		found[e.Key] = e.Count
	}
	assert.Equal(t, 1, found["one-off"])
	assert.Equal(t, 1, found["unknown"])
}

func TestPriorityBreakdownSkipsCompleted(t *testing.T) {
	tasks := []task.Task{
		{Priority: task.PriorityHigh, Status: task.StatusPending},
		{Priority: task.PriorityHigh, Status: task.StatusComplete},
		{Priority: task.PriorityLow, Status: task.StatusInProgress},
	}

	entries := PriorityBreakdown(tasks)
	require.Len(t, entries, 2)

	found := map[string]int{}
	for _, e := range entries {
		found[e.Key] = e.Count
	}
	assert.Equal(t, 1, found["high"])
	assert.Equal(t, 1, found["low"])
}

func TestPureFunctionsDoNotMutateInput(t *testing.T) {
	records := []consistency.DailyRecord{
		record(-2, fullComplete()),
		record(0, fullComplete()),
	}
	original := make([]consistency.DailyRecord, len(records))
	copy(original, records)

	Streak(records, today)
	ComputeBestDay(records)
	RollingAverage(records, 7, today)
	VelocitySeries(records, 14, today)

	assert.Equal(t, original, records)
}
