// Package analytics derives streaks, scores and trend series from stored
// records. Every function here is pure: inputs are never mutated, results
// depend only on arguments, and empty input yields zero-valued defaults
// rather than errors.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/consistency"
	"github.com/RishabhMalviya75/ZenithTrack/internal/domain/task"
)

// DayPoint is one entry of a velocity series.
type DayPoint struct {
	Date  time.Time
	Score float64
}

// BestDay is the highest-scoring logged day. Found is false when no
// records exist.
type BestDay struct {
	Date  time.Time
	Score float64
	Found bool
}

// TrendBucket summarizes one 7-day window. Total counts tasks created in
// the window; Completed counts tasks finished in it. The two filters are
// independent, so Completed can exceed Total when old tasks are finished
// late.
type TrendBucket struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Total     int
	Completed int
	Rate      int
}

// BreakdownEntry is one group of a category or priority breakdown.
type BreakdownEntry struct {
	Key   string
	Count int
}

// unknownBucket groups tasks whose category or priority value is missing.
const unknownBucket = "unknown"

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// isActive reports whether at least one category on the day was Complete
// or Partial.
func isActive(record consistency.DailyRecord) bool {
	for _, status := range record.Metrics {
		if status == consistency.StatusComplete || status == consistency.StatusPartial {
			return true
		}
	}
	return false
}

// DayScore is the weighted completion percentage for one day: Complete
// counts 1.0, Partial 0.5, Missed and No Tasks 0. A record with no logged
// categories scores 0.
func DayScore(record consistency.DailyRecord) float64 {
	if len(record.Metrics) == 0 {
		return 0
	}

	var sum float64
	for _, status := range record.Metrics {
		switch status {
		case consistency.StatusComplete:
			sum += 1.0
		case consistency.StatusPartial:
			sum += 0.5
		}
	}

	return sum / float64(len(record.Metrics)) * 100
}

// RoundScore rounds a day score to one decimal place for display. Raw
// scores stay unrounded when compared.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

// Streak counts consecutive active days ending at today or yesterday. A
// most recent record older than yesterday means the chain is already
// broken, so the streak is 0 regardless of older activity.
func Streak(records []consistency.DailyRecord, today time.Time) int {
	if len(records) == 0 {
		return 0
	}

	today = truncateDay(today)

	sorted := make([]consistency.DailyRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	mostRecent := truncateDay(sorted[0].Date)
	daysBehind := int(today.Sub(mostRecent).Hours() / 24)
	if daysBehind > 1 || daysBehind < 0 {
		return 0
	}

	streak := 0
	prev := mostRecent.AddDate(0, 0, 1)

	for _, record := range sorted {
		date := truncateDay(record.Date)
		gap := int(prev.Sub(date).Hours() / 24)
		if gap > 1 {
			break
		}
		if !isActive(record) {
			break
		}
		streak++
		prev = date
	}

	return streak
}

// ComputeBestDay returns the date with the highest day score. Ties resolve
// to the earliest date so the result does not depend on input order.
func ComputeBestDay(records []consistency.DailyRecord) BestDay {
	best := BestDay{}

	for _, record := range records {
		score := DayScore(record)
		date := truncateDay(record.Date)

		if !best.Found || score > best.Score || (score == best.Score && date.Before(best.Date)) {
			best = BestDay{Date: date, Score: score, Found: true}
		}
	}

	if best.Found {
		best.Score = RoundScore(best.Score)
	}

	return best
}

// RollingAverage is the mean day score over records dated within
// [asOf - windowDays, asOf] inclusive, rounded to the nearest integer.
// No matching records gives 0.
func RollingAverage(records []consistency.DailyRecord, windowDays int, asOf time.Time) int {
	asOf = truncateDay(asOf)
	cutoff := asOf.AddDate(0, 0, -windowDays)

	var sum float64
	var count int

	for _, record := range records {
		date := truncateDay(record.Date)
		if date.Before(cutoff) || date.After(asOf) {
			continue
		}
		sum += DayScore(record)
		count++
	}

	if count == 0 {
		return 0
	}

	return int(math.Round(sum / float64(count)))
}

// VelocitySeries produces exactly numDays points, one per calendar day
// from asOf-(numDays-1) to asOf inclusive in ascending order. Days with
// no record score 0, so chart consumers always get a dense series.
func VelocitySeries(records []consistency.DailyRecord, numDays int, asOf time.Time) []DayPoint {
	if numDays <= 0 {
		return []DayPoint{}
	}

	asOf = truncateDay(asOf)

	byDate := make(map[time.Time]consistency.DailyRecord, len(records))
	for _, record := range records {
		byDate[truncateDay(record.Date)] = record
	}

	series := make([]DayPoint, 0, numDays)
	for i := numDays - 1; i >= 0; i-- {
		date := asOf.AddDate(0, 0, -i)
		point := DayPoint{Date: date}
		if record, ok := byDate[date]; ok {
			point.Score = RoundScore(DayScore(record))
		}
		series = append(series, point)
	}

	return series
}

// WeeklyTrend partitions the trailing numWeeks*7 days into 7-day buckets
// ending at asOf, oldest first. Per bucket, Total counts tasks created in
// the window and Completed counts tasks whose CompletedAt falls in it.
func WeeklyTrend(tasks []task.Task, numWeeks int, asOf time.Time) []TrendBucket {
	if numWeeks <= 0 {
		return []TrendBucket{}
	}

	asOfEnd := truncateDay(asOf).AddDate(0, 0, 1) // exclusive upper bound

	buckets := make([]TrendBucket, numWeeks)
	for i := 0; i < numWeeks; i++ {
		end := asOfEnd.AddDate(0, 0, -7*(numWeeks-1-i))
		start := end.AddDate(0, 0, -7)
		buckets[i] = TrendBucket{
			WeekStart: start,
			WeekEnd:   end.AddDate(0, 0, -1),
		}
	}

	inWindow := func(t time.Time, b TrendBucket) bool {
		d := truncateDay(t)
		return !d.Before(b.WeekStart) && !d.After(b.WeekEnd)
	}

	for _, tk := range tasks {
		for i := range buckets {
			if inWindow(tk.CreatedAt, buckets[i]) {
				buckets[i].Total++
			}
			if tk.CompletedAt != nil && inWindow(*tk.CompletedAt, buckets[i]) {
				buckets[i].Completed++
			}
		}
	}

	for i := range buckets {
		if buckets[i].Total > 0 {
			buckets[i].Rate = int(math.Round(float64(buckets[i].Completed) / float64(buckets[i].Total) * 100))
		}
	}

	return buckets
}

// CategoryBreakdown groups all tasks by category. Missing values land in
// the "unknown" bucket instead of being dropped.
func CategoryBreakdown(tasks []task.Task) []BreakdownEntry {
	counts := make(map[string]int)
	for _, tk := range tasks {
		key := string(tk.Category)
		if key == "" {
			key = unknownBucket
		}
		counts[key]++
	}
	return sortedBreakdown(counts)
}

// PriorityBreakdown groups open (non-Complete) tasks by priority, since
// finished work no longer competes for attention.
func PriorityBreakdown(tasks []task.Task) []BreakdownEntry {
	counts := make(map[string]int)
	for _, tk := range tasks {
		if tk.Status == task.StatusComplete {
			continue
		}
		key := string(tk.Priority)
		if key == "" {
			key = unknownBucket
		}
		counts[key]++
	}
	return sortedBreakdown(counts)
}

// sortedBreakdown orders entries by count descending, then key ascending,
// so the output is deterministic.
func sortedBreakdown(counts map[string]int) []BreakdownEntry {
	entries := make([]BreakdownEntry, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, BreakdownEntry{Key: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
