// Package analytics buckets raw practice sessions into daily/weekly time
// series and computes consecutive-day streaks. It is pure: no I/O, inputs
// are never mutated, and all calendar math is done in UTC so a user's
// streak cannot change with device timezone.
package analytics

import (
	"sort"
	"time"
)

// SessionSample is the slice of a session row the aggregator needs.
type SessionSample struct {
	CreatedAt       time.Time
	Repetitions     int
	DurationSeconds int
}

type DayBucket struct {
	Date            string `json:"date"`
	Sessions        int    `json:"sessions"`
	Repetitions     int    `json:"repetitions"`
	DurationSeconds int    `json:"duration_seconds"`
}

type WeekBucket struct {
	WeekStart       string `json:"week_start"`
	Sessions        int    `json:"sessions"`
	Repetitions     int    `json:"repetitions"`
	DurationSeconds int    `json:"duration_seconds"`
}

type StreakSummary struct {
	Current         int
	Longest         int
	LastPracticeDay *time.Time
}

const dayFormat = "2006-01-02"

// dayUTC truncates an instant to its UTC calendar day.
func dayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStartUTC returns the Sunday starting the week containing t.
func weekStartUTC(t time.Time) time.Time {
	d := dayUTC(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// valid rejects malformed rows rather than trusting caller validation.
func valid(s SessionSample) bool {
	return !s.CreatedAt.IsZero() && s.Repetitions >= 0 && s.DurationSeconds >= 0
}

// DailySeries emits one bucket per calendar day in the lookback window
// ending at now, zero-filled for days with no sessions. Sessions outside
// the window are ignored.
func DailySeries(samples []SessionSample, lookbackDays int, now time.Time) []DayBucket {
	if lookbackDays < 1 {
		lookbackDays = 1
	}
	end := dayUTC(now)
	start := end.AddDate(0, 0, -(lookbackDays - 1))

	sums := make(map[string]*DayBucket)
	for _, s := range samples {
		if !valid(s) {
			continue
		}
		d := dayUTC(s.CreatedAt)
		if d.Before(start) || d.After(end) {
			continue
		}
		key := d.Format(dayFormat)
		b, ok := sums[key]
		if !ok {
			b = &DayBucket{Date: key}
			sums[key] = b
		}
		b.Sessions++
		b.Repetitions += s.Repetitions
		b.DurationSeconds += s.DurationSeconds
	}

	series := make([]DayBucket, 0, lookbackDays)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayFormat)
		if b, ok := sums[key]; ok {
			series = append(series, *b)
		} else {
			series = append(series, DayBucket{Date: key})
		}
	}
	return series
}

// WeeklySeries buckets sessions by the Sunday starting their week. Unlike
// DailySeries, weeks without sessions are omitted rather than zero-filled;
// that asymmetry is the observed product behavior and is kept on purpose.
func WeeklySeries(samples []SessionSample, lookbackDays int, now time.Time) []WeekBucket {
	if lookbackDays < 1 {
		lookbackDays = 1
	}
	end := dayUTC(now)
	start := end.AddDate(0, 0, -(lookbackDays - 1))

	sums := make(map[string]*WeekBucket)
	for _, s := range samples {
		if !valid(s) {
			continue
		}
		d := dayUTC(s.CreatedAt)
		if d.Before(start) || d.After(end) {
			continue
		}
		key := weekStartUTC(d).Format(dayFormat)
		b, ok := sums[key]
		if !ok {
			b = &WeekBucket{WeekStart: key}
			sums[key] = b
		}
		b.Sessions++
		b.Repetitions += s.Repetitions
		b.DurationSeconds += s.DurationSeconds
	}

	series := make([]WeekBucket, 0, len(sums))
	for _, b := range sums {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].WeekStart < series[j].WeekStart
	})
	return series
}

// Streaks walks the distinct practice days and returns the longest run of
// consecutive calendar days plus the current run. The current streak is
// live only while the last practice day is today or yesterday relative to
// now; otherwise it reports 0 even though the longest streak stands.
func Streaks(samples []SessionSample, now time.Time) StreakSummary {
	daySet := make(map[time.Time]struct{})
	for _, s := range samples {
		if !valid(s) {
			continue
		}
		daySet[dayUTC(s.CreatedAt)] = struct{}{}
	}
	if len(daySet) == 0 {
		return StreakSummary{}
	}

	days := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := days[len(days)-1]
	summary := StreakSummary{Longest: longest, LastPracticeDay: &last}

	today := dayUTC(now)
	yesterday := today.AddDate(0, 0, -1)
	if last.Equal(today) || last.Equal(yesterday) {
		summary.Current = run
	}
	return summary
}
