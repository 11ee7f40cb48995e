// Package analytics derives habit metrics from a progress record. Every
// function is pure: inputs are never modified and no I/O happens.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// Percent returns round(100 * part / total) with halves rounded up, and 0
// when total is zero.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(100*float64(part)/float64(total) + 0.5))
}

// completedDays returns the distinct completed days in ascending order.
func completedDays(progress []domain.DayProgress) []domain.CalendarDay {
	seen := make(map[domain.CalendarDay]bool)
	days := make([]domain.CalendarDay, 0, len(progress))
	for _, p := range progress {
		if p.Completed && !seen[p.Date] {
			seen[p.Date] = true
			days = append(days, p.Date)
		}
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})
	return days
}

// OverallCompletionRate counts only tracked days; days never recorded in
// progress do not contribute.
func OverallCompletionRate(progress []domain.DayProgress) int {
	completed := 0
	for _, p := range progress {
		if p.Completed {
			completed++
		}
	}
	return Percent(completed, len(progress))
}

// CurrentStreak counts consecutive completed days ending today. A streak
// whose last completion was yesterday is still alive.
func CurrentStreak(progress []domain.DayProgress, today domain.CalendarDay) int {
	days := completedDays(progress)
	if len(days) == 0 {
		return 0
	}

	completed := make(map[domain.CalendarDay]bool, len(days))
	for _, d := range days {
		completed[d] = true
	}

	anchor := today
	if !completed[anchor] {
		anchor = today.AddDays(-1)
		if !completed[anchor] {
			return 0
		}
	}

	// Walk the descending list from the anchor; the first completion older
	// than the expected day is a gap.
	streak := 1
	expected := anchor.AddDays(-1)
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		if !d.Before(anchor) {
			continue
		}
		if d != expected {
			break
		}
		streak++
		expected = expected.AddDays(-1)
	}
	return streak
}

// BestStreak returns the longest run of consecutive completed days.
func BestStreak(progress []domain.DayProgress) int {
	days := completedDays(progress)
	if len(days) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if domain.DaysBetween(days[i-1], days[i]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// MonthLabel formats a month as "Jan 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String()[:3], year)
}

// MonthlyConsistency counts completions per calendar month, oldest month
// first. Months without completions are omitted.
func MonthlyConsistency(progress []domain.DayProgress) []domain.MonthCount {
	series := []domain.MonthCount{}
	for _, d := range completedDays(progress) {
		year, month := d.Year(), int(d.Month())
		if n := len(series); n > 0 && series[n-1].Year == year && series[n-1].Month == month {
			series[n-1].Count++
			continue
		}
		series = append(series, domain.MonthCount{
			Label: MonthLabel(year, time.Month(month)),
			Year:  year,
			Month: month,
			Count: 1,
		})
	}
	return series
}

// WeeklyCompletionRate buckets every tracked day by weekday and returns
// exactly seven rates, Sunday through Saturday.
func WeeklyCompletionRate(progress []domain.DayProgress) []domain.WeekdayRate {
	var tracked, completed [7]int
	for _, p := range progress {
		wd := p.Date.Weekday()
		tracked[wd]++
		if p.Completed {
			completed[wd]++
		}
	}

	rates := make([]domain.WeekdayRate, 7)
	for wd := 0; wd < 7; wd++ {
		rates[wd] = domain.WeekdayRate{
			Weekday: wd,
			Label:   time.Weekday(wd).String()[:3],
			Rate:    Percent(completed[wd], tracked[wd]),
			Tracked: tracked[wd],
		}
	}
	return rates
}

// OrderWeek rotates a Sunday-first weekday series so that it starts on
// Monday when mondayFirst is set. The input is not modified.
func OrderWeek(rates []domain.WeekdayRate, mondayFirst bool) []domain.WeekdayRate {
	ordered := make([]domain.WeekdayRate, 0, len(rates))
	if !mondayFirst || len(rates) == 0 {
		return append(ordered, rates...)
	}
	ordered = append(ordered, rates[1:]...)
	return append(ordered, rates[0])
}

// LastNDays returns the n days ending at anchor with their completion
// state. Untracked days read as not completed.
func LastNDays(progress []domain.DayProgress, n int, anchor domain.CalendarDay) []domain.DayProgress {
	completed := make(map[domain.CalendarDay]bool, len(progress))
	for _, p := range progress {
		if p.Completed {
			completed[p.Date] = true
		}
	}

	window := domain.GenerateWindow(n, anchor)
	out := make([]domain.DayProgress, len(window))
	for i, d := range window {
		out[i] = domain.DayProgress{Date: d, Completed: completed[d]}
	}
	return out
}
