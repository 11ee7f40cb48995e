package analytics

import "github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"

// SummarizeHabit computes the full metric set of one habit as of today.
func SummarizeHabit(h *domain.Habit, today domain.CalendarDay) domain.HabitStats {
	completed := 0
	for _, p := range h.Progress {
		if p.Completed {
			completed++
		}
	}

	return domain.HabitStats{
		HabitID:            h.ID,
		Name:               h.Name,
		Color:              h.Color,
		Icon:               h.Icon,
		CompletionRate:     OverallCompletionRate(h.Progress),
		CurrentStreak:      CurrentStreak(h.Progress, today),
		BestStreak:         BestStreak(h.Progress),
		CompletedDays:      completed,
		TrackedDays:        len(h.Progress),
		CompletedToday:     h.IsCompleted(today),
		MonthlyConsistency: MonthlyConsistency(h.Progress),
		WeeklyCompletion:   WeeklyCompletionRate(h.Progress),
	}
}

// Overview aggregates habits for the analytics screen. Archived habits are
// skipped even if passed in.
func Overview(habits []*domain.Habit, today domain.CalendarDay) domain.Overview {
	ov := domain.Overview{
		Date:   today,
		Habits: make([]domain.HabitStats, 0, len(habits)),
	}

	rateSum := 0
	for _, h := range habits {
		if h.IsArchived() {
			continue
		}

		s := SummarizeHabit(h, today)
		ov.Habits = append(ov.Habits, s)
		ov.ActiveHabits++
		rateSum += s.CompletionRate

		if s.CompletedToday {
			ov.CompletedToday++
		}
		if s.CurrentStreak > ov.BestCurrentStreak {
			ov.BestCurrentStreak = s.CurrentStreak
		}
		if s.BestStreak > ov.BestStreak {
			ov.BestStreak = s.BestStreak
		}
	}

	ov.AverageCompletionRate = Percent(rateSum, 100*ov.ActiveHabits)
	return ov
}
