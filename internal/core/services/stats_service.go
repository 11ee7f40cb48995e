package services

import (
	"fmt"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

const MaxWindowDays = 366

var ErrInvalidWindow = fmt.Errorf("%w: window must be between 1 and %d days", domain.ErrValidation, MaxWindowDays)

// StatsService computes analytics on demand from the committed state. The
// weekday series follows the week-start preference.
type StatsService struct {
	store *Store
	clock Clock
}

func NewStatsService(store *Store, clock Clock) *StatsService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &StatsService{
		store: store,
		clock: clock,
	}
}

func (s *StatsService) HabitStats(id string) (domain.HabitStats, error) {
	today := domain.DayOf(s.clock.Now())

	var (
		stats domain.HabitStats
		found bool
	)
	s.store.View(func(habits *domain.HabitCollection, prefs domain.Preferences) {
		h, ok := habits.Get(id)
		if !ok {
			return
		}
		found = true
		stats = analytics.SummarizeHabit(h, today)
		stats.WeeklyCompletion = analytics.OrderWeek(stats.WeeklyCompletion, prefs.WeekStartsOnMonday)
	})
	if !found {
		return domain.HabitStats{}, domain.ErrHabitNotFound
	}
	return stats, nil
}

// Window returns the last days of one habit ending today.
func (s *StatsService) Window(id string, days int) ([]domain.DayProgress, error) {
	if days < 1 || days > MaxWindowDays {
		return nil, ErrInvalidWindow
	}
	today := domain.DayOf(s.clock.Now())

	var window []domain.DayProgress
	s.store.View(func(habits *domain.HabitCollection, _ domain.Preferences) {
		if h, ok := habits.Get(id); ok {
			window = analytics.LastNDays(h.Progress, days, today)
		}
	})
	if window == nil {
		return nil, domain.ErrHabitNotFound
	}
	return window, nil
}

func (s *StatsService) Overview() domain.Overview {
	today := domain.DayOf(s.clock.Now())

	var ov domain.Overview
	s.store.View(func(habits *domain.HabitCollection, prefs domain.Preferences) {
		ov = analytics.Overview(habits.Active(), today)
		for i := range ov.Habits {
			ov.Habits[i].WeeklyCompletion = analytics.OrderWeek(ov.Habits[i].WeeklyCompletion, prefs.WeekStartsOnMonday)
		}
	})
	return ov
}
