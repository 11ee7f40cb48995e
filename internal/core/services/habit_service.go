package services

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

const (
	DefaultSeedDays  = 90
	DefaultRetention = 30 * 24 * time.Hour
)

// HabitService is the only path that changes a habit or its progress.
//
// Mutations that fail to persist still commit in memory and return an
// error wrapping domain.ErrPersistence together with their normal result.
type HabitService struct {
	store     *Store
	clock     Clock
	seedDays  int
	retention time.Duration
}

// NewHabitService seeds new habits with seedDays untracked days ending
// today (0 starts with an empty record) and purges archived habits after
// retention.
func NewHabitService(store *Store, clock Clock, seedDays int, retention time.Duration) *HabitService {
	if clock == nil {
		clock = SystemClock{}
	}
	if seedDays < 0 {
		seedDays = 0
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &HabitService{
		store:     store,
		clock:     clock,
		seedDays:  seedDays,
		retention: retention,
	}
}

type CreateHabitInput struct {
	Name                 string
	Subtitle             string
	Color                string
	Icon                 string
	StreakGoal           string
	Reminders            int
	Categories           []string
	CompletionTracking   string
	CompletionsPerDay    int
	TargetCompletionDate string
}

type UpdateHabitInput struct {
	ID string
	domain.HabitPatch
}

func (s *HabitService) Today() domain.CalendarDay {
	return domain.DayOf(s.clock.Now())
}

func parseOptionalDay(raw string) (*domain.CalendarDay, error) {
	if raw == "" {
		return nil, nil
	}
	day, err := domain.ParseDay(raw)
	if err != nil {
		return nil, domain.ErrInvalidTargetDate
	}
	return &day, nil
}

func (s *HabitService) AddHabit(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	target, err := parseOptionalDay(input.TargetCompletionDate)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	habit, err := domain.NewHabit(domain.HabitAttributes{
		Name:                 input.Name,
		Subtitle:             input.Subtitle,
		Color:                input.Color,
		Icon:                 input.Icon,
		StreakGoal:           input.StreakGoal,
		Reminders:            input.Reminders,
		Categories:           input.Categories,
		CompletionTracking:   input.CompletionTracking,
		CompletionsPerDay:    input.CompletionsPerDay,
		TargetCompletionDate: target,
	}, now)
	if err != nil {
		return nil, err
	}

	habit.Seed(domain.GenerateWindow(s.seedDays, domain.DayOf(now)))

	var created *domain.Habit
	err = s.store.Update(ctx, func(tx *Tx) (*Event, error) {
		if err := tx.Habits.Add(habit); err != nil {
			return nil, err
		}
		created = habit.Clone()
		return &Event{Kind: EventHabitAdded, HabitIDs: []string{habit.ID}}, nil
	})
	return created, err
}

// mutateHabit runs fn against the live habit id. Unknown ids are a no-op
// reported as domain.ErrHabitNotFound.
func (s *HabitService) mutateHabit(ctx context.Context, op, id string, kind EventKind, fn func(h *domain.Habit, now time.Time) error) error {
	return s.store.Update(ctx, func(tx *Tx) (*Event, error) {
		h, ok := tx.Habits.Get(id)
		if !ok {
			log.Printf("[HABITS] %s: habit %s not found", op, id)
			return nil, domain.ErrHabitNotFound
		}
		if err := fn(h, s.clock.Now()); err != nil {
			return nil, err
		}
		return &Event{Kind: kind, HabitIDs: []string{id}}, nil
	})
}

// ToggleCompletion marks day completed when it has no entry yet, otherwise
// flips its completion.
func (s *HabitService) ToggleCompletion(ctx context.Context, id string, day domain.CalendarDay) (domain.DayProgress, error) {
	if !day.Valid() {
		return domain.DayProgress{}, domain.ErrInvalidDay
	}

	var result domain.DayProgress
	err := s.mutateHabit(ctx, "toggle", id, EventProgressChanged, func(h *domain.Habit, now time.Time) error {
		result = h.Toggle(day, now)
		return nil
	})
	return result, err
}

func (s *HabitService) SetCompletion(ctx context.Context, id string, day domain.CalendarDay, completed bool) (domain.DayProgress, error) {
	if !day.Valid() {
		return domain.DayProgress{}, domain.ErrInvalidDay
	}

	var result domain.DayProgress
	err := s.mutateHabit(ctx, "set completion", id, EventProgressChanged, func(h *domain.Habit, now time.Time) error {
		result = h.SetCompletion(day, completed, now)
		return nil
	})
	return result, err
}

// EditHabit merges the provided fields. Progress and id never change.
func (s *HabitService) EditHabit(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	var edited *domain.Habit
	err := s.mutateHabit(ctx, "edit", input.ID, EventHabitEdited, func(h *domain.Habit, now time.Time) error {
		if err := h.Apply(input.HabitPatch, now); err != nil {
			return err
		}
		edited = h.Clone()
		return nil
	})
	return edited, err
}

func (s *HabitService) ArchiveHabit(ctx context.Context, id string) error {
	return s.mutateHabit(ctx, "archive", id, EventHabitArchived, func(h *domain.Habit, now time.Time) error {
		h.Archive(now)
		return nil
	})
}

func (s *HabitService) RestoreHabit(ctx context.Context, id string) error {
	return s.mutateHabit(ctx, "restore", id, EventHabitRestored, func(h *domain.Habit, now time.Time) error {
		h.Restore(now)
		return nil
	})
}

func (s *HabitService) PermanentlyDeleteHabit(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(tx *Tx) (*Event, error) {
		if !tx.Habits.Remove(id) {
			log.Printf("[HABITS] delete: habit %s not found", id)
			return nil, domain.ErrHabitNotFound
		}
		return &Event{Kind: EventHabitDeleted, HabitIDs: []string{id}}, nil
	})
}

func (s *HabitService) GetHabit(id string) (*domain.Habit, error) {
	var found *domain.Habit
	s.store.View(func(habits *domain.HabitCollection, _ domain.Preferences) {
		if h, ok := habits.Get(id); ok {
			found = h.Clone()
		}
	})
	if found == nil {
		return nil, domain.ErrHabitNotFound
	}
	return found, nil
}

func (s *HabitService) ListActive() []*domain.Habit {
	var list []*domain.Habit
	s.store.View(func(habits *domain.HabitCollection, _ domain.Preferences) {
		list = cloneAll(habits.Active())
	})
	return list
}

// ListArchived runs the retention sweep, then returns what is left.
func (s *HabitService) ListArchived(ctx context.Context) ([]*domain.Habit, error) {
	_, err := s.SweepArchived(ctx)

	var list []*domain.Habit
	s.store.View(func(habits *domain.HabitCollection, _ domain.Preferences) {
		list = cloneAll(habits.Archived())
	})
	return list, err
}

// SweepArchived permanently deletes habits archived for longer than the
// retention period and returns how many were removed. Running it again
// without time passing removes nothing.
func (s *HabitService) SweepArchived(ctx context.Context) (int, error) {
	purged := 0
	err := s.store.Update(ctx, func(tx *Tx) (*Event, error) {
		now := s.clock.Now()

		var ids []string
		for _, h := range tx.Habits.Archived() {
			if h.ArchivedFor(now) > s.retention {
				ids = append(ids, h.ID)
			}
		}
		if len(ids) == 0 {
			return nil, nil
		}

		for _, id := range ids {
			tx.Habits.Remove(id)
		}
		purged = len(ids)
		log.Printf("[SWEEP] Purged %d habits archived more than %s ago", purged, s.retention)
		return &Event{Kind: EventHabitsPurged, HabitIDs: ids}, nil
	})
	return purged, err
}

func cloneAll(habits []*domain.Habit) []*domain.Habit {
	list := make([]*domain.Habit, len(habits))
	for i, h := range habits {
		list[i] = h.Clone()
	}
	return list
}
