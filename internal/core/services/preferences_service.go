package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

var ErrUnknownPreference = fmt.Errorf("%w: unknown preference", domain.ErrValidation)

type PreferencesService struct {
	store *Store
}

func NewPreferencesService(store *Store) *PreferencesService {
	return &PreferencesService{store: store}
}

func (s *PreferencesService) Get() domain.Preferences {
	var prefs domain.Preferences
	s.store.View(func(_ *domain.HabitCollection, p domain.Preferences) {
		prefs = p
	})
	return prefs
}

// Toggle flips the named flag and returns the resulting preferences. The
// new value is returned even when persisting it fails.
func (s *PreferencesService) Toggle(ctx context.Context, name string) (domain.Preferences, error) {
	var prefs domain.Preferences
	err := s.store.Update(ctx, func(tx *Tx) (*Event, error) {
		if !tx.Prefs.Toggle(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreference, name)
		}
		prefs = *tx.Prefs
		return &Event{Kind: EventPreferencesChanged}, nil
	})
	if errors.Is(err, ErrUnknownPreference) {
		return s.Get(), err
	}
	return prefs, err
}

func (s *PreferencesService) ToggleWeekStartsOnMonday(ctx context.Context) (domain.Preferences, error) {
	return s.Toggle(ctx, domain.PrefWeekStartsOnMonday)
}

func (s *PreferencesService) ToggleHighlightCurrentDay(ctx context.Context) (domain.Preferences, error) {
	return s.Toggle(ctx, domain.PrefHighlightCurrentDay)
}

func (s *PreferencesService) ToggleShowAnalytics(ctx context.Context) (domain.Preferences, error) {
	return s.Toggle(ctx, domain.PrefShowAnalytics)
}
