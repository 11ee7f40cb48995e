package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesService_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Each toggle flips exactly one flag", func(t *testing.T) {
		store := services.NewStore(nil)
		svc := services.NewPreferencesService(store)

		prefs, err := svc.ToggleWeekStartsOnMonday(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.Preferences{WeekStartsOnMonday: true, HighlightCurrentDay: true, ShowAnalytics: true}, prefs)

		prefs, err = svc.ToggleHighlightCurrentDay(ctx)
		require.NoError(t, err)
		assert.False(t, prefs.HighlightCurrentDay)

		prefs, err = svc.ToggleShowAnalytics(ctx)
		require.NoError(t, err)
		assert.False(t, prefs.ShowAnalytics)

		assert.Equal(t, prefs, svc.Get())
	})

	t.Run("Success: Toggling twice restores the flag", func(t *testing.T) {
		svc := services.NewPreferencesService(services.NewStore(nil))

		_, err := svc.Toggle(ctx, domain.PrefShowAnalytics)
		require.NoError(t, err)
		prefs, err := svc.Toggle(ctx, domain.PrefShowAnalytics)
		require.NoError(t, err)

		assert.Equal(t, domain.DefaultPreferences(), prefs)
	})

	t.Run("Error: Unknown preference", func(t *testing.T) {
		store := services.NewStore(nil)
		svc := services.NewPreferencesService(store)

		prefs, err := svc.Toggle(ctx, "dark-mode")

		assert.ErrorIs(t, err, services.ErrUnknownPreference)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, domain.DefaultPreferences(), prefs)
		assert.Equal(t, uint64(0), store.Version())
	})

	t.Run("Fallback: Persistence failure keeps the new value", func(t *testing.T) {
		p := &recordingPersister{fail: errDiskFull}
		svc := services.NewPreferencesService(services.NewStore(p))

		prefs, err := svc.ToggleWeekStartsOnMonday(ctx)

		assert.True(t, errors.Is(err, errDiskFull))
		assert.True(t, prefs.WeekStartsOnMonday)
		assert.True(t, svc.Get().WeekStartsOnMonday)
	})
}
