package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

func TestStatsHandlers(t *testing.T) {
	app := setupApp(t, false)
	h := createHabit(t, app, `{"name": "Read"}`)
	base := "/api/v1/habits/" + h.ID

	for _, d := range []string{"2024-01-08", "2024-01-09", "2024-01-10"} {
		require.Equal(t, http.StatusOK, app.do("PUT", base+"/progress/"+d, `{"completed": true}`).Code)
	}

	t.Run("Success: Habit stats", func(t *testing.T) {
		w := app.do("GET", base+"/stats", "")
		assert.Equal(t, http.StatusOK, w.Code)

		s := decode[domain.HabitStats](t, w)
		assert.Equal(t, 3, s.CurrentStreak)
		assert.Equal(t, 100, s.CompletionRate)
		assert.Len(t, s.WeeklyCompletion, 7)
	})

	t.Run("Success: Default window is a week", func(t *testing.T) {
		w := app.do("GET", base+"/window", "")
		assert.Equal(t, http.StatusOK, w.Code)

		window := decode[[]domain.DayProgress](t, w)
		require.Len(t, window, 7)
		assert.Equal(t, domain.CalendarDay("2024-01-04"), window[0].Date)
		assert.True(t, window[6].Completed)
	})

	t.Run("Success: Custom window", func(t *testing.T) {
		w := app.do("GET", base+"/window?days=30", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.DayProgress](t, w), 30)
	})

	t.Run("Fail: 400 Bad window", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, app.do("GET", base+"/window?days=abc", "").Code)
		assert.Equal(t, http.StatusBadRequest, app.do("GET", base+"/window?days=0", "").Code)
	})

	t.Run("Success: Overview", func(t *testing.T) {
		w := app.do("GET", "/api/v1/stats/overview", "")
		assert.Equal(t, http.StatusOK, w.Code)

		ov := decode[domain.Overview](t, w)
		assert.Equal(t, 1, ov.ActiveHabits)
		assert.Equal(t, 1, ov.CompletedToday)
		assert.Equal(t, 3, ov.BestCurrentStreak)
	})

	t.Run("Fail: 404 Unknown habit", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, app.do("GET", "/api/v1/habits/missing/stats", "").Code)
		assert.Equal(t, http.StatusNotFound, app.do("GET", "/api/v1/habits/missing/window", "").Code)
	})
}
