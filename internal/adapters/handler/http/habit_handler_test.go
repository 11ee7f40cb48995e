package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

func createHabit(t *testing.T, app *testApp, body string) domain.Habit {
	t.Helper()
	w := app.do("POST", "/api/v1/habits", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Habit](t, w)
}

func TestCreateHabit(t *testing.T) {
	t.Run("Success: 201 Created", func(t *testing.T) {
		app := setupApp(t, false)

		w := app.do("POST", "/api/v1/habits", `{"name": "Gym", "color": "#FF0000", "categories": ["health", " health "]}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		h := decode[domain.Habit](t, w)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Gym", h.Name)
		assert.Equal(t, []string{"health"}, h.Categories)
		assert.Equal(t, domain.DefaultIcon, h.Icon)
	})

	t.Run("Fail: 400 Bad Request (Missing name)", func(t *testing.T) {
		app := setupApp(t, false)
		w := app.do("POST", "/api/v1/habits", `{"name": ""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 Bad Request (Validation)", func(t *testing.T) {
		app := setupApp(t, false)
		w := app.do("POST", "/api/v1/habits", `{"name": "Gym", "completionTracking": "vibes"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "completion tracking")
	})

	t.Run("Fail: 400 Bad Request (Malformed JSON)", func(t *testing.T) {
		app := setupApp(t, false)
		w := app.do("POST", "/api/v1/habits", `{"name": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListAndGetHabits(t *testing.T) {
	app := setupApp(t, false)
	read := createHabit(t, app, `{"name": "Read"}`)
	createHabit(t, app, `{"name": "Run"}`)

	t.Run("Success: Lists active habits", func(t *testing.T) {
		w := app.do("GET", "/api/v1/habits", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.Habit](t, w), 2)
	})

	t.Run("Success: Gets one habit", func(t *testing.T) {
		w := app.do("GET", "/api/v1/habits/"+read.ID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Read", decode[domain.Habit](t, w).Name)
	})

	t.Run("Fail: 404 Not Found", func(t *testing.T) {
		w := app.do("GET", "/api/v1/habits/missing", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateHabit(t *testing.T) {
	app := setupApp(t, false)
	h := createHabit(t, app, `{"name": "Read", "subtitle": "books"}`)

	t.Run("Success: Partial update", func(t *testing.T) {
		w := app.do("PATCH", "/api/v1/habits/"+h.ID, `{"name": "Read more", "targetCompletionDate": "2024-12-31"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		got := decode[domain.Habit](t, w)
		assert.Equal(t, "Read more", got.Name)
		assert.Equal(t, "books", got.Subtitle)
		require.NotNil(t, got.TargetCompletionDate)
		assert.Equal(t, domain.CalendarDay("2024-12-31"), *got.TargetCompletionDate)
	})

	t.Run("Success: Clear target date", func(t *testing.T) {
		w := app.do("PATCH", "/api/v1/habits/"+h.ID, `{"clearTargetDate": true}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, decode[domain.Habit](t, w).TargetCompletionDate)
	})

	t.Run("Fail: 400 Invalid target date", func(t *testing.T) {
		w := app.do("PATCH", "/api/v1/habits/"+h.ID, `{"targetCompletionDate": "someday"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 400 Invalid color", func(t *testing.T) {
		w := app.do("PATCH", "/api/v1/habits/"+h.ID, `{"color": "blue"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: 404 Not Found", func(t *testing.T) {
		w := app.do("PATCH", "/api/v1/habits/missing", `{"name": "x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestToggleAndSetProgress(t *testing.T) {
	app := setupApp(t, false)
	h := createHabit(t, app, `{"name": "Read"}`)
	base := "/api/v1/habits/" + h.ID

	t.Run("Success: Toggle defaults to today", func(t *testing.T) {
		w := app.do("POST", base+"/toggle", "")
		assert.Equal(t, http.StatusOK, w.Code)

		p := decode[domain.DayProgress](t, w)
		assert.Equal(t, domain.CalendarDay("2024-01-10"), p.Date)
		assert.True(t, p.Completed)
	})

	t.Run("Success: Toggle twice restores", func(t *testing.T) {
		body := `{"date": "2024-01-05"}`
		assert.True(t, decode[domain.DayProgress](t, app.do("POST", base+"/toggle", body)).Completed)
		assert.False(t, decode[domain.DayProgress](t, app.do("POST", base+"/toggle", body)).Completed)
	})

	t.Run("Success: Set progress", func(t *testing.T) {
		w := app.do("PUT", base+"/progress/2024-01-09", `{"completed": true}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[domain.DayProgress](t, w).Completed)

		got, err := app.habits.GetHabit(h.ID)
		require.NoError(t, err)
		assert.True(t, got.IsCompleted("2024-01-09"))
	})

	t.Run("Fail: 400 Invalid date", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, app.do("POST", base+"/toggle", `{"date": "yesterday"}`).Code)
		assert.Equal(t, http.StatusBadRequest, app.do("PUT", base+"/progress/2024-02-30", `{"completed": true}`).Code)
	})

	t.Run("Fail: 400 Missing completed flag", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, app.do("PUT", base+"/progress/2024-01-09", `{}`).Code)
	})

	t.Run("Fail: 404 Unknown habit", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, app.do("POST", "/api/v1/habits/missing/toggle", "").Code)
	})
}

func TestArchiveRestoreDelete(t *testing.T) {
	app := setupApp(t, false)
	h := createHabit(t, app, `{"name": "Read"}`)
	base := "/api/v1/habits/" + h.ID

	assert.Equal(t, http.StatusNoContent, app.do("POST", base+"/archive", "").Code)
	assert.Empty(t, decode[[]domain.Habit](t, app.do("GET", "/api/v1/habits", "")))

	archived := decode[[]domain.Habit](t, app.do("GET", "/api/v1/habits/archived", ""))
	require.Len(t, archived, 1)
	assert.Equal(t, h.ID, archived[0].ID)

	assert.Equal(t, http.StatusNoContent, app.do("POST", base+"/restore", "").Code)
	assert.Len(t, decode[[]domain.Habit](t, app.do("GET", "/api/v1/habits", "")), 1)

	assert.Equal(t, http.StatusNoContent, app.do("DELETE", base, "").Code)
	assert.Equal(t, http.StatusNotFound, app.do("GET", base, "").Code)
	assert.Equal(t, http.StatusNotFound, app.do("DELETE", base, "").Code)
}

func TestPersistenceWarning(t *testing.T) {
	app := setupApp(t, false)
	h := createHabit(t, app, `{"name": "Read"}`)

	app.persister.setFail(fmt.Errorf("%w: %v", domain.ErrPersistence, errors.New("disk full")))

	w := app.do("POST", "/api/v1/habits/"+h.ID+"/toggle", `{"date": "2024-01-08"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(adapterHTTP.PersistenceWarningHeader))
	assert.True(t, decode[domain.DayProgress](t, w).Completed)

	t.Run("Success: Change is visible afterwards", func(t *testing.T) {
		got, err := app.habits.GetHabit(h.ID)
		require.NoError(t, err)
		assert.True(t, got.IsCompleted("2024-01-08"))
	})

	t.Run("Success: Any backend error is reported as a warning", func(t *testing.T) {
		app.persister.setFail(errors.New("unexpected"))
		w := app.do("POST", "/api/v1/habits/"+h.ID+"/toggle", `{"date": "2024-01-07"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(adapterHTTP.PersistenceWarningHeader))
	})

	t.Run("Success: Create still returns 201", func(t *testing.T) {
		w := app.do("POST", "/api/v1/habits", `{"name": "Unsaved"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotEmpty(t, w.Header().Get(adapterHTTP.PersistenceWarningHeader))
	})
}
