package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

var testNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.Local)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// switchablePersister fails on demand to exercise the warning header.
type switchablePersister struct {
	mu   sync.Mutex
	fail error
}

func (p *switchablePersister) Persist(context.Context, []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fail
}

func (p *switchablePersister) setFail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = err
}

type testApp struct {
	router    *gin.Engine
	habits    *services.HabitService
	tokens    *services.TokenService
	persister *switchablePersister
}

func setupApp(t *testing.T, withAuth bool) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	persister := &switchablePersister{}
	store := services.NewStore(persister)
	clock := fixedClock{now: testNow}

	habits := services.NewHabitService(store, clock, 0, services.DefaultRetention)
	stats := services.NewStatsService(store, clock)
	prefs := services.NewPreferencesService(store)

	app := &testApp{habits: habits, persister: persister}
	deps := adapterHTTP.RouterDependencies{
		HabitHandler:       adapterHTTP.NewHabitHandler(habits),
		StatsHandler:       adapterHTTP.NewStatsHandler(stats),
		PreferencesHandler: adapterHTTP.NewPreferencesHandler(prefs),
		StartTime:          testNow,
	}

	if withAuth {
		app.tokens = services.NewTokenService("handler-secret", "kanso-test", time.Hour)
		auth, err := services.NewAuthService("open sesame", "", app.tokens)
		require.NoError(t, err)
		deps.AuthHandler = adapterHTTP.NewAuthHandler(auth)
		deps.TokenService = app.tokens
	}

	app.router = adapterHTTP.NewRouter(deps)
	return app
}

func (a *testApp) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
