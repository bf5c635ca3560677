package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/api"
	"github.com/nhle/dashboard/internal/app"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/refresh"
	"github.com/nhle/dashboard/internal/source"
	"github.com/nhle/dashboard/tests/testutil"
)

type stubWeather struct{}

func (stubWeather) Name() source.Provider { return source.ProviderWttr }

func (stubWeather) Weather(_ context.Context, city string) (*model.WeatherReport, error) {
	if city == "Nowhere" {
		return nil, errors.New("unknown city")
	}
	return &model.WeatherReport{Location: city, Condition: model.ConditionClear, TempC: 21}, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// gatedWeather holds every lookup until release is closed.
type gatedWeather struct {
	arrived chan string
	release chan struct{}
}

func (gatedWeather) Name() source.Provider { return source.ProviderWttr }

func (g gatedWeather) Weather(ctx context.Context, city string) (*model.WeatherReport, error) {
	g.arrived <- city
	select {
	case <-g.release:
		return &model.WeatherReport{Location: city, Condition: model.ConditionClear}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func newTestRouter(t *testing.T, origins ...string) http.Handler {
	t.Helper()
	return newRouterWithWeather(t, stubWeather{}, origins...)
}

func newRouterWithWeather(t *testing.T, weather source.WeatherSource, origins ...string) http.Handler {
	t.Helper()
	cfg, err := model.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	c := app.NewContext(cfg, testutil.NewTestStore(t), testutil.NewMemorySecrets())
	c.Weather = refresh.NewWeather(weather, nil)
	c.Quotes = refresh.NewQuotes(nil)
	c.Probe.StageDelay = 0

	return api.NewRouter(api.NewHandlers(c), origins)
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, env.Data))
}

func TestTodoLifecycle(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/api/todos", `{"text":"  Buy milk  "}`)
	require.Equal(t, http.StatusCreated, code, env.Error)
	created := decode[api.CreateTodoResponse](t, env.Data)
	assert.Equal(t, "Buy milk", created.Todo.Text)
	assert.False(t, created.Todo.Completed)
	require.NotNil(t, created.Notification)
	assert.Equal(t, "Task Added", created.Notification.Title)
	assert.Equal(t, "Buy milk", created.Notification.Body)

	code, env = do(t, h, http.MethodGet, "/api/todos", "")
	require.Equal(t, http.StatusOK, code)
	todos := decode[[]model.Todo](t, env.Data)
	require.Len(t, todos, 1)

	code, env = do(t, h, http.MethodPost, "/api/todos/"+created.Todo.ID+"/toggle", "")
	require.Equal(t, http.StatusOK, code)
	todos = decode[[]model.Todo](t, env.Data)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Completed)

	code, env = do(t, h, http.MethodPost, "/api/todos/clear-completed", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]model.Todo](t, env.Data))
}

func TestCreateTodoRejectsBlankText(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/api/todos", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "text is required", env.Error)

	code, env = do(t, h, http.MethodPost, "/api/todos", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "text is required", env.Error)

	code, _ = do(t, h, http.MethodPost, "/api/todos", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCreateTodoWithoutNotifications(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPut, "/api/settings", `{"enableNotifications":false}`)
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = do(t, h, http.MethodPost, "/api/todos", `{"text":"Quiet task"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Nil(t, decode[api.CreateTodoResponse](t, env.Data).Notification)
}

func TestUnknownIDsAreNotFound(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		method, path, body, msg string
	}{
		{http.MethodPost, "/api/todos/missing/toggle", "", "todo not found"},
		{http.MethodDelete, "/api/todos/missing", "", "todo not found"},
		{http.MethodDelete, "/api/notes/missing", "", "note not found"},
		{http.MethodDelete, "/api/projects/missing", "", "project not found"},
		{http.MethodPatch, "/api/projects/missing", `{"status":"testing"}`, "project not found"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			code, env := do(t, h, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusNotFound, code)
			assert.Equal(t, tc.msg, env.Error)
		})
	}
}

func TestNotes(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/api/notes", `{"text":"first"}`)
	require.Equal(t, http.StatusCreated, code)
	first := decode[model.Note](t, env.Data)

	code, _ = do(t, h, http.MethodPost, "/api/notes", `{"text":"second"}`)
	require.Equal(t, http.StatusCreated, code)

	_, env = do(t, h, http.MethodGet, "/api/notes", "")
	notes := decode[[]model.Note](t, env.Data)
	require.Len(t, notes, 2)
	assert.Equal(t, "second", notes[0].Text)

	code, env = do(t, h, http.MethodDelete, "/api/notes/"+first.ID, "")
	require.Equal(t, http.StatusOK, code)
	notes = decode[[]model.Note](t, env.Data)
	require.Len(t, notes, 1)
	assert.Equal(t, "second", notes[0].Text)
}

func TestProjects(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/api/projects", `{"name":"Site","description":"Landing page"}`)
	require.Equal(t, http.StatusCreated, code)
	p := decode[model.Project](t, env.Data)
	assert.Equal(t, model.ProjectPlanning, p.Status)

	code, env = do(t, h, http.MethodPatch, "/api/projects/"+p.ID, `{"status":"testing"}`)
	require.Equal(t, http.StatusOK, code, env.Error)
	projects := decode[[]model.Project](t, env.Data)
	require.Len(t, projects, 1)
	assert.Equal(t, model.ProjectTesting, projects[0].Status)
	assert.Equal(t, "Site", projects[0].Name)

	code, env = do(t, h, http.MethodPatch, "/api/projects/"+p.ID, `{"status":"shipped"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Error, "status must be one of")

	code, env = do(t, h, http.MethodPost, "/api/projects", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "name is required", env.Error)

	code, env = do(t, h, http.MethodDelete, "/api/projects/"+p.ID, "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]model.Project](t, env.Data))
}

func TestCreateProjectWithStatus(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/api/projects", `{"name":"Site","status":"in-progress"}`)
	require.Equal(t, http.StatusCreated, code, env.Error)
	assert.Equal(t, model.ProjectInProgress, decode[model.Project](t, env.Data).Status)

	code, env = do(t, h, http.MethodPost, "/api/projects", `{"name":"Shop","status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Error, "status must be one of")

	code, env = do(t, h, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]model.Project](t, env.Data), 1)
}

func TestSettings(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.DefaultSettings(), decode[model.Settings](t, env.Data))

	code, env = do(t, h, http.MethodPut, "/api/settings", `{"userName":"Ada","refreshInterval":30}`)
	require.Equal(t, http.StatusOK, code, env.Error)
	s := decode[model.Settings](t, env.Data)
	assert.Equal(t, "Ada", s.UserName)
	assert.Equal(t, 30, s.RefreshInterval)
	assert.Equal(t, model.DefaultCity, s.City)

	code, env = do(t, h, http.MethodPut, "/api/settings", `{"theme":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "theme must be one of light dark", env.Error)

	code, env = do(t, h, http.MethodPost, "/api/settings/theme", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.ThemeDark, decode[model.Settings](t, env.Data).Theme)

	code, env = do(t, h, http.MethodPost, "/api/settings/reset", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.DefaultSettings(), decode[model.Settings](t, env.Data))
}

func TestWeather(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/api/weather?city=Paris", "")
	require.Equal(t, http.StatusOK, code)
	snap := decode[map[string]any](t, env.Data)
	assert.Equal(t, "success", snap["state"])
	assert.Equal(t, "Paris", snap["city"])

	code, env = do(t, h, http.MethodGet, "/api/weather?city=Nowhere", "")
	require.Equal(t, http.StatusOK, code)
	snap = decode[map[string]any](t, env.Data)
	assert.Equal(t, "failed", snap["state"])
	assert.Equal(t, refresh.FailureMessage("Nowhere"), snap["error"])
}

func TestOverlappingWeatherRequestsBothSucceed(t *testing.T) {
	weather := gatedWeather{arrived: make(chan string, 2), release: make(chan struct{})}
	h := newRouterWithWeather(t, weather)

	recorders := make(chan *httptest.ResponseRecorder, 2)
	for _, city := range []string{"Paris", "Rome"} {
		go func() {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather?city="+city, nil))
			recorders <- rec
		}()
	}

	<-weather.arrived
	<-weather.arrived
	close(weather.release)

	states := map[string]any{}
	for range 2 {
		rec := <-recorders
		require.Equal(t, http.StatusOK, rec.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		snap := decode[map[string]any](t, env.Data)
		states[snap["city"].(string)] = snap["state"]
	}
	assert.Equal(t, map[string]any{"Paris": "success", "Rome": "success"}, states)
}

func TestQuoteFallsBack(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/api/quote", "")
	require.Equal(t, http.StatusOK, code)
	q := decode[model.Quote](t, env.Data)
	assert.True(t, q.Fallback)
	q.Fallback = false
	assert.Contains(t, refresh.FallbackQuotes, q)
}

func TestProbes(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, code)
	metrics := decode[model.SystemMetrics](t, env.Data)
	assert.True(t, metrics.Usage.Simulated)

	code, _ = do(t, h, http.MethodGet, "/api/battery", "")
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, h, http.MethodPost, "/api/speedtest", "")
	require.Equal(t, http.StatusOK, code)
	result := decode[model.SpeedTestResult](t, env.Data)
	assert.True(t, result.Simulated)
	assert.GreaterOrEqual(t, result.DownloadMbps, 20.0)
}

func TestCORS(t *testing.T) {
	h := newTestRouter(t, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
