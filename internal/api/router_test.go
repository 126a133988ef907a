package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jengzang/pawtrack-backend-go/internal/config"
	"github.com/jengzang/pawtrack-backend-go/internal/database"
	"github.com/jengzang/pawtrack-backend-go/internal/grid"
	"github.com/jengzang/pawtrack-backend-go/internal/service"
)

var testNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "api.db")
	cfg.Development = true
	cfg.RateLimit.Requests = 0
	cfg.Timezone = "UTC"
	cfg.Grid = grid.Config{
		CompletionThreshold: 2,
		Badges:              []grid.Badge{{Key: "first", Name: "First Zone", Icon: "⭐", Threshold: 1, Points: 10}},
	}
	if mutate != nil {
		mutate(cfg)
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	app := service.NewApp(db, grid.NewEngine(cfg.Grid), time.UTC, zap.NewNop())
	app.Clock = func() time.Time { return testNow }
	return SetupRouter(cfg, app, zap.NewNop())
}

func do(t *testing.T, r http.Handler, method, path, body string, header ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)
	w, _ := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndListEntries(t *testing.T) {
	r := newTestRouter(t, nil)

	w, env := do(t, r, http.MethodPost, "/api/v1/entries", `{"lat": 40.4168, "lng": -3.7038, "category": "normal", "food": "Kibble"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Entry struct {
			ID string `json:"id"`
		} `json:"entry"`
		Placement *struct {
			CollisionAvoided bool `json:"collision_avoided"`
		} `json:"placement"`
		Unlock *struct {
			Name string `json:"name"`
		} `json:"unlock"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.Entry.ID)
	require.NotNil(t, created.Placement)
	assert.True(t, created.Placement.CollisionAvoided)
	assert.Nil(t, created.Unlock)

	w, env = do(t, r, http.MethodPost, "/api/v1/entries", `{"lat": 40.4168, "lng": -3.7038, "category": "soft"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotNil(t, created.Unlock)
	assert.Equal(t, "First Zone", created.Unlock.Name)

	w, env = do(t, r, http.MethodGet, "/api/v1/entries?category=soft", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 2, list.Total)

	w, _ = do(t, r, http.MethodGet, "/api/v1/entries/"+created.Entry.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/foods", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kibble")
}

func TestCreateEntryValidation(t *testing.T) {
	r := newTestRouter(t, nil)

	cases := map[string]string{
		"missing category": `{"lat": 1, "lng": 1}`,
		"bad category":     `{"category": "purple"}`,
		"out of range":     `{"lat": 91, "lng": 0, "category": "normal"}`,
		"half position":    `{"lat": 10, "category": "normal"}`,
		"future":           `{"category": "normal", "timestamp": "2030-01-01T00:00:00Z"}`,
		"malformed":        `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/api/v1/entries", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, http.StatusBadRequest, env.Code)
		})
	}
}

func TestEntryNotFound(t *testing.T) {
	r := newTestRouter(t, nil)

	w, env := do(t, r, http.MethodGet, "/api/v1/entries/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, env.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/v1/entries/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidFilter(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, path := range []string{
		"/api/v1/entries?period=decade",
		"/api/v1/stats?category=weird",
		"/api/v1/stats/timeseries?days=abc",
	} {
		w, _ := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestStatsEndpoints(t *testing.T) {
	r := newTestRouter(t, nil)
	for _, body := range []string{
		`{"category": "normal", "food": "Kibble"}`,
		`{"category": "diarrhea", "food": "Kibble"}`,
		`{"category": "normal", "food": "Fish", "timestamp": "2025-03-01T10:00:00Z"}`,
	} {
		w, _ := do(t, r, http.MethodPost, "/api/v1/entries", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := do(t, r, http.MethodGet, "/api/v1/stats?period=today", "")
	require.Equal(t, http.StatusOK, w.Code)
	var st struct {
		Total    int `json:"total"`
		Problems int `json:"problems"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Problems)

	w, env = do(t, r, http.MethodGet, "/api/v1/stats/timeseries?days=14", "")
	require.Equal(t, http.StatusOK, w.Code)
	var series struct {
		Days    int               `json:"days"`
		Buckets []json.RawMessage `json:"buckets"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &series))
	assert.Equal(t, 14, series.Days)
	assert.Len(t, series.Buckets, 14)

	w, env = do(t, r, http.MethodGet, "/api/v1/stats/correlations?top=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var corr []struct {
		Food  string `json:"food"`
		Total int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &corr))
	require.Len(t, corr, 1)
	assert.Equal(t, "Kibble", corr[0].Food)
	assert.Equal(t, 2, corr[0].Total)

	w, env = do(t, r, http.MethodGet, "/api/v1/entries/recent?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var recent struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &recent))
	assert.Equal(t, 2, recent.Count)

	w, _ = do(t, r, http.MethodGet, "/api/v1/stats/report?period=week", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGridEndpoints(t *testing.T) {
	r := newTestRouter(t, nil)
	for i := 0; i < 2; i++ {
		w, _ := do(t, r, http.MethodPost, "/api/v1/entries", `{"lat": 40.4168, "lng": -3.7038, "category": "normal"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := do(t, r, http.MethodGet, "/api/v1/grid", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cells struct {
		Cells []struct {
			GridID    string `json:"grid_id"`
			Completed bool   `json:"completed"`
		} `json:"cells"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cells))
	require.Equal(t, 1, cells.Count)
	assert.True(t, cells.Cells[0].Completed)

	w, _ = do(t, r, http.MethodGet, "/api/v1/grid/cells/"+cells.Cells[0].GridID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/v1/grid/cells/1_1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/v1/grid/cells/nope", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/achievements", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		TotalPoints    int `json:"total_points"`
		CompletedCells int `json:"completed_cells"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.CompletedCells)
	assert.Greater(t, summary.TotalPoints, 0)

	w, _ = do(t, r, http.MethodPost, "/api/v1/grid/placement", `{"lat": 40.4168, "lng": -3.7038}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/v1/grid/placement", `{"lat": 40.4168}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileAndNotes(t *testing.T) {
	r := newTestRouter(t, nil)

	w, _ := do(t, r, http.MethodPut, "/api/v1/profile", `{"name": "", "microchip": "12"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPut, "/api/v1/profile", `{"name": "Luna", "next_vaccination": "2025-03-08T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env := do(t, r, http.MethodGet, "/api/v1/profile/reminders", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rem struct {
		Overdue int `json:"overdue"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rem))
	assert.Equal(t, 1, rem.Overdue)

	w, _ = do(t, r, http.MethodPost, "/api/v1/notes", `{"text": "ate grass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = do(t, r, http.MethodGet, "/api/v1/notes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["ate grass"]`, string(env.Data))

	w, _ = do(t, r, http.MethodDelete, "/api/v1/notes?text=ate+grass", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodDelete, "/api/v1/notes?text=ate+grass", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBackupRoundTrip(t *testing.T) {
	r := newTestRouter(t, nil)
	w, _ := do(t, r, http.MethodPost, "/api/v1/entries", `{"category": "hard"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/backup", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "pawtrack-backup.json")
	doc := w.Body.String()

	other := newTestRouter(t, nil)
	w, _ = do(t, other, http.MethodPost, "/api/v1/backup", doc)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env := do(t, other, http.MethodGet, "/api/v1/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Count)

	w, _ = do(t, other, http.MethodPost, "/api/v1/backup", `{"entries": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthProtectsMutations(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.AuthEnabled = true
		cfg.AccessKey = "letmein"
		cfg.JWTSecret = "test-secret"
	})

	w, _ := do(t, r, http.MethodPost, "/api/v1/entries", `{"category": "normal"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// reads stay open
	w, _ = do(t, r, http.MethodGet, "/api/v1/entries", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/auth/token", `{"access_key": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := do(t, r, http.MethodPost, "/api/v1/auth/token", `{"access_key": "letmein"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var tok struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	require.NotEmpty(t, tok.Token)

	w, _ = do(t, r, http.MethodPost, "/api/v1/entries", `{"category": "normal"}`, "Authorization", "Bearer "+tok.Token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimit.Requests = 2
		cfg.RateLimit.WindowSeconds = 60
	})

	for i := 0; i < 2; i++ {
		w, _ := do(t, r, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w, _ := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
