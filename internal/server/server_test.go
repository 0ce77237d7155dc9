package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/wakerefresh/internal/analytics"
	"github.com/jgoulah/wakerefresh/internal/database"
	"github.com/jgoulah/wakerefresh/internal/entry"
	"github.com/jgoulah/wakerefresh/internal/history"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

var today = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

var roster = []models.Competitor{
	{Name: "Ava", Emoji: "🧠", Points: 100, Streak: 5},
	{Name: "Noah", Emoji: "🏃", Points: 26, Streak: 2},
	{Name: "Mia", Emoji: "🎧", Points: 10, Streak: 1},
}

// history scored 93, 56 and 80
var fixture = []models.Entry{
	{ID: "c", Date: "2025-03-08", WakeTime: "07:00", Energy: 3},
	{ID: "b", Date: "2025-03-09", WakeTime: "07:30", Snooze: 2, Energy: 2, CaffeineMg: 200},
	{ID: "a", Date: "2025-03-10", WakeTime: "06:50", Energy: 4, CaffeineMg: 100, HydrationPack: true},
}

func newTestServer(t *testing.T, store database.Store) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var n atomic.Int64
	ids := func() string {
		return fmt.Sprintf("id-%d", n.Add(1))
	}
	clock := func() time.Time { return today }
	gateway := history.NewGateway(store,
		history.WithClock(clock),
		history.WithSeeder(history.NewSeeder(rand.New(rand.NewPCG(1, 2)), ids)),
	)

	return New(gateway, Options{
		WindowDays:       14,
		Roster:           roster,
		LeaderboardLimit: 3,
		Now:              clock,
		Normalizer:       entry.NewNormalizer(nil, ids),
	})
}

func withFixture(t *testing.T) database.Store {
	t.Helper()
	store := database.NewMemoryStore()
	raw, err := json.Marshal(fixture)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), history.EntriesKey, raw))
	return store
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

type errorStore struct{}

func (errorStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (errorStore) Set(context.Context, string, []byte) error   { return errors.New("disk on fire") }
func (errorStore) Close() error                                { return nil }

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t, database.NewMemoryStore()), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListEntriesSeedsThenLoads(t *testing.T) {
	s := newTestServer(t, database.NewMemoryStore())

	w := do(t, s, http.MethodGet, "/api/entries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var first entriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "seeded", first.Outcome)
	assert.Equal(t, 14, first.Days)
	assert.Len(t, first.Entries, history.SeedDays)
	assert.Equal(t, history.SeedDays, first.Streak)
	assert.True(t, first.LoggedToday)

	w = do(t, s, http.MethodGet, "/api/entries?days=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var second entriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, "loaded", second.Outcome)
	assert.Len(t, second.Entries, 3)
}

func TestListEntriesRejectsBadWindow(t *testing.T) {
	s := newTestServer(t, withFixture(t))
	for _, q := range []string{"abc", "0", "-3"} {
		w := do(t, s, http.MethodGet, "/api/entries?days="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Contains(t, w.Body.String(), "days must be a positive integer")
	}
}

func TestCreateEntry(t *testing.T) {
	s := newTestServer(t, withFixture(t))

	w := do(t, s, http.MethodPost, "/api/entries", map[string]any{
		"id":            "ignored",
		"date":          "2025-03-10",
		"wakeTime":      "07:15",
		"energy":        5,
		"caffeineMg":    0,
		"hydrationPack": true,
		"notes":         "  early run ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created analytics.ScoredEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, "early run", created.Notes)
	assert.Equal(t, 100, created.RefreshScore)

	w = do(t, s, http.MethodGet, "/api/entries?days=1", nil)
	var list entriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "id-1", list.Entries[0].ID)
	assert.Equal(t, 3, list.Streak)
}

func TestCreateEntryValidation(t *testing.T) {
	s := newTestServer(t, withFixture(t))

	w := do(t, s, http.MethodPost, "/api/entries", map[string]any{"date": "2025-02-30", "wakeTime": "07:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")

	w = do(t, s, http.MethodPost, "/api/entries", map[string]any{"date": "2025-03-10", "wakeTime": "7am"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "HH:MM")

	req := httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats(t *testing.T) {
	w := do(t, newTestServer(t, withFixture(t)), http.MethodGet, "/api/stats?days=7", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got statsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Summary.Count)
	assert.InDelta(t, 3.0, got.Summary.AvgEnergy, 1e-9)
	assert.InDelta(t, 100.0, got.Summary.AvgCaffeine, 1e-9)
	assert.Equal(t, 3, got.Streak)
	assert.True(t, got.Hydration.Comparable)
	assert.InDelta(t, 25.0, got.Hydration.Delta, 1e-9)
	assert.True(t, got.Snooze.Comparable)
	assert.InDelta(t, 30.5, got.Snooze.Delta, 1e-9)
	require.Len(t, got.Series, 3)
	assert.Equal(t, "03-08", got.Series[0].Label)
}

func TestLeaderboard(t *testing.T) {
	w := do(t, newTestServer(t, withFixture(t)), http.MethodGet, "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got leaderboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 26, got.Points)
	require.Len(t, got.Rows, 3)
	assert.Equal(t, "Ava", got.Rows[0].Name)
	assert.Equal(t, "You", got.Rows[1].Name)
	assert.True(t, got.Rows[1].Self)
	assert.Equal(t, "Noah", got.Rows[2].Name)
	assert.Equal(t, 3, got.Rows[2].Position)
}

func TestExportCSV(t *testing.T) {
	w := do(t, newTestServer(t, withFixture(t)), http.MethodGet, "/api/export.csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="wake-up-refresh_2025-03-10.csv"`, w.Header().Get("Content-Disposition"))

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "c,2025-03-08,"))
	assert.True(t, strings.HasSuffix(lines[3], ",93"))
}

func TestSurvey(t *testing.T) {
	s := newTestServer(t, database.NewMemoryStore())

	w := do(t, s, http.MethodGet, "/api/survey", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"campusLocation":"Bird Library","causes":[],"wearable":"None","consentShare":false}`, w.Body.String())

	w = do(t, s, http.MethodPut, "/api/survey", models.PilotPreferences{
		CampusLocation: "Whitman",
		Causes:         []string{"Late coding", "Gaming", "Late coding"},
		Wearable:       "Fitbit",
		ConsentShare:   true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/survey", nil)
	assert.JSONEq(t, `{"campusLocation":"Whitman","causes":["Gaming","Late coding"],"wearable":"Fitbit","consentShare":true}`, w.Body.String())

	w = do(t, s, http.MethodPut, "/api/survey", models.PilotPreferences{CampusLocation: "Mars", Wearable: "None"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStorageFailuresReturn500(t *testing.T) {
	s := newTestServer(t, errorStore{})

	for _, path := range []string{"/api/entries", "/api/stats", "/api/leaderboard", "/api/export.csv", "/api/survey"} {
		w := do(t, s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"error":"storage unavailable"}`, w.Body.String())
	}

	w := do(t, s, http.MethodPost, "/api/entries", map[string]any{"date": "2025-03-10", "wakeTime": "07:00"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestConcurrentCreatesAreAllKept(t *testing.T) {
	s := newTestServer(t, database.NewMemoryStore())
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/entries", nil).Code)

	const posts = 40
	var wg sync.WaitGroup
	for i := 0; i < posts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format(models.DateLayout)
			w := do(t, s, http.MethodPost, "/api/entries", map[string]any{"date": date, "wakeTime": "07:00", "energy": 3})
			assert.Equal(t, http.StatusCreated, w.Code)
		}(i)
	}
	wg.Wait()

	w := do(t, s, http.MethodGet, "/api/entries?days=1000", nil)
	var list entriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Entries, history.SeedDays+posts)
}
