package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/db"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/fixtures"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/gateway"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.OpenMemory()
	require.NoError(t, err, "Failed to open in-memory DB")
	t.Cleanup(func() { database.Close() })
	return database
}

func newTestServer(t *testing.T, seeded bool) *httptest.Server {
	t.Helper()
	database := setupTestDB(t)
	if seeded {
		require.NoError(t, seed(context.Background(), store.NewRecordStore(database)))
	}
	srv := httptest.NewServer(newRouter(database, []string{"*"}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSeededAPIThroughGateway(t *testing.T) {
	srv := newTestServer(t, true)

	set := gateway.NewSet(
		gateway.NewClient(gateway.Config{BaseURL: srv.URL + "/api"}),
		gateway.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
	)
	s := state.New(state.GatewaysFromSet(set), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()
	s.Init(ctx)

	assert.Equal(t, fixtures.News(), s.News.All())
	assert.Equal(t, fixtures.Matches(), s.Matches.All())
	assert.Equal(t, fixtures.Documents(), s.Documents.All())

	women := s.PlayersWomen.All()
	require.Len(t, women, 2)
	assert.Equal(t, 101, women[0].ID)
	assert.Equal(t, federation.Women, women[0].Gender)

	created := s.News.Create(ctx, federation.NewsItem{Title: "Kejurda Antar Klub Dibuka"})
	assert.Equal(t, 4, created.ID, "server assigns the next id")
	assert.Equal(t, created, s.News.All()[0])

	player := s.PlayersWomen.Create(ctx, federation.Player{Name: "Pemain Baru"})
	assert.Equal(t, 103, player.ID)
	assert.Equal(t, federation.Women, player.Gender)

	finished, ok := s.Matches.Find("m1")
	require.True(t, ok)
	finished.Status = federation.MatchFinished
	finished.ScoreA, finished.ScoreB = 3, 0
	finished.Sets = []string{"25-10", "25-11", "25-12"}
	s.Matches.Update(ctx, finished)

	assert.True(t, s.Gallery.Delete(ctx, 1))

	// A second container sees the persisted changes.
	again := state.New(state.GatewaysFromSet(set), slog.New(slog.NewTextHandler(io.Discard, nil)))
	again.Init(ctx)
	assert.Equal(t, "Kejurda Antar Klub Dibuka", again.News.All()[0].Title)
	got, ok := again.Matches.Find("m1")
	require.True(t, ok)
	assert.Equal(t, federation.MatchFinished, got.Status)
	assert.Len(t, again.Gallery.All(), 2)
	assert.Len(t, again.PlayersWomen.All(), 3)
	assert.Len(t, again.PlayersMen.All(), 2)
}

func TestUpdateRejectsIDMismatch(t *testing.T) {
	srv := newTestServer(t, true)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/news/2", federation.NewsItem{ID: 3, Title: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnknownIDIsNotFound(t *testing.T) {
	srv := newTestServer(t, true)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/clubs/77", federation.Club{ID: 77, Name: "Hilang"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/clubs/77", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateValidatesBodies(t *testing.T) {
	srv := newTestServer(t, false)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/gallery", federation.GalleryItem{Category: "Latihan"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "title is required")

	bad := federation.Match{
		LeagueID: federation.DefaultLeagueID, Status: federation.MatchFinished,
		TeamA: federation.Team{Name: "A"}, TeamB: federation.Team{Name: "B"},
		ScoreA: 3, ScoreB: 0, Sets: []string{"25-10"},
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/matches", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "won sets must match")

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/players", map[string]any{"name": "X", "gender": "Mixed"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/news", bytes.NewBufferString("{"))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestListEmptyAndGenderFilter(t *testing.T) {
	srv := newTestServer(t, false)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/clubs", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/players?gender=Other", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSeedIsIdempotent(t *testing.T) {
	database := setupTestDB(t)
	records := store.NewRecordStore(database)
	ctx := context.Background()

	require.NoError(t, seed(ctx, records))
	require.NoError(t, seed(ctx, records))

	n, err := records.Count(ctx, "players")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, false)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/news", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
