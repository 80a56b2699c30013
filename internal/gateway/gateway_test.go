package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/fixtures"
)

func quietOptions(m *Metrics) Options {
	return Options{Metrics: m, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// unreachableClient points at a server that has already been shut down.
func unreachableClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return NewClient(Config{BaseURL: url, Timeout: 500 * time.Millisecond})
}

func TestGetAllUnreachableReturnsFixtures(t *testing.T) {
	set := NewSet(unreachableClient(t), quietOptions(nil))
	ctx := context.Background()

	assert.Empty(t, cmp.Diff(fixtures.News(), set.News.GetAll(ctx)))
	assert.Empty(t, cmp.Diff(fixtures.Matches(), set.Matches.GetAll(ctx)))
	assert.Empty(t, cmp.Diff(fixtures.Gallery(), set.Gallery.GetAll(ctx)))
	assert.Empty(t, cmp.Diff(fixtures.Documents(), set.Documents.GetAll(ctx)))
	assert.Empty(t, cmp.Diff(fixtures.PlayersMen(), set.PlayersMen.GetAll(ctx)))
	assert.Empty(t, cmp.Diff(fixtures.PlayersWomen(), set.PlayersWomen.GetAll(ctx)))
	assert.Empty(t, cmp.Diff(fixtures.Clubs(), set.Clubs.GetAll(ctx)))

	_, src := set.News.GetAllWithSource(ctx)
	assert.Equal(t, SourceFallback, src)
}

func TestCreateUnreachableAddsSyntheticID(t *testing.T) {
	set := NewSet(unreachableClient(t), quietOptions(nil))
	ctx := context.Background()

	// Each create returns the assigned key and the diff between the input and
	// the result with that key cleared. The fallback only adds an id, so a
	// player keeps an empty gender.
	tests := []struct {
		name   string
		create func() (string, string)
	}{
		{"news", func() (string, string) {
			in := federation.NewsItem{Title: "Turnamen Antar Klub", Category: "Kompetisi"}
			got := set.News.Create(ctx, in)
			key := strconv.Itoa(got.ID)
			got.ID = 0
			return key, cmp.Diff(in, got)
		}},
		{"matches", func() (string, string) {
			in := federation.Match{Status: federation.MatchUpcoming, TeamA: federation.Team{Name: "A"}, TeamB: federation.Team{Name: "B"}}
			got := set.Matches.Create(ctx, in)
			key := got.ID
			got.ID = ""
			return key, cmp.Diff(in, got)
		}},
		{"gallery", func() (string, string) {
			in := federation.GalleryItem{Title: "Final Kejurda", Category: "Kompetisi", URL: "https://example.com/a.jpg"}
			got := set.Gallery.Create(ctx, in)
			key := strconv.Itoa(got.ID)
			got.ID = 0
			return key, cmp.Diff(in, got)
		}},
		{"documents", func() (string, string) {
			in := federation.DocumentItem{Title: "AD/ART", Category: "Regulasi", Type: "PDF", Size: "1.2 MB"}
			got := set.Documents.Create(ctx, in)
			key := strconv.Itoa(got.ID)
			got.ID = 0
			return key, cmp.Diff(in, got)
		}},
		{"players-men", func() (string, string) {
			in := federation.Player{Name: "Rivan", Club: "Bank SulutGo", Position: "Opposite"}
			got := set.PlayersMen.Create(ctx, in)
			key := strconv.Itoa(got.ID)
			got.ID = 0
			return key, cmp.Diff(in, got)
		}},
		{"players-women", func() (string, string) {
			in := federation.Player{Name: "Yolla", Club: "Tomohon VC", Position: "Setter"}
			got := set.PlayersWomen.Create(ctx, in)
			key := strconv.Itoa(got.ID)
			got.ID = 0
			return key, cmp.Diff(in, got)
		}},
		{"clubs", func() (string, string) {
			in := federation.Club{Name: "Tomohon VC", City: "Tomohon", Squad: []federation.SquadMember{{Number: 7, Name: "Yolla"}}}
			got := set.Clubs.Create(ctx, in)
			key := strconv.Itoa(got.ID)
			got.ID = 0
			return key, cmp.Diff(in, got)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 20 {
				key, diff := tt.create()
				id, err := strconv.Atoi(key)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, id, 1)
				assert.LessOrEqual(t, id, MaxSyntheticID)
				assert.Empty(t, diff)
			}
		})
	}
}

func TestCreateUsesIDSource(t *testing.T) {
	opts := quietOptions(nil)
	opts.IDs = func() int { return 4242 }
	set := NewSet(unreachableClient(t), opts)

	got := set.Clubs.Create(context.Background(), federation.Club{Name: "Tomohon VC"})
	assert.Equal(t, 4242, got.ID)
}

func TestDeleteUnreachableReportsSuccess(t *testing.T) {
	set := NewSet(unreachableClient(t), quietOptions(nil))
	ctx := context.Background()

	assert.True(t, set.News.Delete(ctx, 1))
	assert.True(t, set.Matches.Delete(ctx, "m1"))
	assert.True(t, set.PlayersMen.Delete(ctx, 12345))
}

func TestUpdateUnreachableEchoesInput(t *testing.T) {
	set := NewSet(unreachableClient(t), quietOptions(nil))
	ctx := context.Background()

	item := fixtures.Documents()[0]
	item.Title = "AD/ART Revisi"

	first := set.Documents.Update(ctx, item)
	second := set.Documents.Update(ctx, first)
	assert.Equal(t, item, first)
	assert.Equal(t, item, second)
}

func TestRemoteSuccess(t *testing.T) {
	var gotGender, gotBodyGender, gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /players", func(w http.ResponseWriter, r *http.Request) {
		gotGender = r.URL.Query().Get("gender")
		_ = json.NewEncoder(w).Encode([]federation.Player{{ID: 77, Name: "Remote"}})
	})
	mux.HandleFunc("POST /players", func(w http.ResponseWriter, r *http.Request) {
		var p federation.Player
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		gotBodyGender = string(p.Gender)
		p.ID = 500
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	})
	mux.HandleFunc("PUT /matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var m federation.Match
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		m.Venue = "server"
		_ = json.NewEncoder(w).Encode(m)
	})
	mux.HandleFunc("DELETE /news/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /gallery", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	set := NewSet(NewClient(Config{BaseURL: srv.URL}), quietOptions(metrics))
	ctx := context.Background()

	women, src := set.PlayersWomen.GetAllWithSource(ctx)
	assert.Equal(t, SourceRemote, src)
	assert.Equal(t, "Women", gotGender)
	require.Len(t, women, 1)
	assert.Equal(t, 77, women[0].ID)

	created := set.PlayersMen.Create(ctx, federation.Player{Name: "Baru"})
	assert.Equal(t, 500, created.ID)
	assert.Equal(t, "Men", gotBodyGender)

	updated := set.Matches.Update(ctx, federation.Match{ID: "m-live-1", Venue: "client"})
	assert.Equal(t, "/matches/m-live-1", gotPath)
	assert.Equal(t, "server", updated.Venue)

	assert.True(t, set.News.Delete(ctx, 3))

	gallery := set.Gallery.GetAll(ctx)
	assert.NotNil(t, gallery)
	assert.Empty(t, gallery)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Calls().WithLabelValues("players-women", "get_all", "remote")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Calls().WithLabelValues("players-men", "create", "remote")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Calls().WithLabelValues("news", "delete", "fallback")))
}

func TestFallbackOnStatusAndDecodeErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /news", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /clubs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	metrics := NewMetrics(prometheus.NewRegistry())
	set := NewSet(NewClient(Config{BaseURL: srv.URL}), quietOptions(metrics))
	ctx := context.Background()

	assert.Equal(t, fixtures.News(), set.News.GetAll(ctx))
	assert.Equal(t, fixtures.Clubs(), set.Clubs.GetAll(ctx))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Calls().WithLabelValues("news", "get_all", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Calls().WithLabelValues("clubs", "get_all", "fallback")))
}

func TestEveryOperationIsBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	set := NewSet(NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}), quietOptions(nil))
	ctx := context.Background()

	start := time.Now()
	assert.Equal(t, fixtures.Gallery(), set.Gallery.GetAll(ctx))
	item := federation.GalleryItem{ID: 9, Title: "x"}
	assert.Equal(t, item, set.Gallery.Update(ctx, item))
	assert.NotZero(t, set.Gallery.Create(ctx, federation.GalleryItem{Title: "y"}).ID)
	assert.True(t, set.Gallery.Delete(ctx, 9))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFetchErrorKinds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/slow":
			<-r.Context().Done()
		default:
			_, _ = w.Write([]byte("[1,"))
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	ctx := context.Background()
	var out []int
	var fe *FetchError

	err := c.doRequest(ctx, http.MethodGet, "/missing", nil, nil, &out)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FailureStatus, fe.Kind)
	assert.Equal(t, http.StatusNotFound, fe.Status)

	err = c.doRequest(ctx, http.MethodGet, "/slow", nil, nil, &out)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FailureTimeout, fe.Kind)

	err = c.doRequest(ctx, http.MethodGet, "/broken", nil, nil, &out)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FailureDecode, fe.Kind)

	err = unreachableClient(t).doRequest(ctx, http.MethodGet, "/news", nil, nil, &out)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FailureNetwork, fe.Kind)
}

func TestClientTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewClient(Config{BaseURL: "http://localhost"}).Timeout())
	assert.Equal(t, 750*time.Millisecond, NewClient(Config{BaseURL: "http://localhost", Timeout: 750 * time.Millisecond}).Timeout())
}

func TestFallbackLogIncludesTimeout(t *testing.T) {
	var buf strings.Builder
	opts := Options{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	set := NewSet(unreachableClient(t), opts)

	set.Documents.GetAll(context.Background())
	assert.Contains(t, buf.String(), "gateway fallback")
	assert.Contains(t, buf.String(), "resource=documents")
	assert.Contains(t, buf.String(), "timeout=500ms")
}

func TestAbsorb(t *testing.T) {
	fallback := func() string { return "fixture" }
	assert.Equal(t, "remote", Absorb("remote", nil, fallback))
	assert.Equal(t, "fixture", Absorb("partial", errors.New("x"), fallback))
}
