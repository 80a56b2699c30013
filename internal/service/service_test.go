package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/gateway"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
)

// fixtureState returns a state loaded from fixtures through an unreachable
// backend.
func fixtureState(t *testing.T) *state.State {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	set := gateway.NewSet(
		gateway.NewClient(gateway.Config{BaseURL: url, Timeout: 500 * time.Millisecond}),
		gateway.Options{Logger: logger},
	)
	s := state.New(state.GatewaysFromSet(set), logger)
	s.Init(context.Background())
	require.True(t, s.Loaded())
	return s
}

func newsIDs(items []federation.NewsItem) []int {
	ids := make([]int, 0, len(items))
	for _, n := range items {
		ids = append(ids, n.ID)
	}
	return ids
}
