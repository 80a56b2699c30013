package live

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/gateway"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixtureState(t *testing.T) *state.State {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	set := gateway.NewSet(
		gateway.NewClient(gateway.Config{BaseURL: url, Timeout: 500 * time.Millisecond}),
		gateway.Options{Logger: discardLogger()},
	)
	s := state.New(state.GatewaysFromSet(set), discardLogger())
	s.Init(context.Background())
	return s
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(discardLogger())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestMatchUpdateReachesSubscriber(t *testing.T) {
	s := fixtureState(t)
	hub, srv := startHub(t)
	s.Observe(hub.Observe)

	conn := dial(t, srv, "")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	m, ok := s.Matches.Find("m-live-1")
	require.True(t, ok)
	m.Sets = append([]string{}, m.Sets...)
	m.Sets[3] = "15-8"
	s.Matches.Update(context.Background(), m)

	ev := readEvent(t, conn)
	assert.Equal(t, "match", ev.Type)
	assert.Equal(t, state.OpUpdate, ev.Op)
	assert.Equal(t, "m-live-1", ev.MatchID)
	require.NotNil(t, ev.Match)
	assert.Equal(t, "15-8", ev.Match.Sets[3])
}

func TestSubscriptionFiltersByMatch(t *testing.T) {
	s := fixtureState(t)
	hub, srv := startHub(t)
	s.Observe(hub.Observe)

	conn := dial(t, srv, "?match=m1")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	live, _ := s.Matches.Find("m-live-1")
	s.Matches.Update(context.Background(), live)
	upcoming, _ := s.Matches.Find("m1")
	upcoming.Venue = "GOR Arie Lasut"
	s.Matches.Update(context.Background(), upcoming)

	ev := readEvent(t, conn)
	assert.Equal(t, "m1", ev.MatchID)
	assert.Equal(t, "GOR Arie Lasut", ev.Match.Venue)
}

func TestDeletionCarriesNoRecord(t *testing.T) {
	s := fixtureState(t)
	hub, srv := startHub(t)
	s.Observe(hub.Observe)

	conn := dial(t, srv, "")
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.True(t, s.Matches.Delete(context.Background(), "m2"))

	ev := readEvent(t, conn)
	assert.Equal(t, state.OpDelete, ev.Op)
	assert.Equal(t, "m2", ev.MatchID)
	assert.Nil(t, ev.Match)
}

func TestObserveIgnoresOtherResources(t *testing.T) {
	hub := NewHub(discardLogger())
	hub.Observe(state.Change{Resource: federation.KindNews, Op: state.OpCreate, Key: 4})
	assert.Empty(t, hub.broadcast)

	hub.Observe(state.Change{Resource: federation.KindMatches, Op: state.OpDelete, Key: "m2"})
	assert.Len(t, hub.broadcast, 1)
}
