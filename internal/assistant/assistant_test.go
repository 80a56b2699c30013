package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type wireContent struct {
	Role  string `json:"role"`
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

type wireRequest struct {
	SystemInstruction wireContent   `json:"systemInstruction"`
	Contents          []wireContent `json:"contents"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

func TestReplySendsHistoryInOneRequest(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "k-123", r.Header.Get("x-goog-api-key"))

		var req wireRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.NotEmpty(t, req.SystemInstruction.Parts) {
			assert.Contains(t, req.SystemInstruction.Parts[0].Text, "VolleyBot Sulut")
		}
		assert.InDelta(t, 0.7, req.GenerationConfig.Temperature, 0.001)
		if assert.Len(t, req.Contents, 3) {
			assert.Equal(t, "user", req.Contents[0].Role)
			assert.Equal(t, "model", req.Contents[1].Role)
			assert.Equal(t, "user", req.Contents[2].Role)
			assert.Equal(t, "Kapan final Kejurda?", req.Contents[2].Parts[0].Text)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Final "},{"text":"hari Minggu."}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k-123", Model: "gemini-test", BaseURL: srv.URL + "/"}, quietLogger())
	require.True(t, c.Enabled())
	history := []Message{
		NewMessage(SenderUser, "Halo"),
		NewMessage(SenderModel, "Halo juga!"),
	}

	got := c.Reply(context.Background(), history, "Kapan final Kejurda?")
	assert.Equal(t, "Final hari Minggu.", got)
	assert.Equal(t, 1, calls)
}

func TestReplyApologisesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	defer srv.Close()

	var logs bytes.Buffer
	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, slog.New(slog.NewTextHandler(&logs, nil)))
	assert.Equal(t, Apology, c.Reply(context.Background(), nil, "halo"))
	assert.Contains(t, logs.String(), "assistant request failed")
	assert.Contains(t, logs.String(), "Error 429")

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer garbage.Close()
	c = NewClient(Config{APIKey: "k", BaseURL: garbage.URL}, quietLogger())
	assert.Equal(t, Apology, c.Reply(context.Background(), nil, "halo"))
}

func TestReplyWithoutKeyOrText(t *testing.T) {
	c := NewClient(Config{}, quietLogger())
	assert.False(t, c.Enabled())
	assert.Equal(t, Apology, c.Reply(context.Background(), nil, "halo"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()
	c = NewClient(Config{APIKey: "k", BaseURL: srv.URL}, quietLogger())
	assert.Equal(t, EmptyReply, c.Reply(context.Background(), nil, "halo"))
}

func TestReplyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, quietLogger())
	start := time.Now()
	assert.Equal(t, Apology, c.Reply(context.Background(), nil, "halo"))
	assert.Less(t, time.Since(start), time.Second)
}

func TestHistoryRoundTripAndCap(t *testing.T) {
	var h []Message
	for i := 0; i < MaxHistory+5; i++ {
		h = Append(h, NewMessage(SenderUser, "q"))
	}
	assert.Len(t, h, MaxHistory)

	raw, err := EncodeHistory(h[:2])
	require.NoError(t, err)
	back := DecodeHistory(raw)
	require.Len(t, back, 2)
	assert.Equal(t, h[0].ID, back[0].ID)

	assert.Nil(t, DecodeHistory(nil))
	assert.Nil(t, DecodeHistory([]byte("{")))
}
