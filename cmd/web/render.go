package main

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/assistant"
	"github.com/AdamBeresnev/pbvsi-sulut/views"
)

const (
	flashKey       = "flash"
	chatHistoryKey = "chatHistory"
)

// page starts a page with the visitor's chat panel and any pending flash
// message.
func (a *app) page(r *http.Request, title, nav string) views.Page {
	p := views.NewPage(r.Context(), title, nav)
	p.Loading = !a.state.Loaded()
	p.Notice = a.sessions.PopString(r.Context(), flashKey)
	p.Chat = a.chatPanel(r)
	return p
}

func (a *app) chatPanel(r *http.Request) *views.ChatPanel {
	return &views.ChatPanel{
		Greeting: assistant.Greeting,
		Messages: assistant.DecodeHistory(a.sessions.GetBytes(r.Context(), chatHistoryKey)),
	}
}

func (a *app) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	a.renderStatus(w, r, http.StatusOK, c)
}

func (a *app) renderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := views.Render(w, r, c); err != nil {
		a.log.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}

func (a *app) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	a.renderStatus(w, r, http.StatusNotFound, views.ErrorPage(a.page(r, "Tidak Ditemukan", ""), msg))
}

func (a *app) flash(r *http.Request, msg string) {
	a.sessions.Put(r.Context(), flashKey, msg)
}

func intParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}
