package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/rs/cors"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/federation"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/httputil"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
)

func newRouter(database *sqlx.DB, allowedOrigins []string) http.Handler {
	records := store.NewRecordStore(database)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			httputil.JSONError(w, http.StatusServiceUnavailable, "database unavailable", err)
			return
		}
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		mountResource(r, "/news", &resourceHandler[federation.NewsItem, int]{kind: "news", store: records})
		mountResource(r, "/matches", &resourceHandler[federation.Match, string]{kind: "matches", store: records, check: checkMatch})
		mountResource(r, "/gallery", &resourceHandler[federation.GalleryItem, int]{kind: "gallery", store: records})
		mountResource(r, "/documents", &resourceHandler[federation.DocumentItem, int]{kind: "documents", store: records})
		mountResource(r, "/players", &resourceHandler[federation.Player, int]{
			kind: "players", store: records, check: checkPlayer, gender: playerGender,
		})
		mountResource(r, "/clubs", &resourceHandler[federation.Club, int]{kind: "clubs", store: records})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	})
	return c.Handler(r)
}
