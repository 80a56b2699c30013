package main

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/admin"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/assistant"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/live"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/middleware"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
	"github.com/AdamBeresnev/pbvsi-sulut/views"
)

// app carries the web server's dependencies into its handlers.
type app struct {
	log      *slog.Logger
	sessions *scs.SessionManager
	state    *state.State

	news      *service.NewsService
	matches   *service.MatchService
	gallery   *service.GalleryService
	directory *service.DirectoryService
	inbox     *service.Inbox
	console   *admin.Console

	staff       *service.StaffService
	staffStore  *store.StaffStore
	credentials *middleware.Credentials
	providers   []string

	assistant   *assistant.Client
	chatLimiter *middleware.IPRateLimiter
	hub         *live.Hub
	registry    *prometheus.Registry
}

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", views.Static()))
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	r.Get("/ws", a.hub.ServeWS)

	withSession := func(next http.Handler) http.Handler {
		return a.sessions.LoadAndSave(middleware.LoadAuthenticatedStaff(a.sessions, a.staffStore)(next))
	}

	r.Group(func(r chi.Router) {
		r.Use(withSession)

		r.Get("/", a.home)
		r.Get("/news", a.newsList)
		r.Get("/news/{id}", a.newsDetail)
		r.Get("/matches", a.matchBoard)
		r.Get("/matches/{id}", a.matchDetail)
		r.Get("/matches/{id}/score", a.matchScore)
		r.Get("/gallery", a.galleryList)
		r.Get("/gallery/{id}", a.galleryItem)
		r.Get("/documents", a.documentList)
		r.Get("/documents/{id}/download", a.documentDownload)
		r.Get("/players", a.playerList)
		r.Get("/players/{gender}/{id}", a.playerDetail)
		r.Get("/coaches", a.coachList)
		r.Get("/coaches/{id}", a.coachDetail)
		r.Get("/clubs", a.clubList)
		r.Get("/clubs/{id}", a.clubDetail)
		r.Get("/about", a.about)
		r.Get("/history", a.history)
		r.Get("/organization", a.organization)
		r.Get("/contact", a.contactPage)
		r.Post("/contact", a.contactSubmit)
		r.Get("/report", a.reportPage)
		r.Post("/report", a.reportSubmit)

		r.With(middleware.RateLimit(a.chatLimiter)).Post("/chat", a.chat)

		r.Get("/admin/login", a.loginPage)
		r.Post("/admin/login", a.login)
		r.Post("/admin/logout", a.logout)
		r.Get("/auth/{provider}", a.oauthBegin)
		r.Get("/auth/{provider}/callback", a.oauthCallback)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/", a.dashboard)
			r.Get("/export.xlsx", a.exportDirectory)
			r.Get("/{kind}", a.adminList)
			r.Get("/{kind}/new", a.adminNew)
			r.Post("/{kind}", a.adminCreate)
			r.Get("/{kind}/{id}/edit", a.adminEdit)
			r.Post("/{kind}/{id}", a.adminUpdate)
			r.Delete("/{kind}/{id}", a.adminDelete)
		})
	})

	r.NotFound(withSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.notFound(w, r, "Halaman yang Anda cari tidak ditemukan.")
	})).ServeHTTP)
	return r
}
