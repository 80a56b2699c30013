package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/admin"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/assistant"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/config"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/db"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/gateway"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/live"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/middleware"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/service"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/state"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
)

func main() {
	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger := cfg.NewLogger()

	database, err := db.Open(cfg.Web.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	credentials, err := middleware.NewCredentials(cfg.Admin)
	if err != nil {
		log.Fatal("Invalid admin credentials:", err)
	}
	if cfg.IsProduction() && cfg.Admin.PasswordHash == "" {
		logger.Warn("admin password is configured in plain text")
	}
	providers := middleware.InitAuth(cfg.Web.BaseURL, cfg.OAuth)

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Web.SessionTTL
	sessionManager.Store = sqlite3store.New(database.DB)
	sessionManager.Cookie.Secure = cfg.IsProduction()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gateways := gateway.NewSet(
		gateway.NewClient(gateway.Config{BaseURL: cfg.Gateway.BaseURL, Timeout: cfg.Gateway.Timeout}),
		gateway.Options{Metrics: gateway.NewMetrics(registry), Logger: logger},
	)
	st := state.New(state.GatewaysFromSet(gateways), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := live.NewHub(logger)
	go hub.Run(ctx)
	st.Matches.Observe(hub.Observe)

	// Pages render an empty state until their collection settles.
	go st.Init(ctx)

	staffStore := store.NewStaffStore(database)
	a := &app{
		log:         logger,
		sessions:    sessionManager,
		state:       st,
		news:        service.NewNewsService(st),
		matches:     service.NewMatchService(st),
		gallery:     service.NewGalleryService(st),
		directory:   service.NewDirectoryService(st),
		inbox:       service.NewInbox(logger),
		console:     admin.NewConsole(st, logger),
		staff:       service.NewStaffService(staffStore, cfg.OAuth.AllowedEmails),
		staffStore:  staffStore,
		credentials: credentials,
		providers:   providers,
		assistant: assistant.NewClient(assistant.Config{
			APIKey:  cfg.Assistant.APIKey,
			Model:   cfg.Assistant.Model,
			BaseURL: cfg.Assistant.BaseURL,
			Timeout: cfg.Assistant.Timeout,
		}, logger),
		chatLimiter: middleware.NewIPRateLimiter(cfg.RateLimit.ChatPerMinute, cfg.RateLimit.ChatBurst),
		hub:         hub,
		registry:    registry,
	}

	srv := &http.Server{
		Addr:              cfg.Web.Addr,
		Handler:           newRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("Server starting", "addr", cfg.Web.Addr, "api", cfg.Gateway.BaseURL, "oauth", providers, "assistant", a.assistant.Enabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
