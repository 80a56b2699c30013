package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/AdamBeresnev/pbvsi-sulut/internal/config"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/db"
	"github.com/AdamBeresnev/pbvsi-sulut/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "pbvsi-api",
		Usage: "resource API for the PBVSI Sulut website",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			seedCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.NewLogger()
	return cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "seed", Usage: "load the fixture dataset into empty collections first"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			database, err := db.Open(cfg.API.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.RunMigrations(database.DB); err != nil {
				return err
			}
			if c.Bool("seed") {
				if err := seed(c.Context, store.NewRecordStore(database)); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
			}

			srv := &http.Server{
				Addr:         cfg.API.Addr,
				Handler:      newRouter(database, cfg.API.AllowedOrigins),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					slog.Error("server shutdown error", "error", err)
				}
			}()

			slog.Info("API starting", "addr", cfg.API.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}

func migrateCommand() *cli.Command {
	withConfig := func(fn func(c *cli.Context, cfg *config.Config) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return fn(c, cfg)
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: withConfig(func(c *cli.Context, cfg *config.Config) error {
					database, err := db.Open(cfg.API.DatabaseURL)
					if err != nil {
						return err
					}
					defer database.Close()
					if err := db.RunMigrations(database.DB); err != nil {
						return err
					}
					fmt.Println("Migrations applied")
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "revert all migrations",
				Action: withConfig(func(c *cli.Context, cfg *config.Config) error {
					database, err := db.Open(cfg.API.DatabaseURL)
					if err != nil {
						return err
					}
					defer database.Close()
					if err := db.RollbackMigrations(database.DB); err != nil {
						return err
					}
					fmt.Println("Migrations reverted")
					return nil
				}),
			},
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "load the fixture dataset into empty collections",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			database, err := db.Open(cfg.API.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.RunMigrations(database.DB); err != nil {
				return err
			}
			return seed(c.Context, store.NewRecordStore(database))
		},
	}
}
