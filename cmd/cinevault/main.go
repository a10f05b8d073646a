// Command cinevault runs the movie-catalog API: TMDB proxy, Mongo-backed
// favorites, and JWT-authenticated register/login.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinevault/cinevault/auth"
	"github.com/cinevault/cinevault/component"
	"github.com/cinevault/cinevault/config"
	"github.com/cinevault/cinevault/logger"
	"github.com/cinevault/cinevault/observability"
	"github.com/cinevault/cinevault/server"
	"github.com/cinevault/cinevault/store"
	"github.com/cinevault/cinevault/tmdb"
	"github.com/cinevault/cinevault/version"
)

const gracefulTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cinevault: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()

	if cfg.IsDevelopment() && cfg.Auth.Secret == auth.DevFallbackSecret {
		log.Warn("Using the built-in development signing secret; set JWT_SECRET for anything beyond local use")
	}

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return err
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	mongoStore := store.New(cfg.Store, hasher, log)

	catalog, err := tmdb.New(cfg.TMDB, log)
	if err != nil {
		return err
	}
	if !catalog.Configured() {
		log.Warn("No TMDB API key configured; film routes will answer tmdb_key_missing")
	}

	telemetry := observability.New(cfg.Observability, observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	}, log)

	registry := component.NewRegistry()

	httpServer := server.New(cfg.Server, log)
	httpServer.ApplyMiddleware()
	httpServer.RegisterRoutes(server.Deps{
		Identities: mongoStore.Identities(),
		Favorites:  mongoStore.Favorites(),
		Catalog:    catalog,
		Tokens:     tokens,
		Health:     registry.HealthAll,
		Log:        log,
	})

	// Start order: telemetry, store, then the listener last.
	for _, c := range []component.Component{telemetry, mongoStore, httpServer} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := registry.StartAll(ctx); err != nil {
		return err
	}
	log.Info("cinevault ready", logger.Fields(
		"addr", httpServer.Addr(),
		"environment", cfg.Environment,
		"version", version.Get().Version,
	))

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
	defer cancel()
	return registry.StopAll(shutdownCtx)
}
