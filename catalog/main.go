package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tessera-labs/tessera-go/internal/beans"
	"github.com/tessera-labs/tessera-go/internal/platform/env"
	"github.com/tessera-labs/tessera-go/internal/platform/httpserver"
	"github.com/tessera-labs/tessera-go/internal/platform/objectstore"
	"github.com/tessera-labs/tessera-go/internal/platform/postgres"
	repopg "github.com/tessera-labs/tessera-go/internal/repo/postgres"
	"github.com/tessera-labs/tessera-go/internal/typereg"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := env.String("TESSERA_CATALOG_HTTP_ADDR", ":8085")
	shutdownTimeout, err := env.Duration("TESSERA_CATALOG_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		logger.Error("invalid env", "error", err)
		os.Exit(2)
	}

	dbCfg, err := postgres.ConfigFromEnv()
	if err != nil {
		logger.Error("invalid database config", "error", err)
		os.Exit(2)
	}
	db, err := postgres.Open(ctx, dbCfg)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	registry, err := buildRegistry(ctx, logger)
	if err != nil {
		logger.Error("type registry unavailable", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", httpserver.Healthz("catalog"))
	mux.HandleFunc(
		"/readyz",
		httpserver.ReadyzWithChecks(
			"catalog",
			httpserver.ReadinessCheck{
				Name: "postgres",
				Check: func(ctx context.Context) error {
					checkCtx, cancel := context.WithTimeout(ctx, 750*time.Millisecond)
					defer cancel()
					return db.PingContext(checkCtx)
				},
			},
		),
	)

	api := newCatalogAPI(logger, repopg.NewEntityStore(db), repopg.NewRelationshipStore(db), registry)
	api.audit = db
	api.register(mux)

	cfg := httpserver.Config{
		Service:         "catalog",
		Addr:            addr,
		ShutdownTimeout: shutdownTimeout,
	}

	if err := httpserver.Run(ctx, logger, cfg, httpserver.Wrap(logger, "catalog", mux)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// buildRegistry registers the generated type sets and then layers the
// optional type archives on top, in the order given, so later entries win
// for shared names.
func buildRegistry(ctx context.Context, logger *slog.Logger) (*typereg.Registry, error) {
	registry := typereg.NewRegistry()
	beans.RegisterTypes(registry)

	applied := 0
	for _, file := range env.Strings("TESSERA_TYPE_ARCHIVE_FILES", nil) {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read type archive %s: %w", file, err)
		}
		if err := applyArchive(registry, raw); err != nil {
			return nil, fmt.Errorf("type archive %s: %w", file, err)
		}
		applied++
	}

	if object := env.String("TESSERA_TYPE_ARCHIVE_OBJECT", ""); object != "" {
		cfg, err := objectstore.ConfigFromEnv()
		if err != nil {
			return nil, err
		}
		client, err := objectstore.NewMinIOClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("object store client: %w", err)
		}
		raw, err := objectstore.FetchObject(ctx, client, cfg.BucketArchives, object)
		if err != nil {
			return nil, err
		}
		if err := applyArchive(registry, raw); err != nil {
			return nil, fmt.Errorf("type archive %s: %w", object, err)
		}
		applied++
	}

	if applied > 0 {
		logger.Info("type archives applied", "archives", applied, "types", len(registry.TypeNames()))
	}
	return registry, nil
}

func applyArchive(registry *typereg.Registry, raw []byte) error {
	archive, err := typereg.ParseArchive(raw)
	if err != nil {
		return err
	}
	return archive.Apply(registry)
}
