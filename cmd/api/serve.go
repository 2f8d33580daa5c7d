package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"rosapi/docs"
	"rosapi/internal/config"
	"rosapi/internal/encryption"
	"rosapi/internal/events"
	"rosapi/internal/gitrepo"
	handlers "rosapi/internal/http/handler"
	"rosapi/internal/http/middleware"
	"rosapi/internal/otel"
	"rosapi/internal/repository/postgres"
	"rosapi/internal/service"
	"rosapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger := bootstrap()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := openMigrated(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	cipher, err := encryption.NewXChaCha(cfg.Encryption.Key)
	if err != nil {
		return fmt.Errorf("encryption: %w", err)
	}

	archive, err := newArchive(ctx, cfg, logger)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	rosSvc := service.NewROSService(service.Dependencies{
		Git:     gitrepo.NewGitHub(cfg.GitHub),
		Cipher:  cipher,
		Records: postgres.NewRecordPostgres(db),
		Archive: archive,
		Events:  publisher,
		Logger:  logger,
	}, service.Options{
		ROSDirectory:  cfg.GitHub.ROSDirectory,
		SubjectPrefix: cfg.NATS.SubjectPrefix,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(logger))
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware())

	handlers.RegisterRoutes(app, db, rosSvc, reg)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		logger.Info("server_stopping")
		_ = app.ShutdownWithTimeout(shutdownTimeout)
	}()

	addr := ":" + cfg.Port
	logger.Info("server_listening", "addr", addr, "archive_enabled", archive != nil, "events_enabled", cfg.NATS.URL != "")
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newArchive returns nil when MINIO_ENDPOINT is unset; snapshots are then skipped.
func newArchive(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (storage.Storage, error) {
	if cfg.MinIO.Endpoint == "" {
		logger.Info("snapshot_archive_disabled")
		return nil, nil
	}
	s, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("object storage: %w", err)
	}
	return s, nil
}

func newPublisher(cfg *config.AppConfig, logger *slog.Logger) (events.Publisher, error) {
	if cfg.NATS.URL == "" {
		return events.Noop(), nil
	}
	p, err := events.NewNATS(cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("nats: %w", err)
	}
	return p, nil
}
