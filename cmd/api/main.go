package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"bizplan/internal/config"
	handlers "bizplan/internal/http/handler"
	"bizplan/internal/http/middleware"
	"bizplan/internal/kvstore"
	"bizplan/internal/otel"
	"bizplan/internal/remote"
	"bizplan/internal/repository"
	"bizplan/internal/service"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	store, err := newStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("mode", cfg.Storage.Mode).Msg("failed to initialize storage")
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	tasks, resources := newServices(cfg, store, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, store, tasks, resources)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("storage_mode", cfg.Storage.Mode).Bool("use_api", cfg.API.UseAPI).Msg("starting server")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// newStore builds the slot store selected by STORAGE_MODE.
func newStore(cfg *config.AppConfig, log zerolog.Logger) (kvstore.Store, error) {
	switch cfg.Storage.Mode {
	case "memory":
		return kvstore.NewMemory(), nil
	case "sqlite":
		return kvstore.NewSQLite(cfg.Storage.SQLitePath)
	case "postgres":
		return kvstore.NewPostgres(cfg.Database)
	case "minio":
		return kvstore.NewMinIO(cfg.MinIO)
	default:
		log.Warn().Str("mode", cfg.Storage.Mode).Msg("unknown storage mode, falling back to sqlite")
		return kvstore.NewSQLite(cfg.Storage.SQLitePath)
	}
}

// newServices wires either local repositories over the slot store or, when
// USE_API is set, clients for a remote instance of this API.
func newServices(cfg *config.AppConfig, store kvstore.Store, log zerolog.Logger) (service.TaskService, service.ResourceService) {
	if cfg.API.UseAPI {
		client := remote.NewClient(remote.Config{
			BaseURL:      cfg.API.BaseURL,
			Timeout:      time.Duration(cfg.API.TimeoutSec) * time.Second,
			ProbeTimeout: time.Duration(cfg.API.ProbeTimeoutSec) * time.Second,
			Token:        cfg.API.Token,
		})
		if ok := client.CheckAvailability(context.Background()); !ok {
			log.Warn().Str("base_url", cfg.API.BaseURL).Msg("remote API unavailable, requests will fail until it recovers")
		}
		return remote.NewTaskService(client), remote.NewResourceService(client)
	}

	taskRepo := repository.NewLocalTaskRepository(store, log)
	resourceRepo := repository.NewLocalResourceRepository(store, log)
	return service.NewTaskService(taskRepo), service.NewResourceService(resourceRepo)
}
