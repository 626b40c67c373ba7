package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobboard/internal/auth"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	handlers "jobboard/internal/http/handler"
	"jobboard/internal/http/middleware"
	"jobboard/internal/logging"
	"jobboard/internal/metrics"
	"jobboard/internal/otel"
	"jobboard/internal/repository/postgres"
	"jobboard/internal/service"
	"jobboard/internal/storage"
)

// bodyHeadroom leaves room for multipart framing and form fields around a resume.
const bodyHeadroom = 1 << 20

// @title Job Board API
// @version 1.0
// @BasePath /api
func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.Location())
	logging.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server_exit", err, logging.Fields{"event": "server_exit"})
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *logging.Logger) error {
	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "jobboard", log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// PostgreSQL connection pool, schema created on first start
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	// S3-compatible object storage for resumes
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	domainMetrics, err := metrics.NewPrometheus(reg)
	if err != nil {
		return err
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	users := postgres.NewUserPostgres(db)
	jobs := postgres.NewJobPostgres(db)
	apps := postgres.NewApplicationPostgres(db)

	services := handlers.Services{
		Auth: service.NewAuthService(users, apps, objStore, tokens, service.AuthOptions{
			BcryptCost:     cfg.Auth.BcryptCost,
			ResumeMaxBytes: cfg.Upload.ResumeMaxBytes,
		}, log),
		Jobs:         service.NewJobService(jobs, apps, objStore, domainMetrics, log),
		Applications: service.NewApplicationService(apps, jobs, users, objStore, cfg.Upload.ResumeMaxBytes, domainMetrics, log),
		Admin:        service.NewAdminService(users, jobs, apps, objStore, log),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Upload.ResumeMaxBytes) + bodyHeadroom,
	})

	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	// RequestID runs before Logger so every access line carries the ID
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, services, tokens)

	go func() {
		<-ctx.Done()
		log.Info("server_shutdown", logging.Fields{"event": "server_shutdown"})
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	log.Info("server_listening", logging.Fields{"event": "server_listening", "addr": addr})
	return app.Listen(addr)
}
