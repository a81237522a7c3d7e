package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/drivecase/db"
	"github.com/dmitrymomot/drivecase/pkg/config"
	"github.com/dmitrymomot/drivecase/pkg/drive"
	"github.com/dmitrymomot/drivecase/pkg/environment"
	"github.com/dmitrymomot/drivecase/pkg/httpserver"
	"github.com/dmitrymomot/drivecase/pkg/logger"
	"github.com/dmitrymomot/drivecase/pkg/pg"
	"github.com/dmitrymomot/drivecase/pkg/requestid"
	"github.com/dmitrymomot/drivecase/svc/registry"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.AppEnv)
	opts := []logger.Option{
		logger.WithEnvironment(env, cfg.AppName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel, slog.LevelInfo)))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	metrics := prometheus.NewRegistry()
	metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gw, err := newGateway(ctx, cfg.Drive)
	if err != nil {
		return err
	}
	gw = drive.WithMetrics(gw, drive.NewMetrics(metrics))
	log.Info("storage gateway ready", slog.String("backend", cfg.Drive.Backend))

	var (
		cases  *registry.Service
		checks []httpserver.Check
	)
	if cfg.PG.Enabled() {
		pool, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return err
		}
		defer pool.Close()

		if cfg.PG.AutoMigrate {
			if err := pg.Migrate(ctx, pool, cfg.PG, db.Migrations, db.MigrationsDir, log); err != nil {
				return err
			}
		}
		cases = newRegistry(pool, cfg, log)
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	} else {
		log.Warn("PG_CONN_URL is empty, case registry routes are disabled")
	}

	router, err := newRouter(cfg, log, gw, cases, metrics, checks...)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func newGateway(ctx context.Context, cfg drive.Config) (drive.Gateway, error) {
	if cfg.Backend == drive.BackendMemory {
		return drive.NewMemoryGateway(), nil
	}
	return drive.NewGoogleGateway(ctx, cfg)
}

func newRegistry(pool *pgxpool.Pool, cfg Config, log *slog.Logger) *registry.Service {
	return registry.New(registry.NewPostgresStore(pool), cfg.Registry, registry.WithLogger(log))
}
