// Command starburst serves the StarBurst auction and classifieds site.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/adness/starburst"
	"github.com/adness/starburst/internal/repository"
	"github.com/adness/starburst/middlewares"
	"github.com/adness/starburst/pkg/db"
	"github.com/adness/starburst/pkg/identity"
	"github.com/adness/starburst/pkg/logger"
	"github.com/adness/starburst/pkg/redis"
	"github.com/adness/starburst/pkg/session"
)

func main() {
	configPath := flag.String("config", os.Getenv("STARBURST_CONFIG"), "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath, environ())
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Development() {
		level = slog.LevelDebug
	}
	log := logger.New(
		logger.WithLevel(level),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
		logger.WithSentry(cfg.Sentry),
	)

	ctx := context.Background()

	client, err := redis.Open(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	hooks := []starburst.RunOption{starburst.ShutdownHook(redis.Shutdown(client))}
	checks := []starburst.HealthOption{starburst.WithReadinessCheck("redis", redis.Healthcheck(client))}

	var (
		models starburst.Models
		users  identity.UserStore
	)
	if cfg.Database.ConnectionString != "" {
		pool, err := db.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		if err := db.Migrate(ctx, pool, repository.Migrations(), cfg.Database.MigrationsTable, log); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		q := repository.New(pool)
		models, users = q, q
		hooks = append(hooks, starburst.ShutdownHook(db.Shutdown(pool)))
		checks = append(checks, starburst.WithReadinessCheck("postgres", db.Healthcheck(pool)))
	} else {
		log.Warn("DATABASE_URL is not set, serving in-memory models")
		mem := repository.NewMemory()
		models, users = mem, mem
	}

	app, err := starburst.New(
		starburst.WithLogger(log),
		starburst.WithModels(models),
		starburst.WithIdentity(identity.NewLocal(users)),
		starburst.WithSessionStore(session.NewRedisStore(client)),
		starburst.WithCookieSecret(cfg.CookieSecret),
		starburst.WithDevelopment(cfg.Development()),
		starburst.WithTrustProxy(cfg.TrustProxy),
		starburst.WithPublicFS(dirFS(cfg.PublicDir)),
		starburst.WithAssetsFS(dirFS(cfg.AssetsDir)),
		starburst.WithContentFS(dirFS(cfg.ContentDir)),
		starburst.WithHealthChecks(checks...),
	)
	if err != nil {
		return err
	}

	hooks = append(hooks, starburst.ShutdownHook(logger.FlushSentry(2*time.Second)))
	log.Info("starting", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
	return app.Run(cfg.Address, hooks...)
}

// dirFS returns nil for an empty dir so the embedded default is kept.
func dirFS(dir string) fs.FS {
	if dir == "" {
		return nil
	}
	return os.DirFS(dir)
}

func environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}
