package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/rpg-players/internal/config"
	"github.com/riskibarqy/rpg-players/internal/domain/player"
	"github.com/riskibarqy/rpg-players/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/rpg-players/internal/infrastructure/repository/guard"
	"github.com/riskibarqy/rpg-players/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/rpg-players/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/rpg-players/internal/interfaces/httpapi"
	"github.com/riskibarqy/rpg-players/internal/platform/logging"
	"github.com/riskibarqy/rpg-players/internal/platform/pgurl"
	"github.com/riskibarqy/rpg-players/internal/platform/resilience"
	"github.com/riskibarqy/rpg-players/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// CleanupFunc releases resources acquired by NewHTTPServer.
type CleanupFunc func(ctx context.Context) error

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, CleanupFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var closers []func() error

	playerRepo, closeStore, err := newPlayerStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStore)

	if cfg.StoreCircuitEnabled {
		breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.StoreCircuitFailureCount,
			OpenTimeout:      cfg.StoreCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StoreCircuitHalfOpenMaxReq,
		}, func(from, to resilience.CircuitState) {
			logger.Warn("player store circuit changed", "from", from, "to", to)
		})
		playerRepo = guard.NewPlayerRepository(playerRepo, breaker)
	}
	if cfg.CacheEnabled {
		cached := cache.NewPlayerRepository(playerRepo, cfg.CacheTTL)
		closers = append(closers, func() error {
			cached.Close()
			return nil
		})
		playerRepo = cached
	}

	validator := usecase.NewPlayerValidator(playerRepo, cfg.BirthdayLocation)
	playerSvc := usecase.NewPlayerService(playerRepo, validator, logger)

	opts := httpapi.RouterOptions{CORSAllowedOrigins: cfg.CORSAllowedOrigins}
	if cfg.RateLimitEnabled {
		limiter := httpapi.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		closers = append(closers, func() error {
			limiter.Stop()
			return nil
		})
		opts.RateLimiter = limiter
	}

	handler := httpapi.NewHandler(playerSvc, logger)
	router := httpapi.NewRouter(handler, logger, opts)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func(context.Context) error {
		var firstErr error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	return server, cleanup, nil
}

func newPlayerStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (player.Repository, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("bootstrap player seed: %w", err)
			}
			logger.Info("player seed applied")
		}
		logger.Info("player store ready", "driver", cfg.StoreDriver, "db_name", pgurl.DBName(cfg.DBURL))
		return postgres.NewPlayerRepository(db), db.Close, nil
	default:
		logger.Info("player store ready", "driver", config.StoreDriverMemory)
		return memory.NewPlayerRepository(memory.SeedPlayers()), func() error { return nil }, nil
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", pgurl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(semconv.DBSystemNamePostgreSQL),
		otelsql.WithDBName(pgurl.DBName(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	return db, nil
}
