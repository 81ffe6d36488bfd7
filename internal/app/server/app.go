package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"healthwatch/internal/app/server/api"
	"healthwatch/internal/app/server/api/http/middleware/ratelimit"
	"healthwatch/internal/app/server/config"
	"healthwatch/internal/domain/alert"
	"healthwatch/internal/domain/casereport"
	"healthwatch/internal/domain/user"
	"healthwatch/internal/domain/watertest"
	"healthwatch/internal/infrastructure/blob"
	"healthwatch/internal/infrastructure/migration"
	"healthwatch/internal/infrastructure/seed"
	"healthwatch/internal/infrastructure/storage/memory"
	"healthwatch/internal/infrastructure/storage/postgres"

	"golang.org/x/exp/slog"
)

var ErrNoDatabase = errors.New("DATABASE_URI must be set in prod")

// Stores: репозитории всех видов записей поверх одного хранилища.
type Stores struct {
	Users      user.Repository
	Cases      casereport.Repository
	WaterTests watertest.Repository
	Alerts     alert.Repository
	ping       func(context.Context) error
	close      func() error
}

func (s *Stores) Ping(ctx context.Context) error { return s.ping(ctx) }
func (s *Stores) Close() error                   { return s.close() }

// OpenStores подключается к PostgreSQL. Без DATABASE_URI (кроме prod) данные живут в памяти.
func OpenStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Stores, error) {
	if cfg.DB.DatabaseURI == "" {
		if cfg.Env == config.EnvProd {
			return nil, ErrNoDatabase
		}
		log.Warn("DATABASE_URI is empty, using in-memory storage")
		m := memory.New()
		return &Stores{
			Users:      m.Users(),
			Cases:      m.Cases(),
			WaterTests: m.WaterTests(),
			Alerts:     m.Alerts(),
			ping:       m.Ping,
			close:      m.Close,
		}, nil
	}

	pg, err := postgres.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pool := pg.Pool()
	return &Stores{
		Users:      postgres.NewUserRepository(pool, log),
		Cases:      postgres.NewCaseRepository(pool, log),
		WaterTests: postgres.NewWaterTestRepository(pool, log),
		Alerts:     postgres.NewAlertRepository(pool, log),
		ping:       pg.Ping,
		close:      pg.Close,
	}, nil
}

func openBlobs(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	if cfg.Upload.Backend == config.BlobS3 {
		client, err := blob.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return blob.NewS3(client, cfg.S3.Bucket), nil
	}
	return blob.NewLocal(cfg.Upload.Dir)
}

func openLimiter(ctx context.Context, cfg *config.Config, log *slog.Logger) ratelimit.Limiter {
	if cfg.RateLimit.RedisAddr != "" {
		rl, err := ratelimit.NewRedis(ctx, cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB, log)
		if err == nil {
			return rl
		}
		log.Warn("redis unavailable, falling back to in-memory rate limiter", "error", err)
	}
	return ratelimit.NewMemory()
}

type App struct {
	cfg     *config.Config
	log     *slog.Logger
	stores  *Stores
	limiter ratelimit.Limiter
	srv     *http.Server
}

// New готовит всё, без чего сервер не может стартовать: миграции, хранилища, маршруты.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if cfg.Auth.DefaultSecret {
		log.Warn("JWT_SECRET is not set, tokens are signed with the built-in development secret", "env", cfg.Env)
	}

	if cfg.DB.DatabaseURI != "" {
		if err := migration.NewMigration(cfg, migration.DefaultEngine, log).Up(); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	stores, err := OpenStores(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	blobs, err := openBlobs(ctx, cfg)
	if err != nil {
		_ = stores.Close()
		return nil, fmt.Errorf("open blob storage: %w", err)
	}

	if cfg.Seed.Alerts {
		// сбой сидирования не мешает запуску
		if _, err := seed.Alerts(ctx, stores.Alerts, log); err != nil {
			log.Error("failed to seed alerts", "error", err)
		}
	}

	limiter := openLimiter(ctx, cfg, log)

	mux := api.New(cfg, api.Deps{
		Users:      stores.Users,
		Cases:      stores.Cases,
		WaterTests: stores.WaterTests,
		Alerts:     stores.Alerts,
		Blobs:      blobs,
		Limiter:    limiter,
		DB:         stores,
	}, log)

	return &App{
		cfg:     cfg,
		log:     log,
		stores:  stores,
		limiter: limiter,
		srv: &http.Server{
			Addr:              cfg.Server.RunAddress,
			Handler:           mux,
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		},
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.srv.Handler
}

// Run обслуживает запросы до отмены ctx, затем корректно завершает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server started", "address", a.cfg.Server.RunAddress, "env", a.cfg.Env)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		a.close()
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := a.srv.Shutdown(shutdownCtx)
	a.close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}

func (a *App) close() {
	if err := a.limiter.Close(); err != nil {
		a.log.Error("close rate limiter", "error", err)
	}
	if err := a.stores.Close(); err != nil {
		a.log.Error("close storage", "error", err)
	}
}
