package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/config"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/persistence"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/workers"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type application struct {
	router *gin.Engine
	habits *services.HabitService
	worker *workers.SaveWorker

	cancel  context.CancelFunc
	closers []func() error
}

// newApp wires storage, the state container and the HTTP surface from cfg.
func newApp(ctx context.Context, cfg *config.Config) (*application, error) {
	app := &application{}
	checks := map[string]adapterHTTP.HealthCheck{}

	var rdb *redis.Client
	if cfg.NeedsRedis() {
		client, err := cache.Connect(ctx, cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			if cfg.StorageDriver == config.DriverRedis {
				return nil, err
			}
			log.Printf("[BOOT] Redis unavailable, cache and rate limiting disabled: %v", err)
		} else {
			rdb = client
			app.closers = append(app.closers, rdb.Close)
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	blobs, err := app.openBlobStore(ctx, cfg, rdb, checks)
	if err != nil {
		app.Close()
		return nil, err
	}
	if rdb != nil && cfg.CacheEnabled && cfg.StorageDriver != config.DriverRedis {
		blobs = repository.NewCachedBlobStore(blobs, rdb, cfg.CacheTTL)
	}

	gateway := persistence.NewGateway(blobs, cfg.StorageKey, cfg.SaveTimeout)

	var persister services.Persister = gateway
	if cfg.SaveMode == config.SaveModeAsync {
		workerCtx, cancel := context.WithCancel(context.Background())
		app.cancel = cancel
		app.worker = workers.NewSaveWorker(gateway, cfg.SaveRetries, workers.DefaultSaveBackoff)
		app.worker.Start(workerCtx)
		persister = app.worker
	}

	store := services.NewStore(persister)
	if err := store.Load(ctx, gateway); err != nil {
		log.Printf("[BOOT] Starting from defaults: %v", err)
	}
	log.Printf("[BOOT] Document %q loaded from %s storage at v%d", gateway.Key(), cfg.StorageDriver, store.Version())
	store.Subscribe(func(ev services.Event) {
		if ev.Kind == services.EventHabitsPurged {
			log.Printf("[STORE] v%d purged %d archived habits", ev.Version, len(ev.HabitIDs))
		}
	})

	clock := services.SystemClock{}
	app.habits = services.NewHabitService(store, clock, cfg.SeedDays, cfg.Retention())
	stats := services.NewStatsService(store, clock)
	prefs := services.NewPreferencesService(store)

	if _, err := app.habits.SweepArchived(ctx); err != nil {
		log.Printf("[BOOT] Startup sweep not saved: %v", err)
	}

	deps := adapterHTTP.RouterDependencies{
		HabitHandler:       adapterHTTP.NewHabitHandler(app.habits),
		StatsHandler:       adapterHTTP.NewStatsHandler(stats),
		PreferencesHandler: adapterHTTP.NewPreferencesHandler(prefs),
		Redis:              rdb,
		RateLimit:          cfg.RateLimit,
		RateLimitWindow:    cfg.RateLimitWindow,
		HealthChecks:       checks,
		StartTime:          time.Now(),
	}

	if app.worker != nil {
		deps.SaveStatus = app.worker
	}

	if cfg.AuthEnabled() {
		tokens := services.NewTokenService(cfg.JWTSecret, "kanso-habit-engine", cfg.TokenTTL)
		auth, err := services.NewAuthService(cfg.OwnerPassphrase, cfg.OwnerPassphraseHash, tokens)
		if err != nil {
			app.Close()
			return nil, err
		}
		deps.TokenService = tokens
		deps.AuthHandler = adapterHTTP.NewAuthHandler(auth)
	} else {
		log.Println("[BOOT] JWT_SECRET not set, API is unauthenticated")
	}

	app.router = adapterHTTP.NewRouter(deps)
	return app, nil
}

func (a *application) openBlobStore(ctx context.Context, cfg *config.Config, rdb *redis.Client, checks map[string]adapterHTTP.HealthCheck) (domain.BlobStore, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return repository.NewInMemoryBlobStore(), nil

	case config.DriverFile:
		return repository.NewFileBlobStore(cfg.DataPath)

	case config.DriverSQLite:
		store, err := repository.NewSQLiteBlobStore(cfg.DataPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil

	case config.DriverPostgres:
		log.Println("Connecting to database...")

		db, err := sqlx.Connect("pgx", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
		a.closers = append(a.closers, db.Close)
		checks["database"] = db.PingContext

		store := repository.NewPostgresBlobStore(db, cfg.Database.Table)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		log.Println("Database connected successfully.")
		return store, nil

	case config.DriverRedis:
		return repository.NewRedisBlobStore(rdb, "kanso:"), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// Close stops the save worker after it has written any pending document,
// then releases connections.
func (a *application) Close() {
	if a.cancel != nil {
		a.cancel()
		a.worker.Wait()
		a.cancel = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("[BOOT] Close error: %v", err)
		}
	}
	a.closers = nil
}
