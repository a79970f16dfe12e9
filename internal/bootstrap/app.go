package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"magang-intel/internal/dataset"
	"magang-intel/internal/favorites"
	"magang-intel/internal/services/health"
	"magang-intel/internal/shared/config"
	"magang-intel/internal/shared/server"
	"magang-intel/internal/shared/server/middleware"
	"magang-intel/internal/shared/storage/db"
	"magang-intel/internal/shared/storage/object"
	localstore "magang-intel/internal/shared/storage/object/local"
	s3store "magang-intel/internal/shared/storage/object/s3"
	"magang-intel/internal/shared/telemetry"
	"magang-intel/internal/statuscheck"
	"magang-intel/internal/vacancies"
)

const initialLoadTimeout = 90 * time.Second

// App holds shared dependencies and the assembled router.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Store    object.ObjectStore
	Dataset  *dataset.Store
	Reloader *dataset.Reloader

	VacanciesService *vacancies.Service
	FavoritesService *favorites.Service
	StatusClient     *statuscheck.Client
}

// Build prepares dependencies, loads the first dataset snapshot and wires
// routes. A failed initial load is not fatal: the API answers 503 for dataset
// routes until the reloader succeeds.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.FavoritesStore) == "" {
		cfg.FavoritesStore = "object"
	}
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Store:   store,
		Dataset: dataset.NewStore(),
	}
	app.Reloader = &dataset.Reloader{
		Source:   buildSource(cfg, store),
		Store:    app.Dataset,
		Interval: cfg.DatasetReloadInterval,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loadCtx, cancel := context.WithTimeout(ctx, initialLoadTimeout)
		defer cancel()
		if err := app.Reloader.LoadOnce(loadCtx); err != nil {
			telemetry.Warn("bootstrap.dataset.unavailable", map[string]any{"error": err})
		}
		return nil
	})
	g.Go(func() error {
		sqlDB, err := buildDB(gctx, cfg)
		if err != nil {
			return err
		}
		app.DB = sqlDB
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	repo := buildFavoritesRepo(app)
	app.VacanciesService = vacancies.NewService(app.Dataset)
	app.FavoritesService = favorites.NewService(repo, app.VacanciesService)
	app.StatusClient = statuscheck.NewClient(cfg.StatusAPIBase, cfg.StatusAPIPrefix, cfg.StatusAPISignature, cfg.StatusTimeout)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Health:           health.NewService(app.Dataset, app.DB),
		VacancyHandler:   vacancies.NewHandler(app.VacanciesService),
		FavoritesHandler: favorites.NewHandler(app.FavoritesService),
		StatusHandler:    statuscheck.NewHandler(app.StatusClient),
		RateLimiter:      middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"object_store":    cfg.ObjectStoreType,
		"favorites_store": cfg.FavoritesStore,
		"dataset_source":  app.Reloader.Source.Name(),
		"dataset_loaded":  app.Dataset.Status().Loaded,
	})
	return app, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildSource(cfg config.Config, store object.ObjectStore) dataset.Source {
	if loc := strings.TrimSpace(cfg.DatasetURL); loc != "" {
		return dataset.ParseSource(loc)
	}
	return dataset.ObjectSource{Store: store, Key: cfg.DatasetKey}
}

// buildDB opens the database the favorites backend needs, or returns nil for
// memory and object backends.
func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	switch cfg.FavoritesStore {
	case "sqlite":
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath, db.OptionsFromEnv(db.DefaultSQLiteOptions()))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return sqlDB, nil
	case "postgres":
		return buildPostgres(ctx, cfg)
	default:
		return nil, nil
	}
}

func buildPostgres(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_url.empty", map[string]any{"fallback": "memory"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultLambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database.connect_failed", map[string]any{"fallback": "memory", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildFavoritesRepo(app *App) favorites.Repo {
	switch app.Config.FavoritesStore {
	case "postgres":
		if app.DB != nil {
			return &favorites.PGRepo{DB: app.DB}
		}
		return favorites.NewMemoryRepo()
	case "sqlite":
		return &favorites.SQLiteRepo{DB: app.DB}
	case "memory":
		return favorites.NewMemoryRepo()
	default:
		return favorites.NewObjectRepo(app.Store)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
