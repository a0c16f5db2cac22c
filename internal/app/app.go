package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goaltracker/internal/clock"
	"github.com/templui/goaltracker/internal/config"
	"github.com/templui/goaltracker/internal/db"
	"github.com/templui/goaltracker/internal/repository"
	"github.com/templui/goaltracker/internal/service"
	"github.com/templui/goaltracker/internal/storage"
)

type App struct {
	Cfg                  *config.Config
	DB                   *sqlx.DB
	Storage              storage.Storage
	GoalRepository       repository.GoalRepository
	PreferenceRepository repository.PreferenceRepository
	GoalService          *service.GoalService
}

// Open connects the configured storage backend, running migrations for SQL drivers
func Open(cfg *config.Config) (*sqlx.DB, storage.Storage, error) {
	var database *sqlx.DB
	if cfg.UsesDatabase() {
		var err error
		database, err = db.Init(cfg.StorageDriver, cfg.DBConnection)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		err = db.RunMigrations(database.DB, cfg.StorageDriver)
		if err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	store, err := storage.New(cfg, database)
	if err != nil {
		db.Close(database)
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return database, store, nil
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	database, store, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	// Repositories
	keys := repository.Keys{Prefix: cfg.StorageKey}
	goalRepository := repository.NewGoalRepository(store, keys)
	preferenceRepository := repository.NewPreferenceRepository(store, keys)

	// Services
	goalService := service.NewGoalService(
		ctx,
		goalRepository,
		preferenceRepository,
		clock.System{Location: cfg.Location},
		cfg.StorageTimeout,
	)

	return &App{
		Cfg:                  cfg,
		DB:                   database,
		Storage:              store,
		GoalRepository:       goalRepository,
		PreferenceRepository: preferenceRepository,
		GoalService:          goalService,
	}, nil
}

// Close lets pending saves finish before the database goes away
func (a *App) Close() error {
	if a.GoalService != nil {
		a.GoalService.Close()
	}
	return db.Close(a.DB)
}
