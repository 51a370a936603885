// Package prayertracker собирает основное HTTP-приложение трекера намазов:
// хранилище, кеш, внешние клиенты, сервисы и маршруты.
package prayertracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/prayer-tracker/internal/cache"
	"github.com/magabrotheeeer/prayer-tracker/internal/config"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/locator"
	"github.com/magabrotheeeer/prayer-tracker/internal/migrations"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
	"github.com/magabrotheeeer/prayer-tracker/internal/scheduleprovider"
	scheduleservice "github.com/magabrotheeeer/prayer-tracker/internal/services/schedule"
	trackerservice "github.com/magabrotheeeer/prayer-tracker/internal/services/tracker"
	"github.com/magabrotheeeer/prayer-tracker/internal/storage/repository"
)

// App — HTTP-приложение трекера намазов.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New собирает приложение: подключает хранилище и кеш, прогоняет миграции,
// определяет местоположение и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	providerClient := scheduleprovider.NewClient(cfg.AladhanAddress)
	location := resolveLocation(ctx, cfg, logger)

	trackerService := trackerservice.NewTrackerService(db, cacheRedis, logger)
	scheduleService := scheduleservice.NewScheduleService(providerClient, location, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, trackerService, scheduleService, providerClient)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// resolveLocation определяет координаты по внешнему IP; при ошибке берутся
// координаты из конфигурации.
func resolveLocation(ctx context.Context, cfg *config.Config, logger *slog.Logger) models.Location {
	located, err := locator.NewClient(cfg.LocatorAddress).Locate(ctx)
	if err != nil {
		logger.Warn("failed to locate by ip, using default location", sl.Err(err),
			slog.String("city", cfg.DefaultLocation.City))
		return models.Location{
			Latitude:  cfg.DefaultLocation.Latitude,
			Longitude: cfg.DefaultLocation.Longitude,
			City:      cfg.DefaultLocation.City,
		}
	}
	logger.Info("location resolved", slog.String("city", located.City),
		slog.String("country", located.Country))
	return *located
}

// Run запускает HTTP-сервер и завершает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
