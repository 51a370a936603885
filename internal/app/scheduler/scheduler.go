// Package scheduler содержит логику планировщика напоминаний о намазах.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/prayer-tracker/internal/config"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/locator"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
	"github.com/magabrotheeeer/prayer-tracker/internal/scheduleprovider"
	reminderservice "github.com/magabrotheeeer/prayer-tracker/internal/services/reminder"
	"github.com/magabrotheeeer/prayer-tracker/internal/storage/repository"
)

// App представляет приложение планировщика напоминаний.
type App struct {
	reminderService *reminderservice.ReminderService
	conn            *amqp.Connection
	ch              *amqp.Channel
	interval        time.Duration
	logger          *slog.Logger
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	queues := rabbitmq.GetReminderQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(db); err != nil {
		closeResources(ch, conn, logger)
		return nil, err
	}

	providerClient := scheduleprovider.NewClient(cfg.AladhanAddress)
	location := resolveLocation(ctx, cfg, logger)

	reminderService := reminderservice.NewReminderService(providerClient, db, location, cfg.LeadWindow, logger)

	return &App{
		reminderService: reminderService,
		conn:            conn,
		ch:              ch,
		interval:        cfg.CheckInterval,
		logger:          logger,
	}, nil
}

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
	return *located
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", "error", err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", "error", err)
		}
	}
}

// Run запускает планировщик.
func (a *App) Run(ctx context.Context) error {
	go a.reminderService.Run(ctx, a.ch, a.interval)

	<-ctx.Done()

	a.logger.Info("shutting down reminder scheduler")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
