// Package services содержит планировщик напоминаний: по тикеру определяет
// приближающийся намаз и публикует сообщения в очередь напоминаний.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/prayer-tracker/internal/lib/dates"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

// UserRepository определяет выборку пользователей для рассылки.
type UserRepository interface {
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// ScheduleProvider описывает внешний источник расписаний.
type ScheduleProvider interface {
	FetchDay(ctx context.Context, lat, lon float64, date time.Time) (models.DailySchedule, error)
}

// ReminderService публикует напоминание о каждом намазе один раз в день,
// когда до него остаётся не больше leadWindow.
type ReminderService struct {
	provider   ScheduleProvider
	repo       UserRepository
	location   models.Location
	leadWindow time.Duration
	log        *slog.Logger

	announced map[string]bool // ключ "дата/намаз", уже опубликованные
}

// NewReminderService создает новый экземпляр ReminderService.
func NewReminderService(provider ScheduleProvider, repo UserRepository,
	location models.Location, leadWindow time.Duration, log *slog.Logger) *ReminderService {
	return &ReminderService{
		provider:   provider,
		repo:       repo,
		location:   location,
		leadWindow: leadWindow,
		log:        log,
		announced:  make(map[string]bool),
	}
}

// Run запускает цикл проверки. Ошибки одной итерации логируются,
// цикл продолжается.
func (s *ReminderService) Run(ctx context.Context, channel *amqp.Channel, interval time.Duration) {
	s.runOnce(ctx, channel)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, channel)
		}
	}
}

func (s *ReminderService) runOnce(ctx context.Context, channel *amqp.Channel) {
	now := time.Now()
	today := now.Format(dates.Layout)

	schedule, err := s.provider.FetchDay(ctx, s.location.Latitude, s.location.Longitude, now)
	if err != nil {
		s.log.Error("failed to fetch today schedule", sl.Err(err))
		return
	}

	clock := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second

	for _, prayer := range models.PrayerNames {
		raw, ok := schedule.Timings[prayer]
		if !ok {
			continue
		}
		parsed, err := time.Parse("15:04", raw)
		if err != nil {
			continue
		}
		prayerClock := time.Duration(parsed.Hour())*time.Hour +
			time.Duration(parsed.Minute())*time.Minute

		gap := prayerClock - clock
		if gap <= 0 || gap > s.leadWindow {
			continue
		}

		key := today + "/" + prayer
		if s.announced[key] {
			continue
		}

		if s.publish(ctx, channel, prayer, raw, today) {
			s.announced[key] = true
		}
	}

	// записи прошлых дней больше не понадобятся
	for key := range s.announced {
		if len(key) >= len(today) && key[:len(today)] != today {
			delete(s.announced, key)
		}
	}
}

func (s *ReminderService) publish(ctx context.Context, channel *amqp.Channel, prayer, at, today string) bool {
	users, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		s.log.Error("failed to list users", sl.Err(err))
		return false
	}
	if len(users) == 0 {
		s.log.Info("no users to remind")
		return true
	}

	s.log.Info("publishing prayer reminders", slog.String("prayer", prayer),
		slog.String("time", at), "count", len(users))

	published := false
	for _, userID := range users {
		info := models.ReminderInfo{
			EventID: uuid.New().String(),
			UserID:  userID,
			Prayer:  prayer,
			Time:    at,
			Date:    today,
		}
		if err := rabbitmq.PublishMessage(channel, rabbitmq.ReminderExchange, "upcoming", info); err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
			continue
		}
		published = true
	}
	return published
}
