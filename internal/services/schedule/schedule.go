// Package services содержит бизнес-логику расписания намазов: определение
// ближайшего намаза и времени до следующего относительно опорных часов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

// Tolerance — окно после времени намаза, в течение которого он всё ещё
// считается текущим. Обе операции обязаны использовать одно и то же окно.
const Tolerance = 35 * time.Minute

const timeLayout = "15:04"

// ErrScheduleUnavailable возвращается, когда провайдер недоступен или ни одно
// время намаза не удалось разобрать.
var ErrScheduleUnavailable = errors.New("prayer schedule unavailable")

// NowMarker — литерал ответа, когда следующий намаз идёт прямо сейчас.
const NowMarker = "Now"

// prayerDistance — название намаза и его знаковое "расстояние" от опорного
// времени. Список строится один раз и потребляется обеими операциями,
// чтобы ранжирование и обратный отсчёт не разошлись.
type prayerDistance struct {
	Name     string
	Distance time.Duration
}

// clockOf переводит время суток в смещение от полуночи.
func clockOf(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

// distances вычисляет расстояние до каждого намаза в каноническом порядке.
// Будущий намаз — прямой зазор. Прошедший внутри окна Tolerance — прошедшее
// время, либо ноль при collapseTolerance (режим обратного отсчёта). Прошедший
// за пределами окна трактуется как завтрашний: 24 часа минус прошедшее время —
// расстояние остаётся ограниченным и положительным, даже когда все пять
// намазов уже позади. Неразбираемое время исключает намаз из списка.
//
// Расчёт корректен только для расписания текущего дня: прошедшее время
// никогда не превышает суток.
func distances(schedule models.DailySchedule, now time.Time, collapseTolerance bool) []prayerDistance {
	clock := clockOf(now)

	var result []prayerDistance
	for _, name := range models.PrayerNames {
		raw, ok := schedule.Timings[name]
		if !ok {
			continue
		}
		parsed, err := time.Parse(timeLayout, raw)
		if err != nil {
			continue
		}
		prayerClock := clockOf(parsed)

		var distance time.Duration
		switch {
		case prayerClock > clock:
			distance = prayerClock - clock
		case clock-prayerClock <= Tolerance:
			if collapseTolerance {
				distance = 0
			} else {
				distance = clock - prayerClock
			}
		default:
			distance = 24*time.Hour - (clock - prayerClock)
		}

		result = append(result, prayerDistance{Name: name, Distance: distance})
	}
	return result
}

// NearestPrayer возвращает название намаза с минимальным расстоянием от now.
// Сравнение строгое, поэтому при равных расстояниях побеждает первый
// в каноническом порядке. Если ни одно время не разобрано — ErrScheduleUnavailable.
func NearestPrayer(schedule models.DailySchedule, now time.Time) (string, error) {
	ranked := distances(schedule, now, false)
	if len(ranked) == 0 {
		return "", ErrScheduleUnavailable
	}

	best := ranked[0]
	for _, candidate := range ranked[1:] {
		if candidate.Distance < best.Distance {
			best = candidate
		}
	}
	return best.Name, nil
}

// TimeUntilNext возвращает строку обратного отсчёта до следующего намаза.
// Намаз внутри окна Tolerance считается идущим сейчас — возвращается NowMarker.
// Иначе формат "-H:MM:SS"; ведущий минус — соглашение отображения
// "времени осталось", а не отрицательная длительность.
func TimeUntilNext(schedule models.DailySchedule, now time.Time) (string, error) {
	ranked := distances(schedule, now, true)
	if len(ranked) == 0 {
		return "", ErrScheduleUnavailable
	}

	min := ranked[0].Distance
	for _, candidate := range ranked[1:] {
		if candidate.Distance < min {
			min = candidate.Distance
		}
	}

	if min == 0 {
		return NowMarker, nil
	}

	hours := int(min / time.Hour)
	minutes := int(min/time.Minute) % 60
	seconds := int(min/time.Second) % 60
	return fmt.Sprintf("-%d:%02d:%02d", hours, minutes, seconds), nil
}

// ScheduleProvider описывает внешний источник расписаний.
type ScheduleProvider interface {
	FetchDay(ctx context.Context, lat, lon float64, date time.Time) (models.DailySchedule, error)
}

// ScheduleService отвечает на запросы о сегодняшнем расписании. Расписание
// запрашивается у провайдера на каждый вызов и не кешируется.
type ScheduleService struct {
	provider ScheduleProvider
	location models.Location
	log      *slog.Logger
}

// NewScheduleService создает новый экземпляр ScheduleService.
func NewScheduleService(provider ScheduleProvider, location models.Location, log *slog.Logger) *ScheduleService {
	return &ScheduleService{
		provider: provider,
		location: location,
		log:      log,
	}
}

// Today возвращает сегодняшнее расписание пяти намазов.
func (s *ScheduleService) Today(ctx context.Context) (models.DailySchedule, error) {
	const op = "services.schedule.Today"

	schedule, err := s.provider.FetchDay(ctx, s.location.Latitude, s.location.Longitude, time.Now())
	if err != nil {
		s.log.Error("failed to fetch today schedule", sl.Err(err))
		return models.DailySchedule{}, fmt.Errorf("%s: %w", op, ErrScheduleUnavailable)
	}
	return schedule, nil
}

// Nearest возвращает ближайший намаз относительно текущего времени.
func (s *ScheduleService) Nearest(ctx context.Context) (string, error) {
	schedule, err := s.Today(ctx)
	if err != nil {
		return "", err
	}
	return NearestPrayer(schedule, time.Now())
}

// UntilNext возвращает обратный отсчёт до следующего намаза.
func (s *ScheduleService) UntilNext(ctx context.Context) (string, error) {
	schedule, err := s.Today(ctx)
	if err != nil {
		return "", err
	}
	return TimeUntilNext(schedule, time.Now())
}
