// Package services содержит бизнес-логику трекера намазов: сохранение
// дневных записей и построение календарных представлений с заполнением
// пропущенных дней.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/prayer-tracker/internal/lib/dates"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

// ErrInvalidDate возвращается при некорректной строке даты.
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidRange возвращается при некорректной границе диапазона.
// Перевёрнутый диапазон ошибкой не является — это пустое представление.
var ErrInvalidRange = errors.New("invalid range")

// RecordRepository определяет методы для работы с записями в хранилище.
type RecordRepository interface {
	// UpsertRecord атомарно вставляет или перезаписывает запись, возвращает её ID.
	UpsertRecord(ctx context.Context, record models.PrayerRecord) (int, error)
	// GetRecord возвращает запись пользователя на дату.
	GetRecord(ctx context.Context, userID int64, date time.Time) (*models.PrayerRecord, error)
	// GetRecordsByDate возвращает записи всех пользователей на дату.
	GetRecordsByDate(ctx context.Context, date time.Time) ([]*models.PrayerRecord, error)
	// ListRecordsInRange возвращает записи пользователя за диапазон одним запросом.
	ListRecordsInRange(ctx context.Context, userID int64, start, end time.Time) ([]*models.PrayerRecord, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// TrackerService реализует бизнес-логику записей о намазах, включая
// сквозное кеширование точечных чтений.
type TrackerService struct {
	repo  RecordRepository
	cache Cache
	log   *slog.Logger
}

// NewTrackerService создает новый экземпляр TrackerService.
func NewTrackerService(repo RecordRepository, cache Cache, log *slog.Logger) *TrackerService {
	return &TrackerService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func recordCacheKey(userID int64, date string) string {
	return fmt.Sprintf("record:%d:%s", userID, date)
}

func toUserDayEntry(record *models.PrayerRecord) models.UserDayEntry {
	return models.UserDayEntry{
		UserID: record.UserID,
		DayEntry: models.DayEntry{
			Date:    record.Date.Format(dates.Layout),
			Fajr:    record.Fajr,
			Dhuhr:   record.Dhuhr,
			Asr:     record.Asr,
			Maghrib: record.Maghrib,
			Isha:    record.Isha,
		},
	}
}

// Upsert сохраняет запись пользователя за день. Повторный вызов на ту же пару
// (пользователь, дата) перезаписывает пять флагов, вторая строка не создаётся.
func (s *TrackerService) Upsert(ctx context.Context, req models.DummyRecord) (int, error) {
	day, err := dates.Parse(req.Date)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	record := models.PrayerRecord{
		UserID:  req.UserID,
		Date:    day,
		Fajr:    req.Fajr,
		Dhuhr:   req.Dhuhr,
		Asr:     req.Asr,
		Maghrib: req.Maghrib,
		Isha:    req.Isha,
	}

	id, err := s.repo.UpsertRecord(ctx, record)
	if err != nil {
		return 0, err
	}

	s.log.Info("upserted prayer record", slog.Int("id", id),
		slog.Int64("user_id", req.UserID), slog.String("date", req.Date))

	cacheKey := recordCacheKey(req.UserID, req.Date)
	if err := s.cache.Set(cacheKey, toUserDayEntry(&record), time.Hour); err != nil {
		s.log.Warn("failed to cache record", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return id, nil
}

// Read возвращает запись пользователя на дату, используя кеш или репозиторий.
func (s *TrackerService) Read(ctx context.Context, userID int64, date string) (*models.UserDayEntry, error) {
	day, err := dates.Parse(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	var cached models.UserDayEntry
	cacheKey := recordCacheKey(userID, date)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		return nil, err
	}
	if found {
		return &cached, nil
	}

	record, err := s.repo.GetRecord(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	result := toUserDayEntry(record)
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return &result, nil
}

// ListByDate возвращает записи всех пользователей на дату.
// Отсутствие записей — пустой список, не ошибка.
func (s *TrackerService) ListByDate(ctx context.Context, date string) ([]models.UserDayEntry, error) {
	day, err := dates.Parse(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	records, err := s.repo.GetRecordsByDate(ctx, day)
	if err != nil {
		return nil, err
	}

	result := make([]models.UserDayEntry, 0, len(records))
	for _, record := range records {
		result = append(result, toUserDayEntry(record))
	}
	return result, nil
}

// mergeDays накладывает найденные записи на ожидаемую последовательность дней;
// день без записи получает все пять флагов false. Это правило предметной
// области, а не подавление ошибки: отсутствие строки — нормальное состояние.
func mergeDays(expected []time.Time, records []*models.PrayerRecord) []models.DayEntry {
	byDate := make(map[string]*models.PrayerRecord, len(records))
	for _, record := range records {
		byDate[record.Date.Format(dates.Layout)] = record
	}

	result := make([]models.DayEntry, 0, len(expected))
	for _, day := range expected {
		key := day.Format(dates.Layout)
		entry := models.DayEntry{Date: key}
		if record, ok := byDate[key]; ok {
			entry.Fajr = record.Fajr
			entry.Dhuhr = record.Dhuhr
			entry.Asr = record.Asr
			entry.Maghrib = record.Maghrib
			entry.Isha = record.Isha
		}
		result = append(result, entry)
	}
	return result
}

// BuildMonth строит календарное представление за месяц: ровно столько дней,
// сколько в месяце, по возрастанию даты. Данные берутся одним диапазонным
// запросом вместо точечного чтения на каждый день.
func (s *TrackerService) BuildMonth(ctx context.Context, userID int64, year, month int) (*models.MonthView, error) {
	const op = "services.tracker.BuildMonth"
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%s: %w: month %d", op, ErrInvalidDate, month)
	}

	start := dates.FirstOfMonth(year, month)
	end := dates.LastOfMonth(year, month)

	records, err := s.repo.ListRecordsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return &models.MonthView{
		Year:  year,
		Month: month,
		Days:  mergeDays(dates.Each(start, end), records),
	}, nil
}

// BuildRange строит календарное представление за диапазон дат включительно.
// Некорректная граница — ErrInvalidRange с указанием значения; перевёрнутый
// диапазон — корректное пустое представление.
func (s *TrackerService) BuildRange(ctx context.Context, userID int64, startDate, endDate string) (*models.RangeView, error) {
	start, err := dates.Parse(startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, startDate)
	}
	end, err := dates.Parse(endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, endDate)
	}

	view := &models.RangeView{
		StartDate: start.Format(dates.Layout),
		EndDate:   end.Format(dates.Layout),
		Days:      []models.DayEntry{},
	}
	if start.After(end) {
		return view, nil
	}

	records, err := s.repo.ListRecordsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	view.Days = mergeDays(dates.Each(start, end), records)
	return view, nil
}
