package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

// UpsertRecord вставляет запись о намазах или перезаписывает пять флагов
// существующей записи на ту же пару (user_id, date). Один оператор
// INSERT ... ON CONFLICT: проверка существования и запись атомарны,
// конкурентные вызовы не создают дублей.
func (s *Storage) UpsertRecord(ctx context.Context, record models.PrayerRecord) (int, error) {
	const op = "storage.UpsertRecord"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO prayer_records (user_id, date, fajr, dhuhr, asr, maghrib, isha)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (user_id, date) DO UPDATE
			  SET fajr = EXCLUDED.fajr, dhuhr = EXCLUDED.dhuhr, asr = EXCLUDED.asr,
			      maghrib = EXCLUDED.maghrib, isha = EXCLUDED.isha
			  RETURNING id`
	var id int
	err := s.DB.QueryRowContext(ctx, query,
		record.UserID, record.Date, record.Fajr, record.Dhuhr, record.Asr,
		record.Maghrib, record.Isha).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetRecord возвращает запись пользователя на конкретную дату.
// Отсутствие записи — ErrRecordNotFound.
func (s *Storage) GetRecord(ctx context.Context, userID int64, date time.Time) (*models.PrayerRecord, error) {
	const op = "storage.GetRecord"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, date, fajr, dhuhr, asr, maghrib, isha
			  FROM prayer_records
			  WHERE user_id = $1 AND date = $2`
	row := s.DB.QueryRowContext(ctx, query, userID, date)

	var result models.PrayerRecord
	if err := row.Scan(&result.UserID, &result.Date, &result.Fajr, &result.Dhuhr,
		&result.Asr, &result.Maghrib, &result.Isha); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetRecordsByDate возвращает записи всех пользователей на указанную дату.
// Порядок детерминирован: по id, то есть в порядке вставки.
func (s *Storage) GetRecordsByDate(ctx context.Context, date time.Time) ([]*models.PrayerRecord, error) {
	const op = "storage.GetRecordsByDate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, date, fajr, dhuhr, asr, maghrib, isha
			  FROM prayer_records
			  WHERE date = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.PrayerRecord
	for rows.Next() {
		var item models.PrayerRecord
		if err := rows.Scan(&item.UserID, &item.Date, &item.Fajr, &item.Dhuhr,
			&item.Asr, &item.Maghrib, &item.Isha); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListRecordsInRange возвращает записи пользователя за диапазон дат
// включительно одним запросом, по возрастанию даты. Дни без записей
// в результате отсутствуют — их дополняет агрегатор.
func (s *Storage) ListRecordsInRange(ctx context.Context, userID int64, start, end time.Time) ([]*models.PrayerRecord, error) {
	const op = "storage.ListRecordsInRange"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, date, fajr, dhuhr, asr, maghrib, isha
			  FROM prayer_records
			  WHERE user_id = $1 AND date BETWEEN $2 AND $3
			  ORDER BY date`
	rows, err := s.DB.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.PrayerRecord
	for rows.Next() {
		var item models.PrayerRecord
		if err := rows.Scan(&item.UserID, &item.Date, &item.Fajr, &item.Dhuhr,
			&item.Asr, &item.Maghrib, &item.Isha); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListUserIDs возвращает идентификаторы всех пользователей, у которых есть
// хотя бы одна запись. Используется планировщиком напоминаний.
func (s *Storage) ListUserIDs(ctx context.Context) ([]int64, error) {
	const op = "storage.ListUserIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT DISTINCT user_id FROM prayer_records ORDER BY user_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
