package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

func TestStorage_UpsertRecord(t *testing.T) {
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("insert then overwrite keeps one row", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)

		first := models.PrayerRecord{UserID: 7, Date: date, Fajr: true}
		id1, err := storage.UpsertRecord(context.Background(), first)
		require.NoError(t, err)

		second := models.PrayerRecord{UserID: 7, Date: date, Fajr: false, Isha: true}
		id2, err := storage.UpsertRecord(context.Background(), second)
		require.NoError(t, err)

		assert.Equal(t, id1, id2)
		assert.Equal(t, 1, factory.CountRecords(t, 7, date))

		got, err := storage.GetRecord(context.Background(), 7, date)
		require.NoError(t, err)
		assert.False(t, got.Fajr)
		assert.True(t, got.Isha)
	})

	t.Run("same date different users are separate rows", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		_, err := storage.UpsertRecord(context.Background(), models.PrayerRecord{UserID: 1, Date: date})
		require.NoError(t, err)
		_, err = storage.UpsertRecord(context.Background(), models.PrayerRecord{UserID: 2, Date: date})
		require.NoError(t, err)

		records, err := storage.GetRecordsByDate(context.Background(), date)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestStorage_GetRecord(t *testing.T) {
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("read what was written", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.CreateRecord(t, 7, date, true, true, false, true, false)

		got, err := storage.GetRecord(context.Background(), 7, date)
		require.NoError(t, err)

		assert.Equal(t, int64(7), got.UserID)
		assert.True(t, got.Fajr)
		assert.True(t, got.Dhuhr)
		assert.False(t, got.Asr)
		assert.True(t, got.Maghrib)
		assert.False(t, got.Isha)
	})

	t.Run("missing record", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		_, err := storage.GetRecord(context.Background(), 404, date)
		require.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestStorage_ListRecordsInRange(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
	}

	// записи вставляются не по порядку, выборка обязана отсортировать
	factory.CreateRecord(t, 7, day(20), false, false, true, false, false)
	factory.CreateRecord(t, 7, day(5), true, true, true, true, true)
	factory.CreateRecord(t, 7, day(12), false, true, false, false, false)
	// запись другого пользователя не попадает в выборку
	factory.CreateRecord(t, 8, day(12), true, true, true, true, true)
	// запись за границей диапазона
	factory.CreateRecord(t, 7, day(25), true, false, false, false, false)

	got, err := storage.ListRecordsInRange(context.Background(), 7,
		day(1), day(21))
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, day(5), got[0].Date.UTC())
	assert.Equal(t, day(12), got[1].Date.UTC())
	assert.Equal(t, day(20), got[2].Date.UTC())
	for _, record := range got {
		assert.Equal(t, int64(7), record.UserID)
	}
}

func TestStorage_ListUserIDs(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	factory.CreateRecord(t, 3, day, true, false, false, false, false)
	factory.CreateRecord(t, 1, day, false, true, false, false, false)
	factory.CreateRecord(t, 3, day.AddDate(0, 0, 1), false, false, true, false, false)

	got, err := storage.ListUserIDs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3}, got)
}
