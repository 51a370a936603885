package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/prayer-tracker/internal/config"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := models.UserDayEntry{
		UserID: 7,
		DayEntry: models.DayEntry{
			Date: "2025-03-15",
			Fajr: true,
			Isha: true,
		},
	}
	err := cache.Set("record:7:2025-03-15", expected, time.Minute)
	require.NoError(t, err)

	var actual models.UserDayEntry
	found, err := cache.Get("record:7:2025-03-15", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetMissingKey(t *testing.T) {
	cache := setupTestCache(t)

	var actual models.UserDayEntry
	found, err := cache.Get("record:404:2025-03-15", &actual)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	err := cache.Set("record:7:2025-03-15", models.UserDayEntry{UserID: 7}, time.Minute)
	require.NoError(t, err)

	err = cache.Invalidate("record:7:2025-03-15")
	require.NoError(t, err)

	var actual models.UserDayEntry
	found, err := cache.Get("record:7:2025-03-15", &actual)
	require.NoError(t, err)
	assert.False(t, found)
}
