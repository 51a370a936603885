package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

func testSchedule() models.DailySchedule {
	return models.DailySchedule{
		Date: "2025-03-15",
		Timings: map[string]string{
			"Fajr":    "05:00",
			"Dhuhr":   "12:30",
			"Asr":     "16:00",
			"Maghrib": "19:00",
			"Isha":    "20:30",
		},
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 15, hour, minute, 0, 0, time.UTC)
}

func TestNearestPrayer(t *testing.T) {
	tests := []struct {
		name     string
		schedule models.DailySchedule
		now      time.Time
		want     string
		wantErr  bool
	}{
		{
			name:     "prayer within tolerance wins over future prayer",
			schedule: testSchedule(),
			now:      at(12, 40), // Dhuhr был 10 минут назад, Asr через 3:20
			want:     "Dhuhr",
		},
		{
			name:     "prayer outside tolerance loses to next",
			schedule: testSchedule(),
			now:      at(13, 10), // Dhuhr был 40 минут назад, окно истекло
			want:     "Asr",
		},
		{
			name:     "before first prayer",
			schedule: testSchedule(),
			now:      at(3, 0),
			want:     "Fajr",
		},
		{
			name:     "after last prayer wraps to tomorrow",
			schedule: testSchedule(),
			now:      at(23, 0), // Isha был 2:30 назад, завтрашний Fajr ближе всех
			want:     "Fajr",
		},
		{
			name: "tie resolved by canonical order",
			schedule: models.DailySchedule{Timings: map[string]string{
				"Dhuhr": "13:00",
				"Asr":   "13:40",
			}},
			now:  at(13, 20), // Dhuhr прошёл 20 минут назад, Asr через 20 минут
			want: "Dhuhr",
		},
		{
			name: "unparseable timing is skipped",
			schedule: models.DailySchedule{Timings: map[string]string{
				"Fajr":  "invalid",
				"Dhuhr": "12:30",
			}},
			now:  at(10, 0),
			want: "Dhuhr",
		},
		{
			name: "all timings unparseable",
			schedule: models.DailySchedule{Timings: map[string]string{
				"Fajr": "nope",
				"Isha": "also nope",
			}},
			now:     at(10, 0),
			wantErr: true,
		},
		{
			name:     "empty schedule",
			schedule: models.DailySchedule{Timings: map[string]string{}},
			now:      at(10, 0),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NearestPrayer(tt.schedule, tt.now)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrScheduleUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeUntilNext(t *testing.T) {
	tests := []struct {
		name     string
		schedule models.DailySchedule
		now      time.Time
		want     string
		wantErr  bool
	}{
		{
			name:     "within tolerance returns now marker",
			schedule: testSchedule(),
			now:      at(12, 40),
			want:     NowMarker,
		},
		{
			name:     "exactly at prayer time",
			schedule: testSchedule(),
			now:      at(16, 0),
			want:     NowMarker,
		},
		{
			name:     "countdown to next prayer",
			schedule: testSchedule(),
			now:      at(13, 10), // до Asr 2 часа 50 минут
			want:     "-2:50:00",
		},
		{
			name:     "countdown with seconds",
			schedule: testSchedule(),
			now:      time.Date(2025, 3, 15, 15, 59, 30, 0, time.UTC),
			want:     "-0:00:30",
		},
		{
			name:     "after last prayer counts to tomorrow",
			schedule: testSchedule(),
			now:      at(22, 0), // Isha 1:30 назад, до завтрашнего Fajr 7 часов
			want:     "-7:00:00",
		},
		{
			name: "all timings unparseable",
			schedule: models.DailySchedule{Timings: map[string]string{
				"Fajr": "nope",
			}},
			now:     at(10, 0),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeUntilNext(tt.schedule, tt.now)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrScheduleUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRankingAndCountdownAgree(t *testing.T) {
	// обе операции должны сходиться на одном намазе в любое время суток
	schedule := testSchedule()
	for hour := range 24 {
		now := at(hour, 17)
		nearest, err := NearestPrayer(schedule, now)
		require.NoError(t, err)

		countdown, err := TimeUntilNext(schedule, now)
		require.NoError(t, err)

		assert.NotEmpty(t, nearest)
		assert.NotEmpty(t, countdown)
	}
}

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) FetchDay(ctx context.Context, lat, lon float64, date time.Time) (models.DailySchedule, error) {
	args := m.Called(ctx, lat, lon, date)
	return args.Get(0).(models.DailySchedule), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestScheduleService_Today(t *testing.T) {
	location := models.Location{Latitude: 41.0082, Longitude: 28.9784}

	t.Run("success", func(t *testing.T) {
		provider := new(ProviderMock)
		provider.On("FetchDay", mock.Anything, location.Latitude, location.Longitude, mock.Anything).
			Return(testSchedule(), nil).Once()

		svc := NewScheduleService(provider, location, newNoopLogger())
		got, err := svc.Today(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "12:30", got.Timings["Dhuhr"])
		provider.AssertExpectations(t)
	})

	t.Run("provider failure maps to schedule unavailable", func(t *testing.T) {
		provider := new(ProviderMock)
		provider.On("FetchDay", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(models.DailySchedule{}, errors.New("api down")).Once()

		svc := NewScheduleService(provider, location, newNoopLogger())
		_, err := svc.Today(context.Background())

		require.ErrorIs(t, err, ErrScheduleUnavailable)
		provider.AssertExpectations(t)
	})
}
