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
	"github.com/magabrotheeeer/prayer-tracker/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) UpsertRecord(ctx context.Context, record models.PrayerRecord) (int, error) {
	args := m.Called(ctx, record)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetRecord(ctx context.Context, userID int64, date time.Time) (*models.PrayerRecord, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PrayerRecord), args.Error(1)
}
func (m *RepoMock) GetRecordsByDate(ctx context.Context, date time.Time) ([]*models.PrayerRecord, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PrayerRecord), args.Error(1)
}
func (m *RepoMock) ListRecordsInRange(ctx context.Context, userID int64, start, end time.Time) ([]*models.PrayerRecord, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PrayerRecord), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func record(userID int64, date string, flags ...bool) *models.PrayerRecord {
	day, _ := time.Parse("2006-01-02", date)
	r := &models.PrayerRecord{UserID: userID, Date: day}
	if len(flags) == 5 {
		r.Fajr, r.Dhuhr, r.Asr, r.Maghrib, r.Isha = flags[0], flags[1], flags[2], flags[3], flags[4]
	}
	return r
}

func TestTrackerService_Upsert(t *testing.T) {
	req := models.DummyRecord{
		UserID: 7,
		Date:   "2025-03-15",
		Fajr:   true,
		Isha:   true,
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		req        models.DummyRecord
		wantID     int
		wantErr    error
	}{
		{
			name: "success upsert",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("UpsertRecord", mock.Anything, mock.MatchedBy(func(rec models.PrayerRecord) bool {
					return rec.UserID == 7 && rec.Fajr && rec.Isha && !rec.Dhuhr
				})).Return(42, nil).Once()
				c.On("Set", "record:7:2025-03-15", mock.Anything, time.Hour).Return(nil).Once()
			},
			req:    req,
			wantID: 42,
		},
		{
			name:       "invalid date",
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			req:        models.DummyRecord{UserID: 7, Date: "15-03-2025"},
			wantErr:    ErrInvalidDate,
		},
		{
			name: "repository failure",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("UpsertRecord", mock.Anything, mock.Anything).
					Return(0, errors.New("db down")).Once()
			},
			req:     req,
			wantErr: errors.New("db down"),
		},
		{
			name: "cache failure does not fail upsert",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("UpsertRecord", mock.Anything, mock.Anything).Return(42, nil).Once()
				c.On("Set", "record:7:2025-03-15", mock.Anything, time.Hour).
					Return(errors.New("redis down")).Once()
			},
			req:    req,
			wantID: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := new(RepoMock)
			cacheMock := new(CacheMock)
			tt.setupMocks(repoMock, cacheMock)

			svc := NewTrackerService(repoMock, cacheMock, newNoopLogger())
			id, err := svc.Upsert(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidDate) {
					assert.ErrorIs(t, err, ErrInvalidDate)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repoMock.AssertExpectations(t)
			cacheMock.AssertExpectations(t)
		})
	}
}

func TestTrackerService_Read(t *testing.T) {
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("cache hit skips repository", func(t *testing.T) {
		repoMock := new(RepoMock)
		cacheMock := new(CacheMock)
		cacheMock.On("Get", "record:7:2025-03-15", mock.Anything).Return(true, nil).Once()

		svc := NewTrackerService(repoMock, cacheMock, newNoopLogger())
		_, err := svc.Read(context.Background(), 7, "2025-03-15")

		require.NoError(t, err)
		repoMock.AssertNotCalled(t, "GetRecord")
		cacheMock.AssertExpectations(t)
	})

	t.Run("cache miss falls through to repository", func(t *testing.T) {
		repoMock := new(RepoMock)
		cacheMock := new(CacheMock)
		cacheMock.On("Get", "record:7:2025-03-15", mock.Anything).Return(false, nil).Once()
		repoMock.On("GetRecord", mock.Anything, int64(7), day).
			Return(record(7, "2025-03-15", true, true, false, false, true), nil).Once()
		cacheMock.On("Set", "record:7:2025-03-15", mock.Anything, time.Hour).Return(nil).Once()

		svc := NewTrackerService(repoMock, cacheMock, newNoopLogger())
		got, err := svc.Read(context.Background(), 7, "2025-03-15")

		require.NoError(t, err)
		assert.Equal(t, int64(7), got.UserID)
		assert.True(t, got.Fajr)
		assert.False(t, got.Asr)
		repoMock.AssertExpectations(t)
		cacheMock.AssertExpectations(t)
	})

	t.Run("record not found", func(t *testing.T) {
		repoMock := new(RepoMock)
		cacheMock := new(CacheMock)
		cacheMock.On("Get", "record:7:2025-03-15", mock.Anything).Return(false, nil).Once()
		repoMock.On("GetRecord", mock.Anything, int64(7), day).
			Return(nil, repository.ErrRecordNotFound).Once()

		svc := NewTrackerService(repoMock, cacheMock, newNoopLogger())
		_, err := svc.Read(context.Background(), 7, "2025-03-15")

		require.ErrorIs(t, err, repository.ErrRecordNotFound)
	})
}

func TestTrackerService_BuildMonth(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		month      int
		setupMocks func(r *RepoMock)
		wantDays   int
		wantErr    bool
	}{
		{
			name:  "leap february has 29 days",
			year:  2024,
			month: 2,
			setupMocks: func(r *RepoMock) {
				r.On("ListRecordsInRange", mock.Anything, int64(7),
					time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)).
					Return([]*models.PrayerRecord{}, nil).Once()
			},
			wantDays: 29,
		},
		{
			name:  "non-leap february has 28 days",
			year:  2025,
			month: 2,
			setupMocks: func(r *RepoMock) {
				r.On("ListRecordsInRange", mock.Anything, int64(7),
					time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)).
					Return([]*models.PrayerRecord{}, nil).Once()
			},
			wantDays: 28,
		},
		{
			name:  "december does not roll into january",
			year:  2025,
			month: 12,
			setupMocks: func(r *RepoMock) {
				r.On("ListRecordsInRange", mock.Anything, int64(7),
					time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)).
					Return([]*models.PrayerRecord{}, nil).Once()
			},
			wantDays: 31,
		},
		{
			name:       "month out of range",
			year:       2025,
			month:      13,
			setupMocks: func(_ *RepoMock) {},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := new(RepoMock)
			tt.setupMocks(repoMock)

			svc := NewTrackerService(repoMock, new(CacheMock), newNoopLogger())
			view, err := svc.BuildMonth(context.Background(), 7, tt.year, tt.month)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, view.Days, tt.wantDays)
			repoMock.AssertExpectations(t)
		})
	}
}

func TestTrackerService_BuildMonth_FillsGaps(t *testing.T) {
	repoMock := new(RepoMock)
	repoMock.On("ListRecordsInRange", mock.Anything, int64(7), mock.Anything, mock.Anything).
		Return([]*models.PrayerRecord{
			record(7, "2025-03-05", true, true, true, true, true),
			record(7, "2025-03-20", false, false, true, false, false),
		}, nil).Once()

	svc := NewTrackerService(repoMock, new(CacheMock), newNoopLogger())
	view, err := svc.BuildMonth(context.Background(), 7, 2025, 3)

	require.NoError(t, err)
	require.Len(t, view.Days, 31)

	// дни идут по порядку и без пропусков
	assert.Equal(t, "2025-03-01", view.Days[0].Date)
	assert.Equal(t, "2025-03-31", view.Days[30].Date)

	// найденные записи попали на свои места
	assert.True(t, view.Days[4].Fajr)
	assert.True(t, view.Days[19].Asr)
	assert.False(t, view.Days[19].Fajr)

	// день без записи — все флаги false
	assert.Equal(t, [5]bool{}, view.Days[10].Flags())
}

func TestTrackerService_BuildRange(t *testing.T) {
	t.Run("inclusive bounds", func(t *testing.T) {
		repoMock := new(RepoMock)
		repoMock.On("ListRecordsInRange", mock.Anything, int64(7),
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)).
			Return([]*models.PrayerRecord{}, nil).Once()

		svc := NewTrackerService(repoMock, new(CacheMock), newNoopLogger())
		view, err := svc.BuildRange(context.Background(), 7, "2025-03-10", "2025-03-12")

		require.NoError(t, err)
		require.Len(t, view.Days, 3)
		assert.Equal(t, "2025-03-10", view.Days[0].Date)
		assert.Equal(t, "2025-03-12", view.Days[2].Date)
	})

	t.Run("reversed range is empty, not an error", func(t *testing.T) {
		repoMock := new(RepoMock)

		svc := NewTrackerService(repoMock, new(CacheMock), newNoopLogger())
		view, err := svc.BuildRange(context.Background(), 7, "2025-03-12", "2025-03-10")

		require.NoError(t, err)
		assert.Empty(t, view.Days)
		repoMock.AssertNotCalled(t, "ListRecordsInRange")
	})

	t.Run("invalid start date", func(t *testing.T) {
		svc := NewTrackerService(new(RepoMock), new(CacheMock), newNoopLogger())
		_, err := svc.BuildRange(context.Background(), 7, "not-a-date", "2025-03-10")

		require.ErrorIs(t, err, ErrInvalidRange)
		assert.Contains(t, err.Error(), "not-a-date")
	})

	t.Run("invalid end date", func(t *testing.T) {
		svc := NewTrackerService(new(RepoMock), new(CacheMock), newNoopLogger())
		_, err := svc.BuildRange(context.Background(), 7, "2025-03-10", "garbage")

		require.ErrorIs(t, err, ErrInvalidRange)
	})
}
