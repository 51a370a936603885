package scheduleprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/timings/15-03-2025")
		assert.Equal(t, "41.008200", r.URL.Query().Get("latitude"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 200,
			"data": {
				"timings": {
					"Fajr": "05:00 (EET)",
					"Sunrise": "06:30",
					"Dhuhr": "12:30",
					"Asr": "16:00",
					"Maghrib": "19:00",
					"Isha": "20:30"
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	schedule, err := client.FetchDay(context.Background(), 41.0082, 28.9784, date)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-15", schedule.Date)
	// суффикс зоны отрезан
	assert.Equal(t, "05:00", schedule.Timings["Fajr"])
	// Sunrise не входит в пять канонических намазов
	assert.NotContains(t, schedule.Timings, "Sunrise")
	assert.Len(t, schedule.Timings, 5)
}

func TestClient_FetchDay_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchDay(context.Background(), 41.0, 28.0, time.Now())
	require.Error(t, err)
}

func TestClient_FetchMonth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/2025/3", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 200,
			"data": [
				{
					"timings": {"Fajr": "05:00 (EET)", "Dhuhr": "12:30"},
					"date": {"gregorian": {"date": "01-03-2025"}}
				},
				{
					"timings": {"Fajr": "04:58", "Dhuhr": "12:30"},
					"date": {"gregorian": {"date": "02-03-2025"}}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	schedules, err := client.FetchMonth(context.Background(), 41.0082, 28.9784, 2025, 3)
	require.NoError(t, err)

	require.Len(t, schedules, 2)
	assert.Equal(t, "2025-03-01", schedules[0].Date)
	assert.Equal(t, "05:00", schedules[0].Timings["Fajr"])
	assert.Equal(t, "2025-03-02", schedules[1].Date)
}

func TestClient_FetchHijriMonth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gToHCalendar/3/2025", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 200,
			"data": [
				{
					"hijri": {
						"day": "01",
						"date": "01-09-1446",
						"year": "1446",
						"month": {"en": "Ramadan"},
						"holidays": ["First day of Ramadan"]
					},
					"gregorian": {"date": "01-03-2025"}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	days, err := client.FetchHijriMonth(context.Background(), 3, 2025)
	require.NoError(t, err)

	require.Len(t, days, 1)
	assert.Equal(t, "Ramadan", days[0].Month)
	assert.Equal(t, "01-03-2025", days[0].GregorianDate)
	assert.Equal(t, []string{"First day of Ramadan"}, days[0].Holidays)
}

func TestClient_FetchTodayHijri(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/gToH/15-03-2025")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 200,
			"data": {
				"hijri": {
					"day": "15",
					"date": "15-09-1446",
					"year": "1446",
					"month": {"en": "Ramadan"},
					"holidays": []
				},
				"gregorian": {"date": "15-03-2025"}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	day, err := client.FetchTodayHijri(context.Background(), time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "15", day.Day)
	assert.Equal(t, "1446", day.Year)
}
