// Package scheduleprovider реализует клиент Aladhan API — внешнего источника
// расписаний намазов и календаря хиджры. Клиент возвращает данные в доменных
// структурах; отсутствующее или некорректное время отдельного намаза не
// считается ошибкой всего расписания.
package scheduleprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/prayer-tracker/internal/lib/dates"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

// Client — HTTP-клиент Aladhan API.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент. Пустой apiURL заменяется публичным адресом.
func NewClient(apiURL string) *Client {
	if apiURL == "" {
		apiURL = "https://api.aladhan.com/v1"
	}
	return &Client{
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// apiDate форматирует дату так, как её принимает Aladhan: DD-MM-YYYY.
func apiDate(date time.Time) string {
	return date.Format("02-01-2006")
}

// normalizeTimings оставляет только пять канонических намазов и отрезает
// суффикс зоны ("04:30 (EET)" -> "04:30"). Отсутствующие ключи пропускаются.
func normalizeTimings(raw map[string]string) map[string]string {
	timings := make(map[string]string, len(models.PrayerNames))
	for _, name := range models.PrayerNames {
		value, ok := raw[name]
		if !ok {
			continue
		}
		if cut, _, found := strings.Cut(value, " "); found {
			value = cut
		}
		if value == "" {
			continue
		}
		timings[name] = value
	}
	return timings
}

// FetchDay возвращает расписание намазов на указанную дату и координаты.
func (c *Client) FetchDay(ctx context.Context, lat, lon float64, date time.Time) (models.DailySchedule, error) {
	const op = "scheduleprovider.FetchDay"

	path := fmt.Sprintf("/timings/%s?latitude=%f&longitude=%f", apiDate(date), lat, lon)
	var resp timingsResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return models.DailySchedule{}, fmt.Errorf("%s: %w", op, err)
	}
	if resp.Data.Timings == nil {
		return models.DailySchedule{}, fmt.Errorf("%s: no timings in response", op)
	}

	return models.DailySchedule{
		Date:    date.Format(dates.Layout),
		Timings: normalizeTimings(resp.Data.Timings),
	}, nil
}

// FetchMonth возвращает расписания на каждый день месяца.
func (c *Client) FetchMonth(ctx context.Context, lat, lon float64, year, month int) ([]models.DailySchedule, error) {
	const op = "scheduleprovider.FetchMonth"

	path := fmt.Sprintf("/calendar/%d/%d?latitude=%f&longitude=%f", year, month, lat, lon)
	var resp calendarResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%s: no data in response", op)
	}

	schedules := make([]models.DailySchedule, 0, len(resp.Data))
	for _, day := range resp.Data {
		entry := models.DailySchedule{
			Timings: normalizeTimings(day.Timings),
		}
		if d, err := time.Parse("02-01-2006", day.Date.Gregorian.Date); err == nil {
			entry.Date = d.Format(dates.Layout)
		}
		schedules = append(schedules, entry)
	}
	return schedules, nil
}

// FetchHijriMonth возвращает календарь хиджры на григорианский месяц,
// включая списки праздников.
func (c *Client) FetchHijriMonth(ctx context.Context, month, year int) ([]models.HijriDay, error) {
	const op = "scheduleprovider.FetchHijriMonth"

	path := fmt.Sprintf("/gToHCalendar/%d/%d", month, year)
	var resp hijriCalendarResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%s: no data in response", op)
	}

	result := make([]models.HijriDay, 0, len(resp.Data))
	for _, entry := range resp.Data {
		result = append(result, models.HijriDay{
			Day:           entry.Hijri.Day,
			Month:         entry.Hijri.Month.En,
			Year:          entry.Hijri.Year,
			Date:          entry.Hijri.Date,
			GregorianDate: entry.Gregorian.Date,
			Holidays:      entry.Hijri.Holidays,
		})
	}
	return result, nil
}

// FetchTodayHijri конвертирует григорианскую дату в дату хиджры.
func (c *Client) FetchTodayHijri(ctx context.Context, date time.Time) (*models.HijriDay, error) {
	const op = "scheduleprovider.FetchTodayHijri"

	path := "/gToH/" + apiDate(date)
	var resp hijriDateResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.Data.Hijri.Day == "" {
		return nil, fmt.Errorf("%s: no hijri date in response", op)
	}

	return &models.HijriDay{
		Day:           resp.Data.Hijri.Day,
		Month:         resp.Data.Hijri.Month.En,
		Year:          resp.Data.Hijri.Year,
		Date:          resp.Data.Hijri.Date,
		GregorianDate: resp.Data.Gregorian.Date,
		Holidays:      resp.Data.Hijri.Holidays,
	}, nil
}
