// Package locator определяет местоположение пользователя по внешнему IP
// через ip-api.com. Используется один раз при старте приложения; при ошибке
// вызывающая сторона подставляет координаты из конфигурации.
package locator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

// Client — HTTP-клиент сервиса геолокации.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент. Пустой apiURL заменяется публичным адресом.
func NewClient(apiURL string) *Client {
	if apiURL == "" {
		apiURL = "http://ip-api.com"
	}
	return &Client{
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type locateResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Query    string  `json:"query"` // внешний IP
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

// Locate возвращает координаты по внешнему IP вызывающей машины.
func (c *Client) Locate(ctx context.Context) (*models.Location, error) {
	const op = "locator.Locate"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/json", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var body locateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("%s: lookup failed: %s", op, body.Message)
	}

	return &models.Location{
		IP:        body.Query,
		Latitude:  body.Lat,
		Longitude: body.Lon,
		City:      body.City,
		Country:   body.Country,
		Timezone:  body.Timezone,
	}, nil
}
