// Package calendarview реализует HTTP-обработчик календаря хиджры
// на григорианский месяц, включая списки праздников.
package calendarview

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/prayer-tracker/internal/http/response"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

// Handler обрабатывает запросы календаря хиджры.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс источника календаря хиджры.
type Service interface {
	FetchHijriMonth(ctx context.Context, month, year int) ([]models.HijriDay, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.hijri.calendarview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		log.Error("failed to decode year from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode year from url"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		log.Error("failed to decode month from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode month from url"))
		return
	}

	days, err := h.service.FetchHijriMonth(r.Context(), month, year)
	if err != nil {
		log.Error("failed to fetch hijri calendar", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("hijri calendar unavailable"))
		return
	}

	log.Info("hijri calendar fetched", slog.Int("year", year), slog.Int("month", month),
		"days", len(days))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"days": days,
	}))
}
