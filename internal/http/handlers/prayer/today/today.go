// Package today реализует HTTP-обработчик получения сегодняшнего расписания
// пяти намазов.
package today

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/prayer-tracker/internal/http/response"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

// Handler обрабатывает запросы расписания на сегодня.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расписания.
type Service interface {
	Today(ctx context.Context) (models.DailySchedule, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.prayer.today"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	schedule, err := h.service.Today(r.Context())
	if err != nil {
		log.Error("failed to fetch today schedule", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("schedule unavailable"))
		return
	}

	log.Info("today schedule fetched", slog.String("date", schedule.Date))
	render.JSON(w, r, response.OKWithData(schedule))
}
