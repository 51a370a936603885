// Package next реализует HTTP-обработчик обратного отсчёта до следующего
// намаза. Намаз, идущий прямо сейчас, обозначается литералом "Now".
package next

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/prayer-tracker/internal/http/response"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
)

// Handler обрабатывает запросы обратного отсчёта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расписания.
type Service interface {
	UntilNext(ctx context.Context) (string, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Время до следующего намаза
// @Description Возвращает обратный отсчёт "-H:MM:SS" или "Now", если намаз идёт прямо сейчас.
// @Tags Prayers
// @Produce  json
// @Success 200 {object} map[string]any "Обратный отсчёт"
// @Failure 503 {object} response.ErrorResponse "Расписание недоступно"
// @Router /prayers/next [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.prayer.next"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	countdown, err := h.service.UntilNext(r.Context())
	if err != nil {
		log.Error("failed to resolve time until next prayer", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("schedule unavailable"))
		return
	}

	log.Info("time until next prayer resolved", slog.String("countdown", countdown))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"time_until_next": countdown,
	}))
}
