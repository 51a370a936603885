// Package nearest реализует HTTP-обработчик определения ближайшего намаза
// относительно текущего времени.
package nearest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/prayer-tracker/internal/http/response"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
)

// Handler обрабатывает запросы ближайшего намаза.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расписания.
type Service interface {
	Nearest(ctx context.Context) (string, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.prayer.nearest"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	prayer, err := h.service.Nearest(r.Context())
	if err != nil {
		log.Error("failed to resolve nearest prayer", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("schedule unavailable"))
		return
	}

	log.Info("nearest prayer resolved", slog.String("prayer", prayer))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"prayer": prayer,
	}))
}
