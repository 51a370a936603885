// Package rangesvg реализует HTTP-обработчик, отдающий теплокарту намазов
// за произвольный диапазон дат в виде SVG-изображения.
package rangesvg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/prayer-tracker/internal/http/response"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
	svgrender "github.com/magabrotheeeer/prayer-tracker/internal/render"
	services "github.com/magabrotheeeer/prayer-tracker/internal/services/tracker"
)

// Handler обрабатывает запросы SVG-теплокарты за диапазон дат.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики построения представления.
type Service interface {
	BuildRange(ctx context.Context, userID int64, startDate, endDate string) (*models.RangeView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.heatmap.rangesvg"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		log.Error("failed to decode user id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode user id from url"))
		return
	}

	startDate := r.URL.Query().Get("start")
	endDate := r.URL.Query().Get("end")

	view, err := h.service.BuildRange(r.Context(), userID, startDate, endDate)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			log.Error("invalid range in query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid range"))
			return
		}
		log.Error("failed to build range view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build heatmap"))
		return
	}

	caption := fmt.Sprintf("Prayer Heatmap %s / %s", view.StartDate, view.EndDate)
	svg := svgrender.Heatmap(view.Days, caption)

	log.Info("heatmap rendered", slog.String("start", startDate), slog.String("end", endDate))
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(svg))
}
