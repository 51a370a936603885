// Package monthsvg реализует HTTP-обработчик, отдающий теплокарту намазов
// за месяц в виде SVG-изображения.
package monthsvg

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

// Handler обрабатывает запросы SVG-теплокарты за месяц.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики построения представления.
type Service interface {
	BuildMonth(ctx context.Context, userID int64, year, month int) (*models.MonthView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.heatmap.monthsvg"

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
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		log.Error("failed to decode year from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode year from url"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		log.Error("failed to decode month from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode month from url"))
		return
	}

	view, err := h.service.BuildMonth(r.Context(), userID, year, month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			log.Error("invalid month in url", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid month"))
			return
		}
		log.Error("failed to build month view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build heatmap"))
		return
	}

	caption := fmt.Sprintf("Prayer Heatmap %02d-%d", month, year)
	svg := svgrender.Heatmap(view.Days, caption)

	log.Info("heatmap rendered", slog.Int("year", year), slog.Int("month", month))
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(svg))
}
