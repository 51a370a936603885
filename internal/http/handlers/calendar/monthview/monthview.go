// Package monthview реализует HTTP-обработчик календарного представления
// за месяц: каждый день месяца присутствует в ответе, дни без записей
// получают все флаги false.
package monthview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/prayer-tracker/internal/http/response"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
	services "github.com/magabrotheeeer/prayer-tracker/internal/services/tracker"
)

// Handler обрабатывает запросы календарного представления за месяц.
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

// ServeHTTP godoc
// @Summary Календарь намазов за месяц
// @Description Возвращает представление месяца: по записи на каждый день, дни без данных — с флагами false.
// @Tags Calendar
// @Produce  json
// @Param userID path int true "ID пользователя"
// @Param year path int true "Год"
// @Param month path int true "Месяц (1-12)"
// @Success 200 {object} map[string]any "Календарное представление"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /calendar/{userID}/{year}/{month} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.calendar.monthview"

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
		render.JSON(w, r, response.Error("could not build month view"))
		return
	}

	log.Info("month view built", slog.Int("year", year), slog.Int("month", month),
		"days", len(view.Days))
	render.JSON(w, r, response.OKWithData(view))
}
