// Package read реализует HTTP-обработчик получения записи пользователя на дату.
//
// Handler извлекает дату и ID пользователя из URL-параметров, вызывает
// бизнес-логику чтения и возвращает запись в JSON-формате.
package read

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
	"github.com/magabrotheeeer/prayer-tracker/internal/storage/repository"
)

// Handler обрабатывает запросы на получение записи по дате и пользователю.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения записи.
type Service interface {
	Read(ctx context.Context, userID int64, date string) (*models.UserDayEntry, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.record.read"

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

	date := chi.URLParam(r, "date")

	res, err := h.service.Read(r.Context(), userID, date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate):
			log.Error("invalid date in url", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date"))
		case errors.Is(err, repository.ErrRecordNotFound):
			log.Info("record not found", slog.Int64("user_id", userID), slog.String("date", date))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("record not found"))
		default:
			log.Error("failed to read record", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read record"))
		}
		return
	}

	log.Info("success to read record", slog.Any("entry", res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"entry": res,
	}))
}
