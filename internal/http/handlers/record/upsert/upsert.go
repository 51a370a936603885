// Package upsert реализует HTTP-обработчик сохранения дневной записи о намазах.
//
// Handler принимает JSON-запрос с пятью флагами, валидирует его,
// вызывает бизнес-логику сохранения и возвращает ID записи в JSON-формате.
// Повторный запрос на ту же пару (пользователь, дата) перезаписывает запись.
package upsert

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/prayer-tracker/internal/http/response"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
	services "github.com/magabrotheeeer/prayer-tracker/internal/services/tracker"
)

// Handler управляет HTTP-запросами на сохранение записей о намазах.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики записей
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики сохранения записи.
type Service interface {
	Upsert(ctx context.Context, req models.DummyRecord) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранить запись о намазах за день
// @Description Создает или перезаписывает запись пользователя на дату. Возвращает ID записи.
// @Tags Records
// @Accept  json
// @Produce  json
// @Param request body models.DummyRecord true "Запись о намазах"
// @Success 200 {object} map[string]any "Успешное сохранение записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении"
// @Router /records [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.record.upsert"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRecord
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := h.service.Upsert(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			log.Error("invalid date in request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date"))
			return
		}
		log.Error("failed to upsert record", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save record"))
		return
	}

	log.Info("success to upsert record", slog.Any("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"record_id": id,
	}))
}
