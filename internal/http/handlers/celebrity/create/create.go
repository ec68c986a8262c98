// Package create реализует HTTP-обработчик добавления знаменитости.
//
// Доступен только роли supervisor. Список movie_ids проверяется целиком
// до применения: один несуществующий фильм отклоняет весь запрос
// с перечислением проблемных идентификаторов.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	celebrityservice "github.com/magabrotheeeer/movie-explorer/internal/services/celebrity"
)

// Handler управляет HTTP-запросами на создание знаменитостей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания знаменитости.
type Service interface {
	Create(ctx context.Context, dto models.DummyCelebrity) (int64, error)
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
// @Summary Добавить знаменитость
// @Description Создает знаменитость и связывает её с фильмами. Требуется роль supervisor.
// @Tags Celebrities
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyCelebrity true "Данные знаменитости"
// @Success 200 {object} map[string]any "Знаменитость создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль supervisor"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или несуществующие фильмы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /celebrities [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.celebrity.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCelebrity
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		var unknownErr *celebrityservice.UnknownMovieIDsError
		if errors.As(err, &unknownErr) {
			log.Warn("unknown movie ids in request", slog.Any("movie_ids", unknownErr.MovieIDs))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(unknownErr.Error()))
			return
		}
		log.Error("failed to create celebrity", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create celebrity"))
		return
	}

	log.Info("celebrity created", slog.Int64("celebrity_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"celebrity_id": id,
	}))
}
