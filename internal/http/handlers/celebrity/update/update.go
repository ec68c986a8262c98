// Package update реализует HTTP-обработчик обновления знаменитости.
//
// Доступен только роли supervisor. movie_ids добавляют связи,
// remove_movie_ids удаляют; оба списка валидируются целиком до применения,
// проблемные идентификаторы перечисляются в ответе.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	celebrityservice "github.com/magabrotheeeer/movie-explorer/internal/services/celebrity"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// Handler управляет HTTP-запросами на обновление знаменитостей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления знаменитости.
type Service interface {
	Update(ctx context.Context, id int64, dto models.DummyCelebrity) error
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
// @Summary Обновить знаменитость
// @Description Обновляет знаменитость и её связи с фильмами. Требуется роль supervisor.
// @Tags Celebrities
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "Идентификатор знаменитости"
// @Param request body models.DummyCelebrity true "Новые данные знаменитости"
// @Success 200 {object} response.Response "Знаменитость обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Требуется роль supervisor"
// @Failure 404 {object} response.ErrorResponse "Знаменитость не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации или связей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /celebrities/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.celebrity.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid celebrity id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid celebrity id"))
		return
	}

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

	if err := h.service.Update(r.Context(), id, req); err != nil {
		var unknownErr *celebrityservice.UnknownMovieIDsError
		var linkedErr *celebrityservice.AlreadyLinkedError
		var notLinkedErr *celebrityservice.NotLinkedError
		switch {
		case errors.Is(err, repository.ErrCelebrityNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("celebrity not found"))
		case errors.As(err, &unknownErr):
			log.Warn("unknown movie ids in request", slog.Any("movie_ids", unknownErr.MovieIDs))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(unknownErr.Error()))
		case errors.As(err, &linkedErr):
			log.Warn("movies already linked", slog.Any("movie_ids", linkedErr.MovieIDs))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(linkedErr.Error()))
		case errors.As(err, &notLinkedErr):
			log.Warn("movies not linked", slog.Any("movie_ids", notLinkedErr.MovieIDs))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(notLinkedErr.Error()))
		default:
			log.Error("failed to update celebrity", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update celebrity"))
		}
		return
	}

	log.Info("celebrity updated", slog.Int64("celebrity_id", id))
	render.JSON(w, r, response.OKWithMessage("Celebrity updated successfully"))
}
