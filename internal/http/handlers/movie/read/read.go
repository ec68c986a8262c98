// Package read реализует HTTP-обработчик получения фильма по идентификатору.
//
// Путь публичный: анонимные запросы допустимы, но premium-фильм доступен
// только пользователям с действующей premium-подпиской.
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

	"github.com/magabrotheeeer/movie-explorer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	movieservice "github.com/magabrotheeeer/movie-explorer/internal/services/movie"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// Handler управляет HTTP-запросами чтения фильма.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения фильма.
type Service interface {
	Read(ctx context.Context, id int64, userUID string) (*models.Movie, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить фильм
// @Description Возвращает фильм по id. Premium-фильмы требуют premium-подписку.
// @Tags Movies
// @Produce  json
// @Param id path int true "Идентификатор фильма"
// @Success 200 {object} map[string]any "Данные фильма"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Фильм не найден или недоступен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /movies/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid movie id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid movie id"))
		return
	}

	userUID := middlewarectx.UserUIDFromContext(r.Context())

	movie, err := h.service.Read(r.Context(), id, userUID)
	if err != nil {
		switch {
		// Недоступный premium-фильм неотличим от несуществующего:
		// существование закрытого контента не раскрывается.
		case errors.Is(err, repository.ErrMovieNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Movie not found or access denied"))
		case errors.Is(err, movieservice.ErrPremiumRequired):
			log.Warn("premium content denied", slog.Int64("movie_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Movie not found or access denied"))
		default:
			log.Error("failed to read movie", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read movie"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(movie))
}
