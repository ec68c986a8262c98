// Package read реализует HTTP-обработчик получения знаменитости по
// идентификатору вместе со связанными фильмами и вычисленным возрастом.
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

	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// Handler управляет HTTP-запросами чтения знаменитости.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения знаменитости.
type Service interface {
	Read(ctx context.Context, id int64) (*models.Celebrity, []int64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить знаменитость
// @Description Возвращает знаменитость по id со списком связанных фильмов.
// @Tags Celebrities
// @Produce  json
// @Param id path int true "Идентификатор знаменитости"
// @Success 200 {object} map[string]any "Данные знаменитости"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Знаменитость не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /celebrities/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.celebrity.read"
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

	celebrity, movieIDs, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCelebrityNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("celebrity not found"))
			return
		}
		log.Error("failed to read celebrity", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read celebrity"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"celebrity": celebrity,
		"age":       celebrity.Age(),
		"movie_ids": movieIDs,
	}))
}
