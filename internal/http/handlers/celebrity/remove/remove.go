// Package remove реализует HTTP-обработчик удаления знаменитости.
// Доступен только роли supervisor.
package remove

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
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// Handler управляет HTTP-запросами на удаление знаменитостей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления знаменитости.
type Service interface {
	Remove(ctx context.Context, id int64) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить знаменитость
// @Description Удаляет знаменитость по id вместе со связями. Требуется роль supervisor.
// @Tags Celebrities
// @Produce  json
// @Security BearerAuth
// @Param id path int true "Идентификатор знаменитости"
// @Success 200 {object} response.Response "Знаменитость удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 403 {object} response.ErrorResponse "Требуется роль supervisor"
// @Failure 404 {object} response.ErrorResponse "Знаменитость не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /celebrities/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.celebrity.remove"
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

	if err := h.service.Remove(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrCelebrityNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("celebrity not found"))
			return
		}
		log.Error("failed to remove celebrity", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove celebrity"))
		return
	}

	log.Info("celebrity removed", slog.Int64("celebrity_id", id))
	render.JSON(w, r, response.OKWithMessage("Celebrity removed successfully"))
}
