// Package remove реализует HTTP-обработчик удаления фильма из вотчлиста.
// Удалить можно и запись на фильм, который уже недоступен.
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

	"github.com/magabrotheeeer/movie-explorer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// Handler управляет HTTP-запросами удаления из вотчлиста.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления из вотчлиста.
type Service interface {
	Remove(ctx context.Context, userUID string, movieID int64) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить фильм из вотчлиста
// @Description Убирает фильм из личного списка просмотра.
// @Tags Watchlists
// @Produce  json
// @Security BearerAuth
// @Param movie_id path int true "Идентификатор фильма"
// @Success 200 {object} response.Response "Запись удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Записи нет в вотчлисте"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /watchlists/{movie_id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.watchlist.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := middlewarectx.UserUIDFromContext(r.Context())
	if userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	movieID, err := strconv.ParseInt(chi.URLParam(r, "movie_id"), 10, 64)
	if err != nil {
		log.Error("invalid movie id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid movie id"))
		return
	}

	if err := h.service.Remove(r.Context(), userUID, movieID); err != nil {
		if errors.Is(err, repository.ErrWatchlistEntryNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("movie is not in your watchlist"))
			return
		}
		log.Error("failed to remove watchlist entry", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove movie from watchlist"))
		return
	}

	log.Info("watchlist entry removed",
		slog.String("user_uid", userUID), slog.Int64("movie_id", movieID))
	render.JSON(w, r, response.OKWithMessage("Movie removed from watchlist"))
}
