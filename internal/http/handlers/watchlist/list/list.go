// Package list реализует HTTP-обработчик выдачи вотчлиста текущего
// пользователя. Недоступные premium-фильмы молча исключаются из выдачи.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-explorer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

// Handler управляет HTTP-запросами списка вотчлиста.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка вотчлиста.
type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Movie, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список вотчлиста
// @Description Возвращает фильмы из личного списка просмотра, доступные пользователю.
// @Tags Watchlists
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Фильмы вотчлиста"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /watchlists [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.watchlist.list"
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

	movies, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list watchlist", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list watchlist"))
		return
	}

	if len(movies) == 0 {
		render.JSON(w, r, response.OKWithMessage("Your watchlist is empty"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"movies": movies,
	}))
}
