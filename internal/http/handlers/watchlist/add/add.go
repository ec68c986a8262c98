// Package add реализует HTTP-обработчик добавления фильма в вотчлист
// текущего пользователя.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/movie-explorer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	watchlistservice "github.com/magabrotheeeer/movie-explorer/internal/services/watchlist"
	"github.com/magabrotheeeer/movie-explorer/internal/storage/repository"
)

// Handler управляет HTTP-запросами на добавление в вотчлист.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления в вотчлист.
type Service interface {
	Add(ctx context.Context, userUID string, movieID int64) (int64, error)
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
// @Summary Добавить фильм в вотчлист
// @Description Добавляет фильм в личный список просмотра. Premium-фильмы требуют premium-подписку.
// @Tags Watchlists
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.AddWatchlistRequest true "Идентификатор фильма"
// @Success 200 {object} map[string]any "Запись добавлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется premium-подписка"
// @Failure 404 {object} response.ErrorResponse "Фильм не найден"
// @Failure 422 {object} response.ErrorResponse "Фильм уже в вотчлисте"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /watchlists [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.watchlist.add"
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

	var req models.AddWatchlistRequest
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

	id, err := h.service.Add(r.Context(), userUID, req.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMovieNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("movie not found"))
		case errors.Is(err, watchlistservice.ErrPremiumRequired):
			log.Warn("premium content denied", slog.Int64("movie_id", req.MovieID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("Forbidden: Premium subscription required"))
		case errors.Is(err, repository.ErrWatchlistDuplicate):
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("movie already in watchlist"))
		default:
			log.Error("failed to add watchlist entry", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not add movie to watchlist"))
		}
		return
	}

	log.Info("watchlist entry added",
		slog.String("user_uid", userUID), slog.Int64("movie_id", req.MovieID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"watchlist_id": id,
	}))
}
