// Package status реализует HTTP-обработчик чтения статуса подписки.
//
// Чтение статуса — единственная операция, применяющая ленивое понижение:
// истёкший premium здесь же переводится на basic, и сообщение о понижении
// попадает ровно в один ответ.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-explorer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	subscriptionservice "github.com/magabrotheeeer/movie-explorer/internal/services/subscription"
)

// Handler управляет HTTP-запросами статуса подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики статуса подписки.
type Service interface {
	CheckStatus(ctx context.Context, userUID string) (*subscriptionservice.StatusResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статус подписки
// @Description Возвращает текущий уровень подписки, применяя ленивое понижение истёкшего premium.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Уровень подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"
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

	res, err := h.service.CheckStatus(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, subscriptionservice.ErrNoSubscription) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no active subscription found"))
			return
		}
		log.Error("failed to check subscription status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check subscription status"))
		return
	}

	render.JSON(w, r, response.OKWithData(res))
}
