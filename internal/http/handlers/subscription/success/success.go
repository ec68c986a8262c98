// Package success реализует HTTP-обработчик подтверждения оплаченной
// checkout-сессии — единственный путь перевода подписки на premium.
//
// Платёжный шлюз перенаправляет сюда пользователя после оплаты с
// session_id в query-параметрах.
package success

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/paymentprovider"
	subscriptionservice "github.com/magabrotheeeer/movie-explorer/internal/services/subscription"
)

// Handler управляет HTTP-запросами подтверждения оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подтверждения покупки.
type Service interface {
	ConfirmCheckout(ctx context.Context, sessionID string) (*subscriptionservice.ConfirmResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подтвердить оплату подписки
// @Description Подтверждает checkout-сессию и переводит подписку на premium.
// @Tags Subscriptions
// @Produce  json
// @Param session_id query string true "Идентификатор checkout-сессии"
// @Success 200 {object} response.Response "Подписка подтверждена"
// @Failure 400 {object} response.ErrorResponse "Отсутствует session_id"
// @Failure 404 {object} response.ErrorResponse "Сессия или подписка не найдена"
// @Failure 502 {object} response.ErrorResponse "Платёжный шлюз недоступен"
// @Router /subscriptions/success [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.success"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		log.Error("missing session_id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing session_id"))
		return
	}

	res, err := h.service.ConfirmCheckout(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, paymentprovider.ErrSessionNotFound):
			log.Warn("checkout session not found", slog.String("session_id", sessionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("checkout session not found"))
		case errors.Is(err, subscriptionservice.ErrSubscriptionNotFound):
			log.Error("subscription missing for gateway customer",
				slog.String("session_id", sessionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
		case errors.Is(err, paymentprovider.ErrUnavailable):
			log.Error("payment gateway unavailable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment gateway unavailable"))
		default:
			log.Error("failed to confirm checkout", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not confirm checkout"))
		}
		return
	}

	log.Info("checkout confirmed", slog.String("session_id", sessionID))
	render.JSON(w, r, response.OKWithMessage(res.Message))
}
