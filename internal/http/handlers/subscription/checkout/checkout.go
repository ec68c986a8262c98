// Package checkout реализует HTTP-обработчик создания checkout-сессии
// для покупки premium-подписки.
//
// Обработчик не меняет состояние подписки: он только создает сессию в
// платёжном шлюзе и возвращает адрес страницы оплаты. Переход на premium
// происходит после подтверждения оплаты обработчиком success.
package checkout

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
	"github.com/magabrotheeeer/movie-explorer/internal/paymentprovider"
	subscriptionservice "github.com/magabrotheeeer/movie-explorer/internal/services/subscription"
)

// Handler управляет HTTP-запросами создания checkout-сессии.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики покупки подписки.
type Service interface {
	InitiateCheckout(ctx context.Context, userUID, planType, clientType string) (*subscriptionservice.CheckoutResult, error)
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
// @Summary Купить premium-подписку
// @Description Создает checkout-сессию в платёжном шлюзе и возвращает адрес оплаты.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CheckoutRequest true "Длительность подписки и тип клиента"
// @Success 200 {object} map[string]any "Сессия создана"
// @Failure 400 {object} response.ErrorResponse "Неизвестный план или тип клиента"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 502 {object} response.ErrorResponse "Платёжный шлюз недоступен"
// @Router /subscriptions/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.checkout"
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

	var req models.CheckoutRequest
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

	res, err := h.service.InitiateCheckout(r.Context(), userUID, req.PlanType, req.ClientType)
	if err != nil {
		switch {
		case errors.Is(err, subscriptionservice.ErrInvalidPlanType),
			errors.Is(err, subscriptionservice.ErrInvalidClientType):
			log.Warn("invalid checkout request", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, subscriptionservice.ErrNoSubscription):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no active subscription found"))
		case errors.Is(err, paymentprovider.ErrUnavailable):
			log.Error("payment gateway unavailable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment gateway unavailable"))
		default:
			log.Error("failed to initiate checkout", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create checkout session"))
		}
		return
	}

	log.Info("checkout session created", slog.String("session_id", res.SessionID))
	render.JSON(w, r, response.OKWithData(res))
}
