// Package cancel реализует HTTP-обработчик возврата со страницы оплаты
// без завершения покупки. Состояние подписки не меняется.
package cancel

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
)

// Handler управляет HTTP-запросами отмены оплаты.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Отмена оплаты
// @Description Возврат со страницы оплаты без покупки. Подписка не меняется.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} response.Response "Оплата отменена"
// @Router /subscriptions/cancel [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.cancel"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	log.Info("checkout cancelled by user")
	render.JSON(w, r, response.OKWithMessage("Subscription purchase was cancelled"))
}
