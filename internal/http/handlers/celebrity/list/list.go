// Package list реализует HTTP-обработчик постраничной выдачи знаменитостей
// с поиском по подстроке имени.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	celebrityservice "github.com/magabrotheeeer/movie-explorer/internal/services/celebrity"
)

// Handler управляет HTTP-запросами списка знаменитостей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка знаменитостей.
type Service interface {
	List(ctx context.Context, name string, page, perPage int) (*celebrityservice.ListResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список знаменитостей
// @Description Возвращает страницу знаменитостей с поиском по имени.
// @Tags Celebrities
// @Produce  json
// @Param name query string false "Поиск по подстроке имени"
// @Param page query int false "Номер страницы"
// @Param per_page query int false "Размер страницы"
// @Success 200 {object} map[string]any "Страница знаменитостей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /celebrities [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.celebrity.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	res, err := h.service.List(r.Context(), q.Get("name"), page, perPage)
	if err != nil {
		log.Error("failed to list celebrities", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list celebrities"))
		return
	}

	if res.Pagination.TotalCount == 0 {
		render.JSON(w, r, response.OKWithMessage("No celebrities found"))
		return
	}

	render.JSON(w, r, response.OKWithData(res))
}
