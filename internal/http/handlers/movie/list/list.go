// Package list реализует HTTP-обработчик постраничной выдачи каталога фильмов.
//
// Поддерживает поиск по подстроке названия, точный фильтр по жанру и
// сортировку по одному из разрешённых полей. Пустой каталог отличается
// от исчерпанной страницы: при нуле записей возвращается сообщение
// "No movies found".
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/lib/sl"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
	movieservice "github.com/magabrotheeeer/movie-explorer/internal/services/movie"
)

// Handler управляет HTTP-запросами списка фильмов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка фильмов.
type Service interface {
	List(ctx context.Context, filter models.MovieFilter, page, perPage int) (*movieservice.ListResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список фильмов
// @Description Возвращает страницу каталога с фильтрами и сортировкой.
// @Tags Movies
// @Produce  json
// @Param title query string false "Поиск по подстроке названия"
// @Param genre query string false "Точный фильтр по жанру"
// @Param sort_by query string false "Поле сортировки: rating или release_year"
// @Param order query string false "Направление сортировки: asc или desc (по умолчанию desc)"
// @Param page query int false "Номер страницы"
// @Param per_page query int false "Размер страницы"
// @Success 200 {object} map[string]any "Страница фильмов"
// @Failure 400 {object} response.ErrorResponse "Неизвестное поле сортировки"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /movies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	sortBy := q.Get("sort_by")
	filter := models.MovieFilter{
		Title:  q.Get("title"),
		Genre:  q.Get("genre"),
		SortBy: sortBy,
		// При заданном поле сортировки направление по умолчанию — убывание,
		// возрастание нужно запросить явно через order=asc.
		SortDesc: sortBy != "" && q.Get("order") != "asc",
	}

	res, err := h.service.List(r.Context(), filter, page, perPage)
	if err != nil {
		if errors.Is(err, movieservice.ErrInvalidSortField) {
			log.Warn("invalid sort field", slog.String("sort_by", filter.SortBy))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to list movies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list movies"))
		return
	}

	if res.Pagination.TotalCount == 0 {
		render.JSON(w, r, response.OKWithMessage("No movies found"))
		return
	}

	render.JSON(w, r, response.OKWithData(res))
}
