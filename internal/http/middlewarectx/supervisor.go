package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/movie-explorer/internal/http/response"
	"github.com/magabrotheeeer/movie-explorer/internal/models"
)

// RequireSupervisor пропускает дальше только пользователей с ролью supervisor.
// Роль берётся из контекста, заполненного JWTMiddleware; switch по ролям
// исчерпывающий, неизвестное значение отклоняется как и обычный пользователь.
func RequireSupervisor(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(models.Role)
			if !ok {
				log.Error("role missing in request context")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			switch role {
			case models.RoleSupervisor:
				next.ServeHTTP(w, r)
			case models.RoleUser:
				log.Warn("supervisor access denied",
					slog.String("role", string(role)),
					slog.String("path", r.URL.Path))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Forbidden: Supervisor access required"))
			default:
				log.Error("unknown role in request context", slog.String("role", string(role)))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Forbidden: Supervisor access required"))
			}
		})
	}
}
