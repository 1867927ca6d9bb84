// Package middlewarectx содержит HTTP middleware: проверку статического
// секрета API в заголовке Authorization и ограничение частоты запросов.
//
// APISecret сверяет Bearer-секрет со значением из конфигурации сравнением
// за постоянное время и при несовпадении возвращает HTTP 403 Forbidden.
package middlewarectx

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-gateway/internal/http/response"
)

// APISecret возвращает middleware, проверяющий статический секрет API
// в заголовке Authorization вида "Bearer <секрет>".
//
// Проверка не имеет побочных эффектов: ничего не пишется в хранилище
// и не кешируется. При несовпадении возвращается 403 Forbidden.
func APISecret(secret string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.APISecret"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("invalid api key"))
				return
			}
			presented := strings.TrimPrefix(authHeader, "Bearer ")

			if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
				log.Warn("api key mismatch")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("invalid api key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
