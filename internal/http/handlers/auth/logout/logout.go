// Package logout реализует HTTP-обработчик выхода: очистку cookie сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-gateway/internal/http/response"
	"github.com/magabrotheeeer/billing-gateway/internal/http/session"
)

// Handler очищает cookie сессии.
type Handler struct {
	log     *slog.Logger
	cookies *session.Writer
}

// New создает новый Handler.
func New(log *slog.Logger, cookies *session.Writer) *Handler {
	return &Handler{
		log:     log,
		cookies: cookies,
	}
}

// ServeHTTP godoc
// @Summary Выход из сессии
// @Description Очищает cookie сессии. Операция идемпотентна.
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response "Сессия завершена"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	h.log.Info("session cleared")
	render.JSON(w, r, response.OKMessage("successfully logout !"))
}
