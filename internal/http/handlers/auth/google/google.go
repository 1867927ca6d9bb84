// Package google реализует HTTP-обработчик начала входа через Google:
// перенаправление на страницу согласия OAuth.
package google

import (
	"log/slog"
	"net/http"
)

// Identity выдаёт адрес страницы согласия.
type Identity interface {
	ConsentURL() string
}

// Handler перенаправляет пользователя на страницу согласия Google.
type Handler struct {
	log      *slog.Logger
	identity Identity
}

// New создает новый Handler.
func New(log *slog.Logger, identity Identity) *Handler {
	return &Handler{
		log:      log,
		identity: identity,
	}
}

// ServeHTTP godoc
// @Summary Начать вход через Google
// @Tags Auth
// @Success 302 "Перенаправление на страницу согласия Google"
// @Router /auth/google [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.log.Info("redirecting to consent page")
	http.Redirect(w, r, h.identity.ConsentURL(), http.StatusFound)
}
