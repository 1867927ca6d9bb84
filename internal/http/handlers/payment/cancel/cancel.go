// Package cancel реализует HTTP-обработчик отмены оплаты покупателем.
// Платёж остаётся незавершённым и будет вытеснен при следующей попытке.
package cancel

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/billing-gateway/internal/services/payment"
)

// Handler возвращает покупателя в профиль после отмены оплаты.
type Handler struct {
	log        *slog.Logger
	websiteURL string
}

// New создает новый Handler.
func New(log *slog.Logger, websiteURL string) *Handler {
	return &Handler{
		log:        log,
		websiteURL: websiteURL,
	}
}

// ServeHTTP godoc
// @Summary Отмена оплаты покупателем
// @Tags Payments
// @Success 302 "Перенаправление в профиль"
// @Router /cancel-url [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.log.Info("payment cancelled by user")
	http.Redirect(w, r, h.websiteURL+"/"+payment.PageProfile, http.StatusFound)
}
