// Package callback реализует HTTP-обработчик колбэка подтверждения оплаты.
//
// Провайдер возвращает покупателя на этот эндпоинт с идентификатором заказа
// в параметре token. Платёж финализируется, после чего покупатель уводится
// редиректом на страницу сайта, соответствующую исходу.
package callback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-gateway/internal/http/response"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/billing-gateway/internal/paypal"
	"github.com/magabrotheeeer/billing-gateway/internal/services/payment"
)

// Service описывает финализацию платежа.
type Service interface {
	Finalize(ctx context.Context, orderID string) (string, error)
}

// Handler управляет колбэком подтверждения оплаты.
type Handler struct {
	log        *slog.Logger
	service    Service
	websiteURL string
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, websiteURL string) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		websiteURL: websiteURL,
	}
}

// ServeHTTP godoc
// @Summary Колбэк подтверждения оплаты
// @Description Финализирует платёж по идентификатору заказа из параметра token и перенаправляет покупателя на сайт. Отклонённое подтверждение — мягкий редирект на страницу ошибки, сбои провайдера и хранилища — жёсткие ошибки.
// @Tags Payments
// @Param token query string true "Идентификатор заказа у провайдера"
// @Success 302 "Перенаправление на сайт"
// @Failure 502 {object} response.ErrorResponse "Платёжный провайдер недоступен"
// @Failure 500 {object} response.ErrorResponse "Ошибка финализации платежа"
// @Router /paypal-callback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.callback"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	orderID := r.URL.Query().Get("token")
	if orderID == "" {
		log.Error("missing token query parameter")
		http.Redirect(w, r, h.websiteURL+"/"+payment.PagePaymentError, http.StatusFound)
		return
	}

	page, err := h.service.Finalize(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, paypal.ErrUnavailable) {
			log.Error("payment provider unavailable", sl.Err(err),
				slog.String("order_id", orderID))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable"))
			return
		}
		log.Error("failed to finalize payment", sl.Err(err),
			slog.String("order_id", orderID))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not finalize payment"))
		return
	}

	log.Info("payment finalized", slog.String("order_id", orderID),
		slog.String("page", page))
	http.Redirect(w, r, h.websiteURL+"/"+page, http.StatusFound)
}
