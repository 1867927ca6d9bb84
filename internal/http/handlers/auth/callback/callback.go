// Package callback реализует HTTP-обработчик колбэка входа через Google.
//
// Handler обменивает authorization code на токен сессии, устанавливает
// cookie и уводит пользователя на сайт: в профиль, если анкета уже есть,
// иначе на форму регистрации. Отказ пользователя на странице согласия
// возвращает его на главную страницу сайта без cookie.
package callback

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/billing-gateway/internal/http/response"
	"github.com/magabrotheeeer/billing-gateway/internal/http/session"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/billing-gateway/internal/services/auth"
)

// Service описывает проведение входа по authorization code.
type Service interface {
	HandleCallback(ctx context.Context, code string) (*auth.Result, error)
}

// Handler управляет колбэком входа через Google.
type Handler struct {
	log        *slog.Logger
	service    Service
	cookies    *session.Writer
	websiteURL string
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, cookies *session.Writer, websiteURL string) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		cookies:    cookies,
		websiteURL: websiteURL,
	}
}

// ServeHTTP godoc
// @Summary Колбэк входа через Google
// @Description Обменивает authorization code на токен сессии, устанавливает cookie и перенаправляет на сайт.
// @Tags Auth
// @Param code query string false "Authorization code"
// @Param error query string false "Код отказа пользователя"
// @Success 302 "Перенаправление на сайт"
// @Failure 500 {object} response.ErrorResponse "Ошибка проведения входа"
// @Router /auth/google/callback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.callback"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		log.Warn("user declined consent", slog.String("error", errParam))
		http.Redirect(w, r, h.websiteURL, http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Warn("missing code query parameter")
		http.Redirect(w, r, h.websiteURL, http.StatusFound)
		return
	}

	result, err := h.service.HandleCallback(r.Context(), code)
	if err != nil {
		log.Error("failed to handle callback", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not complete login"))
		return
	}

	h.cookies.Set(w, result.Token)
	log.Info("login completed", slog.String("page", result.RedirectPage))
	http.Redirect(w, r, h.websiteURL+"/"+result.RedirectPage, http.StatusFound)
}
