// Package register реализует HTTP-обработчик сохранения анкеты пользователя.
//
// Email берётся из токена сессии в cookie, а не из тела запроса.
// Отсутствие или просрочка сессии — не ошибка: фронтенду возвращается
// redirect_url на страницу входа.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/billing-gateway/internal/http/response"
	"github.com/magabrotheeeer/billing-gateway/internal/http/session"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/jwt"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/billing-gateway/internal/models"
)

// Service описывает регистрацию анкеты пользователя.
type Service interface {
	Register(ctx context.Context, email string, req models.NewUserRequest) error
}

// TokenParser разбирает токен сессии.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.SessionClaims, error)
}

// Страницы фронтенда для redirect_url в ответе.
const (
	loginPage   = "/login"
	profilePage = "/user-profile"
)

// Handler управляет сохранением анкеты пользователя.
type Handler struct {
	log      *slog.Logger
	service  Service
	tokens   TokenParser
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, tokens TokenParser) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранить анкету пользователя
// @Description Сохраняет анкету нового пользователя. Email берётся из токена сессии в cookie.
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.NewUserRequest true "Анкета пользователя"
// @Success 200 {object} response.Response "redirect_url для фронтенда"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /insert-new-user [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := h.sessionEmail(r, log)
	if !ok {
		render.JSON(w, r, response.OKRedirect(loginPage))
		return
	}

	var req models.NewUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Register(r.Context(), email, req); err != nil {
		log.Error("failed to register user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register user"))
		return
	}

	log.Info("user registered", slog.String("email", email))
	render.JSON(w, r, response.OKRedirect(profilePage))
}

// sessionEmail достаёт email из токена сессии в cookie.
func (h *Handler) sessionEmail(r *http.Request, log *slog.Logger) (string, bool) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		log.Warn("session cookie missing")
		return "", false
	}

	claims, err := h.tokens.ParseToken(cookie.Value)
	if err != nil {
		log.Warn("invalid session token", sl.Err(err))
		return "", false
	}
	if claims.Email == "" {
		log.Warn("session token without email")
		return "", false
	}
	return claims.Email, true
}
