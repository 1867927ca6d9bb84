// Package billinggateway предоставляет маршруты приложения.
package billinggateway

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/billing-gateway/internal/config"
	authcallback "github.com/magabrotheeeer/billing-gateway/internal/http/handlers/auth/callback"
	"github.com/magabrotheeeer/billing-gateway/internal/http/handlers/auth/google"
	"github.com/magabrotheeeer/billing-gateway/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/billing-gateway/internal/http/handlers/health"
	paymentcallback "github.com/magabrotheeeer/billing-gateway/internal/http/handlers/payment/callback"
	"github.com/magabrotheeeer/billing-gateway/internal/http/handlers/payment/cancel"
	paymentcreate "github.com/magabrotheeeer/billing-gateway/internal/http/handlers/payment/create"
	"github.com/magabrotheeeer/billing-gateway/internal/http/handlers/subscription/add"
	"github.com/magabrotheeeer/billing-gateway/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/billing-gateway/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/billing-gateway/internal/http/handlers/user/register"
	"github.com/magabrotheeeer/billing-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/billing-gateway/internal/http/session"
	authservice "github.com/magabrotheeeer/billing-gateway/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/billing-gateway/internal/services/payment"
	subscriptionservice "github.com/magabrotheeeer/billing-gateway/internal/services/subscription"
	userservice "github.com/magabrotheeeer/billing-gateway/internal/services/user"
)

// Services собирает зависимости обработчиков для регистрации маршрутов.
type Services struct {
	Payment      *paymentservice.Service
	Auth         *authservice.Service
	User         *userservice.Service
	Subscription *subscriptionservice.Service
	Identity     google.Identity
	Tokens       register.TokenParser
	Cookies      *session.Writer
}

// RegisterRoutes регистрирует все маршруты приложения.
//
// Браузерные эндпоинты (вход через Google, колбэки провайдера) открыты,
// программные эндпоинты фронтенд-сервера закрыты статическим секретом API.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.WebsiteURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Открытые конечные точки: браузерные редиректы и колбэки
	r.Get("/test-api", health.New(logger).ServeHTTP)
	r.Get("/auth/google", google.New(logger, svc.Identity).ServeHTTP)
	r.Get("/auth/google/callback",
		authcallback.New(logger, svc.Auth, svc.Cookies, cfg.WebsiteURL).ServeHTTP)
	r.Get("/paypal-callback",
		paymentcallback.New(logger, svc.Payment, cfg.WebsiteURL).ServeHTTP)
	r.Get("/cancel-url", cancel.New(logger, cfg.WebsiteURL).ServeHTTP)

	// Группа со статическим секретом API
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.APISecret(cfg.APISecretKey, logger))
		r.Use(middlewarectx.RateLimit(rate.NewLimiter(10, 30), logger))
		r.Post("/create-paypal-payment", paymentcreate.New(logger, svc.Payment).ServeHTTP)
		r.Post("/logout", logout.New(logger, svc.Cookies).ServeHTTP)
		r.Post("/insert-new-user", register.New(logger, svc.User, svc.Tokens).ServeHTTP)
		r.Post("/get-subscription-data", list.New(logger, svc.Subscription).ServeHTTP)
		r.Post("/add-subscription", add.New(logger, svc.Subscription).ServeHTTP)
		r.Post("/delete-subscription", remove.New(logger, svc.Subscription).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
