// Package billinggateway собирает приложение: хранилище, кеш, клиенты
// внешних сервисов, бизнес-логику и HTTP-сервер с маршрутами.
package billinggateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/billing-gateway/internal/cache"
	"github.com/magabrotheeeer/billing-gateway/internal/config"
	"github.com/magabrotheeeer/billing-gateway/internal/googleoauth"
	"github.com/magabrotheeeer/billing-gateway/internal/http/session"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/jwt"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/workerpool"
	"github.com/magabrotheeeer/billing-gateway/internal/migrations"
	"github.com/magabrotheeeer/billing-gateway/internal/paypal"
	authservice "github.com/magabrotheeeer/billing-gateway/internal/services/auth"
	paymentservice "github.com/magabrotheeeer/billing-gateway/internal/services/payment"
	subscriptionservice "github.com/magabrotheeeer/billing-gateway/internal/services/subscription"
	userservice "github.com/magabrotheeeer/billing-gateway/internal/services/user"
	"github.com/magabrotheeeer/billing-gateway/internal/storage/repository"
)

// App держит HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

// New собирает приложение: подключает хранилище и кеш, применяет миграции,
// создаёт клиентов внешних сервисов и регистрирует маршруты.
// Очередь событий опциональна: без RABBITMQ_URL события платежей не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	pool := workerpool.New(cfg.WorkerPoolSize)
	tokenMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	cookies := session.NewWriter(cfg.Cookie, cfg.TokenTTL)

	paypalClient := paypal.NewClient(cfg.PayPal, cfg.AdminBaseURL)
	googleClient := googleoauth.NewClient(cfg.GoogleOAuth, cfg.AdminBaseURL)

	var amqpConn *amqp.Connection
	var notifier paymentservice.Notifier
	if cfg.RabbitMQURL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQURL, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn)
		if err != nil {
			return nil, err
		}
		notifier = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("rabbitmq url is not set, payment events will not be published")
	}

	paymentSvc := paymentservice.New(db, paypalClient, notifier, pool, logger,
		cfg.WebsiteURL, cfg.StrictSupersession)
	authSvc := authservice.New(googleClient, db, tokenMaker, pool, logger)
	userSvc := userservice.New(db, pool, logger)
	subscriptionSvc := subscriptionservice.New(db, cacheRedis, pool, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, &Services{
		Payment:      paymentSvc,
		Auth:         authSvc,
		User:         userSvc,
		Subscription: subscriptionSvc,
		Identity:     googleClient,
		Tokens:       tokenMaker,
		Cookies:      cookies,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", sl.Err(cerr))
		}
		if a.amqp != nil {
			if cerr := a.amqp.Close(); cerr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(cerr))
			}
		}
		return err
	}
}
