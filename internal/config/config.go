// Package config предоставляет структуры и функции для загрузки настроек
// сервиса из переменных окружения. Конфиг собирается один раз на старте
// и дальше передаётся в компоненты как неизменяемое значение.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек сервиса.
type Config struct {
	Env                     string `env:"ENV" env-default:"local"`
	StorageConnectionString string `env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	RabbitMQURL             string `env:"RABBITMQ_URL"`
	AdminBaseURL            string `env:"ADMIN_ENDPOINT_BASE_URL" env-required:"true"`
	WebsiteURL              string `env:"WEBSITE_URL" env-required:"true"`
	APISecretKey            string `env:"BACKEND_API_SECRET_KEY" env-required:"true"`
	WorkerPoolSize          int    `env:"WORKER_POOL_SIZE" env-default:"4"`
	StrictSupersession      bool   `env:"PAYMENT_STRICT_SUPERSESSION" env-default:"false"`
	HTTPServer
	RedisConnection
	GoogleOAuth
	PayPal
	JWTToken
	Cookie
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `env:"REDIS_PASSWORD"`
	User         string        `env:"REDIS_USER"`
	DB           int           `env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `env:"REDIS_TIMEOUT" env-default:"3s"`
}

// GoogleOAuth структура с учётными данными OAuth-приложения Google.
type GoogleOAuth struct {
	ClientID     string `env:"GOOGLE_OAUTH_CLIENT_ID" env-required:"true"`
	ClientSecret string `env:"GOOGLE_OAUTH_CLIENT_SECRET" env-required:"true"`
}

// PayPal структура с настройками платёжного провайдера.
type PayPal struct {
	BaseURL         string `env:"PAYPAL_BASE_URL" env-required:"true"`
	PayPalClientID  string `env:"PAYPAL_CLIENT_ID" env-required:"true"`
	PayPalSecretKey string `env:"PAYPAL_CLIENT_SECRET" env-required:"true"`
}

// JWTToken структура для работы с токеном сессии.
type JWTToken struct {
	JWTSecretKey string        `env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `env:"JWT_TOKEN_TTL" env-default:"4h"`
}

// Cookie структура с атрибутами cookie сессии.
type Cookie struct {
	Secure   bool   `env:"COOKIE_SECURE_STATE" env-default:"true"`
	SameSite string `env:"COOKIE_SAMESITE" env-default:"lax"`
}

// Load читает конфиг из переменных окружения.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}
