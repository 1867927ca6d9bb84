// Package auth содержит оркестрацию входа через Google: обмен кода на
// access token, получение профиля, выпуск токена сессии и выбор страницы
// для перенаправления по наличию анкеты пользователя.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/billing-gateway/internal/googleoauth"
	"github.com/magabrotheeeer/billing-gateway/internal/lib/workerpool"
	"github.com/magabrotheeeer/billing-gateway/internal/models"
	"github.com/magabrotheeeer/billing-gateway/internal/storage/repository"
)

// Identity описывает операции провайдера идентичности.
type Identity interface {
	Exchange(ctx context.Context, code string) (string, error)
	FetchUserInfo(ctx context.Context, accessToken string) (*googleoauth.UserInfo, error)
}

// UserRepository описывает поиск анкеты пользователя.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenMaker выпускает токены сессии.
type TokenMaker interface {
	GenerateToken(email, name string) (string, error)
}

// Страницы сайта, на которые уводится пользователь после входа.
const (
	PageProfile = "user-profile"
	PageSignup  = "signup-form"
)

// Result — исход успешного входа: токен сессии и страница перенаправления.
type Result struct {
	Token        string
	RedirectPage string
}

// Service реализует поток аутентификации.
type Service struct {
	identity Identity
	users    UserRepository
	tokens   TokenMaker
	pool     *workerpool.Pool
	log      *slog.Logger
}

// New создает Service.
func New(identity Identity, users UserRepository, tokens TokenMaker,
	pool *workerpool.Pool, log *slog.Logger) *Service {
	return &Service{
		identity: identity,
		users:    users,
		tokens:   tokens,
		pool:     pool,
		log:      log,
	}
}

// HandleCallback проводит вход по authorization code. Пользователь без
// анкеты уводится на форму регистрации, с анкетой — в профиль; токен
// сессии выпускается в обоих случаях.
func (s *Service) HandleCallback(ctx context.Context, code string) (*Result, error) {
	const op = "services.auth.HandleCallback"

	accessToken, err := s.identity.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info, err := s.identity.FetchUserInfo(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.GenerateToken(info.Email, info.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page := PageProfile
	if err := s.pool.Do(ctx, func() error {
		_, err := s.users.GetUserByEmail(ctx, info.Email)
		if errors.Is(err, repository.ErrNotFound) {
			page = PageSignup
			return nil
		}
		return err
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user authenticated",
		slog.String("email", info.Email),
		slog.String("redirect_page", page))
	return &Result{Token: token, RedirectPage: page}, nil
}
