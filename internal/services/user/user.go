// Package user содержит регистрацию анкеты пользователя после входа
// через Google.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/billing-gateway/internal/lib/workerpool"
	"github.com/magabrotheeeer/billing-gateway/internal/models"
)

// Repository описывает сохранение анкеты пользователя.
type Repository interface {
	SaveUser(ctx context.Context, user models.User) (int64, error)
}

// Service реализует регистрацию пользователя.
type Service struct {
	repo Repository
	pool *workerpool.Pool
	log  *slog.Logger
}

// New создает Service.
func New(repo Repository, pool *workerpool.Pool, log *slog.Logger) *Service {
	return &Service{repo: repo, pool: pool, log: log}
}

// Register сохраняет анкету пользователя. Email берется из токена сессии,
// а не из тела запроса, uid выдается сервером.
func (s *Service) Register(ctx context.Context, email string, req models.NewUserRequest) error {
	const op = "services.user.Register"

	user := models.User{
		UID:         uuid.New().String(),
		Name:        req.Name,
		Email:       email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.pool.Do(ctx, func() error {
		_, err := s.repo.SaveUser(ctx, user)
		return err
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered",
		slog.String("uid", user.UID),
		slog.String("email", email))
	return nil
}
