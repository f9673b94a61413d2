package service

import (
	"context"
	"log/slog"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserService exposes admin operations on accounts.
type UserService struct {
	pool   *pgxpool.Pool
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(pool *pgxpool.Pool, users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{pool: pool, users: users, logger: logger}
}

// Search finds accounts by username substring.
func (s *UserService) Search(ctx context.Context, query string) ([]domain.User, error) {
	list, err := s.users.Search(ctx, s.pool, query, defaultListLimit)
	if err != nil {
		return nil, domain.ErrInternal("search users", err)
	}
	return list, nil
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", id.String())
	}
	return user, nil
}

// SetBanned bans or unbans an account. Banned accounts keep their balance
// and history; they just cannot log in.
func (s *UserService) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	if err := s.users.SetBanned(ctx, s.pool, id, banned); err != nil {
		if domain.ErrorCode(err) != "" {
			return err
		}
		return domain.ErrInternal("set banned", err)
	}
	s.logger.Info("user ban flag changed", "user_id", id, "banned", banned)
	return nil
}
