package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/infra"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the bootstrap admin account on first run. A platform
// with no admin cannot approve anything, so startup guarantees one exists.
func EnsureAdmin(ctx context.Context, pool *pgxpool.Pool, users repository.UserRepository, cfg *infra.Config, logger *slog.Logger) error {
	exists, err := users.AdminExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		return nil
	}

	password := cfg.AdminPassword
	if password == "" {
		// Only reachable with ALLOW_INSECURE_DEFAULTS; never in production.
		password = "admin123!"
		logger.Warn("seeding admin with insecure default password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &domain.User{
		ID:           uuid.New(),
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, pool, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	logger.Info("bootstrap admin created", "username", admin.Username, "user_id", admin.ID)
	return nil
}
