package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationService handles the append-only broadcast feed.
type NotificationService struct {
	pool          *pgxpool.Pool
	notifications repository.NotificationRepository
	outbox        repository.OutboxRepository
	logger        *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	pool *pgxpool.Pool,
	notifications repository.NotificationRepository,
	outbox repository.OutboxRepository,
	logger *slog.Logger,
) *NotificationService {
	return &NotificationService{
		pool:          pool,
		notifications: notifications,
		outbox:        outbox,
		logger:        logger,
	}
}

// Broadcast appends a notification visible to everyone.
func (s *NotificationService) Broadcast(ctx context.Context, createdBy uuid.UUID, message string) (*domain.Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrValidation("message is required")
	}

	n := &domain.Notification{
		ID:        uuid.New(),
		Message:   message,
		CreatedBy: &createdBy,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.notifications.Insert(ctx, tx, n); err != nil {
		return nil, domain.ErrInternal("insert notification", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewNotificationPostedEvent(n)); err != nil {
		return nil, domain.ErrInternal("insert outbox event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("notification broadcast", "notification_id", n.ID, "created_by", createdBy)
	return n, nil
}

// List returns the latest notifications, newest first. Public.
func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	list, err := s.notifications.List(ctx, s.pool, defaultListLimit)
	if err != nil {
		return nil, domain.ErrInternal("list notifications", err)
	}
	return list, nil
}
