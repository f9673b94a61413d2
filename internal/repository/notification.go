package repository

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
)

type notificationRepo struct{}

// NewNotificationRepository returns a pgx-backed NotificationRepository.
func NewNotificationRepository() NotificationRepository {
	return &notificationRepo{}
}

func (r *notificationRepo) Insert(ctx context.Context, db DBTX, n *domain.Notification) error {
	_, err := db.Exec(ctx,
		`INSERT INTO notifications (id, message, created_by) VALUES ($1, $2, $3)`,
		n.ID, n.Message, n.CreatedBy)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *notificationRepo) List(ctx context.Context, db DBTX, limit int) ([]domain.Notification, error) {
	rows, err := db.Query(ctx, `
		SELECT id, message, created_by, created_at FROM notifications
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
