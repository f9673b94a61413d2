package repository

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/google/uuid"
)

type ledgerRepo struct{}

// NewLedgerRepository returns a pgx-backed LedgerRepository.
func NewLedgerRepository() LedgerRepository {
	return &ledgerRepo{}
}

func (r *ledgerRepo) Insert(ctx context.Context, db DBTX, e *domain.LedgerEntry) error {
	_, err := db.Exec(ctx, `
		INSERT INTO ledger_entries (id, user_id, type, amount, balance_after, actor_id, redemption_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Type, e.Amount, e.BalanceAfter, e.ActorID, e.RedemptionID)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (r *ledgerRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	rows, err := db.Query(ctx, `
		SELECT id, user_id, type, amount, balance_after, actor_id, redemption_id, created_at
		FROM ledger_entries WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Amount, &e.BalanceAfter,
			&e.ActorID, &e.RedemptionID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
