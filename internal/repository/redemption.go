package repository

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type redemptionRepo struct{}

// NewRedemptionRepository returns a pgx-backed RedemptionRepository.
func NewRedemptionRepository() RedemptionRepository {
	return &redemptionRepo{}
}

const redemptionColumns = `id, user_id, amount, method, destination, status, created_at, resolved_at`

func (r *redemptionRepo) Insert(ctx context.Context, db DBTX, rd *domain.Redemption) error {
	_, err := db.Exec(ctx, `
		INSERT INTO redemptions (id, user_id, amount, method, destination, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rd.ID, rd.UserID, rd.Amount, rd.Method, rd.Destination, rd.Status)
	if err != nil {
		return fmt.Errorf("insert redemption: %w", err)
	}
	return nil
}

func (r *redemptionRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Redemption, error) {
	row := db.QueryRow(ctx, `SELECT `+redemptionColumns+` FROM redemptions WHERE id = $1`, id)
	rd, err := scanRedemption(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan redemption: %w", err)
	}
	return rd, nil
}

func (r *redemptionRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID, limit int) ([]domain.Redemption, error) {
	rows, err := db.Query(ctx,
		`SELECT `+redemptionColumns+` FROM redemptions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRedemptions(rows)
}

func (r *redemptionRepo) List(ctx context.Context, db DBTX, status *domain.RedemptionStatus, limit int) ([]domain.Redemption, error) {
	rows, err := db.Query(ctx, `
		SELECT `+redemptionColumns+` FROM redemptions
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC LIMIT $2`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRedemptions(rows)
}

// Resolve is the single-statement conditional transition out of pending.
// A redemption already in a terminal state matches zero rows, so a racing
// duplicate approve/reject can never fire twice; callers decide between
// NOT_FOUND and INVALID_STATE_TRANSITION from the nil return.
func (r *redemptionRepo) Resolve(ctx context.Context, tx pgx.Tx, id uuid.UUID, to domain.RedemptionStatus) (*domain.Redemption, error) {
	row := tx.QueryRow(ctx, `
		UPDATE redemptions SET status = $2, resolved_at = now()
		WHERE id = $1 AND status = $3
		RETURNING `+redemptionColumns,
		id, to, domain.RedemptionPending)
	rd, err := scanRedemption(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve redemption: %w", err)
	}
	return rd, nil
}

func scanRedemption(row pgx.Row) (*domain.Redemption, error) {
	var rd domain.Redemption
	err := row.Scan(&rd.ID, &rd.UserID, &rd.Amount, &rd.Method, &rd.Destination,
		&rd.Status, &rd.CreatedAt, &rd.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

func collectRedemptions(rows pgx.Rows) ([]domain.Redemption, error) {
	var out []domain.Redemption
	for rows.Next() {
		rd, err := scanRedemption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rd)
	}
	return out, rows.Err()
}
