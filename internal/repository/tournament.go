package repository

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type tournamentRepo struct{}

// NewTournamentRepository returns a pgx-backed TournamentRepository.
func NewTournamentRepository() TournamentRepository {
	return &tournamentRepo{}
}

const tournamentColumns = `id, title, starts_at, entry_fee, prize_pool, status, created_at, updated_at`

func (r *tournamentRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Tournament, error) {
	row := db.QueryRow(ctx, `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id)
	return scanTournament(row)
}

func (r *tournamentRepo) List(ctx context.Context, db DBTX) ([]domain.Tournament, error) {
	rows, err := db.Query(ctx,
		`SELECT `+tournamentColumns+` FROM tournaments ORDER BY starts_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Tournament
	for rows.Next() {
		var t domain.Tournament
		if err := rows.Scan(&t.ID, &t.Title, &t.StartsAt, &t.EntryFee, &t.PrizePool,
			&t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tournamentRepo) Create(ctx context.Context, db DBTX, t *domain.Tournament) error {
	_, err := db.Exec(ctx, `
		INSERT INTO tournaments (id, title, starts_at, entry_fee, prize_pool, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Title, t.StartsAt, t.EntryFee, t.PrizePool, t.Status)
	if err != nil {
		return fmt.Errorf("insert tournament: %w", err)
	}
	return nil
}

func (r *tournamentRepo) Update(ctx context.Context, db DBTX, t *domain.Tournament) error {
	tag, err := db.Exec(ctx, `
		UPDATE tournaments
		SET title = $2, starts_at = $3, entry_fee = $4, prize_pool = $5, updated_at = now()
		WHERE id = $1`,
		t.ID, t.Title, t.StartsAt, t.EntryFee, t.PrizePool)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("tournament", t.ID.String())
	}
	return nil
}

// TransitionStatus is a single conditional update: the WHERE clause carries the
// expected source status, so racing transitions have exactly one winner.
func (r *tournamentRepo) TransitionStatus(ctx context.Context, db DBTX, id uuid.UUID, from, to domain.TournamentStatus) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE tournaments SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *tournamentRepo) OpenDue(ctx context.Context, db DBTX) (int64, error) {
	tag, err := db.Exec(ctx, `
		UPDATE tournaments SET status = $2, updated_at = now()
		WHERE status = $1 AND starts_at <= now()`,
		domain.TournamentUpcoming, domain.TournamentLive)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *tournamentRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("tournament", id.String())
	}
	return nil
}

func scanTournament(row pgx.Row) (*domain.Tournament, error) {
	var t domain.Tournament
	err := row.Scan(&t.ID, &t.Title, &t.StartsAt, &t.EntryFee, &t.PrizePool,
		&t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan tournament: %w", err)
	}
	return &t, nil
}
