package repository

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type participantRepo struct{}

// NewParticipantRepository returns a pgx-backed ParticipantRepository.
func NewParticipantRepository() ParticipantRepository {
	return &participantRepo{}
}

const participantColumns = `id, user_id, tournament_id, team_name, game_uid, approved, created_at`

// Insert relies on the UNIQUE (user_id, tournament_id) constraint: the conflict
// clause turns a duplicate join into zero affected rows instead of an error, so
// there is no check-then-insert window.
func (r *participantRepo) Insert(ctx context.Context, db DBTX, p *domain.Participant) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO participants (id, user_id, tournament_id, team_name, game_uid, approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, tournament_id) DO NOTHING`,
		p.ID, p.UserID, p.TournamentID, p.TeamName, p.GameUID, p.Approved)
	if err != nil {
		return false, fmt.Errorf("insert participant: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *participantRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Participant, error) {
	row := db.QueryRow(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
	p, err := scanParticipant(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan participant: %w", err)
	}
	return p, nil
}

func (r *participantRepo) ListByTournament(ctx context.Context, db DBTX, tournamentID uuid.UUID) ([]domain.Participant, error) {
	rows, err := db.Query(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE tournament_id = $1 ORDER BY created_at ASC`,
		tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParticipants(rows)
}

func (r *participantRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Participant, error) {
	rows, err := db.Query(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParticipants(rows)
}

func (r *participantRepo) ListPending(ctx context.Context, db DBTX, limit int) ([]domain.Participant, error) {
	rows, err := db.Query(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE NOT approved ORDER BY created_at ASC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParticipants(rows)
}

// Approve flips the flag. Already-approved rows match the WHERE clause too, so
// re-approval writes the same value and stays a silent no-op.
func (r *participantRepo) Approve(ctx context.Context, db DBTX, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `UPDATE participants SET approved = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("participant", id.String())
	}
	return nil
}

// Delete removes the row. A second reject finds nothing and is a no-op, not an error.
func (r *participantRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	return err
}

func scanParticipant(row pgx.Row) (*domain.Participant, error) {
	var p domain.Participant
	err := row.Scan(&p.ID, &p.UserID, &p.TournamentID, &p.TeamName, &p.GameUID, &p.Approved, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectParticipants(rows pgx.Rows) ([]domain.Participant, error) {
	var out []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
