package repository

import (
	"context"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// UserRepository provides access to users.
type UserRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, db DBTX, username string) (*domain.User, error)
	Create(ctx context.Context, db DBTX, user *domain.User) error

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) and returns the user.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.User, error)

	// AdjustBalance applies a signed delta using server-side arithmetic and
	// returns the updated user. Must run inside a transaction holding the row lock.
	AdjustBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int64) (*domain.User, error)

	SetBanned(ctx context.Context, db DBTX, id uuid.UUID, banned bool) error
	AdminExists(ctx context.Context, db DBTX) (bool, error)
	Search(ctx context.Context, db DBTX, query string, limit int) ([]domain.User, error)
}

// TournamentRepository provides access to tournaments.
type TournamentRepository interface {
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Tournament, error)
	List(ctx context.Context, db DBTX) ([]domain.Tournament, error)
	Create(ctx context.Context, db DBTX, t *domain.Tournament) error
	Update(ctx context.Context, db DBTX, t *domain.Tournament) error

	// TransitionStatus conditionally moves a tournament from one status to
	// another. Returns false when the tournament was not in the from status.
	TransitionStatus(ctx context.Context, db DBTX, id uuid.UUID, from, to domain.TournamentStatus) (bool, error)

	// OpenDue flips every upcoming tournament whose start time has passed to live,
	// returning the number of rows changed.
	OpenDue(ctx context.Context, db DBTX) (int64, error)

	// Delete removes the tournament; participant rows cascade at the store level.
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
}

// ParticipantRepository provides access to participants.
type ParticipantRepository interface {
	// Insert adds a participant row. Returns false without error when a row for
	// the same (user, tournament) pair already exists: the insert is a
	// conditional ON CONFLICT DO NOTHING, so concurrent duplicate joins cannot
	// both succeed.
	Insert(ctx context.Context, db DBTX, p *domain.Participant) (bool, error)

	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Participant, error)
	ListByTournament(ctx context.Context, db DBTX, tournamentID uuid.UUID) ([]domain.Participant, error)
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]domain.Participant, error)
	ListPending(ctx context.Context, db DBTX, limit int) ([]domain.Participant, error)

	// Approve marks the participant approved. Re-approval is a silent no-op.
	Approve(ctx context.Context, db DBTX, id uuid.UUID) error

	// Delete removes the participant row (rejection). Deleting an absent row is a no-op.
	Delete(ctx context.Context, db DBTX, id uuid.UUID) error
}

// RedemptionRepository provides access to redemptions.
type RedemptionRepository interface {
	Insert(ctx context.Context, db DBTX, r *domain.Redemption) error
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Redemption, error)
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID, limit int) ([]domain.Redemption, error)
	List(ctx context.Context, db DBTX, status *domain.RedemptionStatus, limit int) ([]domain.Redemption, error)

	// Resolve conditionally moves a pending redemption to the given terminal
	// status and returns the updated row, or nil when the redemption was not
	// pending at update time. The conditional WHERE status='pending' makes
	// concurrent duplicate approvals/rejections single-winner.
	Resolve(ctx context.Context, tx pgx.Tx, id uuid.UUID, to domain.RedemptionStatus) (*domain.Redemption, error)
}

// NotificationRepository provides access to the append-only notification log.
type NotificationRepository interface {
	Insert(ctx context.Context, db DBTX, n *domain.Notification) error
	List(ctx context.Context, db DBTX, limit int) ([]domain.Notification, error)
}

// LedgerRepository provides access to the append-only balance audit trail.
type LedgerRepository interface {
	Insert(ctx context.Context, db DBTX, e *domain.LedgerEntry) error
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID, limit int) ([]domain.LedgerEntry, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the state change).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error
}
