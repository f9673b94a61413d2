package ledger

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Engine provides the 2 foundational wallet operations:
//  1. LockUserForUpdate — row-level pessimistic lock
//  2. PostEntry — atomic balance update + append-only insert + outbox event
//
// Every command that moves balance delegates to these.
type Engine struct {
	users       repository.UserRepository
	redemptions repository.RedemptionRepository
	entries     repository.LedgerRepository
	outbox      repository.OutboxRepository
}

// NewEngine creates a wallet engine with the given repositories.
func NewEngine(
	users repository.UserRepository,
	redemptions repository.RedemptionRepository,
	entries repository.LedgerRepository,
	outbox repository.OutboxRepository,
) *Engine {
	return &Engine{
		users:       users,
		redemptions: redemptions,
		entries:     entries,
		outbox:      outbox,
	}
}

// LockUserForUpdate acquires a row-level lock and returns the user.
// Must be called within a transaction.
func (e *Engine) LockUserForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.User, error) {
	user, err := e.users.LockForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", userID.String())
	}
	return user, nil
}

// postEntryParams describes a single balance mutation.
type postEntryParams struct {
	UserID       uuid.UUID
	Type         domain.LedgerEntryType
	Delta        int64 // signed: negative debits, positive credits
	ActorID      *uuid.UUID
	RedemptionID *uuid.UUID
}

// PostEntry atomically updates the user balance and records the mutation.
//
// Steps:
//  1. Apply the signed delta using server-side arithmetic
//  2. Insert a ledger entry with the post-update balance snapshot
//  3. Insert an outbox event
//
// All 3 steps run within the caller's transaction.
func (e *Engine) PostEntry(ctx context.Context, tx pgx.Tx, params postEntryParams) (*domain.LedgerEntry, *domain.User, error) {
	updated, err := e.users.AdjustBalance(ctx, tx, params.UserID, params.Delta)
	if err != nil {
		return nil, nil, fmt.Errorf("adjust balance: %w", err)
	}

	entry := &domain.LedgerEntry{
		ID:           uuid.New(),
		UserID:       params.UserID,
		Type:         params.Type,
		Amount:       params.Delta,
		BalanceAfter: updated.Balance,
		ActorID:      params.ActorID,
		RedemptionID: params.RedemptionID,
	}
	if err := e.entries.Insert(ctx, tx, entry); err != nil {
		return nil, nil, fmt.Errorf("insert ledger entry: %w", err)
	}

	event := domain.NewLedgerEntryPostedEvent(entry)
	if err := e.outbox.Insert(ctx, tx, event); err != nil {
		return nil, nil, fmt.Errorf("insert outbox event: %w", err)
	}

	return entry, updated, nil
}
