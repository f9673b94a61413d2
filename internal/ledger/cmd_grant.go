package ledger

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ExecuteGrant credits an admin-granted amount to a user's balance.
func (e *Engine) ExecuteGrant(ctx context.Context, tx pgx.Tx, params domain.GrantParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	if _, err := e.LockUserForUpdate(ctx, tx, params.UserID); err != nil {
		return nil, fmt.Errorf("grant: %w", err)
	}

	actor := params.GrantedBy
	entry, user, err := e.PostEntry(ctx, tx, postEntryParams{
		UserID:  params.UserID,
		Type:    domain.EntryAdminGrant,
		Delta:   params.Amount,
		ActorID: &actor,
	})
	if err != nil {
		return nil, fmt.Errorf("grant post: %w", err)
	}

	return &domain.CommandResult{Entry: entry, User: user}, nil
}
