package ledger

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExecuteRedeemRequest debits the requested amount and opens a pending
// redemption. The debit happens eagerly: the held amount leaves the balance
// at request time and comes back only on rejection.
func (e *Engine) ExecuteRedeemRequest(ctx context.Context, tx pgx.Tx, params domain.RedeemRequestParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if params.Method == "" {
		return nil, domain.ErrValidation("method is required")
	}

	user, err := e.LockUserForUpdate(ctx, tx, params.UserID)
	if err != nil {
		return nil, fmt.Errorf("redeem request: %w", err)
	}

	// The balance check runs under the row lock, so two concurrent requests
	// against the same balance serialize and the second sees the debit.
	if user.Balance < params.Amount {
		return nil, domain.ErrInsufficientBalance()
	}

	redemption := &domain.Redemption{
		ID:          uuid.New(),
		UserID:      params.UserID,
		Amount:      params.Amount,
		Method:      params.Method,
		Destination: params.Destination,
		Status:      domain.RedemptionPending,
	}
	if err := e.redemptions.Insert(ctx, tx, redemption); err != nil {
		return nil, fmt.Errorf("redeem request insert: %w", err)
	}

	entry, updated, err := e.PostEntry(ctx, tx, postEntryParams{
		UserID:       params.UserID,
		Type:         domain.EntryRedeemHold,
		Delta:        -params.Amount,
		RedemptionID: &redemption.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("redeem request post: %w", err)
	}

	return &domain.CommandResult{Entry: entry, User: updated, Redemption: redemption}, nil
}
