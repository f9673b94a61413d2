package ledger

import (
	"context"
	"fmt"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExecuteRedeemApprove moves a pending redemption to approved. The held
// amount was already debited at request time, so approval touches no balance.
func (e *Engine) ExecuteRedeemApprove(ctx context.Context, tx pgx.Tx, redemptionID, decidedBy uuid.UUID) (*domain.CommandResult, error) {
	resolved, err := e.resolve(ctx, tx, redemptionID, domain.RedemptionApproved, decidedBy)
	if err != nil {
		return nil, err
	}
	return &domain.CommandResult{Redemption: resolved}, nil
}

// ExecuteRedeemReject moves a pending redemption to rejected and refunds the
// held amount. The conditional resolve is single-winner, so a concurrent
// duplicate reject cannot refund twice.
func (e *Engine) ExecuteRedeemReject(ctx context.Context, tx pgx.Tx, redemptionID, decidedBy uuid.UUID) (*domain.CommandResult, error) {
	resolved, err := e.resolve(ctx, tx, redemptionID, domain.RedemptionRejected, decidedBy)
	if err != nil {
		return nil, err
	}

	if _, err := e.LockUserForUpdate(ctx, tx, resolved.UserID); err != nil {
		return nil, fmt.Errorf("redeem reject: %w", err)
	}

	actor := decidedBy
	entry, user, err := e.PostEntry(ctx, tx, postEntryParams{
		UserID:       resolved.UserID,
		Type:         domain.EntryRedeemRefund,
		Delta:        resolved.Amount,
		ActorID:      &actor,
		RedemptionID: &resolved.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("redeem reject post: %w", err)
	}

	return &domain.CommandResult{Entry: entry, User: user, Redemption: resolved}, nil
}

// resolve performs the conditional pending→terminal transition and stages the
// decision event. A nil row from Resolve means the redemption was missing or
// already terminal; the two cases map to different errors.
func (e *Engine) resolve(ctx context.Context, tx pgx.Tx, redemptionID uuid.UUID, to domain.RedemptionStatus, decidedBy uuid.UUID) (*domain.Redemption, error) {
	resolved, err := e.redemptions.Resolve(ctx, tx, redemptionID, to)
	if err != nil {
		return nil, fmt.Errorf("resolve redemption: %w", err)
	}
	if resolved == nil {
		existing, err := e.redemptions.FindByID(ctx, tx, redemptionID)
		if err != nil {
			return nil, fmt.Errorf("resolve redemption lookup: %w", err)
		}
		if existing == nil {
			return nil, domain.ErrNotFound("redemption", redemptionID.String())
		}
		return nil, domain.ErrInvalidTransition("redemption", string(existing.Status), string(to))
	}

	event := domain.NewRedemptionResolvedEvent(resolved, decidedBy)
	if err := e.outbox.Insert(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}
	return resolved, nil
}
