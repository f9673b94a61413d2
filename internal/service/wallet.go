package service

import (
	"context"
	"log/slog"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/ledger"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WalletService wraps the ledger engine in transactions and exposes the
// balance, grant and redemption operations.
type WalletService struct {
	pool        *pgxpool.Pool
	engine      *ledger.Engine
	users       repository.UserRepository
	redemptions repository.RedemptionRepository
	entries     repository.LedgerRepository
	logger      *slog.Logger
}

// NewWalletService creates a new WalletService.
func NewWalletService(
	pool *pgxpool.Pool,
	engine *ledger.Engine,
	users repository.UserRepository,
	redemptions repository.RedemptionRepository,
	entries repository.LedgerRepository,
	logger *slog.Logger,
) *WalletService {
	return &WalletService{
		pool:        pool,
		engine:      engine,
		users:       users,
		redemptions: redemptions,
		entries:     entries,
		logger:      logger,
	}
}

const defaultListLimit = 100

// Balance returns the user's current balance.
func (s *WalletService) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	user, err := s.users.FindByID(ctx, s.pool, userID)
	if err != nil {
		return 0, domain.ErrInternal("find user", err)
	}
	if user == nil {
		return 0, domain.ErrNotFound("user", userID.String())
	}
	return user.Balance, nil
}

// History returns the user's ledger entries, newest first.
func (s *WalletService) History(ctx context.Context, userID uuid.UUID) ([]domain.LedgerEntry, error) {
	entries, err := s.entries.ListByUser(ctx, s.pool, userID, defaultListLimit)
	if err != nil {
		return nil, domain.ErrInternal("list ledger entries", err)
	}
	return entries, nil
}

// Grant credits an admin-granted amount to a user.
func (s *WalletService) Grant(ctx context.Context, params domain.GrantParams) (*domain.CommandResult, error) {
	res, err := s.inTx(ctx, func(tx pgx.Tx) (*domain.CommandResult, error) {
		return s.engine.ExecuteGrant(ctx, tx, params)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("balance granted",
		"user_id", params.UserID, "amount", params.Amount, "granted_by", params.GrantedBy)
	return res, nil
}

// RequestRedemption opens a pending redemption, holding the amount.
func (s *WalletService) RequestRedemption(ctx context.Context, params domain.RedeemRequestParams) (*domain.CommandResult, error) {
	res, err := s.inTx(ctx, func(tx pgx.Tx) (*domain.CommandResult, error) {
		return s.engine.ExecuteRedeemRequest(ctx, tx, params)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("redemption requested",
		"user_id", params.UserID, "redemption_id", res.Redemption.ID, "amount", params.Amount)
	return res, nil
}

// ApproveRedemption resolves a pending redemption as approved.
func (s *WalletService) ApproveRedemption(ctx context.Context, redemptionID, decidedBy uuid.UUID) (*domain.CommandResult, error) {
	res, err := s.inTx(ctx, func(tx pgx.Tx) (*domain.CommandResult, error) {
		return s.engine.ExecuteRedeemApprove(ctx, tx, redemptionID, decidedBy)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("redemption approved", "redemption_id", redemptionID, "decided_by", decidedBy)
	return res, nil
}

// RejectRedemption resolves a pending redemption as rejected and refunds the hold.
func (s *WalletService) RejectRedemption(ctx context.Context, redemptionID, decidedBy uuid.UUID) (*domain.CommandResult, error) {
	res, err := s.inTx(ctx, func(tx pgx.Tx) (*domain.CommandResult, error) {
		return s.engine.ExecuteRedeemReject(ctx, tx, redemptionID, decidedBy)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("redemption rejected", "redemption_id", redemptionID, "decided_by", decidedBy)
	return res, nil
}

// ListRedemptions returns the user's own redemption requests, newest first.
func (s *WalletService) ListRedemptions(ctx context.Context, userID uuid.UUID) ([]domain.Redemption, error) {
	list, err := s.redemptions.ListByUser(ctx, s.pool, userID, defaultListLimit)
	if err != nil {
		return nil, domain.ErrInternal("list redemptions", err)
	}
	return list, nil
}

// ListAllRedemptions returns redemptions across users, optionally filtered by status.
func (s *WalletService) ListAllRedemptions(ctx context.Context, status *domain.RedemptionStatus) ([]domain.Redemption, error) {
	list, err := s.redemptions.List(ctx, s.pool, status, defaultListLimit)
	if err != nil {
		return nil, domain.ErrInternal("list redemptions", err)
	}
	return list, nil
}

// inTx runs a ledger command inside a transaction, committing on success.
func (s *WalletService) inTx(ctx context.Context, fn func(tx pgx.Tx) (*domain.CommandResult, error)) (*domain.CommandResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	res, err := fn(tx)
	if err != nil {
		// Engine errors wrap AppErrors; surface them as-is.
		if domain.ErrorCode(err) != "" {
			return nil, err
		}
		return nil, domain.ErrInternal("wallet command", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return res, nil
}
