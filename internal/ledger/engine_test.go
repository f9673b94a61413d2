package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. The engine only touches LockForUpdate/AdjustBalance on
// users and Insert/FindByID/Resolve on redemptions, so the remaining
// interface methods are stubs.

type fakeUsers struct {
	repository.UserRepository
	byID map[uuid.UUID]*domain.User
}

func (f *fakeUsers) LockForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) AdjustBalance(_ context.Context, _ pgx.Tx, id uuid.UUID, delta int64) (*domain.User, error) {
	u := f.byID[id]
	if u == nil {
		return nil, domain.ErrNotFound("user", id.String())
	}
	u.Balance += delta
	return u, nil
}

type fakeRedemptions struct {
	repository.RedemptionRepository
	byID map[uuid.UUID]*domain.Redemption
}

func (f *fakeRedemptions) Insert(_ context.Context, _ repository.DBTX, r *domain.Redemption) error {
	f.byID[r.ID] = r
	return nil
}

func (f *fakeRedemptions) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Redemption, error) {
	return f.byID[id], nil
}

func (f *fakeRedemptions) Resolve(_ context.Context, _ pgx.Tx, id uuid.UUID, to domain.RedemptionStatus) (*domain.Redemption, error) {
	r := f.byID[id]
	if r == nil || r.Status != domain.RedemptionPending {
		return nil, nil
	}
	now := time.Now()
	r.Status = to
	r.ResolvedAt = &now
	return r, nil
}

type fakeLedger struct {
	repository.LedgerRepository
	entries []*domain.LedgerEntry
}

func (f *fakeLedger) Insert(_ context.Context, _ repository.DBTX, e *domain.LedgerEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

type fakeOutbox struct {
	repository.OutboxRepository
	drafts []domain.OutboxDraft
}

func (f *fakeOutbox) Insert(_ context.Context, _ repository.DBTX, d domain.OutboxDraft) error {
	f.drafts = append(f.drafts, d)
	return nil
}

type harness struct {
	engine      *Engine
	users       *fakeUsers
	redemptions *fakeRedemptions
	ledger      *fakeLedger
	outbox      *fakeOutbox
}

func newHarness() *harness {
	h := &harness{
		users:       &fakeUsers{byID: map[uuid.UUID]*domain.User{}},
		redemptions: &fakeRedemptions{byID: map[uuid.UUID]*domain.Redemption{}},
		ledger:      &fakeLedger{},
		outbox:      &fakeOutbox{},
	}
	h.engine = NewEngine(h.users, h.redemptions, h.ledger, h.outbox)
	return h
}

func (h *harness) addUser(balance int64) uuid.UUID {
	id := uuid.New()
	h.users.byID[id] = &domain.User{ID: id, Username: "p_" + id.String()[:8], Balance: balance}
	return id
}

func TestExecuteGrant(t *testing.T) {
	t.Run("credits balance and records entry", func(t *testing.T) {
		h := newHarness()
		userID := h.addUser(100)
		adminID := uuid.New()

		res, err := h.engine.ExecuteGrant(context.Background(), nil, domain.GrantParams{
			UserID: userID, Amount: 500, GrantedBy: adminID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(600), res.User.Balance)
		assert.Equal(t, domain.EntryAdminGrant, res.Entry.Type)
		assert.Equal(t, int64(500), res.Entry.Amount)
		assert.Equal(t, int64(600), res.Entry.BalanceAfter)
		require.NotNil(t, res.Entry.ActorID)
		assert.Equal(t, adminID, *res.Entry.ActorID)
		assert.Len(t, h.outbox.drafts, 1)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		h := newHarness()
		userID := h.addUser(0)

		_, err := h.engine.ExecuteGrant(context.Background(), nil, domain.GrantParams{
			UserID: userID, Amount: 0, GrantedBy: uuid.New(),
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", domain.ErrorCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		h := newHarness()
		_, err := h.engine.ExecuteGrant(context.Background(), nil, domain.GrantParams{
			UserID: uuid.New(), Amount: 100, GrantedBy: uuid.New(),
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", domain.ErrorCode(err))
	})
}

func TestExecuteRedeemRequest(t *testing.T) {
	t.Run("debits eagerly and opens pending redemption", func(t *testing.T) {
		h := newHarness()
		userID := h.addUser(500)

		res, err := h.engine.ExecuteRedeemRequest(context.Background(), nil, domain.RedeemRequestParams{
			UserID: userID, Amount: 500, Method: "upi", Destination: "player@bank",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.User.Balance)
		assert.Equal(t, domain.RedemptionPending, res.Redemption.Status)
		assert.Equal(t, domain.EntryRedeemHold, res.Entry.Type)
		assert.Equal(t, int64(-500), res.Entry.Amount)
		require.NotNil(t, res.Entry.RedemptionID)
		assert.Equal(t, res.Redemption.ID, *res.Entry.RedemptionID)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		h := newHarness()
		userID := h.addUser(100)

		_, err := h.engine.ExecuteRedeemRequest(context.Background(), nil, domain.RedeemRequestParams{
			UserID: userID, Amount: 101, Method: "upi",
		})
		require.Error(t, err)
		assert.Equal(t, "INSUFFICIENT_BALANCE", domain.ErrorCode(err))
		assert.Equal(t, int64(100), h.users.byID[userID].Balance)
		assert.Empty(t, h.ledger.entries)
	})

	t.Run("missing method", func(t *testing.T) {
		h := newHarness()
		userID := h.addUser(100)

		_, err := h.engine.ExecuteRedeemRequest(context.Background(), nil, domain.RedeemRequestParams{
			UserID: userID, Amount: 50,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", domain.ErrorCode(err))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		h := newHarness()
		userID := h.addUser(100)

		for _, amount := range []int64{0, -50} {
			_, err := h.engine.ExecuteRedeemRequest(context.Background(), nil, domain.RedeemRequestParams{
				UserID: userID, Amount: amount, Method: "upi",
			})
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", domain.ErrorCode(err))
		}
		assert.Equal(t, int64(100), h.users.byID[userID].Balance)
		assert.Empty(t, h.ledger.entries)
	})
}

func TestExecuteRedeemApprove(t *testing.T) {
	t.Run("approves pending without touching balance", func(t *testing.T) {
		h := newHarness()
		userID := h.addUser(1000)
		req, err := h.engine.ExecuteRedeemRequest(context.Background(), nil, domain.RedeemRequestParams{
			UserID: userID, Amount: 400, Method: "upi",
		})
		require.NoError(t, err)

		res, err := h.engine.ExecuteRedeemApprove(context.Background(), nil, req.Redemption.ID, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, domain.RedemptionApproved, res.Redemption.Status)
		assert.NotNil(t, res.Redemption.ResolvedAt)
		assert.Equal(t, int64(600), h.users.byID[userID].Balance)
	})

	t.Run("approve after reject fails with invalid transition", func(t *testing.T) {
		h := newHarness()
		userID := h.addUser(1000)
		req, err := h.engine.ExecuteRedeemRequest(context.Background(), nil, domain.RedeemRequestParams{
			UserID: userID, Amount: 400, Method: "upi",
		})
		require.NoError(t, err)

		_, err = h.engine.ExecuteRedeemReject(context.Background(), nil, req.Redemption.ID, uuid.New())
		require.NoError(t, err)

		_, err = h.engine.ExecuteRedeemApprove(context.Background(), nil, req.Redemption.ID, uuid.New())
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATE_TRANSITION", domain.ErrorCode(err))
	})

	t.Run("unknown redemption", func(t *testing.T) {
		h := newHarness()
		_, err := h.engine.ExecuteRedeemApprove(context.Background(), nil, uuid.New(), uuid.New())
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", domain.ErrorCode(err))
	})
}

func TestExecuteRedeemReject(t *testing.T) {
	t.Run("refunds held amount once", func(t *testing.T) {
		h := newHarness()
		userID := h.addUser(500)
		req, err := h.engine.ExecuteRedeemRequest(context.Background(), nil, domain.RedeemRequestParams{
			UserID: userID, Amount: 500, Method: "upi",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), h.users.byID[userID].Balance)

		res, err := h.engine.ExecuteRedeemReject(context.Background(), nil, req.Redemption.ID, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, domain.RedemptionRejected, res.Redemption.Status)
		assert.Equal(t, int64(500), res.User.Balance)
		assert.Equal(t, domain.EntryRedeemRefund, res.Entry.Type)

		// Second reject is not pending anymore: no double refund.
		_, err = h.engine.ExecuteRedeemReject(context.Background(), nil, req.Redemption.ID, uuid.New())
		require.Error(t, err)
		assert.Equal(t, "INVALID_STATE_TRANSITION", domain.ErrorCode(err))
		assert.Equal(t, int64(500), h.users.byID[userID].Balance)
	})
}
