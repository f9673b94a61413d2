package domain

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntryType enumerates the balance-mutating operations.
type LedgerEntryType string

const (
	EntryAdminGrant   LedgerEntryType = "admin_grant"
	EntryRedeemHold   LedgerEntryType = "redeem_hold"
	EntryRedeemRefund LedgerEntryType = "redeem_refund"
)

// LedgerEntry is an append-only record of a balance mutation. Amount is
// signed: negative for holds, positive for grants and refunds.
// BalanceAfter snapshots the balance produced by this entry.
type LedgerEntry struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Type         LedgerEntryType `json:"type"`
	Amount       int64           `json:"amount"`
	BalanceAfter int64           `json:"balance_after"`
	ActorID      *uuid.UUID      `json:"actor_id,omitempty"`
	RedemptionID *uuid.UUID      `json:"redemption_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// GrantParams is the input for ExecuteGrant.
type GrantParams struct {
	UserID    uuid.UUID
	Amount    int64
	GrantedBy uuid.UUID
}

// RedeemRequestParams is the input for ExecuteRedeemRequest.
type RedeemRequestParams struct {
	UserID      uuid.UUID
	Amount      int64
	Method      string
	Destination string
}

// CommandResult is returned by the ledger engine commands that move money.
type CommandResult struct {
	Entry      *LedgerEntry
	User       *User
	Redemption *Redemption
}
