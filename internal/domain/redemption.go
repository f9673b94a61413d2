package domain

import (
	"time"

	"github.com/google/uuid"
)

// RedemptionStatus is the closed set of redemption states.
// pending is the only non-terminal state.
type RedemptionStatus string

const (
	RedemptionPending  RedemptionStatus = "pending"
	RedemptionApproved RedemptionStatus = "approved"
	RedemptionRejected RedemptionStatus = "rejected"
)

// Terminal reports whether the status permits no further transitions.
func (s RedemptionStatus) Terminal() bool {
	return s == RedemptionApproved || s == RedemptionRejected
}

// Redemption represents a redemptions row: a request to withdraw funds.
// The amount is held (debited) from the user's balance at request time;
// approval moves no further money, rejection refunds the hold.
type Redemption struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Amount      int64            `json:"amount"`
	Method      string           `json:"method"`
	Destination string           `json:"destination"`
	Status      RedemptionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	ResolvedAt  *time.Time       `json:"resolved_at,omitempty"`
}
