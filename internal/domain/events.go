package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Aggregate and event type constants for the outbox.
const (
	AggregateWallet       = "wallet"
	AggregateUser         = "user"
	AggregateTournament   = "tournament"
	AggregateNotification = "notification"

	EventLedgerEntryPosted  = "ledger_entry_posted"
	EventUserRegistered     = "user_registered"
	EventRedemptionResolved = "redemption_resolved"
	EventNotificationPosted = "notification_posted"
)

// OutboxDraft is an event staged in the event_outbox table, written in the
// same transaction as the state change it describes.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewLedgerEntryPostedEvent creates the standard wallet event for a ledger entry.
func NewLedgerEntryPostedEvent(entry *LedgerEntry) OutboxDraft {
	payload, _ := json.Marshal(entry)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateWallet,
		AggregateID:   entry.UserID.String(),
		EventType:     EventLedgerEntryPosted,
		PartitionKey:  entry.UserID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewUserRegisteredEvent creates a user lifecycle event.
func NewUserRegisteredEvent(userID uuid.UUID, username string) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{
		"user_id":  userID.String(),
		"username": username,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateUser,
		AggregateID:   userID.String(),
		EventType:     EventUserRegistered,
		PartitionKey:  userID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewRedemptionResolvedEvent records an approve/reject decision on a redemption.
func NewRedemptionResolvedEvent(r *Redemption, decidedBy uuid.UUID) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"redemption_id": r.ID.String(),
		"user_id":       r.UserID.String(),
		"amount":        r.Amount,
		"status":        r.Status,
		"decided_by":    decidedBy.String(),
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateWallet,
		AggregateID:   r.UserID.String(),
		EventType:     EventRedemptionResolved,
		PartitionKey:  r.UserID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewNotificationPostedEvent lets the outbox consumer fan out broadcasts.
func NewNotificationPostedEvent(n *Notification) OutboxDraft {
	payload, _ := json.Marshal(n)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateNotification,
		AggregateID:   n.ID.String(),
		EventType:     EventNotificationPosted,
		PartitionKey:  n.ID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
