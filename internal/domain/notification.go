package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only broadcast message. Never edited or deleted.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	Message   string     `json:"message"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
