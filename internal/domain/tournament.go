package domain

import (
	"time"

	"github.com/google/uuid"
)

// TournamentStatus is the closed set of tournament lifecycle states.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentLive      TournamentStatus = "live"
	TournamentCompleted TournamentStatus = "completed"
	TournamentCancelled TournamentStatus = "cancelled"
)

// TournamentTransitions maps each status to the statuses it may move to.
// completed and cancelled are terminal.
var TournamentTransitions = map[TournamentStatus][]TournamentStatus{
	TournamentUpcoming: {TournamentLive, TournamentCancelled},
	TournamentLive:     {TournamentCompleted, TournamentCancelled},
}

// CanTransition reports whether from → to is a legal status change.
func CanTransition(from, to TournamentStatus) bool {
	for _, next := range TournamentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s TournamentStatus) Terminal() bool {
	return s == TournamentCompleted || s == TournamentCancelled
}

// ValidTournamentStatus reports whether s is a member of the closed status set.
func ValidTournamentStatus(s TournamentStatus) bool {
	switch s {
	case TournamentUpcoming, TournamentLive, TournamentCompleted, TournamentCancelled:
		return true
	}
	return false
}

// Tournament represents a tournaments row.
type Tournament struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	StartsAt  time.Time        `json:"starts_at"`
	EntryFee  int64            `json:"entry_fee"`
	PrizePool string           `json:"prize_pool"`
	Status    TournamentStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Joinable reports whether the tournament still accepts participants.
func (t *Tournament) Joinable() bool {
	return t.Status == TournamentUpcoming || t.Status == TournamentLive
}

// Participant represents a participants row: a user's entry into a
// tournament, pending until an admin approves it. At most one row exists
// per (user, tournament) pair, enforced by a uniqueness constraint.
type Participant struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	TournamentID uuid.UUID `json:"tournament_id"`
	TeamName     string    `json:"team_name"`
	GameUID      string    `json:"game_uid"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
}
