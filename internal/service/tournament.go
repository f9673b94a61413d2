package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TournamentService handles the tournament lifecycle.
type TournamentService struct {
	pool        *pgxpool.Pool
	tournaments repository.TournamentRepository
	logger      *slog.Logger
}

// NewTournamentService creates a new TournamentService.
func NewTournamentService(pool *pgxpool.Pool, tournaments repository.TournamentRepository, logger *slog.Logger) *TournamentService {
	return &TournamentService{pool: pool, tournaments: tournaments, logger: logger}
}

// List returns all tournaments, newest start first.
func (s *TournamentService) List(ctx context.Context) ([]domain.Tournament, error) {
	list, err := s.tournaments.List(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("list tournaments", err)
	}
	return list, nil
}

// Get returns a single tournament.
func (s *TournamentService) Get(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	t, err := s.tournaments.FindByID(ctx, s.pool, id)
	if err != nil {
		return nil, domain.ErrInternal("find tournament", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound("tournament", id.String())
	}
	return t, nil
}

// CreateTournamentInput holds the tournament creation fields.
type CreateTournamentInput struct {
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	EntryFee  int64     `json:"entry_fee"`
	PrizePool string    `json:"prize_pool"`
}

// Create creates an upcoming tournament.
func (s *TournamentService) Create(ctx context.Context, input CreateTournamentInput) (*domain.Tournament, error) {
	if input.Title == "" {
		return nil, domain.ErrValidation("title is required")
	}
	if input.StartsAt.IsZero() {
		return nil, domain.ErrValidation("starts_at is required")
	}
	if input.EntryFee < 0 {
		return nil, domain.ErrValidation("entry_fee cannot be negative")
	}

	t := &domain.Tournament{
		ID:        uuid.New(),
		Title:     input.Title,
		StartsAt:  input.StartsAt,
		EntryFee:  input.EntryFee,
		PrizePool: input.PrizePool,
		Status:    domain.TournamentUpcoming,
	}
	if err := s.tournaments.Create(ctx, s.pool, t); err != nil {
		return nil, domain.ErrInternal("create tournament", err)
	}
	return t, nil
}

// UpdateTournamentInput holds the updatable tournament fields. Nil means keep.
// Status changes go through Transition, not here.
type UpdateTournamentInput struct {
	Title     *string    `json:"title"`
	StartsAt  *time.Time `json:"starts_at"`
	EntryFee  *int64     `json:"entry_fee"`
	PrizePool *string    `json:"prize_pool"`
}

// Update edits the descriptive fields of a tournament.
func (s *TournamentService) Update(ctx context.Context, id uuid.UUID, input UpdateTournamentInput) (*domain.Tournament, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status.Terminal() {
		return nil, domain.ErrConflict("tournament is " + string(t.Status) + " and cannot be edited")
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.ErrValidation("title cannot be empty")
		}
		t.Title = *input.Title
	}
	if input.StartsAt != nil {
		t.StartsAt = *input.StartsAt
	}
	if input.EntryFee != nil {
		if *input.EntryFee < 0 {
			return nil, domain.ErrValidation("entry_fee cannot be negative")
		}
		t.EntryFee = *input.EntryFee
	}
	if input.PrizePool != nil {
		t.PrizePool = *input.PrizePool
	}

	if err := s.tournaments.Update(ctx, s.pool, t); err != nil {
		return nil, domain.ErrInternal("update tournament", err)
	}
	return t, nil
}

// Transition moves a tournament to a new status. The store-level update is
// conditional on the expected current status, so a concurrent transition
// loses cleanly instead of overwriting.
func (s *TournamentService) Transition(ctx context.Context, id uuid.UUID, to domain.TournamentStatus) (*domain.Tournament, error) {
	if !domain.ValidTournamentStatus(to) {
		return nil, domain.ErrValidation("unknown tournament status: " + string(to))
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(t.Status, to) {
		return nil, domain.ErrInvalidTransition("tournament", string(t.Status), string(to))
	}

	ok, err := s.tournaments.TransitionStatus(ctx, s.pool, id, t.Status, to)
	if err != nil {
		return nil, domain.ErrInternal("transition tournament", err)
	}
	if !ok {
		// Someone else moved it first; report against the fresh status.
		fresh, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidTransition("tournament", string(fresh.Status), string(to))
	}

	t.Status = to
	s.logger.Info("tournament status changed", "tournament_id", id, "status", to)
	return t, nil
}

// Delete removes a tournament. Participant rows cascade; redemptions and
// ledger entries are unrelated and survive.
func (s *TournamentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.tournaments.Delete(ctx, s.pool, id); err != nil {
		return domain.ErrInternal("delete tournament", err)
	}
	return nil
}

// SweepDue flips upcoming tournaments whose start time has passed to live.
// Called by the scheduler.
func (s *TournamentService) SweepDue(ctx context.Context) error {
	n, err := s.tournaments.OpenDue(ctx, s.pool)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("tournaments opened", "count", n)
	}
	return nil
}
