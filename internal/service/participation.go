package service

import (
	"context"
	"log/slog"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ParticipationService handles tournament joins and admin review of entries.
type ParticipationService struct {
	pool         *pgxpool.Pool
	tournaments  repository.TournamentRepository
	participants repository.ParticipantRepository
	logger       *slog.Logger
}

// NewParticipationService creates a new ParticipationService.
func NewParticipationService(
	pool *pgxpool.Pool,
	tournaments repository.TournamentRepository,
	participants repository.ParticipantRepository,
	logger *slog.Logger,
) *ParticipationService {
	return &ParticipationService{
		pool:         pool,
		tournaments:  tournaments,
		participants: participants,
		logger:       logger,
	}
}

// JoinInput holds the join request fields.
type JoinInput struct {
	TeamName string `json:"team_name"`
	GameUID  string `json:"game_uid"`
}

// Join registers the user into a tournament. The insert is conditional on
// the (user, tournament) uniqueness constraint, so concurrent duplicate
// joins produce exactly one row.
func (s *ParticipationService) Join(ctx context.Context, userID, tournamentID uuid.UUID, input JoinInput) (*domain.Participant, error) {
	if input.GameUID == "" {
		return nil, domain.ErrValidation("game_uid is required")
	}

	t, err := s.tournaments.FindByID(ctx, s.pool, tournamentID)
	if err != nil {
		return nil, domain.ErrInternal("find tournament", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound("tournament", tournamentID.String())
	}
	if !t.Joinable() {
		return nil, domain.ErrConflict("tournament is " + string(t.Status) + " and not open for registration")
	}

	p := &domain.Participant{
		ID:           uuid.New(),
		UserID:       userID,
		TournamentID: tournamentID,
		TeamName:     input.TeamName,
		GameUID:      input.GameUID,
	}
	inserted, err := s.participants.Insert(ctx, s.pool, p)
	if err != nil {
		return nil, domain.ErrInternal("insert participant", err)
	}
	if !inserted {
		return nil, domain.ErrConflict("already joined this tournament")
	}

	s.logger.Info("tournament joined", "user_id", userID, "tournament_id", tournamentID)
	return p, nil
}

// ListByTournament returns every entry for a tournament.
func (s *ParticipationService) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Participant, error) {
	t, err := s.tournaments.FindByID(ctx, s.pool, tournamentID)
	if err != nil {
		return nil, domain.ErrInternal("find tournament", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound("tournament", tournamentID.String())
	}
	list, err := s.participants.ListByTournament(ctx, s.pool, tournamentID)
	if err != nil {
		return nil, domain.ErrInternal("list participants", err)
	}
	return list, nil
}

// ListMine returns the user's own entries across tournaments.
func (s *ParticipationService) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.Participant, error) {
	list, err := s.participants.ListByUser(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("list participants", err)
	}
	return list, nil
}

// ListPending returns entries awaiting admin review.
func (s *ParticipationService) ListPending(ctx context.Context, limit int) ([]domain.Participant, error) {
	list, err := s.participants.ListPending(ctx, s.pool, limit)
	if err != nil {
		return nil, domain.ErrInternal("list pending participants", err)
	}
	return list, nil
}

// Approve marks an entry approved. Re-approving is a no-op.
func (s *ParticipationService) Approve(ctx context.Context, participantID uuid.UUID) error {
	if err := s.participants.Approve(ctx, s.pool, participantID); err != nil {
		if domain.ErrorCode(err) != "" {
			return err
		}
		return domain.ErrInternal("approve participant", err)
	}
	return nil
}

// Reject removes an entry. Rejecting an already-removed entry is a no-op.
func (s *ParticipationService) Reject(ctx context.Context, participantID uuid.UUID) error {
	if err := s.participants.Delete(ctx, s.pool, participantID); err != nil {
		return domain.ErrInternal("reject participant", err)
	}
	return nil
}
