package handler

import (
	"net/http"

	"github.com/clutchplay/platform/internal/auth"
	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TournamentHandler serves the public tournament endpoints and player joins.
type TournamentHandler struct {
	tournamentSvc    *service.TournamentService
	participationSvc *service.ParticipationService
}

// NewTournamentHandler creates a new TournamentHandler.
func NewTournamentHandler(tournamentSvc *service.TournamentService, participationSvc *service.ParticipationService) *TournamentHandler {
	return &TournamentHandler{tournamentSvc: tournamentSvc, participationSvc: participationSvc}
}

// List handles GET /tournaments.
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.tournamentSvc.List(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	if list == nil {
		list = []domain.Tournament{}
	}
	RespondJSON(w, http.StatusOK, list)
}

// Get handles GET /tournaments/{id}.
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondValidation(w, "invalid tournament id")
		return
	}
	t, err := h.tournamentSvc.Get(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, t)
}

// Join handles POST /tournaments/{id}/join.
func (h *TournamentHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondValidation(w, "invalid tournament id")
		return
	}

	var input service.JoinInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondValidation(w, "invalid request body")
		return
	}

	userID := auth.SubjectID(r.Context())
	p, err := h.participationSvc.Join(r.Context(), userID, id, input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, p)
}
