package admin

import (
	"net/http"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/handler"
	"github.com/clutchplay/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TournamentAdminHandler handles admin tournament management.
type TournamentAdminHandler struct {
	tournamentSvc    *service.TournamentService
	participationSvc *service.ParticipationService
}

// NewTournamentAdminHandler creates a new TournamentAdminHandler.
func NewTournamentAdminHandler(tournamentSvc *service.TournamentService, participationSvc *service.ParticipationService) *TournamentAdminHandler {
	return &TournamentAdminHandler{tournamentSvc: tournamentSvc, participationSvc: participationSvc}
}

// Create handles POST /admin/tournaments.
func (h *TournamentAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTournamentInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondValidation(w, "invalid request body")
		return
	}
	t, err := h.tournamentSvc.Create(r.Context(), input)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, t)
}

// Update handles PATCH /admin/tournaments/{id}.
func (h *TournamentAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid tournament id")
		return
	}
	var input service.UpdateTournamentInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.RespondValidation(w, "invalid request body")
		return
	}
	t, err := h.tournamentSvc.Update(r.Context(), id, input)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, t)
}

// Transition handles PATCH /admin/tournaments/{id}/status.
func (h *TournamentAdminHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid tournament id")
		return
	}
	var body struct {
		Status domain.TournamentStatus `json:"status"`
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondValidation(w, "invalid request body")
		return
	}
	t, err := h.tournamentSvc.Transition(r.Context(), id, body.Status)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /admin/tournaments/{id}.
func (h *TournamentAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid tournament id")
		return
	}
	if err := h.tournamentSvc.Delete(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Participants handles GET /admin/tournaments/{id}/participants.
func (h *TournamentAdminHandler) Participants(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid tournament id")
		return
	}
	list, err := h.participationSvc.ListByTournament(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if list == nil {
		list = []domain.Participant{}
	}
	handler.RespondJSON(w, http.StatusOK, list)
}
