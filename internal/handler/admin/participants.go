package admin

import (
	"net/http"
	"strconv"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/handler"
	"github.com/clutchplay/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ParticipantAdminHandler handles admin review of tournament entries.
type ParticipantAdminHandler struct {
	participationSvc *service.ParticipationService
}

// NewParticipantAdminHandler creates a new ParticipantAdminHandler.
func NewParticipantAdminHandler(participationSvc *service.ParticipationService) *ParticipantAdminHandler {
	return &ParticipantAdminHandler{participationSvc: participationSvc}
}

// ListPending handles GET /admin/participants/pending.
func (h *ParticipantAdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	list, err := h.participationSvc.ListPending(r.Context(), limit)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if list == nil {
		list = []domain.Participant{}
	}
	handler.RespondJSON(w, http.StatusOK, list)
}

// Approve handles POST /admin/participants/{id}/approve.
func (h *ParticipantAdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid participant id")
		return
	}
	if err := h.participationSvc.Approve(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

// Reject handles POST /admin/participants/{id}/reject.
func (h *ParticipantAdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid participant id")
		return
	}
	if err := h.participationSvc.Reject(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}
