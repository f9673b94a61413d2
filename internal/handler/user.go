package handler

import (
	"net/http"

	"github.com/clutchplay/platform/internal/auth"
	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/service"
)

// UserHandler serves the authenticated account's own resources.
type UserHandler struct {
	authSvc          *service.AuthService
	participationSvc *service.ParticipationService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authSvc *service.AuthService, participationSvc *service.ParticipationService) *UserHandler {
	return &UserHandler{authSvc: authSvc, participationSvc: participationSvc}
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectID(r.Context())
	user, err := h.authSvc.Me(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, user)
}

// MyParticipations handles GET /users/me/participations.
func (h *UserHandler) MyParticipations(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectID(r.Context())
	list, err := h.participationSvc.ListMine(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if list == nil {
		list = []domain.Participant{}
	}
	RespondJSON(w, http.StatusOK, list)
}
