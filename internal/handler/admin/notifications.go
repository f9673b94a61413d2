package admin

import (
	"net/http"

	"github.com/clutchplay/platform/internal/auth"
	"github.com/clutchplay/platform/internal/handler"
	"github.com/clutchplay/platform/internal/service"
)

// NotificationAdminHandler posts platform-wide broadcasts.
type NotificationAdminHandler struct {
	notificationSvc *service.NotificationService
}

// NewNotificationAdminHandler creates a new NotificationAdminHandler.
func NewNotificationAdminHandler(notificationSvc *service.NotificationService) *NotificationAdminHandler {
	return &NotificationAdminHandler{notificationSvc: notificationSvc}
}

// Broadcast handles POST /admin/notifications.
func (h *NotificationAdminHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondValidation(w, "invalid request body")
		return
	}
	n, err := h.notificationSvc.Broadcast(r.Context(), auth.SubjectID(r.Context()), body.Message)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, n)
}
