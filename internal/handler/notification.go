package handler

import (
	"net/http"

	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/service"
)

// NotificationHandler serves the public broadcast feed.
type NotificationHandler struct {
	notificationSvc *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationSvc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List handles GET /notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.notificationSvc.List(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	if list == nil {
		list = []domain.Notification{}
	}
	RespondJSON(w, http.StatusOK, list)
}
