package admin

import (
	"net/http"

	"github.com/clutchplay/platform/internal/handler"
	"github.com/clutchplay/platform/internal/service"
)

// ReportsHandler serves the admin dashboard.
type ReportsHandler struct {
	reportsSvc *service.ReportsService
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(reportsSvc *service.ReportsService) *ReportsHandler {
	return &ReportsHandler{reportsSvc: reportsSvc}
}

// Dashboard handles GET /admin/reports/dashboard.
func (h *ReportsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportsSvc.Dashboard(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, stats)
}
