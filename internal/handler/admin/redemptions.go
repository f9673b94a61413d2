package admin

import (
	"net/http"

	"github.com/clutchplay/platform/internal/auth"
	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/handler"
	"github.com/clutchplay/platform/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RedemptionAdminHandler handles the admin redemption queue.
type RedemptionAdminHandler struct {
	walletSvc *service.WalletService
}

// NewRedemptionAdminHandler creates a new RedemptionAdminHandler.
func NewRedemptionAdminHandler(walletSvc *service.WalletService) *RedemptionAdminHandler {
	return &RedemptionAdminHandler{walletSvc: walletSvc}
}

// List handles GET /admin/redemptions?status=pending.
func (h *RedemptionAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.RedemptionStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.RedemptionStatus(raw)
		switch s {
		case domain.RedemptionPending, domain.RedemptionApproved, domain.RedemptionRejected:
			status = &s
		default:
			handler.RespondValidation(w, "unknown redemption status: "+raw)
			return
		}
	}

	list, err := h.walletSvc.ListAllRedemptions(r.Context(), status)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if list == nil {
		list = []domain.Redemption{}
	}
	handler.RespondJSON(w, http.StatusOK, list)
}

// Approve handles POST /admin/redemptions/{id}/approve.
func (h *RedemptionAdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid redemption id")
		return
	}
	res, err := h.walletSvc.ApproveRedemption(r.Context(), id, auth.SubjectID(r.Context()))
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, res.Redemption)
}

// Reject handles POST /admin/redemptions/{id}/reject.
func (h *RedemptionAdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid redemption id")
		return
	}
	res, err := h.walletSvc.RejectRedemption(r.Context(), id, auth.SubjectID(r.Context()))
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"redemption":       res.Redemption,
		"refunded_balance": res.User.Balance,
	})
}
