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

// UserAdminHandler handles admin account management.
type UserAdminHandler struct {
	userSvc   *service.UserService
	walletSvc *service.WalletService
}

// NewUserAdminHandler creates a new UserAdminHandler.
func NewUserAdminHandler(userSvc *service.UserService, walletSvc *service.WalletService) *UserAdminHandler {
	return &UserAdminHandler{userSvc: userSvc, walletSvc: walletSvc}
}

// Search handles GET /admin/users?q=username.
func (h *UserAdminHandler) Search(w http.ResponseWriter, r *http.Request) {
	list, err := h.userSvc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if list == nil {
		list = []domain.User{}
	}
	handler.RespondJSON(w, http.StatusOK, list)
}

// Detail handles GET /admin/users/{id}: the account with its ledger history.
func (h *UserAdminHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid user id")
		return
	}
	user, err := h.userSvc.Get(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	history, err := h.walletSvc.History(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if history == nil {
		history = []domain.LedgerEntry{}
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user":   user,
		"ledger": history,
	})
}

// SetBanned handles PATCH /admin/users/{id}/ban.
func (h *UserAdminHandler) SetBanned(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid user id")
		return
	}
	var body struct {
		Banned bool `json:"banned"`
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondValidation(w, "invalid request body")
		return
	}
	if err := h.userSvc.SetBanned(r.Context(), id, body.Banned); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"banned": body.Banned})
}

// Grant handles POST /admin/users/{id}/grant.
func (h *UserAdminHandler) Grant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handler.RespondValidation(w, "invalid user id")
		return
	}
	var body struct {
		Amount int64 `json:"amount"`
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondValidation(w, "invalid request body")
		return
	}
	res, err := h.walletSvc.Grant(r.Context(), domain.GrantParams{
		UserID:    id,
		Amount:    body.Amount,
		GrantedBy: auth.SubjectID(r.Context()),
	})
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"entry":   res.Entry,
		"balance": res.User.Balance,
	})
}
