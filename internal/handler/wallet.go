package handler

import (
	"net/http"

	"github.com/clutchplay/platform/internal/auth"
	"github.com/clutchplay/platform/internal/domain"
	"github.com/clutchplay/platform/internal/guard"
	"github.com/clutchplay/platform/internal/service"
)

// WalletHandler serves the player's balance, ledger history and redemptions.
type WalletHandler struct {
	walletSvc   *service.WalletService
	idempotency *guard.IdempotencyGuard
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc *service.WalletService, idempotency *guard.IdempotencyGuard) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, idempotency: idempotency}
}

// GetBalance handles GET /wallet/balance.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectID(r.Context())
	balance, err := h.walletSvc.Balance(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

// GetHistory handles GET /wallet/history.
func (h *WalletHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectID(r.Context())
	entries, err := h.walletSvc.History(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	RespondJSON(w, http.StatusOK, entries)
}

// redeemRequestBody is the POST /wallet/redemptions payload.
type redeemRequestBody struct {
	Amount      int64  `json:"amount"`
	Method      string `json:"method"`
	Destination string `json:"destination"`
}

// RequestRedemption handles POST /wallet/redemptions.
// An Idempotency-Key header deduplicates double submits.
func (h *WalletHandler) RequestRedemption(w http.ResponseWriter, r *http.Request) {
	var body redeemRequestBody
	if err := DecodeJSON(r, &body); err != nil {
		RespondValidation(w, "invalid request body")
		return
	}

	key := r.Header.Get("Idempotency-Key")
	if result := h.idempotency.Check(r.Context(), key); !result.Allowed {
		RespondError(w, domain.ErrConflict(result.Reason))
		return
	}

	userID := auth.SubjectID(r.Context())
	res, err := h.walletSvc.RequestRedemption(r.Context(), domain.RedeemRequestParams{
		UserID:      userID,
		Amount:      body.Amount,
		Method:      body.Method,
		Destination: body.Destination,
	})
	if err != nil {
		// Let the client retry a failed request under the same key.
		h.idempotency.Remove(key)
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"redemption": res.Redemption,
		"balance":    res.User.Balance,
	})
}

// MyRedemptions handles GET /wallet/redemptions.
func (h *WalletHandler) MyRedemptions(w http.ResponseWriter, r *http.Request) {
	userID := auth.SubjectID(r.Context())
	list, err := h.walletSvc.ListRedemptions(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if list == nil {
		list = []domain.Redemption{}
	}
	RespondJSON(w, http.StatusOK, list)
}
