package http

import (
	"net/http"

	"chorebank-backend/internal/service"
)

// WalletHandler serves the kid-facing wallet endpoints.
type WalletHandler struct {
	wallets service.WalletService
}

func NewWalletHandler(wallets service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// GetWallet returns the calling kid's wallet, creating nothing.
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	wallet, err := h.wallets.Fetch(r.Context(), id.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "wallet fetched", wallet)
}

// Withdraw cashes out the kid's entire main balance.
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	wallet, err := h.wallets.Withdraw(r.Context(), id.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "withdrawal complete", wallet)
}
