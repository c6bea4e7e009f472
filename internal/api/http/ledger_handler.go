package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chorebank-backend/internal/service"
	"chorebank-backend/internal/utils"
)

type LedgerHandler struct {
	ledger service.LedgerService
}

func NewLedgerHandler(ledger service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// ListTransactions returns the kid's transaction history, newest first.
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	page, pageSize := pageParams(r)

	txs, total, err := h.ledger.GetTransactions(r.Context(), id.UserID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "transactions fetched", utils.Paginate(txs, total, page, pageSize))
}

func (h *LedgerHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	txID, err := pathInt32(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid transaction id")
		return
	}

	tx, err := h.ledger.GetTransaction(r.Context(), id.UserID, txID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "transaction fetched", tx)
}

func pathInt32(r *http.Request, key string) (int32, error) {
	v, err := strconv.ParseInt(mux.Vars(r)[key], 10, 32)
	return int32(v), err
}

func pageParams(r *http.Request) (int32, int32) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(q.Get("limit"), 10, 32)
	return utils.NormalizePageParams(int32(page), int32(pageSize))
}
