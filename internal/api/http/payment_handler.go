package http

import (
	"encoding/json"
	"net/http"
	"time"

	"chorebank-backend/internal/service"
)

// PaymentHandler serves chore settlement and the scheduler trigger.
type PaymentHandler struct {
	payments  service.PaymentService
	schedules service.ScheduleService
}

func NewPaymentHandler(payments service.PaymentService, schedules service.ScheduleService) *PaymentHandler {
	return &PaymentHandler{payments: payments, schedules: schedules}
}

type initiatePaymentRequest struct {
	KidID int32 `json:"kid_id"`
}

// InitiatePayment charges the calling parent and settles the kid's
// approved chores on processor confirmation.
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var req initiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.KidID <= 0 {
		respondBadRequest(w, "kid_id is required")
		return
	}

	confirmation, err := h.payments.InitiatePayment(r.Context(), id.UserID, req.KidID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "payment settled", confirmation)
}

// CheckDuePayments runs the due-date sweep on demand. Reached only through
// the scheduler-secret middleware, never a user token.
func (h *PaymentHandler) CheckDuePayments(w http.ResponseWriter, r *http.Request) {
	summary, err := h.schedules.RunDueDateSweep(r.Context(), time.Now().UTC())
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "due date sweep complete", summary)
}
