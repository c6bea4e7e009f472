package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"chorebank-backend/internal/domain"
	"chorebank-backend/internal/logger"
	"chorebank-backend/internal/security"
)

// envelope is the uniform JSON shape for every API response.
type envelope struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Status: status, Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		writeJSON(w, status, envelope{Status: status, Success: false, Message: "internal server error"})
		return
	}
	writeJSON(w, status, envelope{Status: status, Success: false, Message: err.Error()})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{Status: http.StatusBadRequest, Success: false, Message: message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrScheduleNotFound),
		errors.Is(err, domain.ErrKidNotFound),
		errors.Is(err, domain.ErrLedgerNotFound),
		errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidSchedule),
		errors.Is(err, domain.ErrPastStartDate),
		errors.Is(err, domain.ErrPaymentExceedsGoal),
		errors.Is(err, domain.ErrGoalAlreadyCompleted),
		errors.Is(err, domain.ErrForbiddenIncompleteGoal),
		errors.Is(err, domain.ErrGoalAlreadyWithdrawn),
		errors.Is(err, domain.ErrNothingToSettle),
		errors.Is(err, domain.ErrNothingDue):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPaymentRejected):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrProcessorBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrPaymentFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
