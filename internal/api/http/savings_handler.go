package http

import (
	"encoding/json"
	"net/http"
	"time"

	"chorebank-backend/internal/service"
	"chorebank-backend/internal/utils"
)

type SavingsHandler struct {
	savings service.SavingsService
}

func NewSavingsHandler(savings service.SavingsService) *SavingsHandler {
	return &SavingsHandler{savings: savings}
}

type createGoalRequest struct {
	Title                string `json:"title"`
	StartDate            string `json:"start_date"`
	TotalSavingCents     int64  `json:"total_saving_cents"`
	Schedule             string `json:"schedule"`
	AmountFrequencyCents int64  `json:"amount_frequency_cents"`
}

func (h *SavingsHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		respondBadRequest(w, "title is required")
		return
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondBadRequest(w, "start_date must be YYYY-MM-DD")
		return
	}

	goal, err := h.savings.CreateGoal(r.Context(), id.UserID, req.Title, startDate, req.TotalSavingCents, req.Schedule, req.AmountFrequencyCents)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "goal created", goal)
}

func (h *SavingsHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	page, pageSize := pageParams(r)

	goals, total, err := h.savings.ListGoals(r.Context(), id.UserID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "goals fetched", utils.Paginate(goals, total, page, pageSize))
}

func (h *SavingsHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	goalID, err := pathInt32(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid goal id")
		return
	}

	goal, err := h.savings.GetGoal(r.Context(), id.UserID, goalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "goal fetched", goal)
}

type contributeRequest struct {
	AmountCents int64 `json:"amount_cents"`
	IsScheduled bool  `json:"is_scheduled"`
}

// Contribute moves money from the wallet into the goal.
func (h *SavingsHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	goalID, err := pathInt32(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid goal id")
		return
	}
	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	result, err := h.savings.Contribute(r.Context(), id.UserID, goalID, req.AmountCents, req.IsScheduled)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "contribution applied", result)
}

// Withdraw releases a completed goal's balance back to the wallet.
func (h *SavingsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	goalID, err := pathInt32(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid goal id")
		return
	}

	result, err := h.savings.Withdraw(r.Context(), id.UserID, goalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "goal withdrawn", result)
}

func (h *SavingsHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	goalID, err := pathInt32(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid goal id")
		return
	}

	if err := h.savings.Delete(r.Context(), id.UserID, goalID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "goal deleted", nil)
}
