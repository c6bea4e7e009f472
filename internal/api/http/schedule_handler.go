package http

import (
	"encoding/json"
	"net/http"
	"time"

	"chorebank-backend/internal/service"
)

type ScheduleHandler struct {
	schedules service.ScheduleService
}

func NewScheduleHandler(schedules service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

type createScheduleRequest struct {
	ScheduleType string `json:"schedule_type"`
	StartDate    string `json:"start_date"`
}

// CreateSchedule registers the parent's recurring payment cadence.
func (h *ScheduleHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondBadRequest(w, "start_date must be YYYY-MM-DD")
		return
	}

	schedule, err := h.schedules.CreateSchedule(r.Context(), id.UserID, req.ScheduleType, startDate)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, "schedule created", schedule)
}
