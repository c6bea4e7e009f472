package http

import (
	"net/http"

	"chorebank-backend/internal/service"
	"chorebank-backend/internal/utils"
)

type NotificationHandler struct {
	notifications service.NotificationService
}

func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())
	page, pageSize := pageParams(r)

	notes, total, err := h.notifications.GetNotifications(r.Context(), id.UserID, id.Role, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "notifications fetched", utils.Paginate(notes, total, page, pageSize))
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	noteID, err := pathInt32(r, "id")
	if err != nil {
		respondBadRequest(w, "invalid notification id")
		return
	}

	if err := h.notifications.MarkAsRead(r.Context(), id.UserID, noteID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, "notification marked as read", nil)
}
