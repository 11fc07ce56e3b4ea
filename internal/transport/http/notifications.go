package httptransport

import (
	"net/http"
)

// createNotificationRequest represents a manual in-app notification.
type createNotificationRequest struct {
	Message string `json:"message" validate:"required"`
}

func (h *HTTPTransport) createNotification(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.notificationService.Create(r.Context(), userIDParam(r), req.Message)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *HTTPTransport) listNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationService.List(r.Context(), userIDParam(r))
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, notifications)
}

func (h *HTTPTransport) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), userIDParam(r), id); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

type unreadCountResponse struct {
	Count int64 `json:"count"`
}

func (h *HTTPTransport) countUnreadNotifications(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.CountUnread(r.Context(), userIDParam(r))
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, unreadCountResponse{Count: count})
}
