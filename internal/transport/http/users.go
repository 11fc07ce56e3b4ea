package httptransport

import (
	"net/http"
)

func (h *HTTPTransport) getUser(w http.ResponseWriter, r *http.Request) {
	found, err := h.userService.Get(r.Context(), userIDParam(r))
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, found)
}

// updateLocationRequest represents a delivery location update.
type updateLocationRequest struct {
	Latitude  string `json:"latitude"  validate:"required"`
	Longitude string `json:"longitude" validate:"required"`
	Address   string `json:"address"   validate:"required"`
}

func (h *HTTPTransport) updateLocation(w http.ResponseWriter, r *http.Request) {
	var req updateLocationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.userService.UpdateLocation(
		r.Context(), userIDParam(r), req.Latitude, req.Longitude, req.Address,
	); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// registerPushTokenRequest represents a push token registration.
type registerPushTokenRequest struct {
	PushToken string `json:"pushToken" validate:"required"`
}

func (h *HTTPTransport) registerPushToken(w http.ResponseWriter, r *http.Request) {
	var req registerPushTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.userService.RegisterPushToken(r.Context(), userIDParam(r), req.PushToken); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
