package httptransport

import (
	"net/http"
)

// verifyPaymentRequest represents a telebirr receipt verification request.
type verifyPaymentRequest struct {
	Reference string `json:"reference" validate:"required"`
}

func (h *HTTPTransport) verifyTelebirrPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.paymentService.VerifyTelebirr(r.Context(), req.Reference)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, result)
}
