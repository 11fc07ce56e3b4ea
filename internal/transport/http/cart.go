package httptransport

import (
	"net/http"
)

// addToCartRequest represents an add-to-cart request.
type addToCartRequest struct {
	MenuItemID int64 `json:"menuItemId" validate:"gt=0"`
	Quantity   int   `json:"quantity"   validate:"gt=0"`
}

func (h *HTTPTransport) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	line, err := h.cartService.Add(r.Context(), userIDParam(r), req.MenuItemID, req.Quantity)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, line)
}

func (h *HTTPTransport) listCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.cartService.List(r.Context(), userIDParam(r))
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, lines)
}

// setCartQuantityRequest represents a set-quantity request.
type setCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

func (h *HTTPTransport) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req setCartQuantityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	line, err := h.cartService.SetQuantity(r.Context(), userIDParam(r), id, req.Quantity)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, line)
}

func (h *HTTPTransport) incrementCartLine(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	line, err := h.cartService.Increment(r.Context(), userIDParam(r), id)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, line)
}

func (h *HTTPTransport) decrementCartLine(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	line, err := h.cartService.Decrement(r.Context(), userIDParam(r), id)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, line)
}

func (h *HTTPTransport) removeCartLine(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.cartService.Remove(r.Context(), userIDParam(r), id); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPTransport) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.Clear(r.Context(), userIDParam(r)); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
