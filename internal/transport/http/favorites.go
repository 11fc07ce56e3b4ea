package httptransport

import (
	"net/http"
)

// addFavoriteRequest represents a favorite-this-item request.
type addFavoriteRequest struct {
	MenuItemID int64 `json:"menuItemId" validate:"gt=0"`
}

func (h *HTTPTransport) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req addFavoriteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.favoriteService.Add(r.Context(), userIDParam(r), req.MenuItemID)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *HTTPTransport) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favoriteService.List(r.Context(), userIDParam(r))
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

func (h *HTTPTransport) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(r.Context(), userIDParam(r), id); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
