package httptransport

import (
	"net/http"

	"github.com/gebeta/delivery/internal/service/models/rating"
)

// rateRequest represents a star rating with optional feedback.
type rateRequest struct {
	ReviewerID string `json:"reviewerId" validate:"required"`
	StarRating int    `json:"starRating" validate:"gte=1,lte=5"`
	Feedback   string `json:"feedback"   validate:"max=350"`
}

func (h *HTTPTransport) rateRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req rateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.ratingService.RateRestaurant(r.Context(), rating.RestaurantRating{
		ReviewerID:   req.ReviewerID,
		RestaurantID: restaurantID,
		StarRating:   req.StarRating,
		Feedback:     req.Feedback,
	})
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *HTTPTransport) listRestaurantRatings(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	ratings, err := h.ratingService.ListRestaurantRatings(r.Context(), restaurantID)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, ratings)
}

func (h *HTTPTransport) rateMenuItem(w http.ResponseWriter, r *http.Request) {
	menuItemID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req rateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.ratingService.RateMenuItem(r.Context(), rating.MenuRating{
		ReviewerID: req.ReviewerID,
		MenuItemID: menuItemID,
		StarRating: req.StarRating,
		Feedback:   req.Feedback,
	})
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *HTTPTransport) listMenuRatings(w http.ResponseWriter, r *http.Request) {
	menuItemID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	ratings, err := h.ratingService.ListMenuRatings(r.Context(), menuItemID)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, ratings)
}
