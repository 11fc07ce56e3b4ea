package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gebeta/delivery/internal/service/models/menuitem"
	"github.com/gebeta/delivery/internal/service/models/promo"
	"github.com/gebeta/delivery/internal/service/models/restaurant"
)

func (h *HTTPTransport) listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.catalogService.ListRestaurants(r.Context())
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, restaurants)
}

func (h *HTTPTransport) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	found, err := h.catalogService.GetRestaurant(r.Context(), id)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, found)
}

// createRestaurantRequest represents a restaurant registration request.
type createRestaurantRequest struct {
	OwnerID      string          `json:"ownerId"  validate:"required"`
	Name         string          `json:"name"     validate:"required"`
	Image        string          `json:"image"`
	Description  string          `json:"description"`
	Location     string          `json:"location" validate:"required"`
	Latitude     string          `json:"latitude"`
	Longitude    string          `json:"longitude"`
	OpeningHours json.RawMessage `json:"openingHours"`
}

func (h *HTTPTransport) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var req createRestaurantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.catalogService.CreateRestaurant(r.Context(), restaurant.Restaurant{
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		Image:        req.Image,
		Description:  req.Description,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		OpeningHours: req.OpeningHours,
	})
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (h *HTTPTransport) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var upd restaurant.Update
	if !decodeAndValidate(w, r, &upd) {
		return
	}

	updated, err := h.catalogService.UpdateRestaurant(r.Context(), id, upd)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *HTTPTransport) listMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	items, err := h.catalogService.ListMenu(r.Context(), id)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, items)
}

func (h *HTTPTransport) getMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	item, err := h.catalogService.GetMenuItem(r.Context(), id)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, item)
}

// createMenuItemRequest represents a new dish on a restaurant's menu.
type createMenuItemRequest struct {
	CategoryID  int64  `json:"categoryId" validate:"gt=0"`
	Name        string `json:"name"       validate:"required"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Price       int64  `json:"price"      validate:"gte=0"`
}

func (h *HTTPTransport) createMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req createMenuItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.catalogService.CreateMenuItem(r.Context(), menuitem.MenuItem{
		RestaurantID: restaurantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Image:        req.Image,
		Description:  req.Description,
		Price:        req.Price,
		IsAvailable:  true,
	})
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// updatePriceRequest represents a live price change.
type updatePriceRequest struct {
	Price int64 `json:"price" validate:"gte=0"`
}

func (h *HTTPTransport) updateMenuItemPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req updatePriceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.catalogService.UpdateMenuItemPrice(r.Context(), id, req.Price); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// setAvailabilityRequest toggles whether a dish can be ordered.
type setAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

func (h *HTTPTransport) setMenuItemAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req setAvailabilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.catalogService.SetMenuItemAvailability(r.Context(), id, *req.IsAvailable); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPTransport) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, categories)
}

func (h *HTTPTransport) listActivePromos(w http.ResponseWriter, r *http.Request) {
	promos, err := h.catalogService.ListActivePromos(r.Context())
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, promos)
}

// createPromoRequest represents a new homepage promotion.
type createPromoRequest struct {
	Headline   string    `json:"headline" validate:"required"`
	Subheading string    `json:"subheading"`
	CTA        string    `json:"cta"`
	Deadline   time.Time `json:"deadline" validate:"required"`
}

func (h *HTTPTransport) createPromo(w http.ResponseWriter, r *http.Request) {
	var req createPromoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.catalogService.CreatePromo(r.Context(), promo.Promo{
		Headline:   req.Headline,
		Subheading: req.Subheading,
		CTA:        req.CTA,
		Deadline:   req.Deadline,
	})
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, created)
}
