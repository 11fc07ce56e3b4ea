package httptransport

import (
	"net/http"

	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/order"
	"github.com/go-chi/chi/v5"
)

// placeOrderRequest represents a single-restaurant checkout request.
type placeOrderRequest struct {
	RestaurantID    int64  `json:"restaurantId"    validate:"gt=0"`
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	Notes           string `json:"notes"`
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	placed, err := h.orderService.PlaceOrder(
		r.Context(), userIDParam(r), req.RestaurantID, req.DeliveryAddress, req.Notes,
	)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, placed)
}

// placeAllOrdersRequest represents a whole-cart checkout request.
type placeAllOrdersRequest struct {
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	Notes           string `json:"notes"`
}

func (h *HTTPTransport) placeAllOrders(w http.ResponseWriter, r *http.Request) {
	var req placeAllOrdersRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	placed, err := h.orderService.PlaceAllOrders(
		r.Context(), userIDParam(r), req.DeliveryAddress, req.Notes,
	)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusCreated, placed)
}

// updateOrderRequest represents a partial order update.
type updateOrderRequest struct {
	Status           *string `json:"status"`
	DeliveryPersonID *string `json:"deliveryPersonId"`
	DeliveryAddress  *string `json:"deliveryAddress"`
	Notes            *string `json:"notes"`
}

func (r *updateOrderRequest) toModel() (order.Update, error) {
	upd := order.Update{
		DeliveryPersonID: r.DeliveryPersonID,
		DeliveryAddress:  r.DeliveryAddress,
		Notes:            r.Notes,
	}

	if r.Status != nil {
		status, err := order.ParseStatus(*r.Status)
		if err != nil {
			return order.Update{}, err
		}
		upd.Status = &status
	}

	return upd, nil
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req updateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	upd, err := req.toModel()
	if err != nil {
		respondError(w, err)

		return
	}

	updated, err := h.orderService.UpdateOrder(r.Context(), id, upd)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	found, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, found)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPTransport) listUserOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, &order.Query{UserIds: []string{userIDParam(r)}})
}

func (h *HTTPTransport) listRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	h.listOrders(w, r, &order.Query{RestaurantIds: []int64{id}})
}

func (h *HTTPTransport) listDeliveryPersonOrders(w http.ResponseWriter, r *http.Request) {
	h.listOrders(w, r, &order.Query{DeliveryPersonIds: []string{chi.URLParam(r, "id")}})
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request, filter *order.Query) {
	statuses, err := statusesFromQuery(r)
	if err != nil {
		respondError(w, err)

		return
	}
	filter.Statuses = statuses

	orders, err := h.orderService.GetOrders(r.Context(), filter)
	if err != nil {
		respondError(w, err)

		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// statusesFromQuery parses the optional ?status= filter, or the ?view=
// shorthand (ongoing, past) when no explicit statuses are given.
func statusesFromQuery(r *http.Request) ([]order.Status, error) {
	raw := r.URL.Query()["status"]
	if len(raw) == 0 {
		switch view := r.URL.Query().Get("view"); view {
		case "":
			return nil, nil
		case "ongoing":
			return order.OngoingStatuses(), nil
		case "past":
			return order.PastStatuses(), nil
		default:
			return nil, apperr.Validation("invalid order view %q", view)
		}
	}

	statuses := make([]order.Status, 0, len(raw))
	for _, s := range raw {
		status, err := order.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
