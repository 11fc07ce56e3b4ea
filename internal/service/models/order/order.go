package order

import (
	"time"

	"github.com/gebeta/delivery/internal/service/models/orderitem"
	"github.com/gebeta/delivery/internal/service/models/restaurant"
)

// MinDeliveryAddressLen is the shortest delivery address accepted at
// checkout and on order updates.
const MinDeliveryAddressLen = 5

// Order represents a committed, priced, restaurant-scoped purchase request
// owned by a single user. TotalPrice is in whole ETB and equals the sum of
// priceAtOrder*quantity over the order's items at creation time.
type Order struct {
	ID               int64     `json:"id"`
	UserID           string    `json:"userId"`
	RestaurantID     int64     `json:"restaurantId"`
	DeliveryPersonID *string   `json:"deliveryPersonId,omitempty"`
	DeliveryAddress  string    `json:"deliveryAddress"`
	TotalPrice       int64     `json:"totalPrice"`
	Status           Status    `json:"status"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	OrderItems []orderitem.OrderItem  `json:"orderItems"`
	Restaurant *restaurant.Restaurant `json:"restaurant,omitempty"`
}

// Update carries the mutable order fields for the single-writer
// status-update path. Nil fields are left untouched.
type Update struct {
	Status           *Status `json:"status,omitempty"`
	DeliveryPersonID *string `json:"deliveryPersonId,omitempty"`
	DeliveryAddress  *string `json:"deliveryAddress,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}
