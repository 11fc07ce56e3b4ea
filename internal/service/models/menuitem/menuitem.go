package menuitem

import (
	"time"

	"github.com/gebeta/delivery/internal/service/models/restaurant"
)

// MenuItem represents a single dish on a restaurant's menu.
// Price is stored in whole ETB.
type MenuItem struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	CategoryID   int64     `json:"categoryId"`
	Name         string    `json:"name"`
	Image        string    `json:"image,omitempty"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"createdAt"`

	// Restaurant is resolved on reads that need it (cart listing, checkout).
	Restaurant *restaurant.Restaurant `json:"restaurant,omitempty"`
}
