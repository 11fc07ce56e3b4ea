package category

import "time"

// Category groups menu items across restaurants.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
