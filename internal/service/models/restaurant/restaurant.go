package restaurant

import (
	"encoding/json"
	"time"
)

// Restaurant represents a restaurant on the marketplace.
type Restaurant struct {
	ID           int64           `json:"id"`
	OwnerID      string          `json:"ownerId"`
	Name         string          `json:"name"`
	Image        string          `json:"image,omitempty"`
	Description  string          `json:"description,omitempty"`
	Location     string          `json:"location"`
	Latitude     string          `json:"latitude,omitempty"`
	Longitude    string          `json:"longitude,omitempty"`
	OpeningHours json.RawMessage `json:"openingHours,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Update is a partial restaurant update; nil fields are left untouched.
type Update struct {
	Name         *string         `json:"name,omitempty"`
	Image        *string         `json:"image,omitempty"`
	Description  *string         `json:"description,omitempty"`
	Location     *string         `json:"location,omitempty"`
	Latitude     *string         `json:"latitude,omitempty"`
	Longitude    *string         `json:"longitude,omitempty"`
	OpeningHours json.RawMessage `json:"openingHours,omitempty"`
}
