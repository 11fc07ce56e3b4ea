package rating

import "time"

// Star rating bounds shared by restaurant and menu ratings.
const (
	MinStars       = 1
	MaxStars       = 5
	MaxFeedbackLen = 350
)

// RestaurantRating is a user's review of a restaurant.
type RestaurantRating struct {
	ID           int64     `json:"id"`
	ReviewerID   string    `json:"reviewerId"`
	RestaurantID int64     `json:"restaurantId"`
	StarRating   int       `json:"starRating"`
	Feedback     string    `json:"feedback,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MenuRating is a user's review of a single menu item.
type MenuRating struct {
	ID         int64     `json:"id"`
	ReviewerID string    `json:"reviewerId"`
	MenuItemID int64     `json:"menuItemId"`
	StarRating int       `json:"starRating"`
	Feedback   string    `json:"feedback,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
