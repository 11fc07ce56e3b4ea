package order

// Query represents filter parameters for querying orders.
type Query struct {
	Ids               []int64  `json:"ids,omitempty"`
	UserIds           []string `json:"userIds,omitempty"`
	RestaurantIds     []int64  `json:"restaurantIds,omitempty"`
	DeliveryPersonIds []string `json:"deliveryPersonIds,omitempty"`
	Statuses          []Status `json:"statuses,omitempty"`
	Limit             int      `json:"limit,omitempty"`
	Offset            int      `json:"offset,omitempty"`
}
