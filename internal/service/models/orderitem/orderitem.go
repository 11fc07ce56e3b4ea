package orderitem

// OrderItem is one menu item's quantity and snapshotted price within an
// order. PriceAtOrder is captured from the live menu price at checkout and
// never changes afterwards, insulating the order's historical total from
// later menu price edits.
type OrderItem struct {
	ID           int64 `json:"id"`
	OrderID      int64 `json:"orderId"`
	MenuItemID   int64 `json:"menuItemId"`
	Quantity     int   `json:"quantity"`
	PriceAtOrder int64 `json:"priceAtOrder"`
}
