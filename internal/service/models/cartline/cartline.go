package cartline

import "github.com/gebeta/delivery/internal/service/models/menuitem"

// Quantity bounds for a single cart line. Increments past MaxQuantity are
// clamped silently; decrements past MinQuantity delete the line.
const (
	MinQuantity = 1
	MaxQuantity = 5
)

// CartLine is one (user, menu item) pairing with a quantity, prior to order
// placement. At most one line exists per pair.
type CartLine struct {
	ID         int64  `json:"id"`
	UserID     string `json:"userId"`
	MenuItemID int64  `json:"menuItemId"`
	Quantity   int    `json:"quantity"`

	// MenuItem is resolved together with its restaurant on listing and
	// checkout reads.
	MenuItem *menuitem.MenuItem `json:"menuItem,omitempty"`
}

// ClampQuantity pulls q into the permitted [MinQuantity, MaxQuantity] range.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
