package favorite

import (
	"time"

	"github.com/gebeta/delivery/internal/service/models/menuitem"
)

// Favorite marks a menu item a user wants quick access to. One favorite per
// (user, menu item) pair.
type Favorite struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"userId"`
	MenuItemID int64     `json:"menuItemId"`
	CreatedAt  time.Time `json:"createdAt"`

	MenuItem *menuitem.MenuItem `json:"menuItem,omitempty"`
}
