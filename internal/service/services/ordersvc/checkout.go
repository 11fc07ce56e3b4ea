package ordersvc

import (
	"fmt"
	"strings"
	"time"

	"github.com/gebeta/delivery/internal/service/models/cartline"
	"github.com/gebeta/delivery/internal/service/models/order"
	"github.com/gebeta/delivery/internal/service/models/orderitem"
)

// restaurantGroup is the slice of a cart belonging to one restaurant.
type restaurantGroup struct {
	RestaurantID int64
	Lines        []cartline.CartLine
}

func filterByRestaurant(lines []cartline.CartLine, restaurantID int64) []cartline.CartLine {
	filtered := make([]cartline.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.MenuItem != nil && l.MenuItem.RestaurantID == restaurantID {
			filtered = append(filtered, l)
		}
	}

	return filtered
}

// groupByRestaurant partitions cart lines by restaurant, preserving the
// order in which restaurants first appear in the cart.
func groupByRestaurant(lines []cartline.CartLine) []restaurantGroup {
	groups := make([]restaurantGroup, 0)
	index := make(map[int64]int)

	for _, l := range lines {
		if l.MenuItem == nil {
			continue
		}

		i, ok := index[l.MenuItem.RestaurantID]
		if !ok {
			i = len(groups)
			index[l.MenuItem.RestaurantID] = i
			groups = append(groups, restaurantGroup{RestaurantID: l.MenuItem.RestaurantID})
		}
		groups[i].Lines = append(groups[i].Lines, l)
	}

	return groups
}

// buildOrders materializes one pending order per group. Totals are computed
// from the live menu prices carried on the locked cart lines.
func buildOrders(
	userID string,
	deliveryAddress string,
	notes string,
	groups []restaurantGroup,
	now time.Time,
) []order.Order {
	orders := make([]order.Order, 0, len(groups))
	for _, g := range groups {
		var total int64
		for _, l := range g.Lines {
			total += l.MenuItem.Price * int64(l.Quantity)
		}

		orders = append(orders, order.Order{
			UserID:          userID,
			RestaurantID:    g.RestaurantID,
			DeliveryAddress: deliveryAddress,
			TotalPrice:      total,
			Status:          order.StatusPending,
			Notes:           notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	return orders
}

// buildOrderItems snapshots each cart line into an order item priced at this
// instant. orders[i] must correspond to groups[i].
func buildOrderItems(orders []order.Order, groups []restaurantGroup) []orderitem.OrderItem {
	items := make([]orderitem.OrderItem, 0)
	for i, g := range groups {
		for _, l := range g.Lines {
			items = append(items, orderitem.OrderItem{
				OrderID:      orders[i].ID,
				MenuItemID:   l.MenuItemID,
				Quantity:     l.Quantity,
				PriceAtOrder: l.MenuItem.Price,
			})
		}
	}

	return items
}

func attachItems(orders []order.Order, items []orderitem.OrderItem) {
	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}
}

func consumedLineIDs(groups []restaurantGroup) []int64 {
	ids := make([]int64, 0)
	for _, g := range groups {
		for _, l := range g.Lines {
			ids = append(ids, l.ID)
		}
	}

	return ids
}

func orderIDs(orders []order.Order) []int64 {
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	return ids
}

// placedMessage renders the in-app notification text for a checkout, with
// singular and plural forms.
func placedMessage(ids []int64) string {
	tags := make([]string, len(ids))
	for i, id := range ids {
		tags[i] = fmt.Sprintf("#%d", id)
	}

	if len(ids) == 1 {
		return fmt.Sprintf("Your order %s has been placed successfully!", tags[0])
	}

	return fmt.Sprintf("Your %d orders (%s) have been placed successfully!", len(ids), strings.Join(tags, ", "))
}
