package ordersvc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gebeta/delivery/internal/dal/interfaces/icartrepo"
	"github.com/gebeta/delivery/internal/dal/interfaces/iorderitemrepo"
	"github.com/gebeta/delivery/internal/dal/interfaces/iorderrepo"
	"github.com/gebeta/delivery/internal/dal/postgres"
	catalogrepo "github.com/gebeta/delivery/internal/dal/repositories/catalog/postgres"
	"github.com/gebeta/delivery/internal/dal/uow"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/gebeta/delivery/internal/service/models/order"
	"github.com/gebeta/delivery/internal/service/models/restaurant"
	"go.opentelemetry.io/otel"
)

// OrderService owns the checkout transaction and the order status workflow.
type OrderService struct {
	pgClient    *postgres.Client
	notifier    notifier
	restaurants restaurantResolver
	newUOW      func() unitOfWork
}

// restaurantResolver resolves the restaurant attached to order reads.
type restaurantResolver interface {
	GetRestaurant(ctx context.Context, id int64) (restaurant.Restaurant, error)
}

// unitOfWork is the transactional boundary the checkout path runs in.
type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	CartRepository() icartrepo.ICartRepository
	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

// notifier is the post-commit side-effect surface. The transactional core
// calls it only after a successful commit and never propagates its errors.
type notifier interface {
	Create(ctx context.Context, userID, message string) (notification.Notification, error)
	SendPush(ctx context.Context, userID, title, body string, data map[string]any) error
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.restaurants = catalogrepo.NewPostgresCatalogRepository(pgClient.Pool())
	}
}

// WithNotifier sets the notification dispatcher for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *OrderService) {
		s.notifier = n
	}
}

// PlaceOrder converts the slice of the user's cart belonging to one
// restaurant into a single durable order. The cart read, the order and item
// inserts and the consumed-line deletes all run in one transaction; cart
// lines for other restaurants are untouched. Totals come from live menu
// prices at this instant and are snapshotted into the order items.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	userID string,
	restaurantID int64,
	deliveryAddress string,
	notes string,
) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.PlaceOrder")
	defer span.End()

	if err := validateDeliveryAddress(deliveryAddress); err != nil {
		return order.Order{}, err
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	lines, err := work.CartRepository().ListForUpdate(ctx, userID)
	if err != nil {
		return order.Order{}, err
	}

	groups := groupByRestaurant(filterByRestaurant(lines, restaurantID))
	if len(groups) == 0 {
		return order.Order{}, apperr.NotFound("cart is empty for this restaurant")
	}

	orders, err := s.writeOrders(ctx, work, userID, deliveryAddress, notes, groups)
	if err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	s.notifyPlaced(ctx, userID, orderIDs(orders))

	return orders[0], nil
}

// PlaceAllOrders is bulk checkout: one order per restaurant represented in
// the user's cart, all inside a single transaction. Either every group's
// order is persisted and the whole cart is cleared, or none of it is.
func (s *OrderService) PlaceAllOrders(
	ctx context.Context,
	userID string,
	deliveryAddress string,
	notes string,
) ([]order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.PlaceAllOrders")
	defer span.End()

	if err := validateDeliveryAddress(deliveryAddress); err != nil {
		return nil, err
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = work.Rollback(ctx) }()

	lines, err := work.CartRepository().ListForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := groupByRestaurant(lines)
	if len(groups) == 0 {
		return nil, apperr.NotFound("cart is empty")
	}

	orders, err := s.writeOrders(ctx, work, userID, deliveryAddress, notes, groups)
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	s.notifyPlaced(ctx, userID, orderIDs(orders))

	return orders, nil
}

// writeOrders inserts one order per group with its items, then deletes
// exactly the consumed cart lines. Must run inside the caller's transaction.
func (s *OrderService) writeOrders(
	ctx context.Context,
	work unitOfWork,
	userID string,
	deliveryAddress string,
	notes string,
	groups []restaurantGroup,
) ([]order.Order, error) {
	now := time.Now()

	orders, err := work.OrderRepository().
		BulkInsert(ctx, buildOrders(userID, deliveryAddress, notes, groups, now))
	if err != nil {
		return nil, err
	}

	items := buildOrderItems(orders, groups)
	inserted, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}

	attachItems(orders, inserted)

	if err := work.CartRepository().DeleteByIDs(ctx, consumedLineIDs(groups)); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOrders retrieves orders matching the filter, each with its items.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter *order.Query,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := work.OrderItemRepository().ListByOrderIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	s.attachRestaurants(ctx, orders)

	return orders, nil
}

// attachRestaurants resolves each distinct restaurant once and hangs it off
// the orders. Resolution failures leave the field empty; the orders
// themselves are already complete.
func (s *OrderService) attachRestaurants(ctx context.Context, orders []order.Order) {
	if s.restaurants == nil {
		return
	}

	cache := make(map[int64]*restaurant.Restaurant)
	for i := range orders {
		id := orders[i].RestaurantID
		if _, ok := cache[id]; !ok {
			res, err := s.restaurants.GetRestaurant(ctx, id)
			if err != nil {
				slog.Warn("Failed to resolve order restaurant", "restaurant_id", id, "error", err)
				cache[id] = nil

				continue
			}
			cache[id] = &res
		}
		orders[i].Restaurant = cache[id]
	}
}

// GetOrder retrieves one order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (order.Order, error) {
	orders, err := s.GetOrders(ctx, &order.Query{Ids: []int64{id}})
	if err != nil {
		return order.Order{}, err
	}
	if len(orders) == 0 {
		return order.Order{}, apperr.NotFound("order %d", id)
	}

	return orders[0], nil
}

// DeleteOrder hard-deletes an order. Admin path, not part of the core
// lifecycle.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	work := s.newUOW()

	return work.OrderRepository().Delete(ctx, id)
}

// notifyPlaced emits the post-commit in-app notification for a successful
// checkout. Failures are logged and swallowed; the orders are already
// durable.
func (s *OrderService) notifyPlaced(ctx context.Context, userID string, ids []int64) {
	if s.notifier == nil {
		return
	}

	if _, err := s.notifier.Create(ctx, userID, placedMessage(ids)); err != nil {
		slog.Error("Failed to create order-placed notification",
			"user_id", userID,
			"order_ids", ids,
			"error", err,
		)
	}
}

func validateDeliveryAddress(address string) error {
	if len(strings.TrimSpace(address)) < order.MinDeliveryAddressLen {
		return apperr.Validation("delivery address must be at least %d characters", order.MinDeliveryAddressLen)
	}

	return nil
}
