package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/gebeta/delivery/internal/dal/interfaces/icartrepo"
	"github.com/gebeta/delivery/internal/dal/interfaces/iorderitemrepo"
	"github.com/gebeta/delivery/internal/dal/interfaces/iorderrepo"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/gebeta/delivery/internal/service/models/cartline"
	"github.com/gebeta/delivery/internal/service/models/menuitem"
	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/gebeta/delivery/internal/service/models/order"
	"github.com/gebeta/delivery/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartRepo struct {
	lines      []cartline.CartLine
	deletedIDs []int64
	listErr    error
}

func (f *fakeCartRepo) Insert(_ context.Context, line cartline.CartLine) (cartline.CartLine, error) {
	f.lines = append(f.lines, line)

	return line, nil
}

func (f *fakeCartRepo) GetByID(_ context.Context, userID string, id int64) (cartline.CartLine, error) {
	for _, l := range f.lines {
		if l.ID == id && l.UserID == userID {
			return l, nil
		}
	}

	return cartline.CartLine{}, apperr.NotFound("cart item %d", id)
}

func (f *fakeCartRepo) GetByMenuItem(_ context.Context, userID string, menuItemID int64) (cartline.CartLine, error) {
	for _, l := range f.lines {
		if l.UserID == userID && l.MenuItemID == menuItemID {
			return l, nil
		}
	}

	return cartline.CartLine{}, apperr.NotFound("cart item for menu item %d", menuItemID)
}

func (f *fakeCartRepo) List(_ context.Context, userID string) ([]cartline.CartLine, error) {
	return f.forUser(userID), nil
}

func (f *fakeCartRepo) ListForUpdate(_ context.Context, userID string) ([]cartline.CartLine, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	return f.forUser(userID), nil
}

func (f *fakeCartRepo) forUser(userID string) []cartline.CartLine {
	out := make([]cartline.CartLine, 0)
	for _, l := range f.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}

	return out
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	for i := range f.lines {
		if f.lines[i].ID == id {
			f.lines[i].Quantity = quantity

			return nil
		}
	}

	return apperr.NotFound("cart item %d", id)
}

func (f *fakeCartRepo) Delete(_ context.Context, id int64) error {
	return f.DeleteByIDs(context.Background(), []int64{id})
}

func (f *fakeCartRepo) DeleteByIDs(_ context.Context, ids []int64) error {
	f.deletedIDs = append(f.deletedIDs, ids...)
	kept := f.lines[:0]
	for _, l := range f.lines {
		deleted := false
		for _, id := range ids {
			if l.ID == id {
				deleted = true
			}
		}
		if !deleted {
			kept = append(kept, l)
		}
	}
	f.lines = kept

	return nil
}

func (f *fakeCartRepo) DeleteForUser(_ context.Context, userID string) error {
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	f.lines = kept

	return nil
}

var _ icartrepo.ICartRepository = (*fakeCartRepo)(nil)

type fakeOrderRepo struct {
	orders    []order.Order
	nextID    int64
	insertErr error
	updateErr error
}

func (f *fakeOrderRepo) BulkInsert(_ context.Context, orders []order.Order) ([]order.Order, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}

	inserted := make([]order.Order, len(orders))
	for i, o := range orders {
		f.nextID++
		o.ID = f.nextID
		f.orders = append(f.orders, o)
		inserted[i] = o
	}

	return inserted, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (order.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}

	return order.Order{}, apperr.NotFound("order %d", id)
}

func (f *fakeOrderRepo) Query(_ context.Context, filter *order.Query) ([]order.Order, error) {
	out := make([]order.Order, 0)
	for _, o := range f.orders {
		if len(filter.Ids) > 0 {
			match := false
			for _, id := range filter.Ids {
				if o.ID == id {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		if len(filter.UserIds) > 0 && (len(filter.UserIds) != 1 || filter.UserIds[0] != o.UserID) {
			continue
		}
		out = append(out, o)
	}

	return out, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, id int64, upd order.Update) (order.Order, error) {
	if f.updateErr != nil {
		return order.Order{}, f.updateErr
	}

	for i := range f.orders {
		if f.orders[i].ID != id {
			continue
		}
		if upd.Status != nil {
			f.orders[i].Status = *upd.Status
		}
		if upd.DeliveryPersonID != nil {
			f.orders[i].DeliveryPersonID = upd.DeliveryPersonID
		}
		if upd.DeliveryAddress != nil {
			f.orders[i].DeliveryAddress = *upd.DeliveryAddress
		}
		if upd.Notes != nil {
			f.orders[i].Notes = *upd.Notes
		}

		return f.orders[i], nil
	}

	return order.Order{}, apperr.NotFound("order %d", id)
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)

			return nil
		}
	}

	return apperr.NotFound("order %d", id)
}

var _ iorderrepo.IOrderRepository = (*fakeOrderRepo)(nil)

type fakeOrderItemRepo struct {
	items     []orderitem.OrderItem
	nextID    int64
	insertErr error
}

func (f *fakeOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}

	inserted := make([]orderitem.OrderItem, len(items))
	for i, item := range items {
		f.nextID++
		item.ID = f.nextID
		f.items = append(f.items, item)
		inserted[i] = item
	}

	return inserted, nil
}

func (f *fakeOrderItemRepo) ListByOrderIDs(_ context.Context, orderIDs []int64) ([]orderitem.OrderItem, error) {
	out := make([]orderitem.OrderItem, 0)
	for _, item := range f.items {
		for _, id := range orderIDs {
			if item.OrderID == id {
				out = append(out, item)
			}
		}
	}

	return out, nil
}

var _ iorderitemrepo.IOrderItemRepository = (*fakeOrderItemRepo)(nil)

type fakeUOW struct {
	cartRepo      *fakeCartRepo
	orderRepo     *fakeOrderRepo
	orderItemRepo *fakeOrderItemRepo

	began      bool
	committed  bool
	rolledBack bool
	beginErr   error
	commitErr  error
}

func (f *fakeUOW) Begin(context.Context) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.began = true

	return nil
}

func (f *fakeUOW) Commit(context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true

	return nil
}

func (f *fakeUOW) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}

	return nil
}

func (f *fakeUOW) CartRepository() icartrepo.ICartRepository { return f.cartRepo }

func (f *fakeUOW) OrderRepository() iorderrepo.IOrderRepository { return f.orderRepo }

func (f *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return f.orderItemRepo
}

type notifyCall struct {
	userID  string
	message string
}

type pushCall struct {
	userID string
	title  string
	body   string
}

type fakeNotifier struct {
	created   []notifyCall
	pushed    []pushCall
	createErr error
}

func (f *fakeNotifier) Create(_ context.Context, userID, message string) (notification.Notification, error) {
	if f.createErr != nil {
		return notification.Notification{}, f.createErr
	}
	f.created = append(f.created, notifyCall{userID: userID, message: message})

	return notification.Notification{UserID: userID, Message: message}, nil
}

func (f *fakeNotifier) SendPush(_ context.Context, userID, title, body string, _ map[string]any) error {
	f.pushed = append(f.pushed, pushCall{userID: userID, title: title, body: body})

	return nil
}

func newTestService(u *fakeUOW, n *fakeNotifier) *OrderService {
	return MustNewOrderService(
		WithNotifier(n),
		func(s *OrderService) {
			s.newUOW = func() unitOfWork { return u }
		},
	)
}

func item(id, restaurantID, price int64) *menuitem.MenuItem {
	return &menuitem.MenuItem{ID: id, RestaurantID: restaurantID, Price: price}
}

func twoRestaurantCart() *fakeCartRepo {
	return &fakeCartRepo{lines: []cartline.CartLine{
		{ID: 1, UserID: "u1", MenuItemID: 10, Quantity: 2, MenuItem: item(10, 100, 150)},
		{ID: 2, UserID: "u1", MenuItemID: 11, Quantity: 1, MenuItem: item(11, 200, 80)},
		{ID: 3, UserID: "u1", MenuItemID: 12, Quantity: 3, MenuItem: item(12, 100, 40)},
	}}
}

func TestPlaceOrderConsumesOnlyOneRestaurant(t *testing.T) {
	u := &fakeUOW{
		cartRepo:      twoRestaurantCart(),
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
	}
	n := &fakeNotifier{}
	svc := newTestService(u, n)

	placed, err := svc.PlaceOrder(context.Background(), "u1", 100, "4 kilo, Addis Ababa", "ring twice")
	require.NoError(t, err)

	// 2*150 + 3*40, from the two restaurant-100 lines only
	assert.Equal(t, int64(420), placed.TotalPrice)
	assert.Equal(t, order.StatusPending, placed.Status)
	assert.Equal(t, "u1", placed.UserID)
	assert.Equal(t, int64(100), placed.RestaurantID)
	require.Len(t, placed.OrderItems, 2)
	assert.Equal(t, int64(150), placed.OrderItems[0].PriceAtOrder)
	assert.Equal(t, int64(40), placed.OrderItems[1].PriceAtOrder)

	assert.True(t, u.committed)
	assert.False(t, u.rolledBack)

	// only the consumed lines are gone
	assert.ElementsMatch(t, []int64{1, 3}, u.cartRepo.deletedIDs)
	require.Len(t, u.cartRepo.lines, 1)
	assert.Equal(t, int64(2), u.cartRepo.lines[0].ID)

	require.Len(t, n.created, 1)
	assert.Equal(t, "u1", n.created[0].userID)
	assert.Equal(t, "Your order #1 has been placed successfully!", n.created[0].message)
}

func TestPlaceOrderEmptyCartForRestaurant(t *testing.T) {
	u := &fakeUOW{
		cartRepo:      twoRestaurantCart(),
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
	}
	n := &fakeNotifier{}
	svc := newTestService(u, n)

	_, err := svc.PlaceOrder(context.Background(), "u1", 999, "4 kilo, Addis Ababa", "")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	assert.False(t, u.committed)
	assert.True(t, u.rolledBack)
	assert.Empty(t, u.orderRepo.orders)
	assert.Empty(t, u.cartRepo.deletedIDs)
	assert.Empty(t, n.created)
}

func TestPlaceOrderRejectsShortAddress(t *testing.T) {
	u := &fakeUOW{
		cartRepo:      twoRestaurantCart(),
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
	}
	svc := newTestService(u, &fakeNotifier{})

	_, err := svc.PlaceOrder(context.Background(), "u1", 100, "a b", "")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.False(t, u.began)
}

func TestPlaceOrderRollsBackOnItemInsertFailure(t *testing.T) {
	u := &fakeUOW{
		cartRepo:      twoRestaurantCart(),
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{insertErr: errors.New("connection reset")},
	}
	n := &fakeNotifier{}
	svc := newTestService(u, n)

	_, err := svc.PlaceOrder(context.Background(), "u1", 100, "4 kilo, Addis Ababa", "")
	require.Error(t, err)

	assert.False(t, u.committed)
	assert.True(t, u.rolledBack)
	assert.Empty(t, n.created)
}

func TestPlaceOrderSucceedsWhenNotifierFails(t *testing.T) {
	u := &fakeUOW{
		cartRepo:      twoRestaurantCart(),
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
	}
	n := &fakeNotifier{createErr: errors.New("notifications down")}
	svc := newTestService(u, n)

	placed, err := svc.PlaceOrder(context.Background(), "u1", 100, "4 kilo, Addis Ababa", "")
	require.NoError(t, err)
	assert.True(t, u.committed)
	assert.NotZero(t, placed.ID)
}

func TestPlaceAllOrdersOnePerRestaurant(t *testing.T) {
	u := &fakeUOW{
		cartRepo:      twoRestaurantCart(),
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
	}
	n := &fakeNotifier{}
	svc := newTestService(u, n)

	placed, err := svc.PlaceAllOrders(context.Background(), "u1", "4 kilo, Addis Ababa", "")
	require.NoError(t, err)
	require.Len(t, placed, 2)

	// groups keep cart insertion order: restaurant 100 first
	assert.Equal(t, int64(100), placed[0].RestaurantID)
	assert.Equal(t, int64(420), placed[0].TotalPrice)
	assert.Len(t, placed[0].OrderItems, 2)

	assert.Equal(t, int64(200), placed[1].RestaurantID)
	assert.Equal(t, int64(80), placed[1].TotalPrice)
	assert.Len(t, placed[1].OrderItems, 1)

	// the whole cart is consumed
	assert.Empty(t, u.cartRepo.lines)
	assert.True(t, u.committed)

	require.Len(t, n.created, 1)
	assert.Equal(t, "Your 2 orders (#1, #2) have been placed successfully!", n.created[0].message)
}

func TestPlaceAllOrdersEmptyCart(t *testing.T) {
	u := &fakeUOW{
		cartRepo:      &fakeCartRepo{},
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
	}
	svc := newTestService(u, &fakeNotifier{})

	_, err := svc.PlaceAllOrders(context.Background(), "u1", "4 kilo, Addis Ababa", "")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, u.rolledBack)
}

// In production the row locks taken by ListForUpdate (FOR UPDATE OF ci, m)
// serialize two checkouts racing on the same cart; the loser runs after the
// winner's commit and sees the cart already consumed. This drives the same
// interleaving deterministically.
func TestPlaceAllOrdersRacingCheckouts(t *testing.T) {
	u := &fakeUOW{
		cartRepo:      twoRestaurantCart(),
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
	}
	n := &fakeNotifier{}
	svc := newTestService(u, n)

	placed, err := svc.PlaceAllOrders(context.Background(), "u1", "4 kilo, Addis Ababa", "")
	require.NoError(t, err)
	require.Len(t, placed, 2)

	_, err = svc.PlaceAllOrders(context.Background(), "u1", "4 kilo, Addis Ababa", "")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// exactly one checkout produced orders
	assert.Len(t, u.orderRepo.orders, 2)
	require.Len(t, n.created, 1)

	// each cart line was consumed exactly once
	assert.ElementsMatch(t, []int64{1, 2, 3}, u.cartRepo.deletedIDs)
	assert.Empty(t, u.cartRepo.lines)
}

func TestPlaceOrderSnapshotSurvivesPriceChange(t *testing.T) {
	injera := item(10, 100, 150)
	tibs := item(12, 100, 40)
	u := &fakeUOW{
		cartRepo: &fakeCartRepo{lines: []cartline.CartLine{
			{ID: 1, UserID: "u1", MenuItemID: 10, Quantity: 2, MenuItem: injera},
			{ID: 3, UserID: "u1", MenuItemID: 12, Quantity: 3, MenuItem: tibs},
		}},
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
	}
	svc := newTestService(u, &fakeNotifier{})

	placed, err := svc.PlaceOrder(context.Background(), "u1", 100, "4 kilo, Addis Ababa", "")
	require.NoError(t, err)
	require.Equal(t, int64(420), placed.TotalPrice)

	// a later price change must not leak into the placed order
	injera.Price = 999
	tibs.Price = 1

	assert.Equal(t, int64(420), placed.TotalPrice)
	require.Len(t, placed.OrderItems, 2)
	assert.Equal(t, int64(150), placed.OrderItems[0].PriceAtOrder)
	assert.Equal(t, int64(40), placed.OrderItems[1].PriceAtOrder)

	reloaded, err := svc.GetOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(420), reloaded.TotalPrice)
	require.Len(t, reloaded.OrderItems, 2)
	assert.Equal(t, int64(150), reloaded.OrderItems[0].PriceAtOrder)
	assert.Equal(t, int64(40), reloaded.OrderItems[1].PriceAtOrder)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	newUOWWith := func(status order.Status) *fakeUOW {
		return &fakeUOW{
			cartRepo: &fakeCartRepo{},
			orderRepo: &fakeOrderRepo{
				orders: []order.Order{{ID: 7, UserID: "u1", Status: status}},
				nextID: 7,
			},
			orderItemRepo: &fakeOrderItemRepo{},
		}
	}

	statusOf := func(s order.Status) *order.Status { return &s }

	t.Run("forward move is applied", func(t *testing.T) {
		u := newUOWWith(order.StatusPending)
		svc := newTestService(u, &fakeNotifier{})

		updated, err := svc.UpdateOrder(context.Background(), 7, order.Update{Status: statusOf(order.StatusConfirmed)})
		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, updated.Status)
	})

	t.Run("backward move is a conflict", func(t *testing.T) {
		u := newUOWWith(order.StatusPreparing)
		svc := newTestService(u, &fakeNotifier{})

		_, err := svc.UpdateOrder(context.Background(), 7, order.Update{Status: statusOf(order.StatusConfirmed)})
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, order.StatusPreparing, u.orderRepo.orders[0].Status)
	})

	t.Run("leaving a terminal status is a conflict", func(t *testing.T) {
		u := newUOWWith(order.StatusCancelled)
		svc := newTestService(u, &fakeNotifier{})

		_, err := svc.UpdateOrder(context.Background(), 7, order.Update{Status: statusOf(order.StatusDelivered)})
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("crossing into delivered notifies once", func(t *testing.T) {
		u := newUOWWith(order.StatusOutForDelivery)
		n := &fakeNotifier{}
		svc := newTestService(u, n)

		_, err := svc.UpdateOrder(context.Background(), 7, order.Update{Status: statusOf(order.StatusDelivered)})
		require.NoError(t, err)

		require.Len(t, n.pushed, 1)
		assert.Equal(t, "u1", n.pushed[0].userID)
		assert.Contains(t, n.pushed[0].body, "order #7")
		require.Len(t, n.created, 1)
		assert.Equal(t, "Your order #7 has been delivered!", n.created[0].message)
	})

	t.Run("re-delivering is idempotent and silent", func(t *testing.T) {
		u := newUOWWith(order.StatusDelivered)
		n := &fakeNotifier{}
		svc := newTestService(u, n)

		_, err := svc.UpdateOrder(context.Background(), 7, order.Update{Status: statusOf(order.StatusDelivered)})
		require.NoError(t, err)
		assert.Empty(t, n.pushed)
		assert.Empty(t, n.created)
	})

	t.Run("non-status update skips the state machine", func(t *testing.T) {
		u := newUOWWith(order.StatusDelivered)
		n := &fakeNotifier{}
		svc := newTestService(u, n)

		notes := "leave at the gate"
		updated, err := svc.UpdateOrder(context.Background(), 7, order.Update{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, notes, updated.Notes)
		assert.Empty(t, n.pushed)
	})
}

func TestGetOrdersAttachesItems(t *testing.T) {
	u := &fakeUOW{
		cartRepo: &fakeCartRepo{},
		orderRepo: &fakeOrderRepo{
			orders: []order.Order{
				{ID: 1, UserID: "u1"},
				{ID: 2, UserID: "u1"},
				{ID: 3, UserID: "u2"},
			},
			nextID: 3,
		},
		orderItemRepo: &fakeOrderItemRepo{
			items: []orderitem.OrderItem{
				{ID: 1, OrderID: 1, MenuItemID: 10, Quantity: 2, PriceAtOrder: 150},
				{ID: 2, OrderID: 2, MenuItemID: 11, Quantity: 1, PriceAtOrder: 80},
			},
			nextID: 2,
		},
	}
	svc := newTestService(u, &fakeNotifier{})

	orders, err := svc.GetOrders(context.Background(), &order.Query{UserIds: []string{"u1"}})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Len(t, orders[0].OrderItems, 1)
	assert.Equal(t, int64(150), orders[0].OrderItems[0].PriceAtOrder)
	require.Len(t, orders[1].OrderItems, 1)
}
