package uow

import (
	"context"

	"github.com/gebeta/delivery/internal/dal/interfaces/icartrepo"
	"github.com/gebeta/delivery/internal/dal/interfaces/iorderitemrepo"
	"github.com/gebeta/delivery/internal/dal/interfaces/iorderrepo"
	"github.com/gebeta/delivery/internal/dal/postgres"
	cartrepo "github.com/gebeta/delivery/internal/dal/repositories/cartline/postgres"
	orderrepo "github.com/gebeta/delivery/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/gebeta/delivery/internal/dal/repositories/orderitem/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unitOfWork bundles the repositories the checkout path writes through.
// Before Begin the repositories run against the pool; after Begin they are
// rebound to the transaction, so every read and write between Begin and
// Commit shares one atomic unit.
type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	cartRepo      icartrepo.ICartRepository
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
}

// NewUnitOfWork creates a unit of work over the given Postgres client.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	pool := client.Pool()

	return &unitOfWork{
		pool:          pool,
		cartRepo:      cartrepo.NewPostgresCartRepository(pool),
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(pool),
	}
}

func (u *unitOfWork) CartRepository() icartrepo.ICartRepository {
	return u.cartRepo
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

// Begin starts a transaction and rebinds the repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	u.tx = tx
	u.cartRepo = cartrepo.NewPostgresCartRepository(tx)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)

	return nil
}

// Commit commits the transaction, if one was begun.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

// Rollback rolls the transaction back. Safe to defer after Begin; it is a
// no-op once Commit has succeeded.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
