package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/internal/model"
	"agriconnect/internal/order"
	"agriconnect/internal/order/dto"
	orderrepo "agriconnect/internal/order/repository"
	productrepo "agriconnect/internal/product/repository"
	"agriconnect/pkg/database/sqlite"
	"agriconnect/pkg/logger"
)

func newTestUseCase(t *testing.T) (order.UseCase, order.Repository, *sqlx.DB) {
	t.Helper()
	db, err := sqlite.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.InitSchema(db))

	orders := orderrepo.NewSQLiteRepository(db)
	products := productrepo.NewSQLiteRepository(db)
	return NewOrderUseCase(orders, products, logger.NewNop()), orders, db
}

func seedMarketplace(t *testing.T, db *sqlx.DB) {
	t.Helper()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.Exec(
		`INSERT INTO users (id, name, email, password, role, created_at, updated_at)
		 VALUES ('f1', 'Farmer One', 'f1@example.com', 'hash', 'farmer', ?, ?),
		        ('f2', 'Farmer Two', 'f2@example.com', 'hash', 'farmer', ?, ?),
		        ('c1', 'Customer', 'c1@example.com', 'hash', 'customer', ?, ?)`,
		now, now, now, now, now, now,
	)
	require.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO products (id, farmer_id, name, category, price, unit, description, created_at, updated_at)
		 VALUES ('p1', 'f1', 'Eggs', 'eggs', 3200, 'tray', '30 eggs', ?, ?),
		        ('p2', 'f1', 'Chicken', 'chicken', 8000, 'bird', 'whole chicken', ?, ?),
		        ('p3', 'f2', 'Manure', 'manure', 1500, 'bag', '25kg bag', ?, ?)`,
		now, now, now, now, now, now,
	)
	require.NoError(t, err)
}

func checkoutInput(items ...dto.CheckoutItem) *dto.CheckoutInput {
	return &dto.CheckoutInput{
		CustomerID:      "c1",
		CustomerName:    "Customer",
		CustomerPhone:   "+250788000002",
		DeliveryAddress: "Kigali, Rwanda",
		Items:           items,
	}
}

func TestCheckoutPartitionsPerFarmer(t *testing.T) {
	uc, _, db := newTestUseCase(t)
	seedMarketplace(t, db)

	orders, err := uc.Checkout(context.Background(), checkoutInput(
		dto.CheckoutItem{ProductID: "p1", Quantity: 2},
		dto.CheckoutItem{ProductID: "p3", Quantity: 4},
		dto.CheckoutItem{ProductID: "p2", Quantity: 1},
	))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Partitions keep first-appearance order: f1 before f2.
	first, second := orders[0], orders[1]
	assert.Equal(t, "f1", first.FarmerID)
	assert.Equal(t, "f2", second.FarmerID)

	// Totals are recomputed from stored prices: 2*3200 + 1*8000 and 4*1500.
	assert.InDelta(t, 14400.0, first.Total, 1e-9)
	assert.InDelta(t, 6000.0, second.Total, 1e-9)
	assert.Len(t, first.Items, 2)
	assert.Len(t, second.Items, 1)

	for _, o := range orders {
		assert.Equal(t, model.OrderPending, o.Status)
		assert.WithinDuration(t, o.CreatedAt.Add(48*time.Hour), o.EstimatedDelivery, time.Second)
	}
}

func TestCheckoutSingleFarmerTotal(t *testing.T) {
	uc, repo, db := newTestUseCase(t)
	seedMarketplace(t, db)

	orders, err := uc.Checkout(context.Background(), checkoutInput(
		dto.CheckoutItem{ProductID: "p1", Quantity: 2},
	))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.InDelta(t, 6400.0, orders[0].Total, 1e-9)

	persisted, err := repo.FindAll(context.Background(), "f1")
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.InDelta(t, 6400.0, persisted[0].Total, 1e-9)
}

func TestCheckoutUnknownProductWritesNothing(t *testing.T) {
	uc, repo, db := newTestUseCase(t)
	seedMarketplace(t, db)

	_, err := uc.Checkout(context.Background(), checkoutInput(
		dto.CheckoutItem{ProductID: "p1", Quantity: 1},
		dto.CheckoutItem{ProductID: "ghost", Quantity: 1},
	))
	assert.ErrorIs(t, err, order.ErrUnknownProduct)

	orders, err := repo.FindAll(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutRejectsBadQuantityAndEmptyCart(t *testing.T) {
	uc, _, db := newTestUseCase(t)
	seedMarketplace(t, db)
	ctx := context.Background()

	_, err := uc.Checkout(ctx, checkoutInput(dto.CheckoutItem{ProductID: "p1", Quantity: 0}))
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)

	_, err = uc.Checkout(ctx, checkoutInput())
	assert.ErrorIs(t, err, order.ErrEmptyCart)
}

func TestConcurrentCheckoutsForSameFarmer(t *testing.T) {
	uc, repo, db := newTestUseCase(t)
	seedMarketplace(t, db)

	var wg sync.WaitGroup
	results := make([]model.Order, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			orders, err := uc.Checkout(context.Background(), checkoutInput(
				dto.CheckoutItem{ProductID: "p1", Quantity: i + 1},
			))
			errs[i] = err
			if err == nil && len(orders) == 1 {
				results[i] = orders[0]
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.NotEqual(t, results[0].ID, results[1].ID)

	persisted, err := repo.FindAll(context.Background(), "f1")
	require.NoError(t, err)
	assert.Len(t, persisted, 2)

	totals := map[float64]bool{}
	for _, o := range persisted {
		totals[o.Total] = true
	}
	assert.True(t, totals[3200])
	assert.True(t, totals[6400])
}

func TestUpdateStatusValidation(t *testing.T) {
	uc, _, db := newTestUseCase(t)
	seedMarketplace(t, db)
	ctx := context.Background()

	orders, err := uc.Checkout(ctx, checkoutInput(dto.CheckoutItem{ProductID: "p1", Quantity: 1}))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.UpdateStatus(ctx, orders[0].ID, "teleported"), order.ErrInvalidStatus)
	assert.NoError(t, uc.UpdateStatus(ctx, orders[0].ID, "confirmed"))
	assert.ErrorIs(t, uc.UpdateStatus(ctx, "missing", "confirmed"), order.ErrNotFound)
}
