package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/internal/model"
	"agriconnect/internal/order"
	"agriconnect/pkg/database/sqlite"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, *sqlx.DB) {
	t.Helper()
	db, err := sqlite.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.InitSchema(db))
	return NewSQLiteRepository(db), db
}

func seedUserAndProduct(t *testing.T, db *sqlx.DB) {
	t.Helper()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.Exec(
		`INSERT INTO users (id, name, email, password, role, created_at, updated_at)
		 VALUES ('f1', 'Farmer', 'f1@example.com', 'hash', 'farmer', ?, ?),
		        ('c1', 'Customer', 'c1@example.com', 'hash', 'customer', ?, ?)`,
		now, now, now, now,
	)
	require.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO products (id, farmer_id, name, category, price, unit, description, created_at, updated_at)
		 VALUES ('p1', 'f1', 'Eggs', 'eggs', 3200, 'tray', '30 eggs', ?, ?)`,
		now, now,
	)
	require.NoError(t, err)
}

func newOrder(id string) *model.Order {
	now := time.Now()
	return &model.Order{
		ID:            id,
		CustomerID:    "c1",
		CustomerName:  "Customer",
		CustomerPhone: "+250788000002",
		FarmerID:      "f1",
		Items: []model.OrderItem{
			{ProductID: "p1", ProductName: "Eggs", Quantity: 2, Price: 3200},
		},
		Total:             6400,
		Status:            model.OrderPending,
		DeliveryAddress:   "Kigali, Rwanda",
		EstimatedDelivery: now.Add(48 * time.Hour),
		Notes:             "leave at gate",
		CreatedAt:         now,
	}
}

func TestCreateWithItemsAndFindByID(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	seedUserAndProduct(t, db)

	require.NoError(t, repo.CreateWithItems(ctx, newOrder("o1")))

	got, err := repo.FindByID(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.OrderPending, got.Status)
	assert.InDelta(t, 6400.0, got.Total, 1e-9)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p1", got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "leave at gate", got.Notes)
}

func TestCreateWithItemsRollsBackOnBadItem(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	seedUserAndProduct(t, db)

	o := newOrder("o1")
	// Second item violates the quantity check; the failure must roll
	// back the header and the first item too.
	o.Items = append(o.Items, model.OrderItem{ProductID: "p1", ProductName: "Eggs", Quantity: 0, Price: 10})

	require.Error(t, repo.CreateWithItems(ctx, o))

	got, err := repo.FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, got)

	var itemCount int
	require.NoError(t, db.Get(&itemCount, `SELECT count(*) FROM order_items`))
	assert.Zero(t, itemCount)
}

func TestFindAllByFarmer(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	seedUserAndProduct(t, db)

	require.NoError(t, repo.CreateWithItems(ctx, newOrder("o1")))
	require.NoError(t, repo.CreateWithItems(ctx, newOrder("o2")))

	orders, err := repo.FindAll(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Len(t, o.Items, 1)
	}

	none, err := repo.FindAll(ctx, "other-farmer")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateStatus(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	seedUserAndProduct(t, db)

	require.NoError(t, repo.CreateWithItems(ctx, newOrder("o1")))
	require.NoError(t, repo.UpdateStatus(ctx, "o1", model.OrderConfirmed))

	got, err := repo.FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderConfirmed, got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", model.OrderShipped), order.ErrNotFound)
}
