package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"agriconnect/internal/model"
	"agriconnect/internal/order"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

type orderRow struct {
	ID                string         `db:"id"`
	CustomerID        string         `db:"customer_id"`
	CustomerName      string         `db:"customer_name"`
	CustomerPhone     string         `db:"customer_phone"`
	FarmerID          string         `db:"farmer_id"`
	Total             float64        `db:"total"`
	Status            string         `db:"status"`
	DeliveryAddress   string         `db:"delivery_address"`
	EstimatedDelivery sql.NullString `db:"estimated_delivery"`
	Notes             sql.NullString `db:"notes"`
	CreatedAt         string         `db:"created_at"`
}

type orderItemRow struct {
	ID          string  `db:"id"`
	OrderID     string  `db:"order_id"`
	ProductID   string  `db:"product_id"`
	ProductName string  `db:"product_name"`
	Quantity    int     `db:"quantity"`
	Price       float64 `db:"price"`
}

func orderToRow(o *model.Order) *orderRow {
	return &orderRow{
		ID:                o.ID,
		CustomerID:        o.CustomerID,
		CustomerName:      o.CustomerName,
		CustomerPhone:     o.CustomerPhone,
		FarmerID:          o.FarmerID,
		Total:             o.Total,
		Status:            string(o.Status),
		DeliveryAddress:   o.DeliveryAddress,
		EstimatedDelivery: sql.NullString{String: o.EstimatedDelivery.UTC().Format(time.RFC3339), Valid: true},
		Notes:             sql.NullString{String: o.Notes, Valid: o.Notes != ""},
		CreatedAt:         o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func rowToOrder(row *orderRow) *model.Order {
	createdAt, _ := time.Parse(time.RFC3339, row.CreatedAt)
	estimated, _ := time.Parse(time.RFC3339, row.EstimatedDelivery.String)
	return &model.Order{
		ID:                row.ID,
		CustomerID:        row.CustomerID,
		CustomerName:      row.CustomerName,
		CustomerPhone:     row.CustomerPhone,
		FarmerID:          row.FarmerID,
		Items:             []model.OrderItem{},
		Total:             row.Total,
		Status:            model.OrderStatus(row.Status),
		DeliveryAddress:   row.DeliveryAddress,
		EstimatedDelivery: estimated,
		Notes:             row.Notes.String,
		CreatedAt:         createdAt,
	}
}

func (r *SQLiteRepository) CreateWithItems(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	headerQuery := `
		INSERT INTO orders (
			id, customer_id, customer_name, customer_phone, farmer_id,
			total, status, delivery_address, estimated_delivery, notes, created_at
		)
		VALUES (
			:id, :customer_id, :customer_name, :customer_phone, :farmer_id,
			:total, :status, :delivery_address, :estimated_delivery, :notes, :created_at
		)
	`
	if _, err := tx.NamedExecContext(ctx, headerQuery, orderToRow(o)); err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price)
		VALUES (:id, :order_id, :product_id, :product_name, :quantity, :price)
	`
	for _, item := range o.Items {
		row := &orderItemRow{
			ID:          uuid.New().String(),
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
		if _, err := tx.NamedExecContext(ctx, itemQuery, row); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var row orderRow
	err := r.DB.GetContext(ctx, &row, `SELECT * FROM orders WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	o := rowToOrder(&row)
	items, err := r.itemsFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	return o, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, farmerID string) ([]model.Order, error) {
	query := `SELECT * FROM orders`
	args := []interface{}{}
	if farmerID != "" {
		query += ` WHERE farmer_id = ?`
		args = append(args, farmerID)
	}
	query += ` ORDER BY created_at DESC`

	var rows []orderRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []model.Order{}, nil
	}

	ids := make([]string, len(rows))
	orders := make([]model.Order, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
		orders[i] = *rowToOrder(&rows[i])
	}

	itemsByOrder, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if items, ok := itemsByOrder[orders[i].ID]; ok {
			orders[i].Items = items
		}
	}
	return orders, nil
}

func (r *SQLiteRepository) itemsFor(ctx context.Context, orderIDs []string) (map[string][]model.OrderItem, error) {
	query, args, err := sqlx.In(`SELECT * FROM order_items WHERE order_id IN (?)`, orderIDs)
	if err != nil {
		return nil, err
	}

	var rows []orderItemRow
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}

	result := make(map[string][]model.OrderItem, len(orderIDs))
	for _, row := range rows {
		result[row.OrderID] = append(result[row.OrderID], model.OrderItem{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Price:       row.Price,
		})
	}
	return result, nil
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return order.ErrNotFound
	}
	return nil
}
