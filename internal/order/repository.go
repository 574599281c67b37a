package order

import (
	"context"

	"agriconnect/internal/model"
)

type Repository interface {
	// CreateWithItems writes the order header and all of its items in a
	// single transaction.
	CreateWithItems(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindAll(ctx context.Context, farmerID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}
