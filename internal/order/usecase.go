package order

import (
	"context"

	"agriconnect/internal/model"
	"agriconnect/internal/order/dto"
)

type UseCase interface {
	// Checkout partitions the cart per farmer and creates one order per
	// partition. Totals are recomputed server-side from stored product
	// prices.
	Checkout(ctx context.Context, input *dto.CheckoutInput) ([]model.Order, error)
	ListOrders(ctx context.Context, farmerID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}
