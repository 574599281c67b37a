package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agriconnect/internal/model"
	"agriconnect/internal/order"
	"agriconnect/internal/order/dto"
	"agriconnect/internal/product"
	"agriconnect/pkg/logger"
)

// deliveryWindow is the promised delivery offset applied at checkout.
const deliveryWindow = 48 * time.Hour

type orderUseCase struct {
	repo     order.Repository
	products product.Repository
	logger   logger.Logger
}

func NewOrderUseCase(repo order.Repository, products product.Repository, log logger.Logger) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

func (uc *orderUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) ([]model.Order, error) {
	if len(input.Items) == 0 {
		return nil, order.ErrEmptyCart
	}

	// Resolve every product up front so a bad cart fails before anything
	// is written. Line items are priced from the stored product price,
	// never from the client.
	type line struct {
		item     model.OrderItem
		farmerID string
	}
	lines := make([]line, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, order.ErrInvalidQuantity
		}
		p, err := uc.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, order.ErrUnknownProduct
		}
		lines = append(lines, line{
			item: model.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    item.Quantity,
				Price:       p.Price,
			},
			farmerID: p.FarmerID,
		})
	}

	// Partition per farmer, preserving first-appearance order so the
	// response is deterministic.
	farmerIDs := []string{}
	partitions := map[string][]model.OrderItem{}
	for _, l := range lines {
		if _, ok := partitions[l.farmerID]; !ok {
			farmerIDs = append(farmerIDs, l.farmerID)
		}
		partitions[l.farmerID] = append(partitions[l.farmerID], l.item)
	}

	now := time.Now()
	orders := make([]model.Order, 0, len(farmerIDs))
	for _, farmerID := range farmerIDs {
		items := partitions[farmerID]
		total := 0.0
		for _, item := range items {
			total += item.Price * float64(item.Quantity)
		}

		o := model.Order{
			ID:                uuid.New().String(),
			CustomerID:        input.CustomerID,
			CustomerName:      input.CustomerName,
			CustomerPhone:     input.CustomerPhone,
			FarmerID:          farmerID,
			Items:             items,
			Total:             total,
			Status:            model.OrderPending,
			DeliveryAddress:   input.DeliveryAddress,
			EstimatedDelivery: now.Add(deliveryWindow),
			Notes:             input.Notes,
			CreatedAt:         now,
		}

		if err := uc.repo.CreateWithItems(ctx, &o); err != nil {
			return nil, err
		}

		uc.logger.Info("order created",
			zap.String("order_id", o.ID),
			zap.String("farmer_id", farmerID),
			zap.Float64("total", total),
		)
		orders = append(orders, o)
	}

	return orders, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, farmerID string) ([]model.Order, error) {
	return uc.repo.FindAll(ctx, farmerID)
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id string, status string) error {
	s := model.OrderStatus(status)
	if !s.Valid() {
		return order.ErrInvalidStatus
	}
	return uc.repo.UpdateStatus(ctx, id, s)
}
