package model

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is one per-farmer partition of a checkout. Items live in the
// order_items table.
type Order struct {
	ID                string      `json:"id"`
	CustomerID        string      `json:"customerId"`
	CustomerName      string      `json:"customerName"`
	CustomerPhone     string      `json:"customerPhone"`
	FarmerID          string      `json:"farmerId"`
	Items             []OrderItem `json:"products"`
	Total             float64     `json:"total"`
	Status            OrderStatus `json:"status"`
	DeliveryAddress   string      `json:"deliveryAddress"`
	EstimatedDelivery time.Time   `json:"estimatedDelivery"`
	Notes             string      `json:"notes,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}
