package dto

type CheckoutInput struct {
	CustomerID      string         `json:"customerId" binding:"required"`
	CustomerName    string         `json:"customerName" binding:"required"`
	CustomerPhone   string         `json:"customerPhone" binding:"required"`
	DeliveryAddress string         `json:"deliveryAddress" binding:"required"`
	Notes           string         `json:"notes"`
	Items           []CheckoutItem `json:"items" binding:"required"`
}

type CheckoutItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}
