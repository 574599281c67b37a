package order

import "errors"

var (
	ErrNotFound        = errors.New("order not found")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnknownProduct  = errors.New("unknown product in cart")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
