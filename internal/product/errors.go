package product

import "errors"

var (
	ErrNotFound        = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrEmptyUpdate     = errors.New("no valid fields to update")
)
