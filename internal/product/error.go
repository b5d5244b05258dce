package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrNameRequired    = errors.New("name cannot be empty")
	ErrNoUpdateFields  = errors.New("no fields to update")
)
