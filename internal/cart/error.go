package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrLineNotFound    = errors.New("cart line not found")
)
