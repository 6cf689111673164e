package domain

import "errors"

// Domain errors as sentinel values
var (
	ErrEmptyProductID     = errors.New("product id cannot be empty")
	ErrQuantityOutOfRange = errors.New("quantity must be between 1 and 999")
	ErrCartNotFound       = errors.New("cart not found")
)
