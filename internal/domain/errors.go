package domain

import "errors"

var (
	ErrNotAuthenticated = errors.New("no authenticated app user")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrLineNotFound     = errors.New("cart line not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
)
