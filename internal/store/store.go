package store

import "errors"

// Common errors returned by the stores
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrAddressNotFound    = errors.New("address not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrIllegalTransition  = errors.New("illegal transition of order status")
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrNotAuthenticated   = errors.New("profile is not authenticated")
	ErrInvalidCredentials = errors.New("email and name are required")
)
