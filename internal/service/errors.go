package service

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrInvalidStep       = errors.New("operation not allowed at the current checkout step")
	ErrInvalidCoupon     = errors.New("invalid coupon code")
	ErrPaymentInProgress = errors.New("payment is already being processed")
	ErrPaymentCancelled  = errors.New("payment processing was cancelled")
	ErrNotInWishlist     = errors.New("product is not in the wishlist")

	ErrSessionUnavailable = errors.New("session store unavailable")
)

// ValidationError lists the fields that blocked a checkout step.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(prefix string, fields []string) *ValidationError {
	return &ValidationError{
		Fields:  fields,
		Message: prefix + strings.Join(fields, ", "),
	}
}
