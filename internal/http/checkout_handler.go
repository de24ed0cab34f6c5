package http

import (
	"net/http"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/service"
)

type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

type CouponRequestDTO struct {
	Code string `json:"code"`
}

type PaymentResponse struct {
	Order    domain.Order          `json:"order"`
	Checkout service.CheckoutState `json:"checkout"`
}

// GET /api/v1/checkout
func (h *CheckoutHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, sessionFromContext(r.Context()).CheckoutState())
}

// POST /api/v1/checkout/advance
// The body is optional; when present it replaces the shipping details.
func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var details *service.ShippingDetails
	if !decodeJSON(w, r, &details) {
		return
	}

	s := sessionFromContext(r.Context())
	if _, err := s.AdvanceCheckout(details); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.CheckoutState())
}

// POST /api/v1/checkout/back
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	if _, err := s.Checkout().Back(); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.CheckoutState())
}

// POST /api/v1/checkout/coupon
func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req CouponRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	s := sessionFromContext(r.Context())
	if _, err := s.Checkout().ApplyCoupon(req.Code); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.CheckoutState())
}

// POST /api/v1/checkout/payment
// Blocks for the simulated processing delay. A client that goes away
// cancels the payment and keeps the cart.
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req service.PaymentDetails
	if !decodeJSON(w, r, &req) {
		return
	}

	s := sessionFromContext(r.Context())
	order, err := s.SubmitPayment(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, PaymentResponse{
		Order:    order,
		Checkout: s.CheckoutState(),
	})
}

// DELETE /api/v1/checkout
func (h *CheckoutHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s := sessionFromContext(r.Context())
	if err := s.Checkout().Reset(); err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s.CheckoutState())
}
