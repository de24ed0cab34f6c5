package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fjod/storefront/internal/service"
	"github.com/fjod/storefront/internal/store"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// decodeJSON reads an optional JSON body into dst. It reports false, after
// writing a 400, when the body is present but malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return false
	}
	return true
}

// handleServiceError converts store and service errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   vErr.Message,
			Code:    "validation_failed",
			Details: strings.Join(vErr.Fields, ","),
		})
		return
	}

	var (
		httpStatus int
		code       string
	)
	switch {
	case errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrOrderNotFound),
		errors.Is(err, store.ErrAddressNotFound),
		errors.Is(err, service.ErrNotInWishlist):
		httpStatus = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, store.ErrNotAuthenticated):
		httpStatus = http.StatusUnauthorized
		code = "unauthenticated"
	case errors.Is(err, store.ErrInvalidCredentials):
		httpStatus = http.StatusUnauthorized
		code = "invalid_credentials"
	case errors.Is(err, store.ErrUnknownStatus):
		httpStatus = http.StatusBadRequest
		code = "invalid_status"
	case errors.Is(err, service.ErrInvalidCoupon):
		httpStatus = http.StatusBadRequest
		code = "invalid_coupon"
	case errors.Is(err, store.ErrIllegalTransition):
		httpStatus = http.StatusConflict
		code = "illegal_transition"
	case errors.Is(err, service.ErrPaymentInProgress):
		httpStatus = http.StatusConflict
		code = "payment_in_progress"
	case errors.Is(err, service.ErrInvalidStep):
		httpStatus = http.StatusConflict
		code = "invalid_step"
	case errors.Is(err, service.ErrEmptyCart):
		httpStatus = http.StatusConflict
		code = "empty_cart"
	case errors.Is(err, service.ErrPaymentCancelled):
		httpStatus = http.StatusRequestTimeout
		code = "payment_cancelled"
	case errors.Is(err, service.ErrSessionUnavailable):
		httpStatus = http.StatusServiceUnavailable
		code = "session_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		httpStatus = http.StatusGatewayTimeout
		code = "timeout"
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondError(w, httpStatus, code, err.Error())
}
