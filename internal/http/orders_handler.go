package http

import (
	"context"
	"net/http"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderArchive reads orders kept after their session expired.
type OrderArchive interface {
	ListBySession(ctx context.Context, sessionID string) ([]domain.OrderPlacedEvent, error)
}

type OrdersHandler struct {
	archive OrderArchive
}

// NewOrdersHandler accepts a nil archive; the archive endpoint then answers 503.
func NewOrdersHandler(archive OrderArchive) *OrdersHandler {
	return &OrdersHandler{archive: archive}
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders := sessionFromContext(r.Context()).Orders().Orders()
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := sessionFromContext(r.Context()).Orders().Get(chi.URLParam(r, "order_id"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

// PUT /api/v1/orders/{order_id}/status
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	orderID := chi.URLParam(r, "order_id")
	h.mutate(w, r, orderID, service.UpdateOrderStatus{OrderID: orderID, Status: domain.OrderStatus(req.Status)})
}

// PUT /api/v1/orders/{order_id}/tracking
func (h *OrdersHandler) UpdateTracking(w http.ResponseWriter, r *http.Request) {
	var req domain.TrackingUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	orderID := chi.URLParam(r, "order_id")
	h.mutate(w, r, orderID, service.UpdateTracking{OrderID: orderID, Update: req})
}

// POST /api/v1/orders/{order_id}/cancel
func (h *OrdersHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	h.mutate(w, r, orderID, service.CancelOrder{OrderID: orderID})
}

// mutate applies cmd to an existing order and responds with the result.
func (h *OrdersHandler) mutate(w http.ResponseWriter, r *http.Request, orderID string, cmd service.Command) {
	s := sessionFromContext(r.Context())
	if _, err := s.Orders().Get(orderID); err != nil {
		handleServiceError(w, r, err)
		return
	}
	if err := s.Dispatch(r.Context(), cmd); err != nil {
		handleServiceError(w, r, err)
		return
	}
	o, err := s.Orders().Get(orderID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

// GET /api/v1/orders/archive
func (h *OrdersHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "order archive is not configured")
		return
	}
	orders, err := h.archive.ListBySession(r.Context(), sessionFromContext(r.Context()).ID())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}
