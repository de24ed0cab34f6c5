package store

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/domain"
)

// IDGenerator returns a candidate order id. OrderStore retries on collision.
type IDGenerator func() string

// RandomOrderID returns "ORD" followed by six random digits.
func RandomOrderID() string {
	return fmt.Sprintf("ORD%d", 100000+rand.IntN(900000))
}

// maxIDAttempts bounds collision retries for a misbehaving generator
const maxIDAttempts = 100

// OrderStore is the append-only order history of one shopper.
type OrderStore struct {
	mu     sync.RWMutex
	orders []domain.Order
	newID  IDGenerator
	now    func() time.Time
}

type OrderStoreOption func(*OrderStore)

func WithIDGenerator(gen IDGenerator) OrderStoreOption {
	return func(s *OrderStore) { s.newID = gen }
}

func WithClock(now func() time.Time) OrderStoreOption {
	return func(s *OrderStore) { s.now = now }
}

func NewOrderStore(opts ...OrderStoreOption) *OrderStore {
	s := &OrderStore{
		newID: RandomOrderID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddOrder appends a copy of o with status pending. An empty or already used id
// is replaced by a generated one. The stored copy is returned.
func (s *OrderStore) AddOrder(o domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := o.Clone()
	if stored.ID == "" || s.indexOf(stored.ID) >= 0 {
		id, err := s.uniqueID()
		if err != nil {
			return domain.Order{}, err
		}
		stored.ID = id
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	stored.Status = domain.OrderStatusPending

	s.orders = append(s.orders, stored)
	return stored.Clone(), nil
}

// uniqueID must be called with mu held
func (s *OrderStore) uniqueID() (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique order id after %d attempts", maxIDAttempts)
}

// UpdateStatus moves an order to status. An unknown order id is ignored.
func (s *OrderStore) UpdateStatus(orderID string, status domain.OrderStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return nil
	}
	current := s.orders[i].Status
	if !current.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, status)
	}
	s.orders[i].Status = status
	return nil
}

// UpdateTrackingInfo applies the non-nil fields of u. An unknown order id is ignored.
func (s *OrderStore) UpdateTrackingInfo(orderID string, u domain.TrackingUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return
	}
	if u.TrackingNumber != nil && *u.TrackingNumber != "" {
		s.orders[i].TrackingNumber = *u.TrackingNumber
	}
	if u.EstimatedDelivery != nil {
		t := *u.EstimatedDelivery
		s.orders[i].EstimatedDelivery = &t
	}
}

func (s *OrderStore) CancelOrder(orderID string) error {
	return s.UpdateStatus(orderID, domain.OrderStatusCancelled)
}

// Orders returns copies of all orders in the order they were placed.
func (s *OrderStore) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (s *OrderStore) Get(orderID string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return domain.Order{}, ErrOrderNotFound
	}
	return s.orders[i].Clone(), nil
}

// Restore replaces the history with orders loaded from a snapshot, keeping their statuses.
func (s *OrderStore) Restore(orders []domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = nil
	for _, o := range orders {
		if o.ID == "" || s.indexOf(o.ID) >= 0 {
			continue
		}
		s.orders = append(s.orders, o.Clone())
	}
}

// indexOf must be called with mu held
func (s *OrderStore) indexOf(orderID string) int {
	for i, o := range s.orders {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}
