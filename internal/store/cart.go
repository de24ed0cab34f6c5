package store

import (
	"sync"

	"github.com/fjod/storefront/internal/domain"
)

// CartStore holds the line items of one shopper's cart.
// There is at most one line per product id and every quantity is at least 1.
type CartStore struct {
	mu    sync.RWMutex
	lines []domain.CartLine
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddToCart increments the line for p, or appends a new one.
// A quantity below 1 counts as 1.
func (s *CartStore) AddToCart(p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.ID); i >= 0 {
		s.lines[i].Quantity += quantity
		return
	}
	s.lines = append(s.lines, domain.NewCartLine(p, quantity))
}

// RemoveFromCart deletes the line for productID. Missing lines are ignored.
func (s *CartStore) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// UpdateQuantity sets the quantity of an existing line.
// It does nothing and returns false when quantity < 1 or the line is missing.
func (s *CartStore) UpdateQuantity(productID string, quantity int) bool {
	if quantity < 1 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.lines[i].Quantity = quantity
	return true
}

func (s *CartStore) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Lines returns a copy of the current line items.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CartLine{}, s.lines...)
}

func (s *CartStore) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, l := range s.lines {
		total += l.LineTotal()
	}
	return total
}

func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

func (s *CartStore) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

// Restore replaces the cart with lines loaded from a snapshot.
// Lines with a non-positive quantity are dropped and duplicates are merged.
func (s *CartStore) Restore(lines []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i := s.indexOf(l.ProductID); i >= 0 {
			s.lines[i].Quantity += l.Quantity
			continue
		}
		s.lines = append(s.lines, l)
	}
}

// indexOf must be called with mu held
func (s *CartStore) indexOf(productID string) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
