package store

import (
	"sync"

	"github.com/fjod/storefront/internal/domain"
)

// WishlistStore is an insertion-ordered set of products keyed by product id.
type WishlistStore struct {
	mu      sync.RWMutex
	entries []domain.WishlistEntry
}

func NewWishlistStore() *WishlistStore {
	return &WishlistStore{}
}

// AddToWishlist inserts p unless it is already present. It reports whether anything changed.
func (s *WishlistStore) AddToWishlist(p domain.Product) bool {
	return s.AddEntry(domain.NewWishlistEntry(p))
}

// AddEntry inserts an already denormalized entry unless its product is present.
func (s *WishlistStore) AddEntry(e domain.WishlistEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(e.ProductID) >= 0 {
		return false
	}
	s.entries = append(s.entries, e)
	return true
}

func (s *WishlistStore) RemoveFromWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return true
}

func (s *WishlistStore) IsInWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(productID) >= 0
}

func (s *WishlistStore) ClearWishlist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

func (s *WishlistStore) Items() []domain.WishlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.WishlistEntry{}, s.entries...)
}

// Restore replaces the wishlist, dropping duplicate ids.
func (s *WishlistStore) Restore(entries []domain.WishlistEntry) {
	s.ClearWishlist()
	for _, e := range entries {
		s.AddEntry(e)
	}
}

// indexOf must be called with mu held
func (s *WishlistStore) indexOf(productID string) int {
	for i, e := range s.entries {
		if e.ProductID == productID {
			return i
		}
	}
	return -1
}
