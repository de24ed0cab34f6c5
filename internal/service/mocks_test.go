package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/cache"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/store"
)

type mockCache struct {
	m      sync.RWMutex
	states map[string]domain.SessionState
	gets   int
	err    error
}

func newMockCache() *mockCache {
	return &mockCache{states: make(map[string]domain.SessionState)}
}

func (c *mockCache) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	c.m.Lock()
	defer c.m.Unlock()
	c.gets++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}
	st, ok := c.states[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return &st, nil
}

func (c *mockCache) Set(_ context.Context, id string, st *domain.SessionState) error {
	c.m.Lock()
	defer c.m.Unlock()
	if c.err != nil {
		return c.err
	}
	c.states[id] = *st
	return nil
}

func (c *mockCache) Delete(_ context.Context, id string) error {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.states, id)
	return c.err
}

func (c *mockCache) setErr(err error) {
	c.m.Lock()
	defer c.m.Unlock()
	c.err = err
}

func (c *mockCache) state(id string) (domain.SessionState, bool) {
	c.m.RLock()
	defer c.m.RUnlock()
	st, ok := c.states[id]
	return st, ok
}

type mockPublisher struct {
	m      sync.RWMutex
	events []domain.OrderPlacedEvent
	err    error
}

func (p *mockPublisher) PublishOrderPlaced(_ context.Context, e domain.OrderPlacedEvent) error {
	p.m.Lock()
	defer p.m.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *mockPublisher) published() []domain.OrderPlacedEvent {
	p.m.RLock()
	defer p.m.RUnlock()
	return append([]domain.OrderPlacedEvent(nil), p.events...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog() store.Catalog {
	return store.NewMemoryCatalog([]domain.Product{
		{ID: "p1", Name: "Silk Saree", Price: 500, Image: "p1.jpg"},
		{ID: "p2", Name: "Nehru Jacket", Price: 600, Image: "p2.jpg"},
	}, nil, nil)
}

func setupSession(t *testing.T, delay time.Duration) *Session {
	t.Helper()
	return NewSession("s1", testCatalog(), WithPaymentDelay(delay))
}

func validShipping() ShippingDetails {
	return ShippingDetails{
		FirstName:  "Aarav",
		LastName:   "Sharma",
		Email:      "aarav.sharma@example.com",
		Phone:      "+91 9876543210",
		Address:    "123 Lotus Colony, Sector 42",
		City:       "Mumbai",
		State:      "Maharashtra",
		PostalCode: "400001",
	}
}

func validCard() PaymentDetails {
	return PaymentDetails{
		Method:     PaymentCard,
		CardNumber: "4111 1111 1111 1111",
		CardExpiry: "12/26",
		CardCVV:    "123",
		CardName:   "A",
	}
}
