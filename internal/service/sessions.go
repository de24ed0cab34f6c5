package service

import (
	"context"
	"errors"
	"log/slog"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/cache"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/store"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// OrderPublisher announces placed orders to the rest of the system.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error
}

const (
	loadTimeout    = 2 * time.Second
	saveTimeout    = time.Second
	publishTimeout = 5 * time.Second

	defaultIdleTimeout = 30 * time.Minute
)

// Sessions owns every live Session. Sessions are restored from the cache
// on first use, saved back after every change and dropped from memory once
// idle for longer than the idle timeout.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	sfg      singleflight.Group // one cache load per session id
	idle     time.Duration

	catalog     store.Catalog
	cache       cache.SessionCache
	publisher   OrderPublisher
	log         *slog.Logger
	sessionOpts []SessionOption
}

type SessionsOption func(*Sessions)

func WithCache(c cache.SessionCache) SessionsOption {
	return func(r *Sessions) { r.cache = c }
}

func WithPublisher(p OrderPublisher) SessionsOption {
	return func(r *Sessions) { r.publisher = p }
}

// WithIdleTimeout sets how long an unused session stays in memory.
func WithIdleTimeout(d time.Duration) SessionsOption {
	return func(r *Sessions) {
		if d > 0 {
			r.idle = d
		}
	}
}

func WithSessionOptions(opts ...SessionOption) SessionsOption {
	return func(r *Sessions) { r.sessionOpts = append(r.sessionOpts, opts...) }
}

func NewSessions(catalog store.Catalog, log *slog.Logger, opts ...SessionsOption) *Sessions {
	r := &Sessions{
		sessions: make(map[string]*Session),
		idle:     defaultIdleTimeout,
		catalog:  catalog,
		log:      log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the session with the given id, restoring it from the cache
// or creating an empty one. A cache failure other than a miss is returned
// as ErrSessionUnavailable and nothing is kept, so the next call retries.
func (r *Sessions) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		s.touch(time.Now())
		return s, nil
	}

	v, err, _ := r.sfg.Do(id, func() (interface{}, error) {
		r.mu.RLock()
		s, ok := r.sessions[id]
		r.mu.RUnlock()
		if ok {
			return s, nil
		}

		state, err := r.load(ctx, id)
		if err != nil {
			return nil, err
		}
		s = r.newSession(id)
		if state != nil {
			s.Restore(*state)
		}
		s.touch(time.Now())

		r.mu.Lock()
		r.sessions[id] = s
		r.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	s = v.(*Session)
	s.touch(time.Now())
	return s, nil
}

func (r *Sessions) newSession(id string) *Session {
	s := NewSession(id, r.catalog, r.sessionOpts...)
	s.onChange = r.save
	s.onOrderPlaced = r.publish
	return s
}

// load runs detached from ctx, which belongs to whichever request won the
// singleflight race.
func (r *Sessions) load(ctx context.Context, id string) (*domain.SessionState, error) {
	if r.cache == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
	defer cancel()

	state, err := r.cache.Get(ctx, id)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		r.log.WarnContext(ctx, "session cache get failed", "session_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}
	return state, nil
}

// save stores the session snapshot. Failures are logged and never reach the shopper.
func (r *Sessions) save(ctx context.Context, s *Session) {
	if r.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	state := s.Snapshot()
	if err := r.cache.Set(ctx, s.ID(), &state); err != nil {
		r.log.WarnContext(ctx, "session cache set failed", "session_id", s.ID(), "error", err)
	}
}

func (r *Sessions) publish(ctx context.Context, s *Session, o domain.Order) {
	r.log.InfoContext(ctx, "order placed",
		"session_id", s.ID(), "order_id", o.ID, "total", o.Total, "payment_method", o.PaymentMethod)

	if r.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := r.publisher.PublishOrderPlaced(ctx, NewOrderPlacedEvent(s.ID(), o)); err != nil {
		r.log.ErrorContext(ctx, "publish order placed failed", "order_id", o.ID, "error", err)
	}
}

// Forget drops a session from memory and from the cache.
func (r *Sessions) Forget(ctx context.Context, id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.Checkout().Abort()
	}
	if r.cache != nil {
		if err := r.cache.Delete(ctx, id); err != nil {
			r.log.WarnContext(ctx, "session cache delete failed", "session_id", id, "error", err)
		}
	}
}

// Cleanup drops sessions idle for longer than the idle timeout, until ctx
// is done. Their snapshots stay in the cache and are restored on next use.
func (r *Sessions) Cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.evict(time.Now()); n > 0 {
				r.log.DebugContext(ctx, "evicted idle sessions", "count", n, "live", r.Len())
			}
		}
	}
}

// evict skips sessions with a payment in flight.
func (r *Sessions) evict(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastUsed()) > r.idle && !s.checkout.Processing() {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func NewOrderPlacedEvent(sessionID string, o domain.Order) domain.OrderPlacedEvent {
	return domain.OrderPlacedEvent{
		EventID:         uuid.NewString(),
		OrderID:         o.ID,
		SessionID:       sessionID,
		Items:           append([]domain.OrderItem(nil), o.Items...),
		Subtotal:        o.Subtotal,
		Shipping:        o.Shipping,
		Discount:        o.Discount,
		Total:           o.Total,
		PaymentMethod:   o.PaymentMethod,
		ShippingAddress: o.ShippingAddress,
		PlacedAt:        o.CreatedAt,
	}
}
