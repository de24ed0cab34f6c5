package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_Get_CreatesOnce(t *testing.T) {
	c := newMockCache()
	reg := NewSessions(testCatalog(), testLogger(), WithCache(c))
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*Session, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := reg.Get(ctx, "s1")
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range results {
		assert.Same(t, results[0], s)
	}
	assert.Equal(t, 1, reg.Len())
}

func TestSessions_Get_RestoresFromCache(t *testing.T) {
	c := newMockCache()
	c.states["s1"] = domain.SessionState{
		SessionID: "s1",
		Cart:      []domain.CartLine{{ProductID: "p1", Price: 500, Quantity: 3}},
	}
	reg := NewSessions(testCatalog(), testLogger(), WithCache(c))

	s, err := reg.Get(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, 3, s.Cart().ItemCount())
}

func TestSessions_Get_CacheErrorKeepsSavedCart(t *testing.T) {
	c := newMockCache()
	c.states["s1"] = domain.SessionState{
		SessionID: "s1",
		Cart:      []domain.CartLine{{ProductID: "p1", Price: 500, Quantity: 3}},
	}
	reg := NewSessions(testCatalog(), testLogger(), WithCache(c))
	ctx := context.Background()

	c.setErr(errors.New("redis down"))
	_, err := reg.Get(ctx, "s1")
	require.ErrorIs(t, err, ErrSessionUnavailable)
	assert.Zero(t, reg.Len())

	c.setErr(nil)
	s, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Cart().ItemCount())

	require.NoError(t, s.Dispatch(ctx, AddToCart{ProductID: "p2"}))
	st, ok := c.state("s1")
	require.True(t, ok)
	assert.Len(t, st.Cart, 2)
}

func TestSessions_Get_LoadOutlivesCancelledRequest(t *testing.T) {
	c := newMockCache()
	c.states["s1"] = domain.SessionState{
		SessionID: "s1",
		Cart:      []domain.CartLine{{ProductID: "p1", Price: 500, Quantity: 3}},
	}
	reg := NewSessions(testCatalog(), testLogger(), WithCache(c))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Cart().ItemCount())
}

func TestSessions_Get_MissStartsEmpty(t *testing.T) {
	reg := NewSessions(testCatalog(), testLogger(), WithCache(newMockCache()))

	s, err := reg.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, s.Cart().IsEmpty())
	assert.Equal(t, 1, reg.Len())
}

func TestSessions_EvictIdle(t *testing.T) {
	c := newMockCache()
	reg := NewSessions(testCatalog(), testLogger(), WithCache(c), WithIdleTimeout(time.Minute))
	ctx := context.Background()

	s, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, s.Dispatch(ctx, AddToCart{ProductID: "p1", Quantity: 2}))
	_, err = reg.Get(ctx, "s2")
	require.NoError(t, err)

	assert.Zero(t, reg.evict(time.Now()))
	assert.Equal(t, 2, reg.Len())

	assert.Equal(t, 2, reg.evict(time.Now().Add(2*time.Minute)))
	assert.Zero(t, reg.Len())

	// the snapshot is still cached
	again, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	assert.NotSame(t, s, again)
	assert.Equal(t, 2, again.Cart().ItemCount())
}

func TestSessions_EvictSkipsPendingPayment(t *testing.T) {
	reg := NewSessions(testCatalog(), testLogger(),
		WithIdleTimeout(time.Minute), WithSessionOptions(WithPaymentDelay(time.Hour)))
	ctx := context.Background()

	s, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	fillCart(t, s)
	toPayment(t, s)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.SubmitPayment(ctx, validCard())
		errCh <- err
	}()
	require.Eventually(t, s.Checkout().Processing, time.Second, time.Millisecond)

	assert.Zero(t, reg.evict(time.Now().Add(time.Hour)))
	assert.Equal(t, 1, reg.Len())

	s.Checkout().Abort()
	assert.ErrorIs(t, <-errCh, ErrPaymentCancelled)
}

func TestSessions_Cleanup_StopsWithContext(t *testing.T) {
	reg := NewSessions(testCatalog(), testLogger(), WithIdleTimeout(time.Nanosecond))
	_, err := reg.Get(context.Background(), "s1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.Cleanup(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}

func TestSessions_DispatchSavesSnapshot(t *testing.T) {
	c := newMockCache()
	reg := NewSessions(testCatalog(), testLogger(), WithCache(c))
	ctx := context.Background()

	s, err := reg.Get(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, s.Dispatch(ctx, AddToCart{ProductID: "p2", Quantity: 2}))

	st, ok := c.state("s1")
	require.True(t, ok)
	require.Len(t, st.Cart, 1)
	assert.Equal(t, 2, st.Cart[0].Quantity)
}

func TestSessions_FailedCommandDoesNotSave(t *testing.T) {
	c := newMockCache()
	reg := NewSessions(testCatalog(), testLogger(), WithCache(c))
	ctx := context.Background()

	s, _ := reg.Get(ctx, "s1")
	err := s.Dispatch(ctx, AddToCart{ProductID: "missing"})
	require.Error(t, err)

	_, ok := c.state("s1")
	assert.False(t, ok)
}

func TestSessions_OrderPlacedIsPublished(t *testing.T) {
	c := newMockCache()
	pub := &mockPublisher{}
	reg := NewSessions(testCatalog(), testLogger(), WithCache(c), WithPublisher(pub), WithSessionOptions(WithPaymentDelay(0)))
	ctx := context.Background()

	s, _ := reg.Get(ctx, "s1")
	fillCart(t, s)
	toPayment(t, s)

	order, err := s.SubmitPayment(ctx, validCard())
	require.NoError(t, err)

	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, order.ID, events[0].OrderID)
	assert.Equal(t, "s1", events[0].SessionID)
	assert.Equal(t, 1600.0, events[0].Total)
	assert.NotEmpty(t, events[0].EventID)

	st, ok := c.state("s1")
	require.True(t, ok)
	assert.Empty(t, st.Cart)
	assert.Len(t, st.Orders, 1)
}

func TestSessions_PublishFailureDoesNotFailCheckout(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker down")}
	reg := NewSessions(testCatalog(), testLogger(), WithPublisher(pub), WithSessionOptions(WithPaymentDelay(0)))
	ctx := context.Background()

	s, _ := reg.Get(ctx, "s1")
	fillCart(t, s)
	toPayment(t, s)

	_, err := s.SubmitPayment(ctx, PaymentDetails{Method: PaymentCOD})
	assert.NoError(t, err)
	assert.Len(t, s.Orders().Orders(), 1)
}

func TestSessions_Forget(t *testing.T) {
	c := newMockCache()
	reg := NewSessions(testCatalog(), testLogger(), WithCache(c))
	ctx := context.Background()
	s, _ := reg.Get(ctx, "s1")
	require.NoError(t, s.Dispatch(ctx, ClearCart{}))

	reg.Forget(ctx, "s1")

	assert.Zero(t, reg.Len())
	_, ok := c.state("s1")
	assert.False(t, ok)
}
