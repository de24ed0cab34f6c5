package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/repository"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeArchive struct {
	mu    sync.Mutex
	saved []domain.OrderPlacedEvent
	err   error
}

func (a *fakeArchive) Save(_ context.Context, e domain.OrderPlacedEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.saved = append(a.saved, e)
	return nil
}

func (a *fakeArchive) Saved() []domain.OrderPlacedEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.OrderPlacedEvent(nil), a.saved...)
}

// sliceReader hands out queued messages, then blocks until ctx is done.
type sliceReader struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (r *sliceReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *sliceReader) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func orderMessage(t *testing.T, e domain.OrderPlacedEvent) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(e)
	require.NoError(t, err)
	return kafka.Message{
		Key:     []byte(e.OrderID),
		Value:   payload,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte("order.placed")}},
	}
}

func testEvent() domain.OrderPlacedEvent {
	return domain.OrderPlacedEvent{
		EventID:   uuid.NewString(),
		OrderID:   "ORD100001",
		SessionID: "s1",
		Items:     []domain.OrderItem{{ProductID: "p1", Name: "Saree", Price: 500, Quantity: 1}},
		Subtotal:  500,
		Shipping:  99,
		Total:     599,
		PlacedAt:  time.Now().UTC(),
	}
}

func TestHandleMessage_SavesEvent(t *testing.T) {
	archive := &fakeArchive{}
	c := NewOrderArchiver(archive, &sliceReader{}, testLogger())
	e := testEvent()

	require.NoError(t, c.handleMessage(context.Background(), orderMessage(t, e)))

	saved := archive.Saved()
	require.Len(t, saved, 1)
	assert.Equal(t, e.OrderID, saved[0].OrderID)
	assert.Equal(t, e.EventID, saved[0].EventID)
	assert.Equal(t, 599.0, saved[0].Total)
}

func TestHandleMessage_DuplicateIsNotAnError(t *testing.T) {
	archive := &fakeArchive{err: repository.ErrDuplicateOrder}
	c := NewOrderArchiver(archive, &sliceReader{}, testLogger())

	assert.NoError(t, c.handleMessage(context.Background(), orderMessage(t, testEvent())))
}

func TestHandleMessage_ArchiveError(t *testing.T) {
	boom := errors.New("db down")
	c := NewOrderArchiver(&fakeArchive{err: boom}, &sliceReader{}, testLogger())

	err := c.handleMessage(context.Background(), orderMessage(t, testEvent()))

	assert.ErrorIs(t, err, boom)
}

func TestHandleMessage_BadPayload(t *testing.T) {
	archive := &fakeArchive{}
	c := NewOrderArchiver(archive, &sliceReader{}, testLogger())

	err := c.handleMessage(context.Background(), kafka.Message{Value: []byte("{not json")})

	assert.Error(t, err)
	assert.Empty(t, archive.Saved())
}

func TestHandleMessage_MissingIDs(t *testing.T) {
	c := NewOrderArchiver(&fakeArchive{}, &sliceReader{}, testLogger())
	e := testEvent()
	e.SessionID = ""

	assert.Error(t, c.handleMessage(context.Background(), orderMessage(t, e)))
}

func TestHandleMessage_SkipsOtherEventTypes(t *testing.T) {
	archive := &fakeArchive{}
	c := NewOrderArchiver(archive, &sliceReader{}, testLogger())
	m := orderMessage(t, testEvent())
	m.Headers = []kafka.Header{{Key: "event_type", Value: []byte("order.shipped")}}

	require.NoError(t, c.handleMessage(context.Background(), m))
	assert.Empty(t, archive.Saved())
}

func TestHandleMessage_ReplacesInvalidEventID(t *testing.T) {
	archive := &fakeArchive{}
	c := NewOrderArchiver(archive, &sliceReader{}, testLogger())
	e := testEvent()
	e.EventID = "not-a-uuid"

	require.NoError(t, c.handleMessage(context.Background(), orderMessage(t, e)))

	saved := archive.Saved()
	require.Len(t, saved, 1)
	_, err := uuid.Parse(saved[0].EventID)
	assert.NoError(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	archive := &fakeArchive{}
	e1, e2 := testEvent(), testEvent()
	e2.OrderID = "ORD100002"
	reader := &sliceReader{msgs: []kafka.Message{
		orderMessage(t, e1),
		{Value: []byte("garbage")},
		orderMessage(t, e2),
	}}
	c := NewOrderArchiver(archive, reader, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(archive.Saved()) == 2 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
