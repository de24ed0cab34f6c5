package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/repository"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Archive stores placed orders beyond the life of a session.
type Archive interface {
	Save(ctx context.Context, e domain.OrderPlacedEvent) error
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// OrderArchiver copies order.placed events from Kafka into the archive.
type OrderArchiver struct {
	archive Archive
	reader  MessageReader
	logger  *slog.Logger
}

func NewKafkaReader(topic, groupID string, brokers ...string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
}

func NewOrderArchiver(archive Archive, reader MessageReader, logger *slog.Logger) *OrderArchiver {
	return &OrderArchiver{archive: archive, reader: reader, logger: logger}
}

// Run consumes until ctx is cancelled.
func (c *OrderArchiver) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			c.logger.Error("error reading message", "error", err)
			continue
		}
		if err := c.handleMessage(ctx, m); err != nil {
			c.logger.Error("failed to archive order",
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err)
		}
	}
}

func (c *OrderArchiver) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("error closing kafka reader", "error", err)
	}
}

func (c *OrderArchiver) handleMessage(ctx context.Context, m kafka.Message) error {
	if eventType := header(m, "event_type"); eventType != "" && eventType != "order.placed" {
		c.logger.Debug("skipping event", "event_type", eventType)
		return nil
	}

	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return fmt.Errorf("parse order event: %w", err)
	}
	if event.OrderID == "" || event.SessionID == "" {
		return errors.New("order event without order or session id")
	}
	if _, err := uuid.Parse(event.EventID); err != nil {
		event.EventID = uuid.NewString()
	}

	if err := c.archive.Save(ctx, event); err != nil {
		if errors.Is(err, repository.ErrDuplicateOrder) {
			c.logger.Info("order already archived, skipping", "order_id", event.OrderID)
			return nil
		}
		return err
	}

	c.logger.Info("order archived", "order_id", event.OrderID, "session_id", event.SessionID)
	return nil
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
