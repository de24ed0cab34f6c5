package consumer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/publisher"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

func setupKafka(t *testing.T) string {
	if testing.Short() {
		t.Skip("skipping kafka container test in short mode")
	}
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkaGo.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafkaGo.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		t.Logf("topic creation error (may already exist): %v", err)
	}
}

func TestOrderArchiver_EndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokerAddr := setupKafka(t)
	topic := "storefront.orders"
	createTopic(t, brokerAddr, topic)

	pub := publisher.NewKafkaPublisher(publisher.NewKafkaWriter(topic, brokerAddr), publisher.DefaultBreakerSettings, testLogger())
	defer pub.Close()

	e := testEvent()
	require.NoError(t, pub.PublishOrderPlaced(ctx, e))
	// redelivery reaches the archive, which owns deduplication
	require.NoError(t, pub.PublishOrderPlaced(ctx, e))

	archive := &fakeArchive{}
	c := NewOrderArchiver(archive, NewKafkaReader(topic, "storefront-archive-test", brokerAddr), testLogger())
	defer c.Close()
	go c.Run(ctx)

	require.Eventually(t, func() bool {
		saved := archive.Saved()
		return len(saved) == 2 && saved[0].OrderID == e.OrderID
	}, 15*time.Second, 500*time.Millisecond)
	cancel()
}
