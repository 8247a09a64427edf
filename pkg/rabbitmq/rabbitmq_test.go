package rabbitmq_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"ivr/pkg/rabbitmq"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/require"
)

func TestPublishAndConsume(t *testing.T) {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		t.Skip("RABBITMQ_URL not set")
	}

	suffix := uuid.New().String()
	client, err := rabbitmq.NewClient(rabbitmq.Config{
		URL:        url,
		Exchange:   "ivr.test." + suffix,
		Queue:      "ivr.test." + suffix,
		BindingKey: "order.#",
	})
	require.NoError(t, err)
	defer client.Close()

	received := make(chan []byte, 1)
	require.NoError(t, client.ConsumeOrderEvents(func(msg amqp.Delivery) error {
		received <- msg.Body
		return nil
	}))

	body := []byte(fmt.Sprintf(`{"orderId":%q}`, suffix))
	require.NoError(t, client.Publish("order.placed", body))

	select {
	case got := <-received:
		require.JSONEq(t, string(body), string(got))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for order event")
	}
}
