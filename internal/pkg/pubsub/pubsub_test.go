package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestStatusMessages(t *testing.T) {
	statuses := []string{StatusPending, StatusPaid, StatusFailed}

	for _, status := range statuses {
		msg, ok := StatusMessages[status]
		assert.True(t, ok, "Status %s should have message", status)
		assert.NotEmpty(t, msg, "Message for %s should not be empty", status)
	}
}

func TestPaymentMessage_JSON(t *testing.T) {
	msg := &PaymentMessage{
		Type:        "payment_status",
		UserID:      1,
		ReferenceID: "DEMO_ABC123XYZ",
		Plan:        "starter",
		Status:      StatusPaid,
		Message:     "Payment confirmed",
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "user_id")
	assert.Contains(t, raw, "reference_id")

	var decoded PaymentMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, msg.UserID, decoded.UserID)
	assert.Equal(t, msg.ReferenceID, decoded.ReferenceID)
	assert.Equal(t, msg.Status, decoded.Status)
}

func TestPaymentMessage_OmitEmpty(t *testing.T) {
	msg := &PaymentMessage{
		UserID: 1,
		Status: StatusPending,
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "message")
	assert.NotContains(t, raw, "error")
}

func TestPublishSubscribe_RoundTrip(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	received := make(chan *PaymentMessage, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = subscriber.Subscribe(ctx, func(msg *PaymentMessage) {
			received <- msg
		})
	}()

	// 等订阅建立
	time.Sleep(100 * time.Millisecond)

	err := publisher.PublishStatus(context.Background(), &PaymentMessage{
		UserID:      42,
		ReferenceID: "DEMO_ROUNDTRIP",
		Plan:        "pro",
		Status:      StatusPaid,
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "payment_status", msg.Type)
		assert.Equal(t, int64(42), msg.UserID)
		assert.Equal(t, "DEMO_ROUNDTRIP", msg.ReferenceID)
		// 默认文案按状态补全
		assert.Equal(t, StatusMessages[StatusPaid], msg.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestSubscribe_ContextCancel(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- subscriber.Subscribe(ctx, func(msg *PaymentMessage) {})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscribe did not return after cancel")
	}
}
