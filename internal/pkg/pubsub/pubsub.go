package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelPaymentStatus = "payment_status"
)

// PaymentMessage 支付状态消息，worker 发布，API 进程转发给 WebSocket
type PaymentMessage struct {
	Type        string `json:"type"`
	UserID      int64  `json:"user_id"`
	ReferenceID string `json:"reference_id"`
	Plan        string `json:"plan"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// 支付阶段常量
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

// 阶段对应的提示文案
var StatusMessages = map[string]string{
	StatusPending: "Payment is being verified",
	StatusPaid:    "Payment confirmed, plan activated",
	StatusFailed:  "Payment verification failed",
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishStatus 发布支付状态消息
func (p *Publisher) PublishStatus(ctx context.Context, msg *PaymentMessage) error {
	msg.Type = "payment_status"

	if msg.Message == "" && msg.Status != "" {
		if message, ok := StatusMessages[msg.Status]; ok {
			msg.Message = message
		}
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal payment message: %w", err)
	}

	return p.client.Publish(ctx, ChannelPaymentStatus, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅支付状态消息，阻塞直到 ctx 取消
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*PaymentMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelPaymentStatus)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var paymentMsg PaymentMessage
			if err := json.Unmarshal([]byte(msg.Payload), &paymentMsg); err != nil {
				continue // 忽略解析错误
			}

			handler(&paymentMsg)
		}
	}
}
