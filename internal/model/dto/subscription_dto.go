package dto

import "encoding/json"

// ActivateRequest 激活套餐请求（free 和付费套餐共用）
type ActivateRequest struct {
	UserID        int64  `json:"userId" binding:"required"`
	PlanType      string `json:"planType" binding:"required,oneof=free starter pro unlimited"`
	TransactionID string `json:"transactionId,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// UseGenerationRequest 消耗一次生成请求
type UseGenerationRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

// GenerationCount 剩余次数，unlimited 套餐序列化为 "Unlimited"
type GenerationCount struct {
	Unlimited bool
	Count     int
}

func (g GenerationCount) MarshalJSON() ([]byte, error) {
	if g.Unlimited {
		return json.Marshal("Unlimited")
	}
	return json.Marshal(g.Count)
}

// SubscriptionResponse 权益记录响应
type SubscriptionResponse struct {
	Plan             string          `json:"plan"`
	GenerationsLeft  GenerationCount `json:"generationsLeft"`
	TotalGenerations GenerationCount `json:"totalGenerations"`
	ActivatedAt      string          `json:"activatedAt"`
	ExpiresAt        string          `json:"expiresAt,omitempty"`
	Status           string          `json:"status"`
}

// UseGenerationResponse 消耗生成响应
type UseGenerationResponse struct {
	GenerationsLeft GenerationCount `json:"generationsLeft"`
}
