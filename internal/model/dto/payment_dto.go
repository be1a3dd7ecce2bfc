package dto

// CreatePaymentRequest 创建 GCash 支付请求
type CreatePaymentRequest struct {
	UserID int64  `json:"userId" binding:"required"`
	Plan   string `json:"plan" binding:"required,oneof=starter pro unlimited"`
}

// CreatePaymentResponse 创建支付响应，demo 模式无 checkout_url
type CreatePaymentResponse struct {
	TransactionID string  `json:"transaction_id"`
	CheckoutURL   string  `json:"checkout_url,omitempty"`
	Amount        float64 `json:"amount"`
	Plan          string  `json:"plan"`
	Demo          bool    `json:"demo"`
	Message       string  `json:"message,omitempty"`
}

// PaymentStatusResponse 支付状态查询响应
type PaymentStatusResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Plan          string `json:"plan"`
	PaidAt        string `json:"paid_at,omitempty"`
}
