package model

import (
	"time"
)

// 交易状态
const (
	TransactionPending = "pending"
	TransactionPaid    = "paid"
	TransactionFailed  = "failed"
)

// Transaction GCash 支付交易，reference_id 形如 DEMO_XXXXXXXXX / GCASH_XXXXXXXXX
type Transaction struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	ReferenceID string     `gorm:"size:50;uniqueIndex;not null" json:"reference_id"`
	UserID      int64      `gorm:"not null;index" json:"user_id"`
	Plan        string     `gorm:"size:20;not null" json:"plan"`
	Amount      float64    `gorm:"type:decimal(10,2)" json:"amount"`
	Method      string     `gorm:"size:20;default:gcash" json:"method"`
	Status      string     `gorm:"size:20;default:pending;index" json:"status"`
	CheckoutURL string     `gorm:"size:500" json:"checkout_url,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
