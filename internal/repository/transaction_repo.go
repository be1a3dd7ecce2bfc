package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/ideastone/ideastone_go_server/internal/model"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *model.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *TransactionRepository) GetByReference(referenceID string) (*model.Transaction, error) {
	var tx model.Transaction
	err := r.db.Where("reference_id = ?", referenceID).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// MarkPaid 只允许 pending -> paid，重复投递的任务不会二次生效
func (r *TransactionRepository) MarkPaid(referenceID string, paidAt time.Time) (bool, error) {
	result := r.db.Model(&model.Transaction{}).
		Where("reference_id = ? AND status = ?", referenceID, model.TransactionPending).
		Updates(map[string]interface{}{
			"status":  model.TransactionPaid,
			"paid_at": paidAt,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *TransactionRepository) MarkFailed(referenceID string) error {
	return r.db.Model(&model.Transaction{}).
		Where("reference_id = ? AND status = ?", referenceID, model.TransactionPending).
		Update("status", model.TransactionFailed).Error
}

func (r *TransactionRepository) ListByUser(userID int64) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("id DESC").
		Find(&txs).Error
	return txs, err
}
