package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ideastone/ideastone_go_server/config"
	"github.com/ideastone/ideastone_go_server/internal/model"
	"github.com/ideastone/ideastone_go_server/internal/model/dto"
	"github.com/ideastone/ideastone_go_server/internal/pkg/gcash"
	"github.com/ideastone/ideastone_go_server/internal/pkg/metrics"
	"github.com/ideastone/ideastone_go_server/internal/pkg/queue"
	"github.com/ideastone/ideastone_go_server/internal/repository"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// PaymentService 模拟 GCash 支付。创建交易后把核验任务丢进队列，
// 由 worker 核验并激活订阅，API 侧只负责落库和查询。
type PaymentService struct {
	txRepo       *repository.TransactionRepository
	userRepo     *repository.UserRepository
	gcashClient  *gcash.Client
	paymentQueue *queue.Queue
	metrics      *metrics.Metrics
	cfg          *config.Config
}

func NewPaymentService(
	txRepo *repository.TransactionRepository,
	userRepo *repository.UserRepository,
	gcashClient *gcash.Client,
	paymentQueue *queue.Queue,
	m *metrics.Metrics,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		txRepo:       txRepo,
		userRepo:     userRepo,
		gcashClient:  gcashClient,
		paymentQueue: paymentQueue,
		metrics:      m,
		cfg:          cfg,
	}
}

// CreateGCash 创建支付交易并入队核验任务。金额以服务端套餐配置为准，
// 不信任客户端传值。
func (s *PaymentService) CreateGCash(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	plan, ok := s.cfg.Plans[req.Plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	if _, err := s.userRepo.GetByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	referenceID := s.gcashClient.NewReference()
	checkoutURL := s.gcashClient.CheckoutURL(referenceID)

	tx := &model.Transaction{
		ReferenceID: referenceID,
		UserID:      req.UserID,
		Plan:        req.Plan,
		Amount:      plan.Price,
		Method:      "gcash",
		Status:      model.TransactionPending,
		CheckoutURL: checkoutURL,
	}
	if err := s.txRepo.Create(tx); err != nil {
		return nil, err
	}

	if err := s.paymentQueue.Push(ctx, &queue.PaymentJobMessage{
		ReferenceID: referenceID,
		UserID:      req.UserID,
		Plan:        req.Plan,
		Method:      tx.Method,
		Amount:      tx.Amount,
	}); err != nil {
		return nil, err
	}

	s.metrics.IncPayment(model.TransactionPending, tx.Method)

	resp := &dto.CreatePaymentResponse{
		TransactionID: referenceID,
		CheckoutURL:   checkoutURL,
		Amount:        plan.Price,
		Plan:          req.Plan,
		Demo:          s.gcashClient.IsDemo(),
	}
	if resp.Demo {
		resp.Message = "Demo payment created successfully - No real money will be charged"
	}
	return resp, nil
}

// Verify 查询交易当前状态
func (s *PaymentService) Verify(referenceID string) (*dto.PaymentStatusResponse, error) {
	tx, err := s.txRepo.GetByReference(referenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	resp := &dto.PaymentStatusResponse{
		TransactionID: tx.ReferenceID,
		Status:        tx.Status,
		Plan:          tx.Plan,
	}
	if tx.PaidAt != nil {
		resp.PaidAt = tx.PaidAt.Format(time.RFC3339)
	}
	return resp, nil
}
