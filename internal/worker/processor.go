package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ideastone/ideastone_go_server/config"
	"github.com/ideastone/ideastone_go_server/internal/model"
	"github.com/ideastone/ideastone_go_server/internal/pkg/gcash"
	"github.com/ideastone/ideastone_go_server/internal/pkg/metrics"
	"github.com/ideastone/ideastone_go_server/internal/pkg/pubsub"
	"github.com/ideastone/ideastone_go_server/internal/pkg/queue"
	"github.com/ideastone/ideastone_go_server/internal/repository"
	"github.com/ideastone/ideastone_go_server/internal/service"
)

// Processor 支付核验处理器：查网关、落账、激活订阅、广播状态。
// 任务可能重复投递，MarkPaid 的 pending->paid 约束保证只生效一次。
type Processor struct {
	txRepo      *repository.TransactionRepository
	entitlement *service.EntitlementService
	gcashClient *gcash.Client
	publisher   *pubsub.Publisher
	metrics     *metrics.Metrics
	cfg         *config.Config
}

func NewProcessor(
	txRepo *repository.TransactionRepository,
	entitlement *service.EntitlementService,
	gcashClient *gcash.Client,
	publisher *pubsub.Publisher,
	m *metrics.Metrics,
	cfg *config.Config,
) *Processor {
	return &Processor{
		txRepo:      txRepo,
		entitlement: entitlement,
		gcashClient: gcashClient,
		publisher:   publisher,
		metrics:     m,
		cfg:         cfg,
	}
}

// Process 处理一条支付核验任务
func (p *Processor) Process(ctx context.Context, msg *queue.PaymentJobMessage) error {
	tx, err := p.txRepo.GetByReference(msg.ReferenceID)
	if err != nil {
		return fmt.Errorf("failed to get transaction %s: %w", msg.ReferenceID, err)
	}

	if tx.Status != model.TransactionPending {
		// 重复投递，直接忽略
		return nil
	}

	status, err := p.gcashClient.VerifyPayment(ctx, tx.ReferenceID)
	if err != nil {
		return fmt.Errorf("failed to verify payment %s: %w", tx.ReferenceID, err)
	}

	if status != gcash.StatusSuccess {
		if err := p.txRepo.MarkFailed(tx.ReferenceID); err != nil {
			return fmt.Errorf("failed to mark transaction failed: %w", err)
		}
		p.metrics.IncPayment(model.TransactionFailed, tx.Method)
		p.publish(ctx, tx, pubsub.StatusFailed)
		return nil
	}

	ok, err := p.txRepo.MarkPaid(tx.ReferenceID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark transaction paid: %w", err)
	}
	if !ok {
		// 另一个 worker 已处理
		return nil
	}

	if _, err := p.entitlement.Activate(tx.UserID, tx.Plan, tx.ReferenceID, tx.Method); err != nil {
		return fmt.Errorf("failed to activate plan %s for user %d: %w", tx.Plan, tx.UserID, err)
	}

	p.metrics.IncPayment(model.TransactionPaid, tx.Method)
	p.publish(ctx, tx, pubsub.StatusPaid)
	log.Printf("Payment %s verified, plan %s activated for user %d", tx.ReferenceID, tx.Plan, tx.UserID)
	return nil
}

func (p *Processor) publish(ctx context.Context, tx *model.Transaction, status string) {
	if p.publisher == nil {
		return
	}
	err := p.publisher.PublishStatus(ctx, &pubsub.PaymentMessage{
		UserID:      tx.UserID,
		ReferenceID: tx.ReferenceID,
		Plan:        tx.Plan,
		Status:      status,
	})
	if err != nil {
		log.Printf("Failed to publish payment status for %s: %v", tx.ReferenceID, err)
	}
}
