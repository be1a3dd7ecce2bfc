package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 业务指标集合，挂在独立 registry 上避免测试间重复注册
type Metrics struct {
	registry        *prometheus.Registry
	generations     *prometheus.CounterVec
	quotaRejections prometheus.Counter
	payments        *prometheus.CounterVec
	activations     *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	generations := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideastone_generations_total",
			Help: "The total number of successful idea generations",
		},
		[]string{"plan"},
	)

	quotaRejections := promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "ideastone_quota_rejections_total",
			Help: "The total number of generations rejected for exhausted quota",
		},
	)

	payments := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideastone_payments_total",
			Help: "The total number of payments by status",
		},
		[]string{"status", "method"},
	)

	activations := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ideastone_plan_activations_total",
			Help: "The total number of plan activations",
		},
		[]string{"plan"},
	)

	return &Metrics{
		registry:        registry,
		generations:     generations,
		quotaRejections: quotaRejections,
		payments:        payments,
		activations:     activations,
	}
}

// Handler /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncGeneration 记录一次成功生成
func (m *Metrics) IncGeneration(plan string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(plan).Inc()
}

// IncQuotaRejected 记录一次配额拒绝
func (m *Metrics) IncQuotaRejected() {
	if m == nil {
		return
	}
	m.quotaRejections.Inc()
}

// IncPayment 记录一次支付状态变化
func (m *Metrics) IncPayment(status, method string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(status, method).Inc()
}

// IncActivation 记录一次套餐激活
func (m *Metrics) IncActivation(plan string) {
	if m == nil {
		return
	}
	m.activations.WithLabelValues(plan).Inc()
}
