package gcash

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ideastone/ideastone_go_server/config"
)

// 核验结果
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

const referenceLength = 9

const referenceChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Client GCash 网关客户端。demo 模式完全本地模拟，不发起任何真实扣款；
// live 模式预留了真实网关对接位，目前仍返回模拟结果。
type Client struct {
	mode       string
	gatewayURL string
	httpClient *http.Client
	rng        *rand.Rand
	mu         sync.Mutex // rand.Rand 非并发安全
}

func NewClient(cfg *config.PaymentConfig) *Client {
	return &Client{
		mode:       cfg.Mode,
		gatewayURL: cfg.GatewayURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// IsDemo 是否演示模式
func (c *Client) IsDemo() bool {
	return c.mode != "live"
}

// NewReference 生成交易参考号，demo 模式以 DEMO_ 前缀标记
func (c *Client) NewReference() string {
	b := make([]byte, referenceLength)
	c.mu.Lock()
	for i := range b {
		b[i] = referenceChars[c.rng.Intn(len(referenceChars))]
	}
	c.mu.Unlock()
	if c.IsDemo() {
		return "DEMO_" + string(b)
	}
	return "GCASH_" + string(b)
}

// CheckoutURL 生成收银台地址，demo 模式返回空串
func (c *Client) CheckoutURL(referenceID string) string {
	if c.IsDemo() {
		return ""
	}
	return fmt.Sprintf("%s/checkout/%s", c.gatewayURL, referenceID)
}

// VerifyPayment 核验支付结果。DEMO_ 前缀的交易一律视为已支付；
// live 模式查询网关的交易状态接口。
func (c *Client) VerifyPayment(ctx context.Context, referenceID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if c.IsDemo() || strings.HasPrefix(referenceID, "DEMO_") {
		return StatusSuccess, nil
	}

	url := fmt.Sprintf("%s/payments/%s/status", c.gatewayURL, referenceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build verify request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}

	if body.Status != StatusSuccess {
		return StatusFailed, nil
	}
	return StatusSuccess, nil
}
