package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"estatehub_backend/platform/config"
	"estatehub_backend/platform/logger"
)

// PaystackClient verifies transactions against the Paystack API.
type PaystackClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
	log       *logger.Logger
}

var _ Gateway = (*PaystackClient)(nil)

func NewPaystackClient(cfg config.PaymentConfig, log *logger.Logger) *PaystackClient {
	return &PaystackClient{
		baseURL:   cfg.GetPaystackBaseURL(),
		secretKey: cfg.GetPaystackSecretKey(),
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
	} `json:"data"`
}

// GetStatus calls the Paystack transaction verify endpoint and maps the
// gateway's vocabulary onto ours. Anything Paystack does not recognise as
// settled counts as pending so callers retry rather than fail closed.
func (p *PaystackClient) GetStatus(ctx context.Context, reference string) (Status, error) {
	endpoint := fmt.Sprintf("%s/transaction/verify/%s", p.baseURL, url.PathEscape(reference))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build paystack request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("paystack verify %s: %w", reference, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read paystack response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		p.log.Error("paystack verify returned non-200",
			"reference", reference,
			"statusCode", resp.StatusCode,
		)
		return "", fmt.Errorf("paystack verify %s: status %d", reference, resp.StatusCode)
	}

	var parsed paystackVerifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode paystack response: %w", err)
	}
	if !parsed.Status {
		return "", fmt.Errorf("paystack verify %s: %s", reference, parsed.Message)
	}

	switch parsed.Data.Status {
	case "success":
		return StatusSuccess, nil
	case "failed", "abandoned", "reversed":
		return StatusFailed, nil
	default:
		return StatusPending, nil
	}
}
