// Package asaas provides a read-mostly client for the Asaas payment
// provider HTTP API. Every call is stateless request/response; retries
// and the circuit breaker live here, not in the callers.
package asaas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/njunio10/Convel-Controle/internal/domain"
	"github.com/njunio10/Convel-Controle/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("asaas")

// Client wraps HTTP calls to the Asaas API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates an Asaas client. baseURL distinguishes production
// from sandbox (sandbox URLs contain the substring "sandbox").
func NewClient(httpClient *http.Client, baseURL, apiKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
		logger:     logger,
	}
}

// IsSandbox reports whether the configured base URL points at the
// provider's sandbox environment.
func (c *Client) IsSandbox() bool {
	return strings.Contains(c.baseURL, "sandbox")
}

// doRequest executes one authenticated request against the provider.
// A 404 yields (nil, 404, nil) so callers can treat absence as data.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("access_token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, 0, err
	}
	defer c.bulkhead.Release()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("asaas: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("asaas: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, resp.StatusCode, fmt.Errorf("asaas returned status %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("asaas: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return body, resp.StatusCode, nil
}

// paymentList is the provider's list envelope: {"object":"list","data":[...]}.
// Some responses come as a bare array instead; decodePayments accepts both.
type paymentList struct {
	Data []domain.PaymentRecord `json:"data"`
}

func decodePayments(body []byte) ([]domain.PaymentRecord, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var records []domain.PaymentRecord
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("failed to decode payments: %w", err)
		}
		return records, nil
	}

	var list paymentList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	if list.Data == nil {
		return []domain.PaymentRecord{}, nil
	}
	return list.Data, nil
}

// ListPayments fetches a single provider page matching the filters.
// It does not walk additional pages. Transport faults are returned to
// the caller, which decides whether to swallow or degrade.
func (c *Client) ListPayments(ctx context.Context, filters PaymentFilters) ([]domain.PaymentRecord, error) {
	ctx, span := tracer.Start(ctx, "Asaas.ListPayments")
	defer span.End()
	span.SetAttributes(attribute.String("asaas.status_filter", filters.Status))

	var records []domain.PaymentRecord

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, _, err := c.doRequest(ctx, http.MethodGet, "/payments", filters.Values())
			if err != nil {
				return err
			}
			if body == nil {
				records = []domain.PaymentRecord{}
				return nil
			}

			decoded, err := decodePayments(body)
			if err != nil {
				return err
			}
			records = decoded
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "asaas/payments", Err: err}
	}

	return records, nil
}

// GetPayment fetches one payment by provider id. Absence (404) and
// transport faults both yield (nil, nil)-style absence at the service
// layer; here the fault is still reported so it can be logged.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	ctx, span := tracer.Start(ctx, "Asaas.GetPayment")
	defer span.End()
	span.SetAttributes(attribute.String("asaas.payment_id", paymentID))

	var record *domain.PaymentRecord

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, _, err := c.doRequest(ctx, http.MethodGet, "/payments/"+url.PathEscape(paymentID), nil)
			if err != nil {
				return err
			}
			if body == nil {
				record = nil // not found
				return nil
			}

			var p domain.PaymentRecord
			if err := json.Unmarshal(body, &p); err != nil {
				return fmt.Errorf("failed to decode payment: %w", err)
			}
			record = &p
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "asaas/payment", Err: err}
	}

	return record, nil
}

// GetBalance fetches the provider-side account balance.
func (c *Client) GetBalance(ctx context.Context) (*domain.AccountBalance, error) {
	ctx, span := tracer.Start(ctx, "Asaas.GetBalance")
	defer span.End()

	var balance *domain.AccountBalance

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, _, err := c.doRequest(ctx, http.MethodGet, "/myAccount", nil)
			if err != nil {
				return err
			}
			if body == nil {
				balance = nil
				return nil
			}

			var b domain.AccountBalance
			if err := json.Unmarshal(body, &b); err != nil {
				return fmt.Errorf("failed to decode balance: %w", err)
			}
			balance = &b
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "asaas/balance", Err: err}
	}

	return balance, nil
}

// ConfirmPayment marks a payment as confirmed through the provider's
// sandbox helper. It refuses to run against the production environment.
func (c *Client) ConfirmPayment(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	ctx, span := tracer.Start(ctx, "Asaas.ConfirmPayment")
	defer span.End()
	span.SetAttributes(attribute.String("asaas.payment_id", paymentID))

	if !c.IsSandbox() {
		c.logger.Warn("asaas: confirm attempted outside sandbox",
			zap.String("payment_id", paymentID),
			zap.String("base_url", c.baseURL),
		)
		return nil, &domain.ErrSandboxOnly{Operation: "confirm payment"}
	}

	var record *domain.PaymentRecord

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := "/sandbox/payment/" + url.PathEscape(paymentID) + "/confirm"
			body, _, err := c.doRequest(ctx, http.MethodPost, path, nil)
			if err != nil {
				return err
			}
			if body == nil {
				record = nil // 404 from the sandbox helper
				return nil
			}

			var p domain.PaymentRecord
			if err := json.Unmarshal(body, &p); err != nil {
				return fmt.Errorf("failed to decode payment: %w", err)
			}
			record = &p
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "asaas/confirm", Err: err}
	}
	if record == nil {
		return nil, &domain.ErrNotFound{Resource: "payment", ID: paymentID}
	}

	return record, nil
}
