// Package payment bridges the external card processor. The charge-creation
// call is never blindly retried; callers attach a deterministic idempotency
// key so a client-side retry cannot double-charge. Only the read-only
// charge-verification call retries on transient network errors.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"chorebank-backend/internal/logger"
)

var (
	// ErrRejected covers processor "invalid request" classes (4xx): the
	// charge was refused and the user may correct and retry.
	ErrRejected = errors.New("processor rejected the charge")
	// ErrBusy covers rate limiting (429): recoverable after a pause.
	ErrBusy = errors.New("processor rate limited")
	// ErrFailed covers everything else: opaque, terminal for this attempt.
	ErrFailed = errors.New("processor charge failed")
)

// Charge is the processor's view of one payment.
type Charge struct {
	ID          string `json:"id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// Client is the surface the settlement service depends on; tests substitute
// a fake.
type Client interface {
	CreateCharge(ctx context.Context, amountMinorUnits int64, currency, idempotencyKey string) (*Charge, error)
	GetCharge(ctx context.Context, chargeID string) (*Charge, error)
}

type httpClient struct {
	baseURL       string
	apiKey        string
	verifyRetries int
	client        *http.Client
}

// NewClient builds a processor client with a bounded per-call timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration, verifyRetries int) Client {
	return &httpClient{
		baseURL:       baseURL,
		apiKey:        apiKey,
		verifyRetries: verifyRetries,
		client:        &http.Client{Timeout: timeout},
	}
}

type createChargeRequest struct {
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
}

func (c *httpClient) CreateCharge(ctx context.Context, amountMinorUnits int64, currency, idempotencyKey string) (*Charge, error) {
	logger.ExternalServiceCall("processor", "CreateCharge", "amount_minor", amountMinorUnits, "currency", currency)

	body, err := json.Marshal(createChargeRequest{AmountMinor: amountMinorUnits, Currency: currency})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("processor", "CreateCharge", err)
		return nil, fmt.Errorf("%w: %v", ErrFailed, err)
	}
	defer resp.Body.Close()

	charge, err := decodeCharge(resp)
	logger.ExternalServiceResult("processor", "CreateCharge", err)
	return charge, err
}

// GetCharge verifies a charge. This call is idempotent, so transient
// network failures retry a small, configured number of times.
func (c *httpClient) GetCharge(ctx context.Context, chargeID string) (*Charge, error) {
	var lastErr error
	for attempt := 0; attempt <= c.verifyRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/charges/"+chargeID, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		charge, err := decodeCharge(resp)
		resp.Body.Close()
		return charge, err
	}
	return nil, fmt.Errorf("%w: %v", ErrFailed, lastErr)
}

func decodeCharge(resp *http.Response) (*Charge, error) {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var charge Charge
		if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
			return nil, fmt.Errorf("%w: malformed response: %v", ErrFailed, err)
		}
		return &charge, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrBusy
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, msg)
	default:
		return nil, fmt.Errorf("%w: status %d", ErrFailed, resp.StatusCode)
	}
}
