package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jwalitptl/outreach-api/pkg/circuitbreaker"
)

// Recipient is one entry of the batch payload. Field names follow the
// delivery service's contract; the shift value travels as "turnout".
type Recipient struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Turnout string `json:"turnout"`
	Email   string `json:"email"`
	Age     string `json:"age"`
}

// Payload is the single batch request posted to the delivery webhook.
type Payload struct {
	Message  string      `json:"message"`
	Contacts []Recipient `json:"contacts"`
}

type Config struct {
	URL     string
	Timeout time.Duration
}

// Client posts batch payloads to the external delivery webhook. One POST per
// dispatch, no retries; the breaker fails fast while the webhook is down.
type Client struct {
	url        string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "delivery-webhook",
			MaxFailures: 3,
			Cooldown:    time.Minute,
		}),
	}
}

// Send posts the payload and treats any non-2xx status or transport failure
// as an error. The body is drained so the connection can be reused.
func (c *Client) Send(ctx context.Context, payload *Payload) error {
	return c.breaker.Execute(func() error {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("webhook request failed: %w", err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("webhook returned status %s", resp.Status)
		}
		return nil
	})
}
