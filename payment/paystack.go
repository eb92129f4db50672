// Package payment wraps the Paystack transaction API: initializing a
// checkout and verifying a charge by reference.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const DefaultBaseURL = "https://api.paystack.co"

type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

// NewClient builds a Paystack client. baseURL may be empty to use the live
// endpoint; tests point it at a local server.
func NewClient(secretKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		secretKey: secretKey,
		baseURL:   baseURL,
		http:      &http.Client{},
	}
}

// InitializeRequest is the payload for POST /transaction/initialize.
// Amount is in the minor currency unit (kobo/cents).
type InitializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Transaction is the provider's view of a charge.
type Transaction struct {
	ID               int64  `json:"id"`
	Status           string `json:"status"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
}

type apiEnvelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

// Initialize creates a checkout session and returns the transaction holding
// the authorization URL the customer is redirected to.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*Transaction, error) {
	return c.call(ctx, http.MethodPost, "/transaction/initialize", req)
}

// Verify fetches the outcome of a charge by its reference.
func (c *Client) Verify(ctx context.Context, reference string) (*Transaction, error) {
	return c.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
}

func (c *Client) call(ctx context.Context, method, path string, payload interface{}) (*Transaction, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach paystack: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack API error (%d): %s", resp.StatusCode, string(raw))
	}

	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to parse paystack response: %w", err)
	}
	if !env.Status {
		return nil, fmt.Errorf("paystack error: %s", env.Message)
	}
	return &env.Data, nil
}
