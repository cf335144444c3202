package paystackControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the Paystack REST API.
type Client struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

func NewClient(secretKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		secretKey: secretKey,
		baseURL:   baseURL,
		http:      &http.Client{Timeout: timeout},
	}
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// Initialize starts a transaction keyed by reference (the order id) and
// returns the authorization URL the customer is redirected to.
func (c *Client) Initialize(ctx context.Context, email string, amountCents int64, currency, reference, callbackURL string, metadata map[string]interface{}) (string, error) {
	payload := map[string]interface{}{
		"email":        email,
		"amount":       amountCents,
		"currency":     currency,
		"reference":    reference,
		"callback_url": callbackURL,
		"metadata":     metadata,
	}

	var out initializeResponse
	if err := c.post(ctx, "/transaction/initialize", payload, &out); err != nil {
		return "", err
	}
	if !out.Status {
		return "", fmt.Errorf("paystack error: %s", out.Message)
	}
	if out.Data.AuthorizationURL == "" {
		return "", fmt.Errorf("paystack returned empty authorization URL")
	}
	return out.Data.AuthorizationURL, nil
}

// VerifiedTransaction is the provider's own view of a transaction, fetched
// out-of-band instead of trusting a webhook body.
type VerifiedTransaction struct {
	Status        string
	AmountCents   int64
	Currency      string
	CustomerEmail string
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Customer struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

func (c *Client) Verify(ctx context.Context, reference string) (*VerifiedTransaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach paystack: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paystack API error (%d): %s", resp.StatusCode, string(body))
	}

	var out verifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse paystack response: %w", err)
	}
	if !out.Status {
		return nil, fmt.Errorf("paystack error: %s", out.Message)
	}

	return &VerifiedTransaction{
		Status:        out.Data.Status,
		AmountCents:   out.Data.Amount,
		Currency:      out.Data.Currency,
		CustomerEmail: out.Data.Customer.Email,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach paystack: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("paystack API error (%d): %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}
