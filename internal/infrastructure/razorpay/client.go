// Package razorpay is a minimal Razorpay Orders client covering plan
// checkout: order creation and callback signature verification.
package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"

	"github.com/clinova/clinic-api/internal/application/subscription"
	"github.com/clinova/clinic-api/pkg/config"
)

var _ subscription.PaymentProvider = (*Client)(nil)

// Client talks to the Razorpay REST API with basic auth and retries.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *retryablehttp.Client
}

// NewClient builds the client from billing config.
func NewClient(cfg config.BillingConfig) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	return &Client{
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
		baseURL:   cfg.BaseURL,
		http:      rc,
	}
}

type orderRequest struct {
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder opens an order for amountINR and returns the provider order id.
func (c *Client) CreateOrder(ctx context.Context, amountINR int, receipt string) (string, error) {
	body, err := json.Marshal(orderRequest{
		Amount:   int64(amountINR) * 100,
		Currency: "INR",
		Receipt:  receipt,
	})
	if err != nil {
		return "", fmt.Errorf("razorpay: marshal order: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("razorpay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("razorpay: create order: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("razorpay: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Description != "" {
			return "", fmt.Errorf("razorpay: create order: %s (%s)", apiErr.Error.Description, apiErr.Error.Code)
		}
		return "", fmt.Errorf("razorpay: create order: status %d", resp.StatusCode)
	}

	var order orderResponse
	if err := json.Unmarshal(data, &order); err != nil {
		return "", fmt.Errorf("razorpay: decode order: %w", err)
	}
	if order.ID == "" {
		return "", fmt.Errorf("razorpay: order response missing id")
	}
	return order.ID, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256 of
// "orderID|paymentID" with the key secret, hex encoded.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// KeyID returns the public key for the frontend checkout widget.
func (c *Client) KeyID() string { return c.keyID }
