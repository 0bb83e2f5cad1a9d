package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrGatewayRejected is returned when the hash endpoint answers with a
// non-success status or an incomplete body.
var ErrGatewayRejected = errors.New("payment: gateway rejected session request")

// HashRequest is the form-encoded payment-session request. Field names are
// the gateway's wire contract.
type HashRequest struct {
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
}

// HashResponse carries the merchant key and signature hash for a session.
type HashResponse struct {
	Key  string
	Hash string
}

// HashSource provides signed payment sessions. Satisfied by GatewayClient
// and by test fakes.
type HashSource interface {
	SessionHash(ctx context.Context, req HashRequest) (HashResponse, error)
}

// GatewayClient requests signed payment payloads from the backend.
type GatewayClient struct {
	baseURL string
	http    *http.Client
}

// NewGatewayClient builds a client for the configured gateway URL. The URL
// is deployment configuration; there is deliberately no built-in fallback.
func NewGatewayClient(baseURL string) (*GatewayClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("payment gateway url is required")
	}
	return &GatewayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type hashEnvelope struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Hash   string `json:"hash"`
}

// SessionHash posts the session request and returns the signed response.
// Any status other than an explicit "success", or a missing key or hash,
// is a rejection.
func (c *GatewayClient) SessionHash(ctx context.Context, req HashRequest) (HashResponse, error) {
	form := url.Values{}
	form.Set("txnid", req.TxnID)
	form.Set("amount", req.Amount)
	form.Set("productinfo", req.ProductInfo)
	form.Set("firstname", req.FirstName)
	form.Set("email", req.Email)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment/hash", strings.NewReader(form.Encode()))
	if err != nil {
		return HashResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return HashResponse{}, fmt.Errorf("payment hash request: %w", err)
	}
	defer resp.Body.Close()

	var envelope hashEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return HashResponse{}, fmt.Errorf("decode payment hash response: %w", err)
	}
	if envelope.Status != "success" || envelope.Key == "" || envelope.Hash == "" {
		return HashResponse{}, fmt.Errorf("%w: status %q", ErrGatewayRejected, envelope.Status)
	}
	return HashResponse{Key: envelope.Key, Hash: envelope.Hash}, nil
}
