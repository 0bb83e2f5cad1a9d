// Package pin implements the client for the PIN re-authentication RPC: the
// permanent token plus a short numeric code buys a fresh session token and a
// full profile.
package pin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vaspay/vaspay/internal/auth"
)

// ErrRejected wraps the backend's failure message. Nothing is persisted on
// this path.
var ErrRejected = errors.New("pin: validation rejected")

// Client talks to the auth backend's PIN validation endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a PIN validation client for the configured auth backend.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("auth base url is required")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Result is a successful validation: a fresh session token and the profile
// fetched alongside it.
type Result struct {
	SessionToken string
	Profile      auth.Profile
}

type validateRequest struct {
	PIN   string `json:"pin"`
	Token string `json:"token"`
}

type validateResponse struct {
	Status       string        `json:"status"`
	SessionToken string        `json:"session_token"`
	User         *auth.Profile `json:"user"`
	Message      string        `json:"message"`
}

// Validate posts the PIN with the permanent token carried both in the body
// and as the bearer header, per the backend contract. A non-success reply
// yields ErrRejected with the backend's message.
func (c *Client) Validate(ctx context.Context, permanentToken, pin string) (Result, error) {
	body, err := json.Marshal(validateRequest{PIN: pin, Token: permanentToken})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/pin/validate", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+permanentToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("pin validate request: %w", err)
	}
	defer resp.Body.Close()

	var parsed validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("decode pin validate response: %w", err)
	}
	if parsed.Status != "success" || parsed.SessionToken == "" || parsed.User == nil {
		msg := parsed.Message
		if msg == "" {
			msg = "pin validation failed"
		}
		return Result{}, fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return Result{SessionToken: parsed.SessionToken, Profile: *parsed.User}, nil
}
