package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client talks JSON over HTTPS to the remote estacionamento API, the
// system of record for sessions and vehicles. The bearer credential is
// supplied per request so login state always reflects the gateway.
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string
	log     *zap.Logger
}

// New creates a client. token returns the current bearer credential,
// or "" when unauthenticated; unauthenticated requests are sent
// without an Authorization header (the today feed allows that).
func New(baseURL string, token func() string, log *zap.Logger) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   token,
		log:     log,
	}
}

// do sends one request and decodes the response body into out (when
// non-nil). Any status outside want maps into the error taxonomy via
// StatusError; transport failures map to ErrNetwork.
func (c *Client) do(ctx context.Context, method, path string, body, out any, want ...int) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrNetwork, err)
	}
	defer resp.Body.Close()

	ok := false
	for _, status := range want {
		if resp.StatusCode == status {
			ok = true
			break
		}
	}
	if !ok {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("unexpected status",
			zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Senha: password}, &resp, http.StatusOK); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: %w", ErrAuth)
	}
	return resp.Token, nil
}

type validateRequest struct {
	Token string `json:"token"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

// ValidateToken asks the server whether a token is still good. Trust
// is delegated entirely to this endpoint; no signature check happens
// locally.
func (c *Client) ValidateToken(ctx context.Context, token string) (bool, error) {
	var resp validateResponse
	if err := c.do(ctx, http.MethodPost, "/logado", validateRequest{Token: token}, &resp, http.StatusOK); err != nil {
		return false, err
	}
	return resp.Valid, nil
}
