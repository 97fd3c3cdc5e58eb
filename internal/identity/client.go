// Package identity is the client for the external identity provider (a
// GoTrue-style auth REST API). The provider owns credentials, sessions and
// recovery mail; this client only drives its admin surface with a service
// key. Errors are surfaced directly; user management never degrades
// silently.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pouchain/docstore/internal/common"
)

// User is the provider's view of an account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider is the subset of the identity admin API the server uses.
// Implemented by Client; faked in service tests.
type Provider interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, email, password string) (*User, error)
	InviteUser(ctx context.Context, email, redirectTo string) (*User, error)
	SendRecovery(ctx context.Context, email, redirectTo string) error
	DeleteUser(ctx context.Context, id string) error
}

// Client talks to the identity provider's REST API.
type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) CreateUser(ctx context.Context, email, password string) (*User, error) {
	body := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}
	user := &User{}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", body, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) InviteUser(ctx context.Context, email, redirectTo string) (*User, error) {
	body := map[string]any{
		"email":       email,
		"redirect_to": redirectTo,
	}
	user := &User{}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/invite", body, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) SendRecovery(ctx context.Context, email, redirectTo string) error {
	body := map[string]any{
		"email":       email,
		"redirect_to": redirectTo,
	}
	return c.do(ctx, http.MethodPost, "/auth/v1/recover", body, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider: %w: %w", common.ErrorUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("identity provider %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
