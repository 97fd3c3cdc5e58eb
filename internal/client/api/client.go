// Package api is the CLI's client for the gateway and the identity
// provider's token endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pouchain/docstore/internal/client/config"
	"github.com/pouchain/docstore/internal/netx"
	"github.com/pouchain/docstore/internal/objstore"
)

// Client talks to the gateway's JSON API. A token obtained via Login is
// attached to authorized calls.
type Client struct {
	baseURL     string
	identityURL string
	anonKey     string
	http        *http.Client
	token       string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.ServerEndpointAddr, "/"),
		identityURL: strings.TrimRight(cfg.IdentityBaseURL, "/"),
		anonKey:     cfg.IdentityAnonKey,
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

// Token returns the current access token, empty when not logged in.
func (c *Client) Token() string {
	return c.token
}

// Logout drops the stored token.
func (c *Client) Logout() {
	c.token = ""
}

// Login exchanges email and password for an access token at the identity
// provider's password grant endpoint.
func (c *Client) Login(ctx context.Context, email string, password []byte) error {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": string(password),
	})
	if err != nil {
		return err
	}

	endpoint := c.identityURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("login failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if out.AccessToken == "" {
		return fmt.Errorf("login failed: empty access token")
	}

	c.token = out.AccessToken
	return nil
}

// List fetches the visible listing, optionally narrowed by a substring query.
func (c *Client) List(ctx context.Context, query string) ([]objstore.Object, error) {
	endpoint := c.baseURL + "/list"
	if query != "" {
		endpoint += "?q=" + url.QueryEscape(query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list failed: status %d", resp.StatusCode)
	}

	var objects []objstore.Object
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return objects, nil
}

// Download fetches an object's bytes and content type.
func (c *Client) Download(ctx context.Context, key string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get/"+key, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// Upload sends one file through the gateway's multipart upload endpoint.
func (c *Client) Upload(ctx context.Context, key, filename string, data []byte) error {
	return netx.UploadMultipart(c.baseURL+"/upload", c.token, key, filename, data)
}
