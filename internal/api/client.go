// Package api implements the REST collaborator contract: /api/login,
// /api/signup and /api/profile. Transport details stay inside this package;
// callers only see tokens, profiles and the typed errors below.
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

	"github.com/google/uuid"

	"larktalk/internal/logx"
	"larktalk/internal/models"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for an opaque token. A 401 maps to
// ErrUnauthorized, any other non-2xx to *StatusError; everything else is a
// transport failure.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	resp, err := c.postJSON(ctx, "/api/login", loginRequest{Login: login, Password: password})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	return out.Token, nil
}

// Signup registers a new account. The success body is ignored; a non-2xx
// body is a plain-text message preserved verbatim in the returned
// *StatusError so the UI can surface it unchanged.
func (c *Client) Signup(ctx context.Context, draft models.RegistrationDraft) error {
	resp, err := c.postJSON(ctx, "/api/signup", draft)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// Profile fetches the richer user record for a login. Any non-2xx is
// reported as *StatusError; the caller decides how fatal that is.
func (c *Client) Profile(ctx context.Context, login string) (*models.Profile, error) {
	u := c.base + "/api/profile?login=" + url.QueryEscape(login)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var prof models.Profile
	if err := json.NewDecoder(resp.Body).Decode(&prof); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &prof, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		logx.Error(err, "api request failed", "method", req.Method, "path", req.URL.Path, "request_id", reqID)
		return nil, fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	logx.Info("api request", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "request_id", reqID)
	return resp, nil
}

// checkStatus drains the body into a *StatusError for non-2xx responses.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
