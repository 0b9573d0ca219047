// Package client is a typed HTTP client for the fittrack API.
//
// A Client acts as the Session it was built with: every call reads the bearer
// token from it, and Register, Login and password changes update it in place.
// Persisting the session is left to the caller. Failed calls are never retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fittrack/api/internal/api"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
	Data    json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for baseURL, for example http://localhost:5000. A nil
// session starts logged out.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = &Session{}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session { return c.session }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.LoggedIn() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || (decodeErr == nil && !env.Success) {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg, Data: env.Data}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func call[T any](ctx context.Context, c *Client, method, path string, in any) (T, error) {
	var out T
	err := c.do(ctx, method, path, in, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (api.Health, error) {
	return call[api.Health](ctx, c, http.MethodGet, "/health", nil)
}

func (c *Client) Register(ctx context.Context, in api.RegisterRequest) (api.User, error) {
	payload, err := call[api.AuthPayload](ctx, c, http.MethodPost, "/auth/register", in)
	if err != nil {
		return api.User{}, err
	}
	c.adopt(payload)
	return payload.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (api.User, error) {
	payload, err := call[api.AuthPayload](ctx, c, http.MethodPost, "/auth/login", api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return api.User{}, err
	}
	c.adopt(payload)
	return payload.User, nil
}

func (c *Client) adopt(payload api.AuthPayload) {
	user := payload.User
	c.session.Token = payload.Token
	c.session.User = &user
}

func (c *Client) Logout() {
	c.session.Clear()
}

// Me refreshes the session's user snapshot.
func (c *Client) Me(ctx context.Context) (api.User, error) {
	payload, err := call[api.UserPayload](ctx, c, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return api.User{}, err
	}
	user := payload.User
	c.session.User = &user
	return user, nil
}

// UpdateProfile logs the session out after a password change so the next
// call has to log in again with the new password.
func (c *Client) UpdateProfile(ctx context.Context, in api.ProfileRequest) (api.User, error) {
	payload, err := call[api.UserPayload](ctx, c, http.MethodPut, "/auth/profile", in)
	if err != nil {
		return api.User{}, err
	}
	if in.Password != nil && *in.Password != "" {
		c.session.Clear()
		return payload.User, nil
	}
	user := payload.User
	c.session.User = &user
	return user, nil
}
