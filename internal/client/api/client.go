// Package api is the app's HTTP client for the GlicoSaúde backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gdugdh24/glicosaude/internal/domain"
)

// Error is a non-2xx answer from the backend.
type Error struct {
	Status  int
	Message string
	// Title is set for validation failures.
	Title string
}

func (e *Error) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Title, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto domain errors.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusConflict:
		return domain.ErrUserAlreadyExists
	case http.StatusBadRequest:
		if e.Title != "" {
			return domain.NewValidationError(e.Title, e.Message)
		}
	}
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Session is what register and login return.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a client. Redirects are not followed so gated routes report
// where they point instead of silently rendering the target.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// WithToken returns a copy of the client signing requests with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) HasIdentity() bool {
	return c.token != ""
}

func (c *Client) Register(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", map[string]string{"email": email, "password": password}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": email, "password": password}, &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

// Me resolves the token to its user.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetProfile fetches the identity's row. A missing row is
// domain.ErrProfileNotFound.
func (c *Client) GetProfile(ctx context.Context) (*domain.ProfileRow, error) {
	var row domain.ProfileRow
	if err := c.do(ctx, http.MethodGet, "/api/v1/profile/me", nil, &row); err != nil {
		return nil, notFoundAs(err, domain.ErrProfileNotFound)
	}
	return &row, nil
}

func (c *Client) UpsertProfile(ctx context.Context, row domain.ProfileRow) (*domain.ProfileRow, error) {
	var saved domain.ProfileRow
	if err := c.do(ctx, http.MethodPut, "/api/v1/profile/me", row, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteProfile(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/profile/me", nil, nil)
}

// ListReadings returns the identity's readings, newest first.
func (c *Client) ListReadings(ctx context.Context) ([]*domain.GlucoseReading, error) {
	var body struct {
		Readings []*domain.GlucoseReading `json:"readings"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/readings", nil, &body); err != nil {
		return nil, err
	}
	return body.Readings, nil
}

func (c *Client) CreateReading(ctx context.Context, in domain.ReadingInput) (*domain.GlucoseReading, error) {
	var r domain.GlucoseReading
	if err := c.do(ctx, http.MethodPost, "/api/v1/readings", in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteReading(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/api/v1/readings/"+url.PathEscape(id), nil, nil)
	return notFoundAs(err, domain.ErrReadingNotFound)
}

func (c *Client) Insight(ctx context.Context) (*domain.Insight, error) {
	var in domain.Insight
	if err := c.do(ctx, http.MethodPost, "/api/v1/insights", nil, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// Page fetches the view model behind an app route. Gated routes answer with
// a redirect, which is returned as location with a nil body.
func (c *Client) Page(ctx context.Context, path string) (body json.RawMessage, location string, err error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return nil, resp.Header.Get("Location"), nil
	}
	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, "", nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	var body errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &Error{Status: resp.StatusCode, Message: firstNonEmpty(body.Message, body.Error), Title: body.Title}
}

func notFoundAs(err error, target error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %v", target, err)
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
