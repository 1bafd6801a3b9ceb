package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shivam13669/storiesby-auth/internal/users"
)

// HTTPClient talks JSON to the auth service.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type userEnvelope struct {
	User    *users.User `json:"user"`
	Message string      `json:"message"`
}

type usersEnvelope struct {
	Users []*users.User `json:"users"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// do performs one API call. Any transport failure or undecodable
// response collapses into ErrUnavailable; 4xx/5xx responses map back
// to the users sentinels by status code.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return statusError(resp.StatusCode, apiErr.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}

func statusError(status int, message string) error {
	switch status {
	case http.StatusNotFound:
		return users.ErrNotFound
	case http.StatusConflict:
		return users.ErrDuplicateEmail
	case http.StatusForbidden:
		return users.ErrSuspended
	case http.StatusUnauthorized:
		return users.ErrInvalidCredentials
	}
	if message == "" {
		message = "request failed"
	}
	return fmt.Errorf("server error (%d): %s", status, message)
}

func (c *HTTPClient) Signup(ctx context.Context, p users.SignupParams) (*users.User, error) {
	body := map[string]string{
		"fullName":     p.FullName,
		"email":        p.Email,
		"password":     p.Password,
		"mobileNumber": p.MobileNumber,
		"countryCode":  p.CountryCode,
	}

	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*users.User, error) {
	body := map[string]string{"email": email, "password": password}

	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*users.User, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/auth/user/%d", id), nil, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]*users.User, error) {
	var env usersEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/auth/users", nil, &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}

func (c *HTTPClient) ToggleTestimonial(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/auth/users/%d/toggle-testimonial", id), nil, nil)
}

func (c *HTTPClient) Suspend(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/auth/users/%d/suspend", id), nil, nil)
}

func (c *HTTPClient) Unsuspend(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/auth/users/%d/unsuspend", id), nil, nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/auth/users/%d", id), nil, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, id int64, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/auth/users/%d/reset-password", id), body, nil)
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}
