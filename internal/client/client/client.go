// Package client implements an HTTP client for the userhub API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// User is the public projection of a user record returned by the API.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserUpdate carries optional field changes for an update call.
// Nil fields are omitted from the request and left unchanged.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIClient talks to the userhub HTTP API. After a successful Login the
// access token is attached to every subsequent request.
type APIClient struct {
	baseURL     string
	http        *http.Client
	accessToken string
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// IsAuthenticated reports whether a login token is currently held.
func (c *APIClient) IsAuthenticated() bool {
	return c.accessToken != ""
}

// Logout drops the stored access token. The token itself stays valid
// until it expires; the server keeps no session state.
func (c *APIClient) Logout() {
	c.accessToken = ""
}

// doJSON performs one request. A non-nil body is JSON-encoded; a non-nil
// out receives the decoded response body on success. Error responses are
// mapped to the package sentinels where the status permits, otherwise the
// server's message is returned verbatim.
func (c *APIClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}

func (c *APIClient) errorFromResponse(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	if eb.Message != "" {
		return fmt.Errorf("server error: %s", eb.Message)
	}
	return fmt.Errorf("server error: status %d", resp.StatusCode)
}

// Ping checks server availability via the health endpoint.
func (c *APIClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ErrUnavailable
	}
	return nil
}

// Register creates a new account and returns its public record.
func (c *APIClient) Register(ctx context.Context, username, email string, password []byte) (*User, error) {
	req := map[string]string{
		"username": username,
		"email":    email,
		"password": string(password),
	}
	var u User
	if err := c.doJSON(ctx, http.MethodPost, "/api/register", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for an access token and stores it for
// subsequent calls.
func (c *APIClient) Login(ctx context.Context, username string, password []byte) error {
	req := map[string]string{
		"username": username,
		"password": string(password),
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", req, &resp); err != nil {
		return err
	}
	c.accessToken = resp.AccessToken
	return nil
}

// Whoami calls the protected greeting endpoint and returns its message.
func (c *APIClient) Whoami(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/protected", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListUsers returns all registered accounts.
func (c *APIClient) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one account by id.
func (c *APIClient) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser applies the provided field changes and returns the updated
// record.
func (c *APIClient) UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes an account by id.
func (c *APIClient) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}
