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
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jlindgren/wayfarer/internal/domain"
	"github.com/jlindgren/wayfarer/internal/logger"
)

const DefaultTimeout = 10 * time.Second

// StatusError is a non-2xx backend response that is neither an auth failure
// nor a transport problem. It carries the server's message verbatim.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

// Client talks to the travel backend. The session credential is an explicit
// slot on the client, set and cleared by the session manager; each request
// reads it once at send time, so a credential change never mutates a request
// already in flight.
type Client struct {
	baseURL string
	http    *http.Client

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: newLoggingTransport(nil),
		},
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// OnUnauthorized registers the hook fired once per 401 response, before the
// error is surfaced to the caller. Wired to session.Manager.Invalidate.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) unauthorizedHook() func() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onUnauthorized
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if hook := c.unauthorizedHook(); hook != nil {
			hook()
		}
		return fmt.Errorf("%w: %s %s", domain.ErrAuthRequired, method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		data, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(data, &errResp)
		return &StatusError{Code: resp.StatusCode, Message: errResp.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: malformed response: %v", domain.ErrNetwork, err)
		}
	}

	return nil
}

type authRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", authRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	return &domain.AuthResult{Success: resp.Success || resp.Token != "", Token: resp.Token, Message: resp.Message}, nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*domain.AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/signup", authRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	return &domain.AuthResult{Success: resp.Success, Token: resp.Token, Message: resp.Message}, nil
}

// tripRecord tolerates the backend's two id spellings: a numeric or string
// "id", or a Mongo-style "_id".
type tripRecord struct {
	ID       interface{} `json:"id"`
	MongoID  string      `json:"_id"`
	Name     string      `json:"name"`
	Location string      `json:"location"`
	Image    string      `json:"image"`
	Rating   float64     `json:"rating"`
}

func (r tripRecord) identifier() string {
	switch v := r.ID.(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return r.MongoID
}

func (r tripRecord) toDomain() domain.Trip {
	return domain.Trip{
		ID:       r.identifier(),
		Name:     r.Name,
		Location: r.Location,
		Image:    r.Image,
		Rating:   r.Rating,
	}
}

func (c *Client) listTrips(ctx context.Context, path string) ([]domain.Trip, error) {
	var records []tripRecord
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}

	trips := make([]domain.Trip, 0, len(records))
	for _, r := range records {
		trips = append(trips, r.toDomain())
	}
	return trips, nil
}

func (c *Client) Trips(ctx context.Context) ([]domain.Trip, error) {
	return c.listTrips(ctx, "/api/trips")
}

func (c *Client) Recommendations(ctx context.Context) ([]domain.Trip, error) {
	return c.listTrips(ctx, "/api/recommendations")
}

// SavedTrips reads the saved list, falling back to the "my trips" listing
// when the primary endpoint fails for any non-auth reason. The fallback
// result is taken as-is, never merged with the primary.
func (c *Client) SavedTrips(ctx context.Context) ([]domain.Trip, error) {
	trips, err := c.listTrips(ctx, "/api/saved-trips")
	if err == nil {
		return trips, nil
	}
	if errors.Is(err, domain.ErrAuthRequired) {
		return nil, err
	}

	logger.Log("Saved trips endpoint unavailable, trying /api/my-trips: %v", err)
	return c.listTrips(ctx, "/api/my-trips")
}

func (c *Client) SaveTrip(ctx context.Context, tripID string) error {
	return c.do(ctx, http.MethodPost, "/api/trips/"+url.PathEscape(tripID)+"/save", nil, nil)
}

func (c *Client) UnsaveTrip(ctx context.Context, tripID string) error {
	return c.do(ctx, http.MethodDelete, "/api/trips/"+url.PathEscape(tripID)+"/save", nil, nil)
}

type profileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *Client) Profile(ctx context.Context) (*domain.Profile, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &domain.Profile{Name: resp.Name, Email: resp.Email}, nil
}
