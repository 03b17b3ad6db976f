package passsdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the pass service's public endpoints. It creates
// authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a user and returns a session bound to the issued token.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/register", "", req)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return c.NewSession(out.ID, out.Token), nil
}

// NewSession wraps an existing token.
func (c *SDKClient) NewSession(userID int64, token string) *Session {
	return &Session{client: c, userID: userID, token: token}
}

// GetUser fetches a user by id.
func (c *SDKClient) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), "", nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEvents returns all events.
func (c *SDKClient) ListEvents(ctx context.Context) ([]EventResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/events", "", nil)
	if err != nil {
		return nil, err
	}

	var out []EventResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent fetches one event.
func (c *SDKClient) GetEvent(ctx context.Context, id int64) (*EventResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), "", nil)
	if err != nil {
		return nil, err
	}

	var out EventResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
