package passsdk

import (
	"context"
	"fmt"
	"net/http"
)

// Session performs requests on behalf of one registered user.
type Session struct {
	client *SDKClient
	userID int64
	token  string
}

// UserID returns the id of the session's user.
func (s *Session) UserID() int64 { return s.userID }

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// CreateEvent creates an event organized by the session's user.
func (s *Session) CreateEvent(ctx context.Context, req EventRequest) (int64, error) {
	return s.create(ctx, "/events", req)
}

// UpdateEvent applies a partial update to an event the user organizes.
func (s *Session) UpdateEvent(ctx context.Context, id int64, req EventRequest) error {
	return s.ack(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), req)
}

// DeleteEvent deletes an event the user organizes.
func (s *Session) DeleteEvent(ctx context.Context, id int64) error {
	return s.ack(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil)
}

// CreatePass requests a pass of the given category for an event.
func (s *Session) CreatePass(ctx context.Context, eventID int64, category string) (int64, error) {
	return s.create(ctx, "/passes", PassRequest{EventID: &eventID, Category: category})
}

// ListPasses returns the passes held by the user.
func (s *Session) ListPasses(ctx context.Context) ([]PassResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/passes", s.token, nil)
	if err != nil {
		return nil, err
	}

	var out []PassResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePassStatus changes the status of a pass the user holds.
func (s *Session) UpdatePassStatus(ctx context.Context, id int64, status string) error {
	return s.ack(ctx, http.MethodPut, fmt.Sprintf("/passes/%d/status", id), StatusRequest{Status: status})
}

// GetPassImage downloads the PNG card of a pass the user holds.
func (s *Session) GetPassImage(ctx context.Context, id int64) ([]byte, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/passes/%d/image", id), s.token, nil)
	if err != nil {
		return nil, err
	}
	return readBytes(resp, http.StatusOK)
}

// SendPass delivers one of the user's passes to their phone.
func (s *Session) SendPass(ctx context.Context, id int64) error {
	return s.ack(ctx, http.MethodPost, fmt.Sprintf("/passes/%d/send", id), nil)
}

// SendEventPasses delivers every pass of an event the user organizes.
func (s *Session) SendEventPasses(ctx context.Context, eventID int64) (*DispatchResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, fmt.Sprintf("/events/%d/passes/send", eventID), s.token, nil)
	if err != nil {
		return nil, err
	}

	var out DispatchResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) create(ctx context.Context, path string, payload any) (int64, error) {
	resp, err := s.client.doRequest(ctx, http.MethodPost, path, s.token, payload)
	if err != nil {
		return 0, err
	}

	var out IDResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (s *Session) ack(ctx context.Context, method, path string, payload any) error {
	resp, err := s.client.doRequest(ctx, method, path, s.token, payload)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
