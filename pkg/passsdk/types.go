package passsdk

import "time"

// ============================================================================
// Users
// ============================================================================

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// RegisterResponse carries the new user id and a bearer token for it.
type RegisterResponse struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

// UserResponse is a user as returned by GET /users/{id}.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================================================
// Events
// ============================================================================

// EventRequest is the body of POST /events and PUT /events/{id}.
//
// Date is an ISO 8601 timestamp. On update every field is optional and an
// omitted field keeps its stored value; pass limits are ignored on update.
type EventRequest struct {
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	Date              *string `json:"date,omitempty"`
	Location          *string `json:"location,omitempty"`
	GoldPassLimit     *int64  `json:"goldPassLimit,omitempty"`
	SilverPassLimit   *int64  `json:"silverPassLimit,omitempty"`
	PlatinumPassLimit *int64  `json:"platinumPassLimit,omitempty"`
}

// EventResponse is an event as returned by the event endpoints.
type EventResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description,omitempty"`
	Date              time.Time `json:"date"`
	Location          string    `json:"location"`
	OrganizerID       int64     `json:"organizerId"`
	GoldPassLimit     int64     `json:"goldPassLimit"`
	SilverPassLimit   int64     `json:"silverPassLimit"`
	PlatinumPassLimit int64     `json:"platinumPassLimit"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ============================================================================
// Passes
// ============================================================================

// PassRequest is the body of POST /passes.
type PassRequest struct {
	EventID  *int64 `json:"eventId"`
	Category string `json:"category"`
}

// StatusRequest is the body of PUT /passes/{id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// PassResponse is a pass held by the caller, joined with its event.
type PassResponse struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"eventId"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	EventName string    `json:"eventName"`
	EventDate time.Time `json:"eventDate"`
}

// DispatchResult is the outcome of delivering one pass.
type DispatchResult struct {
	UserID  int64  `json:"userId"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DispatchResponse is returned by POST /events/{id}/passes/send.
type DispatchResponse struct {
	Message string           `json:"message"`
	Results []DispatchResult `json:"results"`
}

// ============================================================================
// Common
// ============================================================================

// IDResponse is returned by create endpoints.
type IDResponse struct {
	ID int64 `json:"id"`
}

// MessageResponse is returned by endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthChecks reports the state of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Media    string `json:"media,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
