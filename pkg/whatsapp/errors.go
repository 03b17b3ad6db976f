package whatsapp

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx answer from the Cloud API.
type APIError struct {
	StatusCode int
	Code       int    `json:"code"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	Body       string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("whatsapp: api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("whatsapp: api error %d: %s", e.StatusCode, e.Body)
}

func parseAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status, Body: string(body)}

	var envelope struct {
		Error *APIError `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Type = envelope.Error.Type
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
