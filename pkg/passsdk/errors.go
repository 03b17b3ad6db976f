package passsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/eventpass/pkg/httpx"
)

// APIError is returned for any non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []httpx.FieldError
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, strings.Join(parts, "; "))
}

// IsNotFound reports whether the error is a 404 from the service.
func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// parseErrorResponse builds an *APIError from either the {"error"} body or
// the {"errors": [...]} validation body.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error  string             `json:"error"`
		Errors []httpx.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	apiErr.Message = envelope.Error
	apiErr.Fields = envelope.Errors
	if apiErr.Message == "" && len(apiErr.Fields) > 0 {
		apiErr.Message = "validation failed"
	}
	return apiErr
}
