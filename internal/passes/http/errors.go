package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/eventpass/internal/passes/service"
	"github.com/aussiebroadwan/eventpass/pkg/httpx"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"
)

const msgInternal = "Internal server error"

// writeServiceError maps service errors to a status code and message.
// notFound overrides the message for 404s so that write endpoints can say
// "not found or not authorized".
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var quota *service.QuotaExceededError
	switch {
	case errors.As(err, &quota):
		httpx.WriteError(w, http.StatusBadRequest, quota.Error())
	case errors.Is(err, service.ErrDuplicatePass):
		httpx.WriteError(w, http.StatusBadRequest, "You already hold a pass for this event")
	case errors.Is(err, service.ErrUserExists):
		httpx.WriteError(w, http.StatusBadRequest, "Phone or email already exists")
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrPassNotFound):
		if notFound == "" {
			notFound = defaultNotFound(err)
		}
		httpx.WriteError(w, http.StatusNotFound, notFound)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
	}
}

func defaultNotFound(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrEventNotFound):
		return "Event not found"
	default:
		return "Pass not found"
	}
}

// callerID returns the authenticated user id placed in the context by
// httpx.AuthnMiddleware.
func callerID(r *http.Request) (int64, bool) {
	sub, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// requireCaller writes 401 and returns false when the token subject is not a
// user id.
func requireCaller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := callerID(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid token subject")
	}
	return id, ok
}

// pathID parses the {id} path value. Non-numeric ids are reported as not
// found because no such row can exist.
func pathID(w http.ResponseWriter, r *http.Request, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusNotFound, notFound)
		return 0, false
	}
	return id, true
}
