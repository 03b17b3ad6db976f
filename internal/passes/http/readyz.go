package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/eventpass/internal/passes/media"
	"github.com/aussiebroadwan/eventpass/internal/passes/store"
	"github.com/aussiebroadwan/eventpass/pkg/httpx"
	"github.com/aussiebroadwan/eventpass/pkg/passsdk"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database and, when it is remote, the media store
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	passsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	passsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	ms media.Store,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &passsdk.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Only remote media stores can be pinged
		if p, ok := ms.(pinger); ok {
			checks.Media = "ok"
			if err := p.Ping(r.Context()); err != nil {
				checks.Media = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		httpx.WriteJSON(w, statusCode, passsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
