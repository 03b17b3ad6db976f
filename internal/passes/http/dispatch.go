package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/eventpass/internal/passes/service"
	"github.com/aussiebroadwan/eventpass/pkg/httpx"
	"github.com/aussiebroadwan/eventpass/pkg/passsdk"
)

type DispatchHandler struct {
	DispatchService *service.DispatchService
}

// HandleSendPass godoc
//
//	@Summary		Send Pass
//	@Description	Deliver a pass held by the caller to their phone over WhatsApp.
//	@Tags			Dispatch
//	@Produce		json
//	@Param			id	path		int	true	"Pass ID"
//	@Success		200	{object}	passsdk.MessageResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse	"not found or not authorized"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Failure		502	{object}	httpx.ErrorResponse	"delivery failed"
//	@Security		BearerAuth
//	@Router			/passes/{id}/send [post].
func (h *DispatchHandler) HandleSendPass(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, msgPassNotOwned)
	if !ok {
		return
	}

	err := h.DispatchService.SendPass(r.Context(), id, userID)
	var delivery *service.DeliveryError
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, passsdk.MessageResponse{Message: "Pass sent successfully"})
	case errors.As(err, &delivery):
		// The service already logged the cause.
		httpx.WriteError(w, http.StatusBadGateway, "Failed to send pass")
	default:
		writeServiceError(w, r, err, msgPassNotOwned)
	}
}

// HandleSendEvent godoc
//
//	@Summary		Send Event Passes
//	@Description	Deliver every pass of an event the caller organizes, one recipient at a time with a short pause between sends.
//	@Description	The response carries one result per attendee; individual failures do not stop the batch.
//	@Tags			Dispatch
//	@Produce		json
//	@Param			id	path		int	true	"Event ID"
//	@Success		200	{object}	passsdk.DispatchResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse	"not found or not authorized"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/events/{id}/passes/send [post].
func (h *DispatchHandler) HandleSendEvent(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, msgEventNotOwned)
	if !ok {
		return
	}

	results, err := h.DispatchService.SendEventPasses(r.Context(), id, organizerID)
	if err != nil {
		writeServiceError(w, r, err, msgEventNotOwned)
		return
	}

	out := passsdk.DispatchResponse{
		Message: "Passes sent",
		Results: make([]passsdk.DispatchResult, 0, len(results)),
	}
	for _, res := range results {
		out.Results = append(out.Results, passsdk.DispatchResult{
			UserID:  res.UserID,
			Success: res.Success,
			Error:   res.Error,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
