package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/eventpass/internal/passes/domain"
	"github.com/aussiebroadwan/eventpass/internal/passes/service"
	"github.com/aussiebroadwan/eventpass/pkg/httpx"
	"github.com/aussiebroadwan/eventpass/pkg/passcard"
	"github.com/aussiebroadwan/eventpass/pkg/passsdk"
	"github.com/aussiebroadwan/eventpass/pkg/slogx"
)

const msgPassNotOwned = "Pass not found or not authorized"

type PassesHandler struct {
	PassService  *service.PassService
	EventService *service.EventService
	UserService  *service.UserService
}

// HandleCreate godoc
//
//	@Summary		Issue Pass
//	@Description	Issue a pass of the given category for an event to the caller. Fails once the category quota is used up.
//	@Tags			Passes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		passsdk.PassRequest				true	"eventId, category (Gold, Silver, Platinum)"
//	@Success		201		{object}	passsdk.IDResponse				"id"
//	@Failure		400		{object}	httpx.ValidationErrorResponse	"validation errors"
//	@Failure		400		{object}	httpx.ErrorResponse				"No more {category} passes available"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse	"event not found"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/passes [post].
func (h *PassesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req passsdk.PassRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var v validation
	v.check(req.EventID != nil, "eventId", "Event ID must be a valid integer")
	category, err := domain.ParseCategory(req.Category)
	v.check(err == nil, "category", "Invalid pass category")
	if len(v) > 0 {
		httpx.WriteValidation(w, v)
		return
	}

	id, err := h.PassService.Issue(r.Context(), *req.EventID, category, userID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, passsdk.IDResponse{ID: id})
}

// HandleList godoc
//
//	@Summary		List My Passes
//	@Description	Passes held by the caller with the name and date of their event.
//	@Tags			Passes
//	@Produce		json
//	@Success		200	{array}		passsdk.PassResponse
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/passes [get].
func (h *PassesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireCaller(w, r)
	if !ok {
		return
	}

	held, err := h.PassService.ListForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	out := make([]passsdk.PassResponse, 0, len(held))
	for _, p := range held {
		out = append(out, passsdk.PassResponse{
			ID:        p.ID,
			EventID:   p.EventID,
			Category:  string(p.Category),
			Status:    string(p.Status),
			CreatedAt: p.CreatedAt,
			EventName: p.EventName,
			EventDate: p.EventDate,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateStatus godoc
//
//	@Summary		Update Pass Status
//	@Description	Set the status of a pass held by the caller to Active, Used or Cancelled.
//	@Tags			Passes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Pass ID"
//	@Param			request	body		passsdk.StatusRequest			true	"status"
//	@Success		200		{object}	passsdk.MessageResponse
//	@Failure		400		{object}	httpx.ValidationErrorResponse	"validation errors"
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse	"not found or not authorized"
//	@Failure		500		{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/passes/{id}/status [put].
func (h *PassesHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, msgPassNotOwned)
	if !ok {
		return
	}

	var req passsdk.StatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		httpx.WriteValidation(w, validation{{Field: "status", Message: "Invalid status"}})
		return
	}

	if err := h.PassService.UpdateStatus(r.Context(), id, userID, status); err != nil {
		writeServiceError(w, r, err, msgPassNotOwned)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, passsdk.MessageResponse{Message: "Pass status updated successfully"})
}

// HandleImage godoc
//
//	@Summary		Render Pass
//	@Description	Render a pass held by the caller as an 800x410 PNG card with a QR code, or as SVG markup with format=svg.
//	@Tags			Passes
//	@Produce		png
//	@Produce		image/svg+xml
//	@Param			id		path		int		true	"Pass ID"
//	@Param			format	query		string	false	"png (default) or svg"
//	@Success		200	{file}		binary
//	@Failure		400	{object}	httpx.ErrorResponse	"unknown format"
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse	"not found or not authorized"
//	@Failure		500	{object}	httpx.ErrorResponse
//	@Security		BearerAuth
//	@Router			/passes/{id}/image [get].
func (h *PassesHandler) HandleImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, msgPassNotOwned)
	if !ok {
		return
	}

	pass, err := h.PassService.GetForUser(ctx, id, userID)
	if err != nil {
		writeServiceError(w, r, err, msgPassNotOwned)
		return
	}
	user, err := h.UserService.GetUser(ctx, userID)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("load pass holder: %w", err), msgPassNotOwned)
		return
	}
	event, err := h.EventService.Get(ctx, pass.EventID)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("load pass event: %w", err), msgPassNotOwned)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "png" && format != "svg" {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid image format")
		return
	}

	card := passcard.New(passcard.Details{
		UserName:  user.Name,
		EventName: event.Name,
		EventDate: event.Date.Format(domain.DateLayout),
		Category:  string(pass.Category),
	})

	var (
		body        []byte
		contentType = "image/png"
	)
	if format == "svg" {
		var svg string
		svg, err = card.SVG()
		body, contentType = []byte(svg), "image/svg+xml"
	} else {
		body, err = card.PNG()
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to render pass", slog.Int64("pass_id", id), slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
